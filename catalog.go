// Package catalog is a content-publication engine: slug-addressable pages
// composed of polymorphic sections, articles, products, authors, categories,
// and shared media references, with draft/published visibility resolution and
// a consistent pagination contract.
package catalog

import (
	"net/http"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/goliatone/go-catalog/internal/di"
	cataloghttp "github.com/goliatone/go-catalog/internal/http"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/internal/sections"
	"github.com/goliatone/go-catalog/pkg/interfaces"
)

// Service aliases exported for embedding hosts.
type (
	PageService     = catalog.PageService
	ArticleService  = catalog.ArticleService
	ProductService  = catalog.ProductService
	AuthorService   = catalog.AuthorService
	CategoryService = catalog.CategoryService
	MediaService    = catalog.MediaService
)

// Request and result types exported for embedding hosts.
type (
	Viewer                = catalog.Viewer
	ReadOptions           = catalog.ReadOptions
	ListRequest           = catalog.ListRequest
	GetRequest            = catalog.GetRequest
	DeleteRequest         = catalog.DeleteRequest
	CreatePageRequest     = catalog.CreatePageRequest
	UpdatePageRequest     = catalog.UpdatePageRequest
	CreateArticleRequest  = catalog.CreateArticleRequest
	UpdateArticleRequest  = catalog.UpdateArticleRequest
	CreateProductRequest  = catalog.CreateProductRequest
	UpdateProductRequest  = catalog.UpdateProductRequest
	CreateAuthorRequest   = catalog.CreateAuthorRequest
	UpdateAuthorRequest   = catalog.UpdateAuthorRequest
	CreateCategoryRequest = catalog.CreateCategoryRequest
	UpdateCategoryRequest = catalog.UpdateCategoryRequest
	CreateMediaRequest    = catalog.CreateMediaRequest
	IngestMediaRequest    = catalog.IngestMediaRequest
)

// Model types exported for embedding hosts.
type (
	Page     = catalog.Page
	Article  = catalog.Article
	Product  = catalog.Product
	Author   = catalog.Author
	Category = catalog.Category
	Media    = catalog.Media
)

// Section types exported for embedding hosts.
type (
	Section           = sections.Section
	RawSection        = sections.RawSection
	SectionDefinition = sections.Definition
	SectionRegistry   = sections.Registry
)

// Collaborator contracts exported for embedding hosts.
type (
	MediaStorage    = interfaces.MediaStore
	MediaUpload     = interfaces.MediaUpload
	MediaDescriptor = interfaces.MediaDescriptor
)

// Option mutates the module's dependency container before services are
// constructed.
type Option = di.Option

// Container options re-exported for embedding hosts.
var (
	WithBunDB           = di.WithBunDB
	WithCache           = di.WithCache
	WithLoggerProvider  = di.WithLoggerProvider
	WithMediaStorage    = di.WithMediaStorage
	WithSectionRegistry = di.WithSectionRegistry
	WithBodyRenderer    = di.WithBodyRenderer
	WithServiceOptions  = di.WithServiceOptions
)

// Module is the top level catalog runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a catalog module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Articles returns the configured article service.
func (m *Module) Articles() ArticleService {
	return m.container.ArticleService()
}

// Products returns the configured product service.
func (m *Module) Products() ProductService {
	return m.container.ProductService()
}

// Authors returns the configured author service.
func (m *Module) Authors() AuthorService {
	return m.container.AuthorService()
}

// Categories returns the configured category service.
func (m *Module) Categories() CategoryService {
	return m.container.CategoryService()
}

// Media returns the configured media service.
func (m *Module) Media() MediaService {
	return m.container.MediaService()
}

// Sections exposes the configured section registry so hosts can register
// additional variants before serving traffic.
func (m *Module) Sections() *SectionRegistry {
	return m.container.SectionRegistry()
}

// DecodeSections converts a page's stored section blocks into typed sections.
// Unknown variants come back as opaque attribute bags with Known unset.
func (m *Module) DecodeSections(page *Page) []Section {
	if page == nil {
		return nil
	}
	return m.container.SectionRegistry().Decode(page.Sections)
}

// RegisterRoutes attaches the HTTP surface to the provided mux using the
// configured services and API bindings.
func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	cfg := m.container.Config
	api := newHTTPAPI(m, cfg.API.BasePath, cfg.API.BearerToken, cfg.Pagination.MaxPageSize)
	return api.Register(mux)
}

func newHTTPAPI(m *Module, basePath, token string, maxPageSize int) *cataloghttp.API {
	return cataloghttp.NewAPI(
		cataloghttp.WithBasePath(basePath),
		cataloghttp.WithBearerToken(token),
		cataloghttp.WithPageSizeLimit(maxPageSize),
		cataloghttp.WithPageService(m.container.PageService()),
		cataloghttp.WithArticleService(m.container.ArticleService()),
		cataloghttp.WithProductService(m.container.ProductService()),
		cataloghttp.WithAuthorService(m.container.AuthorService()),
		cataloghttp.WithCategoryService(m.container.CategoryService()),
		cataloghttp.WithMediaService(m.container.MediaService()),
		cataloghttp.WithLogger(logging.HTTPLogger(m.container.LoggerProvider())),
	)
}
