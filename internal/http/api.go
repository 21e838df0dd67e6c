package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/pkg/interfaces"
)

// API exposes the catalog services over HTTP. Routes use the standard
// library mux with method-qualified patterns; the host application owns the
// server lifecycle.
type API struct {
	basePath    string
	token       string
	maxPageSize int

	pages    catalog.PageService
	articles catalog.ArticleService
	products catalog.ProductService
	authors  catalog.AuthorService
	category catalog.CategoryService
	media    catalog.MediaService
	logger   interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithBearerToken sets the shared secret that authenticates editorial
// callers. An empty token leaves every caller unauthenticated.
func WithBearerToken(token string) Option {
	return func(api *API) {
		api.token = strings.TrimSpace(token)
	}
}

// WithPageSizeLimit caps the pageSize query parameter. Zero means no cap.
func WithPageSizeLimit(limit int) Option {
	return func(api *API) {
		if limit > 0 {
			api.maxPageSize = limit
		}
	}
}

// WithPageService wires the page service.
func WithPageService(service catalog.PageService) Option {
	return func(api *API) {
		api.pages = service
	}
}

// WithArticleService wires the article service.
func WithArticleService(service catalog.ArticleService) Option {
	return func(api *API) {
		api.articles = service
	}
}

// WithProductService wires the product service.
func WithProductService(service catalog.ProductService) Option {
	return func(api *API) {
		api.products = service
	}
}

// WithAuthorService wires the author service.
func WithAuthorService(service catalog.AuthorService) Option {
	return func(api *API) {
		api.authors = service
	}
}

// WithCategoryService wires the category service.
func WithCategoryService(service catalog.CategoryService) Option {
	return func(api *API) {
		api.category = service
	}
}

// WithMediaService wires the media service.
func WithMediaService(service catalog.MediaService) Option {
	return func(api *API) {
		api.media = service
	}
}

// WithLogger attaches a logger to the API.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the catalog endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerPageRoutes(mux, base)
	api.registerArticleRoutes(mux, base)
	api.registerProductRoutes(mux, base)
	api.registerTaxonomyRoutes(mux, base)
	api.registerMediaRoutes(mux, base)

	return nil
}
