package di

import (
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/internal/logging/gologger"
	"github.com/goliatone/go-catalog/internal/markdown"
	"github.com/goliatone/go-catalog/internal/runtimeconfig"
	"github.com/goliatone/go-catalog/internal/sections"
	"github.com/goliatone/go-catalog/pkg/interfaces"
)

// Container wires module dependencies. Memory-backed stores are the default;
// supplying a bun.DB swaps in the persistent stores with optional caching.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	mediaStorage   interfaces.MediaStore
	registry       *sections.Registry
	renderer       catalog.BodyRenderer

	pageStore     catalog.PageStore
	articleStore  catalog.ArticleStore
	productStore  catalog.ProductStore
	authorStore   catalog.AuthorStore
	categoryStore catalog.CategoryStore
	mediaStore    catalog.MediaStore

	serviceOpts []catalog.ServiceOption

	pageSvc     catalog.PageService
	articleSvc  catalog.ArticleService
	productSvc  catalog.ProductService
	authorSvc   catalog.AuthorService
	categorySvc catalog.CategoryService
	mediaSvc    catalog.MediaService
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds a bun database; stores switch from memory to SQL.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider binding.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithMediaStorage binds the external binary storage collaborator used by
// media ingestion.
func WithMediaStorage(storage interfaces.MediaStore) Option {
	return func(c *Container) {
		c.mediaStorage = storage
	}
}

// WithSectionRegistry overrides the default section registry.
func WithSectionRegistry(registry *sections.Registry) Option {
	return func(c *Container) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithBodyRenderer overrides the markdown renderer binding.
func WithBodyRenderer(renderer catalog.BodyRenderer) Option {
	return func(c *Container) {
		c.renderer = renderer
	}
}

// WithServiceOptions forwards options (clock, id generator) to every service.
func WithServiceOptions(opts ...catalog.ServiceOption) Option {
	return func(c *Container) {
		c.serviceOpts = append(c.serviceOpts, opts...)
	}
}

// WithPageService overrides the default page service binding.
func WithPageService(svc catalog.PageService) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// WithArticleService overrides the default article service binding.
func WithArticleService(svc catalog.ArticleService) Option {
	return func(c *Container) {
		c.articleSvc = svc
	}
}

// WithProductService overrides the default product service binding.
func WithProductService(svc catalog.ProductService) Option {
	return func(c *Container) {
		c.productSvc = svc
	}
}

// WithAuthorService overrides the default author service binding.
func WithAuthorService(svc catalog.AuthorService) Option {
	return func(c *Container) {
		c.authorSvc = svc
	}
}

// WithCategoryService overrides the default category service binding.
func WithCategoryService(svc catalog.CategoryService) Option {
	return func(c *Container) {
		c.categorySvc = svc
	}
}

// WithMediaService overrides the default media service binding.
func WithMediaService(svc catalog.MediaService) Option {
	return func(c *Container) {
		c.mediaSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
		registry: sections.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureMarkdown()
	if err := c.configureStores(); err != nil {
		return nil, err
	}
	c.configureServices()

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	if c.Config.Logging.Provider != "gologger" {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureMarkdown() {
	if c.renderer != nil || !c.Config.Markdown.Enabled {
		return
	}
	c.renderer = markdown.New(markdown.Options{
		HardWraps: c.Config.Markdown.HardWraps,
		Unsafe:    c.Config.Markdown.Unsafe,
	})
}

func (c *Container) configureStores() error {
	if c.bunDB == nil && strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), "bun") && c.Config.Storage.DSN != "" {
		db, err := openDatabase(c.Config.Storage)
		if err != nil {
			return err
		}
		c.bunDB = db
	}

	if c.bunDB != nil {
		catalog.RegisterModels(c.bunDB)
		c.pageStore = catalog.NewBunPageStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.articleStore = catalog.NewBunArticleStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.productStore = catalog.NewBunProductStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.authorStore = catalog.NewBunAuthorStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.categoryStore = catalog.NewBunCategoryStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.mediaStore = catalog.NewBunMediaStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return nil
	}

	authors := catalog.NewMemoryAuthorStore()
	categories := catalog.NewMemoryCategoryStore()
	media := catalog.NewMemoryMediaStore()

	c.pageStore = catalog.NewMemoryPageStore()
	c.authorStore = authors
	c.categoryStore = categories
	c.mediaStore = media
	c.articleStore = catalog.NewMemoryArticleStore(authors, categories, media)
	c.productStore = catalog.NewMemoryProductStore(authors, categories, media)
	return nil
}

func (c *Container) configureServices() {
	if c.pageSvc == nil {
		opts := c.serviceOptions(logging.PagesLogger(c.loggerProvider))
		c.pageSvc = catalog.NewPageService(c.pageStore, c.registry, opts...)
	}
	if c.articleSvc == nil {
		opts := c.serviceOptions(logging.ArticlesLogger(c.loggerProvider))
		c.articleSvc = catalog.NewArticleService(c.articleStore, c.authorStore, c.categoryStore, c.mediaStore, c.renderer, opts...)
	}
	if c.productSvc == nil {
		opts := c.serviceOptions(logging.ProductsLogger(c.loggerProvider))
		c.productSvc = catalog.NewProductService(c.productStore, c.authorStore, c.categoryStore, c.mediaStore, opts...)
	}
	if c.authorSvc == nil {
		opts := c.serviceOptions(logging.TaxonomyLogger(c.loggerProvider))
		c.authorSvc = catalog.NewAuthorService(c.authorStore, opts...)
	}
	if c.categorySvc == nil {
		opts := c.serviceOptions(logging.TaxonomyLogger(c.loggerProvider))
		c.categorySvc = catalog.NewCategoryService(c.categoryStore, opts...)
	}
	if c.mediaSvc == nil {
		opts := c.serviceOptions(logging.MediaLogger(c.loggerProvider))
		c.mediaSvc = catalog.NewMediaService(c.mediaStore, c.mediaStorage, opts...)
	}
}

func (c *Container) serviceOptions(logger interfaces.Logger) []catalog.ServiceOption {
	opts := []catalog.ServiceOption{catalog.WithLogger(logger)}
	opts = append(opts, c.serviceOpts...)
	return opts
}

// LoggerProvider exposes the configured logger provider, which may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// SectionRegistry exposes the configured section registry.
func (c *Container) SectionRegistry() *sections.Registry {
	return c.registry
}

// BodyRenderer exposes the configured markdown renderer, which may be nil.
func (c *Container) BodyRenderer() catalog.BodyRenderer {
	return c.renderer
}

// PageService returns the configured page service.
func (c *Container) PageService() catalog.PageService {
	return c.pageSvc
}

// ArticleService returns the configured article service.
func (c *Container) ArticleService() catalog.ArticleService {
	return c.articleSvc
}

// ProductService returns the configured product service.
func (c *Container) ProductService() catalog.ProductService {
	return c.productSvc
}

// AuthorService returns the configured author service.
func (c *Container) AuthorService() catalog.AuthorService {
	return c.authorSvc
}

// CategoryService returns the configured category service.
func (c *Container) CategoryService() catalog.CategoryService {
	return c.categorySvc
}

// MediaService returns the configured media service.
func (c *Container) MediaService() catalog.MediaService {
	return c.mediaSvc
}
