package catalog

import (
	"context"

	"github.com/goliatone/go-catalog/internal/pagination"
	"github.com/goliatone/go-catalog/internal/sections"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	"github.com/google/uuid"
)

// Viewer carries the caller identity the external credential check resolved.
// The catalog only ever consumes the boolean.
type Viewer struct {
	Authenticated bool
}

// ReadOptions captures the read-path query surface shared by every entity
// kind: requested status, relation list, and (for listings) sort.
type ReadOptions struct {
	Viewer
	Status   string
	Populate string
}

// ListRequest extends ReadOptions with pagination and sorting.
type ListRequest struct {
	ReadOptions
	Page     int
	PageSize int
	Sort     string
}

// GetRequest addresses a single document by slug or id.
type GetRequest struct {
	ReadOptions
	Key string
}

// PageList is a page listing plus its pagination metadata.
type PageList struct {
	Items []*Page
	Meta  pagination.Result
}

// ArticleList is an article listing plus its pagination metadata.
type ArticleList struct {
	Items []*Article
	Meta  pagination.Result
}

// ProductList is a product listing plus its pagination metadata.
type ProductList struct {
	Items []*Product
	Meta  pagination.Result
}

// AuthorList is an author listing plus its pagination metadata.
type AuthorList struct {
	Items []*Author
	Meta  pagination.Result
}

// CategoryList is a category listing plus its pagination metadata.
type CategoryList struct {
	Items []*Category
	Meta  pagination.Result
}

// CreatePageRequest captures a validated page write. Status defaults to
// published when absent.
type CreatePageRequest struct {
	Viewer
	Slug     string
	Title    string
	Status   string
	Sections []sections.RawSection
}

// UpdatePageRequest is a partial merge; nil fields are left untouched.
// Sections, when present, replace the stored sequence wholesale. Status is
// the explicit transition input; it is never inferred from other fields.
type UpdatePageRequest struct {
	Viewer
	Slug     *string
	Title    *string
	Status   *string
	Sections []sections.RawSection
}

// CreateArticleRequest captures a validated article write.
type CreateArticleRequest struct {
	Viewer
	Slug       string
	Title      string
	Body       string
	Excerpt    *string
	Status     string
	AuthorID   *uuid.UUID
	CategoryID *uuid.UUID
	MediaIDs   []uuid.UUID
}

// UpdateArticleRequest is a partial merge over an article.
type UpdateArticleRequest struct {
	Viewer
	Slug       *string
	Title      *string
	Body       *string
	Excerpt    *string
	Status     *string
	AuthorID   *uuid.UUID
	CategoryID *uuid.UUID
	MediaIDs   []uuid.UUID
}

// CreateProductRequest captures a validated product write.
type CreateProductRequest struct {
	Viewer
	Slug        string
	Name        string
	Description *string
	Price       float64
	Status      string
	AuthorID    *uuid.UUID
	CategoryID  *uuid.UUID
	MediaIDs    []uuid.UUID
}

// UpdateProductRequest is a partial merge over a product.
type UpdateProductRequest struct {
	Viewer
	Slug        *string
	Name        *string
	Description *string
	Price       *float64
	Status      *string
	AuthorID    *uuid.UUID
	CategoryID  *uuid.UUID
	MediaIDs    []uuid.UUID
}

// CreateAuthorRequest captures a validated author write.
type CreateAuthorRequest struct {
	Viewer
	Slug   string
	Name   string
	Bio    *string
	Status string
}

// UpdateAuthorRequest is a partial merge over an author.
type UpdateAuthorRequest struct {
	Viewer
	Slug   *string
	Name   *string
	Bio    *string
	Status *string
}

// CreateCategoryRequest captures a validated category write.
type CreateCategoryRequest struct {
	Viewer
	Slug        string
	Name        string
	Description *string
	Status      string
}

// UpdateCategoryRequest is a partial merge over a category.
type UpdateCategoryRequest struct {
	Viewer
	Slug        *string
	Name        *string
	Description *string
	Status      *string
}

// CreateMediaRequest records an opaque descriptor obtained from the media
// storage collaborator. References are immutable once created.
type CreateMediaRequest struct {
	Viewer
	URL    string
	Width  int
	Height int
	Size   int64
	Format string
}

// IngestMediaRequest records media whose binary lives with the external
// storage collaborator. The collaborator resolves the descriptor.
type IngestMediaRequest struct {
	Viewer
	Upload interfaces.MediaUpload
}

// DeleteRequest removes a document by slug or id.
type DeleteRequest struct {
	Viewer
	Key string
}

// PageService exposes page use-cases.
type PageService interface {
	List(ctx context.Context, req ListRequest) (*PageList, error)
	Get(ctx context.Context, req GetRequest) (*Page, error)
	Create(ctx context.Context, req CreatePageRequest) (*Page, error)
	Update(ctx context.Context, key string, req UpdatePageRequest) (*Page, error)
	Delete(ctx context.Context, req DeleteRequest) (bool, error)
}

// ArticleService exposes article use-cases.
type ArticleService interface {
	List(ctx context.Context, req ListRequest) (*ArticleList, error)
	Get(ctx context.Context, req GetRequest) (*Article, error)
	Create(ctx context.Context, req CreateArticleRequest) (*Article, error)
	Update(ctx context.Context, key string, req UpdateArticleRequest) (*Article, error)
	Delete(ctx context.Context, req DeleteRequest) (bool, error)
}

// ProductService exposes product use-cases.
type ProductService interface {
	List(ctx context.Context, req ListRequest) (*ProductList, error)
	Get(ctx context.Context, req GetRequest) (*Product, error)
	Create(ctx context.Context, req CreateProductRequest) (*Product, error)
	Update(ctx context.Context, key string, req UpdateProductRequest) (*Product, error)
	Delete(ctx context.Context, req DeleteRequest) (bool, error)
}

// AuthorService exposes author use-cases.
type AuthorService interface {
	List(ctx context.Context, req ListRequest) (*AuthorList, error)
	Get(ctx context.Context, req GetRequest) (*Author, error)
	Create(ctx context.Context, req CreateAuthorRequest) (*Author, error)
	Update(ctx context.Context, key string, req UpdateAuthorRequest) (*Author, error)
	Delete(ctx context.Context, req DeleteRequest) (bool, error)
}

// CategoryService exposes category use-cases.
type CategoryService interface {
	List(ctx context.Context, req ListRequest) (*CategoryList, error)
	Get(ctx context.Context, req GetRequest) (*Category, error)
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	Update(ctx context.Context, key string, req UpdateCategoryRequest) (*Category, error)
	Delete(ctx context.Context, req DeleteRequest) (bool, error)
}

// MediaService exposes media reference use-cases. References support create,
// read, and delete only.
type MediaService interface {
	Create(ctx context.Context, req CreateMediaRequest) (*Media, error)
	Ingest(ctx context.Context, req IngestMediaRequest) (*Media, error)
	Get(ctx context.Context, id uuid.UUID) (*Media, error)
	Delete(ctx context.Context, req DeleteRequest) (bool, error)
}
