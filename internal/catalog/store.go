package catalog

import (
	"context"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/status"
	"github.com/google/uuid"
)

// SortOption is a single field/direction pair applied to listings.
type SortOption struct {
	Field string
	Desc  bool
}

// ListQuery is the storage-level read shape the services compose from the
// status resolver, population resolver, and pagination calculator.
type ListQuery struct {
	Filter    status.Filter
	Relations []domain.Relation
	Sort      SortOption
	Limit     int
	Offset    int
}

// GetQuery addresses one record by slug or id under a visibility filter.
type GetQuery struct {
	Filter    status.Filter
	Relations []domain.Relation
}

// PageStore abstracts page persistence.
type PageStore interface {
	List(ctx context.Context, q ListQuery) ([]*Page, int, error)
	GetByKey(ctx context.Context, key string, q GetQuery) (*Page, error)
	Create(ctx context.Context, record *Page) (*Page, error)
	Update(ctx context.Context, record *Page, columns []string) (*Page, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// ArticleStore abstracts article persistence. Media ids, when non-nil,
// replace the attachment set inside the same transaction as the row write.
type ArticleStore interface {
	List(ctx context.Context, q ListQuery) ([]*Article, int, error)
	GetByKey(ctx context.Context, key string, q GetQuery) (*Article, error)
	Create(ctx context.Context, record *Article, mediaIDs []uuid.UUID) (*Article, error)
	Update(ctx context.Context, record *Article, columns []string, mediaIDs []uuid.UUID) (*Article, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// ProductStore abstracts product persistence.
type ProductStore interface {
	List(ctx context.Context, q ListQuery) ([]*Product, int, error)
	GetByKey(ctx context.Context, key string, q GetQuery) (*Product, error)
	Create(ctx context.Context, record *Product, mediaIDs []uuid.UUID) (*Product, error)
	Update(ctx context.Context, record *Product, columns []string, mediaIDs []uuid.UUID) (*Product, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// AuthorStore abstracts author persistence.
type AuthorStore interface {
	List(ctx context.Context, q ListQuery) ([]*Author, int, error)
	GetByKey(ctx context.Context, key string, q GetQuery) (*Author, error)
	Create(ctx context.Context, record *Author) (*Author, error)
	Update(ctx context.Context, record *Author, columns []string) (*Author, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// CategoryStore abstracts category persistence.
type CategoryStore interface {
	List(ctx context.Context, q ListQuery) ([]*Category, int, error)
	GetByKey(ctx context.Context, key string, q GetQuery) (*Category, error)
	Create(ctx context.Context, record *Category) (*Category, error)
	Update(ctx context.Context, record *Category, columns []string) (*Category, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// MediaStore abstracts media reference persistence. No update operation
// exists: references are immutable.
type MediaStore interface {
	Create(ctx context.Context, record *Media) (*Media, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Media, error)
	Exists(ctx context.Context, ids []uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
