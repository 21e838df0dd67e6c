package catalog

import (
	"time"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/sections"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Page is a slug-addressable document composed of an ordered sequence of
// polymorphic sections. The stored sections are the raw wire shape; decoding
// happens on read so unknown variants survive round-trips.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:pg"`

	ID          uuid.UUID             `bun:",pk,type:uuid" json:"id"`
	Slug        string                `bun:"slug,notnull,unique" json:"slug"`
	Title       string                `bun:"title,notnull" json:"title"`
	Status      domain.Status         `bun:"status,notnull,default:'published'" json:"status"`
	Sections    []sections.RawSection `bun:"sections,type:jsonb" json:"sections,omitempty"`
	PublishedAt *time.Time            `bun:"published_at,nullzero" json:"published_at,omitempty"`
	CreatedAt   time.Time             `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time             `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Article is an editorial entry with optional author/category relations and
// attached media references.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:ar"`

	ID          uuid.UUID     `bun:",pk,type:uuid" json:"id"`
	Slug        string        `bun:"slug,notnull,unique" json:"slug"`
	Title       string        `bun:"title,notnull" json:"title"`
	Body        string        `bun:"body" json:"body,omitempty"`
	BodyHTML    string        `bun:"-" json:"body_html,omitempty"`
	Excerpt     *string       `bun:"excerpt" json:"excerpt,omitempty"`
	Status      domain.Status `bun:"status,notnull,default:'published'" json:"status"`
	AuthorID    *uuid.UUID    `bun:"author_id,type:uuid" json:"author_id,omitempty"`
	CategoryID  *uuid.UUID    `bun:"category_id,type:uuid" json:"category_id,omitempty"`
	PublishedAt *time.Time    `bun:"published_at,nullzero" json:"published_at,omitempty"`
	CreatedAt   time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Author   *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Category *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	Media    []*Media  `bun:"m2m:article_media,join:Article=Media" json:"media,omitempty"`
}

// Product is a catalog item with pricing and attached media references.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:pr"`

	ID          uuid.UUID     `bun:",pk,type:uuid" json:"id"`
	Slug        string        `bun:"slug,notnull,unique" json:"slug"`
	Name        string        `bun:"name,notnull" json:"name"`
	Description *string       `bun:"description" json:"description,omitempty"`
	Price       float64       `bun:"price,notnull,default:0" json:"price"`
	Status      domain.Status `bun:"status,notnull,default:'published'" json:"status"`
	AuthorID    *uuid.UUID    `bun:"author_id,type:uuid" json:"author_id,omitempty"`
	CategoryID  *uuid.UUID    `bun:"category_id,type:uuid" json:"category_id,omitempty"`
	PublishedAt *time.Time    `bun:"published_at,nullzero" json:"published_at,omitempty"`
	CreatedAt   time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Author   *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Category *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	Media    []*Media  `bun:"m2m:product_media,join:Product=Media" json:"media,omitempty"`
}

// Author is a named entity referenced by articles and products.
type Author struct {
	bun.BaseModel `bun:"table:authors,alias:au"`

	ID        uuid.UUID     `bun:",pk,type:uuid" json:"id"`
	Slug      string        `bun:"slug,notnull,unique" json:"slug"`
	Name      string        `bun:"name,notnull" json:"name"`
	Bio       *string       `bun:"bio" json:"bio,omitempty"`
	Status    domain.Status `bun:"status,notnull,default:'published'" json:"status"`
	CreatedAt time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Category is a named entity referenced by articles and products.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:ca"`

	ID          uuid.UUID     `bun:",pk,type:uuid" json:"id"`
	Slug        string        `bun:"slug,notnull,unique" json:"slug"`
	Name        string        `bun:"name,notnull" json:"name"`
	Description *string       `bun:"description" json:"description,omitempty"`
	Status      domain.Status `bun:"status,notnull,default:'published'" json:"status"`
	CreatedAt   time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Media is an immutable reference to an externally stored asset. Rows are
// never mutated after creation; entities share them by reference.
type Media struct {
	bun.BaseModel `bun:"table:media,alias:md"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	URL       string    `bun:"url,notnull" json:"url"`
	Width     int       `bun:"width,notnull,default:0" json:"width,omitempty"`
	Height    int       `bun:"height,notnull,default:0" json:"height,omitempty"`
	Size      int64     `bun:"size,notnull,default:0" json:"size,omitempty"`
	Format    string    `bun:"format" json:"format,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// ArticleMedia joins articles to shared media references, preserving
// attachment order.
type ArticleMedia struct {
	bun.BaseModel `bun:"table:article_media,alias:am"`

	ArticleID uuid.UUID `bun:"article_id,pk,type:uuid" json:"article_id"`
	MediaID   uuid.UUID `bun:"media_id,pk,type:uuid" json:"media_id"`
	Position  int       `bun:"position,notnull,default:0" json:"position"`

	Article *Article `bun:"rel:belongs-to,join:article_id=id" json:"-"`
	Media   *Media   `bun:"rel:belongs-to,join:media_id=id" json:"-"`
}

// ProductMedia joins products to shared media references.
type ProductMedia struct {
	bun.BaseModel `bun:"table:product_media,alias:pm"`

	ProductID uuid.UUID `bun:"product_id,pk,type:uuid" json:"product_id"`
	MediaID   uuid.UUID `bun:"media_id,pk,type:uuid" json:"media_id"`
	Position  int       `bun:"position,notnull,default:0" json:"position"`

	Product *Product `bun:"rel:belongs-to,join:product_id=id" json:"-"`
	Media   *Media   `bun:"rel:belongs-to,join:media_id=id" json:"-"`
}
