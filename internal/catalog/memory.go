package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/sections"
	"github.com/google/uuid"
)

// memoryHandlers adapts one entity type to the shared in-memory store.
type memoryHandlers[T any] struct {
	resource string
	clone    func(T) T
	id       func(T) uuid.UUID
	slug     func(T) string
	status   func(T) domain.Status
	sortKey  func(T, string) string
}

// memoryStore is an in-memory implementation used for scaffolding and tests.
type memoryStore[T any] struct {
	mu       sync.RWMutex
	handlers memoryHandlers[T]
	records  map[uuid.UUID]T
}

func newMemoryStore[T any](handlers memoryHandlers[T]) *memoryStore[T] {
	return &memoryStore[T]{
		handlers: handlers,
		records:  make(map[uuid.UUID]T),
	}
}

func (m *memoryStore[T]) list(q ListQuery) ([]T, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]T, 0, len(m.records))
	want, filtered := q.Filter.Status()
	for _, rec := range m.records {
		if filtered && m.handlers.status(rec) != want {
			continue
		}
		matched = append(matched, rec)
	}

	field := q.Sort.Field
	if field == "" {
		field = defaultSort.Field
	}
	sort.SliceStable(matched, func(i, j int) bool {
		ki := m.handlers.sortKey(matched[i], field)
		kj := m.handlers.sortKey(matched[j], field)
		if q.Sort.Desc {
			return ki > kj
		}
		return ki < kj
	})

	total := len(matched)
	if q.Limit > 0 {
		if q.Offset >= total {
			matched = nil
		} else {
			end := q.Offset + q.Limit
			if end > total {
				end = total
			}
			matched = matched[q.Offset:end]
		}
	}

	out := make([]T, 0, len(matched))
	for _, rec := range matched {
		out = append(out, m.handlers.clone(rec))
	}
	return out, total
}

func (m *memoryStore[T]) getByKey(key string, q GetQuery) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var zero T
	rec, ok := m.lookup(key)
	if !ok {
		return zero, &NotFoundError{Resource: m.handlers.resource, Key: key}
	}
	if want, filtered := q.Filter.Status(); filtered && m.handlers.status(rec) != want {
		return zero, &NotFoundError{Resource: m.handlers.resource, Key: key}
	}
	return m.handlers.clone(rec), nil
}

func (m *memoryStore[T]) create(record T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	slug := m.handlers.slug(record)
	for _, rec := range m.records {
		if m.handlers.slug(rec) == slug {
			return zero, fmt.Errorf("%w: %q", ErrSlugExists, slug)
		}
	}
	copied := m.handlers.clone(record)
	m.records[m.handlers.id(copied)] = copied
	return m.handlers.clone(copied), nil
}

func (m *memoryStore[T]) update(record T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	id := m.handlers.id(record)
	if _, ok := m.records[id]; !ok {
		return zero, &NotFoundError{Resource: m.handlers.resource, Key: id.String()}
	}
	copied := m.handlers.clone(record)
	m.records[id] = copied
	return m.handlers.clone(copied), nil
}

func (m *memoryStore[T]) delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.lookup(key)
	if !ok {
		return false
	}
	delete(m.records, m.handlers.id(rec))
	return true
}

// lookup expects the caller to hold at least a read lock.
func (m *memoryStore[T]) lookup(key string) (T, bool) {
	if id, err := uuid.Parse(key); err == nil {
		rec, ok := m.records[id]
		return rec, ok
	}
	for _, rec := range m.records {
		if m.handlers.slug(rec) == key {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

func timeKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// MemoryPageStore keeps pages in process memory.
type MemoryPageStore struct {
	store *memoryStore[*Page]
}

// NewMemoryPageStore creates an empty in-memory page store.
func NewMemoryPageStore() *MemoryPageStore {
	return &MemoryPageStore{store: newMemoryStore(memoryHandlers[*Page]{
		resource: "page",
		clone:    clonePage,
		id:       func(p *Page) uuid.UUID { return p.ID },
		slug:     func(p *Page) string { return p.Slug },
		status:   func(p *Page) domain.Status { return p.Status },
		sortKey: func(p *Page, field string) string {
			switch field {
			case "slug":
				return p.Slug
			case "title":
				return strings.ToLower(p.Title)
			case "status":
				return string(p.Status)
			case "created_at":
				return timeKey(p.CreatedAt)
			case "published_at":
				if p.PublishedAt == nil {
					return ""
				}
				return timeKey(*p.PublishedAt)
			default:
				return timeKey(p.UpdatedAt)
			}
		},
	})}
}

func (m *MemoryPageStore) List(_ context.Context, q ListQuery) ([]*Page, int, error) {
	items, total := m.store.list(q)
	return items, total, nil
}

func (m *MemoryPageStore) GetByKey(_ context.Context, key string, q GetQuery) (*Page, error) {
	return m.store.getByKey(key, q)
}

func (m *MemoryPageStore) Create(_ context.Context, record *Page) (*Page, error) {
	return m.store.create(record)
}

func (m *MemoryPageStore) Update(_ context.Context, record *Page, _ []string) (*Page, error) {
	return m.store.update(record)
}

func (m *MemoryPageStore) Delete(_ context.Context, key string) (bool, error) {
	return m.store.delete(key), nil
}

// MemoryAuthorStore keeps authors in process memory.
type MemoryAuthorStore struct {
	store *memoryStore[*Author]
}

func NewMemoryAuthorStore() *MemoryAuthorStore {
	return &MemoryAuthorStore{store: newMemoryStore(memoryHandlers[*Author]{
		resource: "author",
		clone:    cloneAuthor,
		id:       func(a *Author) uuid.UUID { return a.ID },
		slug:     func(a *Author) string { return a.Slug },
		status:   func(a *Author) domain.Status { return a.Status },
		sortKey: func(a *Author, field string) string {
			switch field {
			case "slug":
				return a.Slug
			case "name":
				return strings.ToLower(a.Name)
			case "status":
				return string(a.Status)
			case "created_at":
				return timeKey(a.CreatedAt)
			default:
				return timeKey(a.UpdatedAt)
			}
		},
	})}
}

func (m *MemoryAuthorStore) List(_ context.Context, q ListQuery) ([]*Author, int, error) {
	items, total := m.store.list(q)
	return items, total, nil
}

func (m *MemoryAuthorStore) GetByKey(_ context.Context, key string, q GetQuery) (*Author, error) {
	return m.store.getByKey(key, q)
}

func (m *MemoryAuthorStore) Create(_ context.Context, record *Author) (*Author, error) {
	return m.store.create(record)
}

func (m *MemoryAuthorStore) Update(_ context.Context, record *Author, _ []string) (*Author, error) {
	return m.store.update(record)
}

func (m *MemoryAuthorStore) Delete(_ context.Context, key string) (bool, error) {
	return m.store.delete(key), nil
}

// MemoryCategoryStore keeps categories in process memory.
type MemoryCategoryStore struct {
	store *memoryStore[*Category]
}

func NewMemoryCategoryStore() *MemoryCategoryStore {
	return &MemoryCategoryStore{store: newMemoryStore(memoryHandlers[*Category]{
		resource: "category",
		clone:    cloneCategory,
		id:       func(c *Category) uuid.UUID { return c.ID },
		slug:     func(c *Category) string { return c.Slug },
		status:   func(c *Category) domain.Status { return c.Status },
		sortKey: func(c *Category, field string) string {
			switch field {
			case "slug":
				return c.Slug
			case "name":
				return strings.ToLower(c.Name)
			case "status":
				return string(c.Status)
			case "created_at":
				return timeKey(c.CreatedAt)
			default:
				return timeKey(c.UpdatedAt)
			}
		},
	})}
}

func (m *MemoryCategoryStore) List(_ context.Context, q ListQuery) ([]*Category, int, error) {
	items, total := m.store.list(q)
	return items, total, nil
}

func (m *MemoryCategoryStore) GetByKey(_ context.Context, key string, q GetQuery) (*Category, error) {
	return m.store.getByKey(key, q)
}

func (m *MemoryCategoryStore) Create(_ context.Context, record *Category) (*Category, error) {
	return m.store.create(record)
}

func (m *MemoryCategoryStore) Update(_ context.Context, record *Category, _ []string) (*Category, error) {
	return m.store.update(record)
}

func (m *MemoryCategoryStore) Delete(_ context.Context, key string) (bool, error) {
	return m.store.delete(key), nil
}

// MemoryMediaStore keeps media references in process memory.
type MemoryMediaStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Media
}

func NewMemoryMediaStore() *MemoryMediaStore {
	return &MemoryMediaStore{records: make(map[uuid.UUID]*Media)}
}

func (m *MemoryMediaStore) Create(_ context.Context, record *Media) (*Media, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cloneMedia(record)
	m.records[copied.ID] = copied
	return cloneMedia(copied), nil
}

func (m *MemoryMediaStore) GetByID(_ context.Context, id uuid.UUID) (*Media, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "media", Key: id.String()}
	}
	return cloneMedia(rec), nil
}

func (m *MemoryMediaStore) Exists(_ context.Context, ids []uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range ids {
		if _, ok := m.records[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (m *MemoryMediaStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return false, nil
	}
	delete(m.records, id)
	return true, nil
}

// MemoryArticleStore keeps articles and their media joins in process memory.
// Relation population resolves against the sibling memory stores.
type MemoryArticleStore struct {
	store      *memoryStore[*Article]
	mu         sync.RWMutex
	joins      map[uuid.UUID][]uuid.UUID
	authors    *MemoryAuthorStore
	categories *MemoryCategoryStore
	media      *MemoryMediaStore
}

func NewMemoryArticleStore(authors *MemoryAuthorStore, categories *MemoryCategoryStore, media *MemoryMediaStore) *MemoryArticleStore {
	return &MemoryArticleStore{
		store: newMemoryStore(memoryHandlers[*Article]{
			resource: "article",
			clone:    cloneArticle,
			id:       func(a *Article) uuid.UUID { return a.ID },
			slug:     func(a *Article) string { return a.Slug },
			status:   func(a *Article) domain.Status { return a.Status },
			sortKey: func(a *Article, field string) string {
				switch field {
				case "slug":
					return a.Slug
				case "title":
					return strings.ToLower(a.Title)
				case "status":
					return string(a.Status)
				case "created_at":
					return timeKey(a.CreatedAt)
				case "published_at":
					if a.PublishedAt == nil {
						return ""
					}
					return timeKey(*a.PublishedAt)
				default:
					return timeKey(a.UpdatedAt)
				}
			},
		}),
		joins:      make(map[uuid.UUID][]uuid.UUID),
		authors:    authors,
		categories: categories,
		media:      media,
	}
}

func (m *MemoryArticleStore) List(ctx context.Context, q ListQuery) ([]*Article, int, error) {
	items, total := m.store.list(q)
	for _, item := range items {
		m.populate(ctx, item, q.Relations)
	}
	return items, total, nil
}

func (m *MemoryArticleStore) GetByKey(ctx context.Context, key string, q GetQuery) (*Article, error) {
	record, err := m.store.getByKey(key, q)
	if err != nil {
		return nil, err
	}
	m.populate(ctx, record, q.Relations)
	return record, nil
}

func (m *MemoryArticleStore) Create(_ context.Context, record *Article, mediaIDs []uuid.UUID) (*Article, error) {
	created, err := m.store.create(record)
	if err != nil {
		return nil, err
	}
	m.setJoins(created.ID, mediaIDs)
	return created, nil
}

func (m *MemoryArticleStore) Update(_ context.Context, record *Article, _ []string, mediaIDs []uuid.UUID) (*Article, error) {
	updated, err := m.store.update(record)
	if err != nil {
		return nil, err
	}
	if mediaIDs != nil {
		m.setJoins(updated.ID, mediaIDs)
	}
	return updated, nil
}

func (m *MemoryArticleStore) Delete(_ context.Context, key string) (bool, error) {
	rec, ok := m.store.lookup(key)
	if !ok {
		return false, nil
	}
	m.mu.Lock()
	delete(m.joins, rec.ID)
	m.mu.Unlock()
	return m.store.delete(key), nil
}

func (m *MemoryArticleStore) setJoins(id uuid.UUID, mediaIDs []uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(mediaIDs) == 0 {
		delete(m.joins, id)
		return
	}
	copied := make([]uuid.UUID, len(mediaIDs))
	copy(copied, mediaIDs)
	m.joins[id] = copied
}

func (m *MemoryArticleStore) populate(ctx context.Context, record *Article, relations []domain.Relation) {
	for _, rel := range relations {
		switch rel {
		case domain.RelationAuthor:
			if record.AuthorID != nil && m.authors != nil {
				if author, err := m.authors.GetByKey(ctx, record.AuthorID.String(), GetQuery{}); err == nil {
					record.Author = author
				}
			}
		case domain.RelationCategory:
			if record.CategoryID != nil && m.categories != nil {
				if category, err := m.categories.GetByKey(ctx, record.CategoryID.String(), GetQuery{}); err == nil {
					record.Category = category
				}
			}
		case domain.RelationMedia:
			if m.media == nil {
				continue
			}
			m.mu.RLock()
			ids := m.joins[record.ID]
			m.mu.RUnlock()
			for _, id := range ids {
				if asset, err := m.media.GetByID(ctx, id); err == nil {
					record.Media = append(record.Media, asset)
				}
			}
		}
	}
}

// MemoryProductStore keeps products and their media joins in process memory.
type MemoryProductStore struct {
	store      *memoryStore[*Product]
	mu         sync.RWMutex
	joins      map[uuid.UUID][]uuid.UUID
	authors    *MemoryAuthorStore
	categories *MemoryCategoryStore
	media      *MemoryMediaStore
}

func NewMemoryProductStore(authors *MemoryAuthorStore, categories *MemoryCategoryStore, media *MemoryMediaStore) *MemoryProductStore {
	return &MemoryProductStore{
		store: newMemoryStore(memoryHandlers[*Product]{
			resource: "product",
			clone:    cloneProduct,
			id:       func(p *Product) uuid.UUID { return p.ID },
			slug:     func(p *Product) string { return p.Slug },
			status:   func(p *Product) domain.Status { return p.Status },
			sortKey: func(p *Product, field string) string {
				switch field {
				case "slug":
					return p.Slug
				case "name":
					return strings.ToLower(p.Name)
				case "price":
					return fmt.Sprintf("%020.4f", p.Price)
				case "status":
					return string(p.Status)
				case "created_at":
					return timeKey(p.CreatedAt)
				case "published_at":
					if p.PublishedAt == nil {
						return ""
					}
					return timeKey(*p.PublishedAt)
				default:
					return timeKey(p.UpdatedAt)
				}
			},
		}),
		joins:      make(map[uuid.UUID][]uuid.UUID),
		authors:    authors,
		categories: categories,
		media:      media,
	}
}

func (m *MemoryProductStore) List(ctx context.Context, q ListQuery) ([]*Product, int, error) {
	items, total := m.store.list(q)
	for _, item := range items {
		m.populate(ctx, item, q.Relations)
	}
	return items, total, nil
}

func (m *MemoryProductStore) GetByKey(ctx context.Context, key string, q GetQuery) (*Product, error) {
	record, err := m.store.getByKey(key, q)
	if err != nil {
		return nil, err
	}
	m.populate(ctx, record, q.Relations)
	return record, nil
}

func (m *MemoryProductStore) Create(_ context.Context, record *Product, mediaIDs []uuid.UUID) (*Product, error) {
	created, err := m.store.create(record)
	if err != nil {
		return nil, err
	}
	m.setJoins(created.ID, mediaIDs)
	return created, nil
}

func (m *MemoryProductStore) Update(_ context.Context, record *Product, _ []string, mediaIDs []uuid.UUID) (*Product, error) {
	updated, err := m.store.update(record)
	if err != nil {
		return nil, err
	}
	if mediaIDs != nil {
		m.setJoins(updated.ID, mediaIDs)
	}
	return updated, nil
}

func (m *MemoryProductStore) Delete(_ context.Context, key string) (bool, error) {
	rec, ok := m.store.lookup(key)
	if !ok {
		return false, nil
	}
	m.mu.Lock()
	delete(m.joins, rec.ID)
	m.mu.Unlock()
	return m.store.delete(key), nil
}

func (m *MemoryProductStore) setJoins(id uuid.UUID, mediaIDs []uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(mediaIDs) == 0 {
		delete(m.joins, id)
		return
	}
	copied := make([]uuid.UUID, len(mediaIDs))
	copy(copied, mediaIDs)
	m.joins[id] = copied
}

func (m *MemoryProductStore) populate(ctx context.Context, record *Product, relations []domain.Relation) {
	for _, rel := range relations {
		switch rel {
		case domain.RelationAuthor:
			if record.AuthorID != nil && m.authors != nil {
				if author, err := m.authors.GetByKey(ctx, record.AuthorID.String(), GetQuery{}); err == nil {
					record.Author = author
				}
			}
		case domain.RelationCategory:
			if record.CategoryID != nil && m.categories != nil {
				if category, err := m.categories.GetByKey(ctx, record.CategoryID.String(), GetQuery{}); err == nil {
					record.Category = category
				}
			}
		case domain.RelationMedia:
			if m.media == nil {
				continue
			}
			m.mu.RLock()
			ids := m.joins[record.ID]
			m.mu.RUnlock()
			for _, id := range ids {
				if asset, err := m.media.GetByID(ctx, id); err == nil {
					record.Media = append(record.Media, asset)
				}
			}
		}
	}
}

func clonePage(src *Page) *Page {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Sections != nil {
		copied.Sections = make([]sections.RawSection, len(src.Sections))
		for i, section := range src.Sections {
			copied.Sections[i] = cloneRawSection(section)
		}
	}
	return &copied
}

func cloneArticle(src *Article) *Article {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Author = nil
	copied.Category = nil
	copied.Media = nil
	return &copied
}

func cloneProduct(src *Product) *Product {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Author = nil
	copied.Category = nil
	copied.Media = nil
	return &copied
}

func cloneAuthor(src *Author) *Author {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}

func cloneCategory(src *Category) *Category {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}

func cloneMedia(src *Media) *Media {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}

func cloneRawSection(src sections.RawSection) sections.RawSection {
	if src == nil {
		return nil
	}
	out := make(sections.RawSection, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = cloneValue(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = cloneValue(v)
		}
		return out
	default:
		return value
	}
}
