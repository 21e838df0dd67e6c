package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/sections"
	"github.com/google/uuid"
)

// pageService implements PageService on top of a PageStore and a section
// registry. Section payloads are validated on write and stored in their raw
// wire shape so unknown variants survive read round-trips.
type pageService struct {
	serviceBase
	store    PageStore
	registry *sections.Registry
}

// NewPageService constructs the page service.
func NewPageService(store PageStore, registry *sections.Registry, opts ...ServiceOption) PageService {
	if registry == nil {
		registry = sections.Default()
	}
	return &pageService{
		serviceBase: newServiceBase(opts...),
		store:       store,
		registry:    registry,
	}
}

func (s *pageService) List(ctx context.Context, req ListRequest) (*PageList, error) {
	query, page, pageSize := buildListQuery(req, domain.KindPage, pageSortColumns)

	items, total, err := s.store.List(ctx, query)
	if err != nil {
		return nil, wrapStoreError(err, "page")
	}

	return &PageList{
		Items: items,
		Meta:  paginateMeta(page, pageSize, total),
	}, nil
}

func (s *pageService) Get(ctx context.Context, req GetRequest) (*Page, error) {
	record, err := s.store.GetByKey(ctx, req.Key, buildGetQuery(req.ReadOptions, domain.KindPage))
	if err != nil {
		return nil, wrapStoreError(err, "page")
	}
	return record, nil
}

func (s *pageService) Create(ctx context.Context, req CreatePageRequest) (*Page, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, wrapValidationError(ErrTitleRequired)
	}

	pageSlug, err := deriveSlug(req.Slug, title)
	if err != nil {
		return nil, wrapValidationError(err)
	}

	st, err := chooseStatus(req.Status)
	if err != nil {
		return nil, wrapValidationError(err)
	}

	normalized, err := s.registry.Normalize(req.Sections)
	if err != nil {
		return nil, wrapValidationError(err)
	}

	if err := s.ensureSlugFree(ctx, pageSlug, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now()
	record := &Page{
		ID:          s.id(),
		Slug:        pageSlug,
		Title:       title,
		Status:      st,
		Sections:    sections.Encode(normalized),
		PublishedAt: s.publishedStamp(st),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, wrapStoreError(err, "page")
	}

	s.logger.Info("page created", "slug", created.Slug, "status", string(created.Status))
	return created, nil
}

func (s *pageService) Update(ctx context.Context, key string, req UpdatePageRequest) (*Page, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return nil, err
	}

	record, err := s.store.GetByKey(ctx, key, GetQuery{})
	if err != nil {
		return nil, wrapStoreError(err, "page")
	}

	columns := []string{}

	if req.Slug != nil {
		next, err := normalizeSlug(*req.Slug)
		if err != nil {
			return nil, wrapValidationError(err)
		}
		if next != record.Slug {
			if err := s.ensureSlugFree(ctx, next, record.ID); err != nil {
				return nil, err
			}
			record.Slug = next
			columns = append(columns, "slug")
		}
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, wrapValidationError(ErrTitleRequired)
		}
		if title != record.Title {
			record.Title = title
			columns = append(columns, "title")
		}
	}

	if req.Status != nil {
		changed, err := s.transition(*req.Status, &record.Status, &record.PublishedAt)
		if err != nil {
			return nil, wrapValidationError(err)
		}
		if changed {
			columns = append(columns, "status", "published_at")
		}
	}

	if req.Sections != nil {
		normalized, err := s.registry.Normalize(req.Sections)
		if err != nil {
			return nil, wrapValidationError(err)
		}
		record.Sections = sections.Encode(normalized)
		columns = append(columns, "sections")
	}

	if len(columns) == 0 {
		return record, nil
	}

	record.UpdatedAt = s.now()
	columns = append(columns, "updated_at")

	updated, err := s.store.Update(ctx, record, columns)
	if err != nil {
		return nil, wrapStoreError(err, "page")
	}
	return updated, nil
}

func (s *pageService) Delete(ctx context.Context, req DeleteRequest) (bool, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return false, err
	}

	deleted, err := s.store.Delete(ctx, req.Key)
	if err != nil {
		return false, wrapStoreError(err, "page")
	}
	if deleted {
		s.logger.Info("page deleted", "key", req.Key)
	}
	return deleted, nil
}

// ensureSlugFree rejects slugs already held by another page.
func (s *pageService) ensureSlugFree(ctx context.Context, slug string, selfID uuid.UUID) error {
	existing, err := s.store.GetByKey(ctx, slug, GetQuery{})
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return wrapStoreError(err, "page")
	}
	if existing.ID != selfID {
		return wrapValidationError(fmt.Errorf("%w: %q", ErrSlugExists, slug))
	}
	return nil
}
