package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/google/uuid"
)

// authorService implements AuthorService. Authors carry no outbound
// relations, so the populate expression resolves to nothing for them.
type authorService struct {
	serviceBase
	store AuthorStore
}

// NewAuthorService constructs the author service.
func NewAuthorService(store AuthorStore, opts ...ServiceOption) AuthorService {
	return &authorService{
		serviceBase: newServiceBase(opts...),
		store:       store,
	}
}

func (s *authorService) List(ctx context.Context, req ListRequest) (*AuthorList, error) {
	query, page, pageSize := buildListQuery(req, domain.KindAuthor, taxonomySortColumns)

	items, total, err := s.store.List(ctx, query)
	if err != nil {
		return nil, wrapStoreError(err, "author")
	}

	return &AuthorList{
		Items: items,
		Meta:  paginateMeta(page, pageSize, total),
	}, nil
}

func (s *authorService) Get(ctx context.Context, req GetRequest) (*Author, error) {
	record, err := s.store.GetByKey(ctx, req.Key, buildGetQuery(req.ReadOptions, domain.KindAuthor))
	if err != nil {
		return nil, wrapStoreError(err, "author")
	}
	return record, nil
}

func (s *authorService) Create(ctx context.Context, req CreateAuthorRequest) (*Author, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, wrapValidationError(ErrNameRequired)
	}

	authorSlug, err := deriveSlug(req.Slug, name)
	if err != nil {
		return nil, wrapValidationError(err)
	}

	st, err := chooseStatus(req.Status)
	if err != nil {
		return nil, wrapValidationError(err)
	}

	if err := ensureAuthorSlugFree(ctx, s.store, authorSlug, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now()
	record := &Author{
		ID:        s.id(),
		Slug:      authorSlug,
		Name:      name,
		Bio:       req.Bio,
		Status:    st,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, wrapStoreError(err, "author")
	}

	s.logger.Info("author created", "slug", created.Slug)
	return created, nil
}

func (s *authorService) Update(ctx context.Context, key string, req UpdateAuthorRequest) (*Author, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return nil, err
	}

	record, err := s.store.GetByKey(ctx, key, GetQuery{})
	if err != nil {
		return nil, wrapStoreError(err, "author")
	}

	columns := []string{}

	if req.Slug != nil {
		next, err := normalizeSlug(*req.Slug)
		if err != nil {
			return nil, wrapValidationError(err)
		}
		if next != record.Slug {
			if err := ensureAuthorSlugFree(ctx, s.store, next, record.ID); err != nil {
				return nil, err
			}
			record.Slug = next
			columns = append(columns, "slug")
		}
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, wrapValidationError(ErrNameRequired)
		}
		if name != record.Name {
			record.Name = name
			columns = append(columns, "name")
		}
	}

	if req.Bio != nil {
		record.Bio = req.Bio
		columns = append(columns, "bio")
	}

	if req.Status != nil {
		parsed, ok := domain.ParseStatus(strings.TrimSpace(*req.Status))
		if !ok {
			return nil, wrapValidationError(fmt.Errorf("%w: %q", ErrStatusInvalid, *req.Status))
		}
		if parsed != record.Status {
			record.Status = parsed
			columns = append(columns, "status")
		}
	}

	if len(columns) == 0 {
		return record, nil
	}

	record.UpdatedAt = s.now()
	columns = append(columns, "updated_at")

	updated, err := s.store.Update(ctx, record, columns)
	if err != nil {
		return nil, wrapStoreError(err, "author")
	}
	return updated, nil
}

func (s *authorService) Delete(ctx context.Context, req DeleteRequest) (bool, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return false, err
	}

	deleted, err := s.store.Delete(ctx, req.Key)
	if err != nil {
		return false, wrapStoreError(err, "author")
	}
	if deleted {
		s.logger.Info("author deleted", "key", req.Key)
	}
	return deleted, nil
}

func ensureAuthorSlugFree(ctx context.Context, store AuthorStore, slug string, selfID uuid.UUID) error {
	existing, err := store.GetByKey(ctx, slug, GetQuery{})
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return wrapStoreError(err, "author")
	}
	if existing.ID != selfID {
		return wrapValidationError(fmt.Errorf("%w: %q", ErrSlugExists, slug))
	}
	return nil
}

// categoryService implements CategoryService.
type categoryService struct {
	serviceBase
	store CategoryStore
}

// NewCategoryService constructs the category service.
func NewCategoryService(store CategoryStore, opts ...ServiceOption) CategoryService {
	return &categoryService{
		serviceBase: newServiceBase(opts...),
		store:       store,
	}
}

func (s *categoryService) List(ctx context.Context, req ListRequest) (*CategoryList, error) {
	query, page, pageSize := buildListQuery(req, domain.KindCategory, taxonomySortColumns)

	items, total, err := s.store.List(ctx, query)
	if err != nil {
		return nil, wrapStoreError(err, "category")
	}

	return &CategoryList{
		Items: items,
		Meta:  paginateMeta(page, pageSize, total),
	}, nil
}

func (s *categoryService) Get(ctx context.Context, req GetRequest) (*Category, error) {
	record, err := s.store.GetByKey(ctx, req.Key, buildGetQuery(req.ReadOptions, domain.KindCategory))
	if err != nil {
		return nil, wrapStoreError(err, "category")
	}
	return record, nil
}

func (s *categoryService) Create(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, wrapValidationError(ErrNameRequired)
	}

	categorySlug, err := deriveSlug(req.Slug, name)
	if err != nil {
		return nil, wrapValidationError(err)
	}

	st, err := chooseStatus(req.Status)
	if err != nil {
		return nil, wrapValidationError(err)
	}

	if err := ensureCategorySlugFree(ctx, s.store, categorySlug, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now()
	record := &Category{
		ID:          s.id(),
		Slug:        categorySlug,
		Name:        name,
		Description: req.Description,
		Status:      st,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, wrapStoreError(err, "category")
	}

	s.logger.Info("category created", "slug", created.Slug)
	return created, nil
}

func (s *categoryService) Update(ctx context.Context, key string, req UpdateCategoryRequest) (*Category, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return nil, err
	}

	record, err := s.store.GetByKey(ctx, key, GetQuery{})
	if err != nil {
		return nil, wrapStoreError(err, "category")
	}

	columns := []string{}

	if req.Slug != nil {
		next, err := normalizeSlug(*req.Slug)
		if err != nil {
			return nil, wrapValidationError(err)
		}
		if next != record.Slug {
			if err := ensureCategorySlugFree(ctx, s.store, next, record.ID); err != nil {
				return nil, err
			}
			record.Slug = next
			columns = append(columns, "slug")
		}
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, wrapValidationError(ErrNameRequired)
		}
		if name != record.Name {
			record.Name = name
			columns = append(columns, "name")
		}
	}

	if req.Description != nil {
		record.Description = req.Description
		columns = append(columns, "description")
	}

	if req.Status != nil {
		parsed, ok := domain.ParseStatus(strings.TrimSpace(*req.Status))
		if !ok {
			return nil, wrapValidationError(fmt.Errorf("%w: %q", ErrStatusInvalid, *req.Status))
		}
		if parsed != record.Status {
			record.Status = parsed
			columns = append(columns, "status")
		}
	}

	if len(columns) == 0 {
		return record, nil
	}

	record.UpdatedAt = s.now()
	columns = append(columns, "updated_at")

	updated, err := s.store.Update(ctx, record, columns)
	if err != nil {
		return nil, wrapStoreError(err, "category")
	}
	return updated, nil
}

func (s *categoryService) Delete(ctx context.Context, req DeleteRequest) (bool, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return false, err
	}

	deleted, err := s.store.Delete(ctx, req.Key)
	if err != nil {
		return false, wrapStoreError(err, "category")
	}
	if deleted {
		s.logger.Info("category deleted", "key", req.Key)
	}
	return deleted, nil
}

func ensureCategorySlugFree(ctx context.Context, store CategoryStore, slug string, selfID uuid.UUID) error {
	existing, err := store.GetByKey(ctx, slug, GetQuery{})
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return wrapStoreError(err, "category")
	}
	if existing.ID != selfID {
		return wrapValidationError(fmt.Errorf("%w: %q", ErrSlugExists, slug))
	}
	return nil
}
