package catalog

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/google/uuid"
)

// productService implements ProductService. Pricing rules are enforced on
// writes; relation handling mirrors the article service.
type productService struct {
	serviceBase
	store      ProductStore
	authors    AuthorStore
	categories CategoryStore
	media      MediaStore
}

// NewProductService constructs the product service.
func NewProductService(store ProductStore, authors AuthorStore, categories CategoryStore, media MediaStore, opts ...ServiceOption) ProductService {
	return &productService{
		serviceBase: newServiceBase(opts...),
		store:       store,
		authors:     authors,
		categories:  categories,
		media:       media,
	}
}

func (s *productService) List(ctx context.Context, req ListRequest) (*ProductList, error) {
	query, page, pageSize := buildListQuery(req, domain.KindProduct, productSortColumns)

	items, total, err := s.store.List(ctx, query)
	if err != nil {
		return nil, wrapStoreError(err, "product")
	}

	return &ProductList{
		Items: items,
		Meta:  paginateMeta(page, pageSize, total),
	}, nil
}

func (s *productService) Get(ctx context.Context, req GetRequest) (*Product, error) {
	record, err := s.store.GetByKey(ctx, req.Key, buildGetQuery(req.ReadOptions, domain.KindProduct))
	if err != nil {
		return nil, wrapStoreError(err, "product")
	}
	return record, nil
}

func (s *productService) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, wrapValidationError(ErrNameRequired)
	}

	if err := validation.Validate(req.Price, validation.Min(0.0)); err != nil {
		return nil, wrapValidationError(fmt.Errorf("%w: %v", ErrPriceInvalid, err))
	}

	productSlug, err := deriveSlug(req.Slug, name)
	if err != nil {
		return nil, wrapValidationError(err)
	}

	st, err := chooseStatus(req.Status)
	if err != nil {
		return nil, wrapValidationError(err)
	}

	if err := s.verifyRelations(ctx, req.AuthorID, req.CategoryID, req.MediaIDs); err != nil {
		return nil, err
	}

	if err := s.ensureSlugFree(ctx, productSlug, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now()
	record := &Product{
		ID:          s.id(),
		Slug:        productSlug,
		Name:        name,
		Description: req.Description,
		Price:       req.Price,
		Status:      st,
		AuthorID:    req.AuthorID,
		CategoryID:  req.CategoryID,
		PublishedAt: s.publishedStamp(st),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.store.Create(ctx, record, req.MediaIDs)
	if err != nil {
		return nil, wrapStoreError(err, "product")
	}

	s.logger.Info("product created", "slug", created.Slug, "status", string(created.Status))
	return created, nil
}

func (s *productService) Update(ctx context.Context, key string, req UpdateProductRequest) (*Product, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return nil, err
	}

	record, err := s.store.GetByKey(ctx, key, GetQuery{})
	if err != nil {
		return nil, wrapStoreError(err, "product")
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

	if req.Price != nil {
		if err := validation.Validate(*req.Price, validation.Min(0.0)); err != nil {
			return nil, wrapValidationError(fmt.Errorf("%w: %v", ErrPriceInvalid, err))
		}
		if *req.Price != record.Price {
			record.Price = *req.Price
			columns = append(columns, "price")
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

	if req.AuthorID != nil {
		if err := s.verifyAuthor(ctx, req.AuthorID); err != nil {
			return nil, err
		}
		record.AuthorID = req.AuthorID
		columns = append(columns, "author_id")
	}

	if req.CategoryID != nil {
		if err := s.verifyCategory(ctx, req.CategoryID); err != nil {
			return nil, err
		}
		record.CategoryID = req.CategoryID
		columns = append(columns, "category_id")
	}

	if req.MediaIDs != nil {
		if err := s.verifyMedia(ctx, req.MediaIDs); err != nil {
			return nil, err
		}
	}

	if len(columns) == 0 && req.MediaIDs == nil {
		return record, nil
	}

	record.UpdatedAt = s.now()
	columns = append(columns, "updated_at")

	updated, err := s.store.Update(ctx, record, columns, req.MediaIDs)
	if err != nil {
		return nil, wrapStoreError(err, "product")
	}
	return updated, nil
}

func (s *productService) Delete(ctx context.Context, req DeleteRequest) (bool, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return false, err
	}

	deleted, err := s.store.Delete(ctx, req.Key)
	if err != nil {
		return false, wrapStoreError(err, "product")
	}
	if deleted {
		s.logger.Info("product deleted", "key", req.Key)
	}
	return deleted, nil
}

func (s *productService) ensureSlugFree(ctx context.Context, slug string, selfID uuid.UUID) error {
	existing, err := s.store.GetByKey(ctx, slug, GetQuery{})
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return wrapStoreError(err, "product")
	}
	if existing.ID != selfID {
		return wrapValidationError(fmt.Errorf("%w: %q", ErrSlugExists, slug))
	}
	return nil
}

func (s *productService) verifyRelations(ctx context.Context, authorID, categoryID *uuid.UUID, mediaIDs []uuid.UUID) error {
	if err := s.verifyAuthor(ctx, authorID); err != nil {
		return err
	}
	if err := s.verifyCategory(ctx, categoryID); err != nil {
		return err
	}
	return s.verifyMedia(ctx, mediaIDs)
}

func (s *productService) verifyAuthor(ctx context.Context, id *uuid.UUID) error {
	if id == nil || s.authors == nil {
		return nil
	}
	if _, err := s.authors.GetByKey(ctx, id.String(), GetQuery{}); err != nil {
		if IsNotFound(err) {
			return wrapValidationError(fmt.Errorf("%w: %s", ErrAuthorMissing, id))
		}
		return wrapStoreError(err, "author")
	}
	return nil
}

func (s *productService) verifyCategory(ctx context.Context, id *uuid.UUID) error {
	if id == nil || s.categories == nil {
		return nil
	}
	if _, err := s.categories.GetByKey(ctx, id.String(), GetQuery{}); err != nil {
		if IsNotFound(err) {
			return wrapValidationError(fmt.Errorf("%w: %s", ErrCategoryMissing, id))
		}
		return wrapStoreError(err, "category")
	}
	return nil
}

func (s *productService) verifyMedia(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 || s.media == nil {
		return nil
	}
	ok, err := s.media.Exists(ctx, ids)
	if err != nil {
		return wrapStoreError(err, "media")
	}
	if !ok {
		return wrapValidationError(ErrMediaMissing)
	}
	return nil
}
