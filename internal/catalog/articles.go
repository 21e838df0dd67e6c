package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/google/uuid"
)

// BodyRenderer converts markdown bodies into HTML for read responses. The
// rendered output is derived, never persisted.
type BodyRenderer interface {
	Render(source string) (string, error)
}

// articleService implements ArticleService. Author, category, and media
// references are verified against their stores before writes; population on
// reads is driven by the populate expression.
type articleService struct {
	serviceBase
	store      ArticleStore
	authors    AuthorStore
	categories CategoryStore
	media      MediaStore
	renderer   BodyRenderer
}

// NewArticleService constructs the article service. The renderer is optional;
// without one BodyHTML stays empty.
func NewArticleService(store ArticleStore, authors AuthorStore, categories CategoryStore, media MediaStore, renderer BodyRenderer, opts ...ServiceOption) ArticleService {
	return &articleService{
		serviceBase: newServiceBase(opts...),
		store:       store,
		authors:     authors,
		categories:  categories,
		media:       media,
		renderer:    renderer,
	}
}

func (s *articleService) List(ctx context.Context, req ListRequest) (*ArticleList, error) {
	query, page, pageSize := buildListQuery(req, domain.KindArticle, articleSortColumns)

	items, total, err := s.store.List(ctx, query)
	if err != nil {
		return nil, wrapStoreError(err, "article")
	}

	for _, item := range items {
		s.decorate(item)
	}

	return &ArticleList{
		Items: items,
		Meta:  paginateMeta(page, pageSize, total),
	}, nil
}

func (s *articleService) Get(ctx context.Context, req GetRequest) (*Article, error) {
	record, err := s.store.GetByKey(ctx, req.Key, buildGetQuery(req.ReadOptions, domain.KindArticle))
	if err != nil {
		return nil, wrapStoreError(err, "article")
	}
	return s.decorate(record), nil
}

func (s *articleService) Create(ctx context.Context, req CreateArticleRequest) (*Article, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, wrapValidationError(ErrTitleRequired)
	}

	articleSlug, err := deriveSlug(req.Slug, title)
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

	if err := s.ensureSlugFree(ctx, articleSlug, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now()
	record := &Article{
		ID:          s.id(),
		Slug:        articleSlug,
		Title:       title,
		Body:        req.Body,
		Excerpt:     req.Excerpt,
		Status:      st,
		AuthorID:    req.AuthorID,
		CategoryID:  req.CategoryID,
		PublishedAt: s.publishedStamp(st),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.store.Create(ctx, record, req.MediaIDs)
	if err != nil {
		return nil, wrapStoreError(err, "article")
	}

	s.logger.Info("article created", "slug", created.Slug, "status", string(created.Status))
	return s.decorate(created), nil
}

func (s *articleService) Update(ctx context.Context, key string, req UpdateArticleRequest) (*Article, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return nil, err
	}

	record, err := s.store.GetByKey(ctx, key, GetQuery{})
	if err != nil {
		return nil, wrapStoreError(err, "article")
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

	if req.Body != nil && *req.Body != record.Body {
		record.Body = *req.Body
		columns = append(columns, "body")
	}

	if req.Excerpt != nil {
		record.Excerpt = req.Excerpt
		columns = append(columns, "excerpt")
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
		return s.decorate(record), nil
	}

	record.UpdatedAt = s.now()
	columns = append(columns, "updated_at")

	updated, err := s.store.Update(ctx, record, columns, req.MediaIDs)
	if err != nil {
		return nil, wrapStoreError(err, "article")
	}
	return s.decorate(updated), nil
}

func (s *articleService) Delete(ctx context.Context, req DeleteRequest) (bool, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return false, err
	}

	deleted, err := s.store.Delete(ctx, req.Key)
	if err != nil {
		return false, wrapStoreError(err, "article")
	}
	if deleted {
		s.logger.Info("article deleted", "key", req.Key)
	}
	return deleted, nil
}

// decorate renders the derived HTML body. Render failures degrade to an empty
// BodyHTML instead of failing the read.
func (s *articleService) decorate(record *Article) *Article {
	if record == nil || s.renderer == nil || record.Body == "" {
		return record
	}
	html, err := s.renderer.Render(record.Body)
	if err != nil {
		s.logger.Warn("article body render failed", "slug", record.Slug, "error", err)
		return record
	}
	record.BodyHTML = html
	return record
}

func (s *articleService) ensureSlugFree(ctx context.Context, slug string, selfID uuid.UUID) error {
	existing, err := s.store.GetByKey(ctx, slug, GetQuery{})
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return wrapStoreError(err, "article")
	}
	if existing.ID != selfID {
		return wrapValidationError(fmt.Errorf("%w: %q", ErrSlugExists, slug))
	}
	return nil
}

func (s *articleService) verifyRelations(ctx context.Context, authorID, categoryID *uuid.UUID, mediaIDs []uuid.UUID) error {
	if err := s.verifyAuthor(ctx, authorID); err != nil {
		return err
	}
	if err := s.verifyCategory(ctx, categoryID); err != nil {
		return err
	}
	return s.verifyMedia(ctx, mediaIDs)
}

func (s *articleService) verifyAuthor(ctx context.Context, id *uuid.UUID) error {
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

func (s *articleService) verifyCategory(ctx context.Context, id *uuid.UUID) error {
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

func (s *articleService) verifyMedia(ctx context.Context, ids []uuid.UUID) error {
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
