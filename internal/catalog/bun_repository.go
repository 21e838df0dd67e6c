package catalog

import (
	"context"
	"fmt"

	"github.com/goliatone/go-catalog/internal/domain"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPageStore is the bun-backed PageStore.
type BunPageStore struct {
	bunEntityStore[*Page]
}

// NewBunPageStore constructs a PageStore backed by bun.
func NewBunPageStore(db *bun.DB) *BunPageStore {
	return NewBunPageStoreWithCache(db, nil, nil)
}

// NewBunPageStoreWithCache constructs a PageStore with optional read caching.
func NewBunPageStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPageStore {
	return &BunPageStore{bunEntityStore[*Page]{
		db:       db,
		repo:     wrapWithCache(NewPageRepository(db), cacheService, keySerializer),
		resource: "page",
		getID:    func(p *Page) uuid.UUID { return p.ID },
	}}
}

// BunAuthorStore is the bun-backed AuthorStore.
type BunAuthorStore struct {
	bunEntityStore[*Author]
}

func NewBunAuthorStore(db *bun.DB) *BunAuthorStore {
	return NewBunAuthorStoreWithCache(db, nil, nil)
}

func NewBunAuthorStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunAuthorStore {
	return &BunAuthorStore{bunEntityStore[*Author]{
		db:       db,
		repo:     wrapWithCache(NewAuthorRepository(db), cacheService, keySerializer),
		resource: "author",
		getID:    func(a *Author) uuid.UUID { return a.ID },
	}}
}

// BunCategoryStore is the bun-backed CategoryStore.
type BunCategoryStore struct {
	bunEntityStore[*Category]
}

func NewBunCategoryStore(db *bun.DB) *BunCategoryStore {
	return NewBunCategoryStoreWithCache(db, nil, nil)
}

func NewBunCategoryStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCategoryStore {
	return &BunCategoryStore{bunEntityStore[*Category]{
		db:       db,
		repo:     wrapWithCache(NewCategoryRepository(db), cacheService, keySerializer),
		resource: "category",
		getID:    func(c *Category) uuid.UUID { return c.ID },
	}}
}

// BunArticleStore is the bun-backed ArticleStore. Writes that touch the
// media join table run inside a single transaction so a row change and its
// attachment set are never observable apart.
type BunArticleStore struct {
	bunEntityStore[*Article]
}

func NewBunArticleStore(db *bun.DB) *BunArticleStore {
	return NewBunArticleStoreWithCache(db, nil, nil)
}

func NewBunArticleStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunArticleStore {
	return &BunArticleStore{bunEntityStore[*Article]{
		db:       db,
		repo:     wrapWithCache(NewArticleRepository(db), cacheService, keySerializer),
		resource: "article",
		relations: map[domain.Relation]string{
			domain.RelationAuthor:   "Author",
			domain.RelationCategory: "Category",
			domain.RelationMedia:    "Media",
		},
		getID: func(a *Article) uuid.UUID { return a.ID },
	}}
}

func (s *BunArticleStore) Create(ctx context.Context, record *Article, mediaIDs []uuid.UUID) (*Article, error) {
	if len(mediaIDs) == 0 {
		return s.bunEntityStore.Create(ctx, record)
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return fmt.Errorf("insert article: %w", err)
		}
		return replaceArticleMedia(ctx, tx, record.ID, mediaIDs)
	})
	if err != nil {
		return nil, wrapStoreError(err, s.resource)
	}
	return record, nil
}

func (s *BunArticleStore) Update(ctx context.Context, record *Article, columns []string, mediaIDs []uuid.UUID) (*Article, error) {
	if mediaIDs == nil {
		return s.bunEntityStore.Update(ctx, record, columns)
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if len(columns) > 0 {
			if _, err := tx.NewUpdate().Model(record).Column(columns...).WherePK().Exec(ctx); err != nil {
				return fmt.Errorf("update article: %w", err)
			}
		}
		return replaceArticleMedia(ctx, tx, record.ID, mediaIDs)
	})
	if err != nil {
		return nil, wrapStoreError(err, s.resource)
	}
	return record, nil
}

func (s *BunArticleStore) Delete(ctx context.Context, key string) (bool, error) {
	record, err := s.GetByKey(ctx, key, GetQuery{})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	deleted := false
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*ArticleMedia)(nil)).
			Where("?TableAlias.article_id = ?", record.ID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete article media: %w", err)
		}

		result, err := tx.NewDelete().Model(record).WherePK().Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete article: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("article delete rows affected: %w", err)
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		return false, wrapStoreError(err, s.resource)
	}
	return deleted, nil
}

// BunProductStore is the bun-backed ProductStore.
type BunProductStore struct {
	bunEntityStore[*Product]
}

func NewBunProductStore(db *bun.DB) *BunProductStore {
	return NewBunProductStoreWithCache(db, nil, nil)
}

func NewBunProductStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunProductStore {
	return &BunProductStore{bunEntityStore[*Product]{
		db:       db,
		repo:     wrapWithCache(NewProductRepository(db), cacheService, keySerializer),
		resource: "product",
		relations: map[domain.Relation]string{
			domain.RelationAuthor:   "Author",
			domain.RelationCategory: "Category",
			domain.RelationMedia:    "Media",
		},
		getID: func(p *Product) uuid.UUID { return p.ID },
	}}
}

func (s *BunProductStore) Create(ctx context.Context, record *Product, mediaIDs []uuid.UUID) (*Product, error) {
	if len(mediaIDs) == 0 {
		return s.bunEntityStore.Create(ctx, record)
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		return replaceProductMedia(ctx, tx, record.ID, mediaIDs)
	})
	if err != nil {
		return nil, wrapStoreError(err, s.resource)
	}
	return record, nil
}

func (s *BunProductStore) Update(ctx context.Context, record *Product, columns []string, mediaIDs []uuid.UUID) (*Product, error) {
	if mediaIDs == nil {
		return s.bunEntityStore.Update(ctx, record, columns)
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if len(columns) > 0 {
			if _, err := tx.NewUpdate().Model(record).Column(columns...).WherePK().Exec(ctx); err != nil {
				return fmt.Errorf("update product: %w", err)
			}
		}
		return replaceProductMedia(ctx, tx, record.ID, mediaIDs)
	})
	if err != nil {
		return nil, wrapStoreError(err, s.resource)
	}
	return record, nil
}

func (s *BunProductStore) Delete(ctx context.Context, key string) (bool, error) {
	record, err := s.GetByKey(ctx, key, GetQuery{})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	deleted := false
	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*ProductMedia)(nil)).
			Where("?TableAlias.product_id = ?", record.ID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete product media: %w", err)
		}

		result, err := tx.NewDelete().Model(record).WherePK().Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("product delete rows affected: %w", err)
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		return false, wrapStoreError(err, s.resource)
	}
	return deleted, nil
}

// BunMediaStore is the bun-backed MediaStore.
type BunMediaStore struct {
	db   *bun.DB
	repo repository.Repository[*Media]
}

func NewBunMediaStore(db *bun.DB) *BunMediaStore {
	return NewBunMediaStoreWithCache(db, nil, nil)
}

func NewBunMediaStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunMediaStore {
	return &BunMediaStore{
		db:   db,
		repo: wrapWithCache(NewMediaRepository(db), cacheService, keySerializer),
	}
}

func (s *BunMediaStore) Create(ctx context.Context, record *Media) (*Media, error) {
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, wrapStoreError(err, "media")
	}
	return created, nil
}

func (s *BunMediaStore) GetByID(ctx context.Context, id uuid.UUID) (*Media, error) {
	record := new(Media)
	err := s.db.NewSelect().Model(record).Where("?TableAlias.id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, &NotFoundError{Resource: "media", Key: id.String()}
		}
		return nil, wrapStoreError(err, "media")
	}
	return record, nil
}

func (s *BunMediaStore) Exists(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	count, err := s.db.NewSelect().
		Model((*Media)(nil)).
		Where("?TableAlias.id IN (?)", bun.In(ids)).
		Count(ctx)
	if err != nil {
		return false, wrapStoreError(err, "media")
	}
	return count == len(ids), nil
}

func (s *BunMediaStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := s.db.NewDelete().
		Model((*Media)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, wrapStoreError(err, "media")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, wrapStoreError(err, "media")
	}
	return affected > 0, nil
}

// replaceArticleMedia swaps an article's attachment set inside an open
// transaction.
func replaceArticleMedia(ctx context.Context, tx bun.Tx, articleID uuid.UUID, mediaIDs []uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*ArticleMedia)(nil)).
		Where("?TableAlias.article_id = ?", articleID).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete article media joins: %w", err)
	}

	if len(mediaIDs) == 0 {
		return nil
	}

	rows := make([]*ArticleMedia, 0, len(mediaIDs))
	for position, mediaID := range mediaIDs {
		rows = append(rows, &ArticleMedia{ArticleID: articleID, MediaID: mediaID, Position: position})
	}
	if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("insert article media joins: %w", err)
	}
	return nil
}

// replaceProductMedia swaps a product's attachment set inside an open
// transaction.
func replaceProductMedia(ctx context.Context, tx bun.Tx, productID uuid.UUID, mediaIDs []uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*ProductMedia)(nil)).
		Where("?TableAlias.product_id = ?", productID).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete product media joins: %w", err)
	}

	if len(mediaIDs) == 0 {
		return nil
	}

	rows := make([]*ProductMedia, 0, len(mediaIDs))
	for position, mediaID := range mediaIDs {
		rows = append(rows, &ProductMedia{ProductID: productID, MediaID: mediaID, Position: position})
	}
	if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("insert product media joins: %w", err)
	}
	return nil
}
