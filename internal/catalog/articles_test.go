package catalog_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/markdown"
	"github.com/google/uuid"
)

type articleFixture struct {
	svc        catalog.ArticleService
	authors    *catalog.MemoryAuthorStore
	categories *catalog.MemoryCategoryStore
	media      *catalog.MemoryMediaStore
	clock      *testClock
}

func newArticleFixture(t *testing.T, renderer catalog.BodyRenderer) *articleFixture {
	t.Helper()
	clock := newTestClock()
	authors := catalog.NewMemoryAuthorStore()
	categories := catalog.NewMemoryCategoryStore()
	media := catalog.NewMemoryMediaStore()
	store := catalog.NewMemoryArticleStore(authors, categories, media)
	svc := catalog.NewArticleService(store, authors, categories, media, renderer,
		catalog.WithClock(clock.Now),
		catalog.WithIDGenerator(sequentialIDs()),
	)
	return &articleFixture{svc: svc, authors: authors, categories: categories, media: media, clock: clock}
}

func (f *articleFixture) seedAuthor(t *testing.T, slug, name string) *catalog.Author {
	t.Helper()
	now := f.clock.Now()
	record, err := f.authors.Create(context.Background(), &catalog.Author{
		ID:        uuid.New(),
		Slug:      slug,
		Name:      name,
		Status:    domain.StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed author: %v", err)
	}
	return record
}

func (f *articleFixture) seedCategory(t *testing.T, slug, name string) *catalog.Category {
	t.Helper()
	now := f.clock.Now()
	record, err := f.categories.Create(context.Background(), &catalog.Category{
		ID:        uuid.New(),
		Slug:      slug,
		Name:      name,
		Status:    domain.StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return record
}

func (f *articleFixture) seedMedia(t *testing.T, url string) *catalog.Media {
	t.Helper()
	record, err := f.media.Create(context.Background(), &catalog.Media{
		ID:        uuid.New(),
		URL:       url,
		CreatedAt: f.clock.Now(),
	})
	if err != nil {
		t.Fatalf("seed media: %v", err)
	}
	return record
}

func TestArticleRelationVerification(t *testing.T) {
	fx := newArticleFixture(t, nil)
	ctx := context.Background()

	missing := uuid.New()

	_, err := fx.svc.Create(ctx, catalog.CreateArticleRequest{
		Viewer: authed, Title: "No Author", AuthorID: &missing,
	})
	if !errors.Is(err, catalog.ErrAuthorMissing) {
		t.Fatalf("err = %v, want ErrAuthorMissing", err)
	}

	_, err = fx.svc.Create(ctx, catalog.CreateArticleRequest{
		Viewer: authed, Title: "No Category", CategoryID: &missing,
	})
	if !errors.Is(err, catalog.ErrCategoryMissing) {
		t.Fatalf("err = %v, want ErrCategoryMissing", err)
	}

	_, err = fx.svc.Create(ctx, catalog.CreateArticleRequest{
		Viewer: authed, Title: "No Media", MediaIDs: []uuid.UUID{missing},
	})
	if !errors.Is(err, catalog.ErrMediaMissing) {
		t.Fatalf("err = %v, want ErrMediaMissing", err)
	}
}

func TestArticlePopulate(t *testing.T) {
	fx := newArticleFixture(t, nil)
	ctx := context.Background()

	author := fx.seedAuthor(t, "jane-doe", "Jane Doe")
	category := fx.seedCategory(t, "news", "News")
	asset := fx.seedMedia(t, "https://cdn.example.com/cover.jpg")

	created, err := fx.svc.Create(ctx, catalog.CreateArticleRequest{
		Viewer:     authed,
		Title:      "Launch Day",
		Body:       "we shipped",
		AuthorID:   &author.ID,
		CategoryID: &category.ID,
		MediaIDs:   []uuid.UUID{asset.ID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("bare read carries ids only", func(t *testing.T) {
		got, err := fx.svc.Get(ctx, catalog.GetRequest{Key: created.Slug})
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Author != nil || got.Category != nil || got.Media != nil {
			t.Fatalf("relations loaded without populate: %+v", got)
		}
		if got.AuthorID == nil || *got.AuthorID != author.ID {
			t.Fatalf("authorID = %v, want %s", got.AuthorID, author.ID)
		}
	})

	t.Run("wildcard populates everything", func(t *testing.T) {
		got, err := fx.svc.Get(ctx, catalog.GetRequest{
			ReadOptions: catalog.ReadOptions{Populate: "*"},
			Key:         created.Slug,
		})
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Author == nil || got.Author.Slug != "jane-doe" {
			t.Fatalf("author not populated: %+v", got.Author)
		}
		if got.Category == nil || got.Category.Slug != "news" {
			t.Fatalf("category not populated: %+v", got.Category)
		}
		if len(got.Media) != 1 || got.Media[0].URL != asset.URL {
			t.Fatalf("media not populated: %+v", got.Media)
		}
	})

	t.Run("subset populates named relations only", func(t *testing.T) {
		got, err := fx.svc.Get(ctx, catalog.GetRequest{
			ReadOptions: catalog.ReadOptions{Populate: "author"},
			Key:         created.Slug,
		})
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Author == nil {
			t.Fatal("author not populated")
		}
		if got.Category != nil || got.Media != nil {
			t.Fatalf("unrequested relations loaded: %+v", got)
		}
	})
}

func TestArticleBodyRendering(t *testing.T) {
	fx := newArticleFixture(t, markdown.New(markdown.Options{}))
	ctx := context.Background()

	created, err := fx.svc.Create(ctx, catalog.CreateArticleRequest{
		Viewer: authed,
		Title:  "Formatted",
		Body:   "# Heading\n\nsome *emphasis*",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.Contains(created.BodyHTML, "<h1") {
		t.Fatalf("bodyHTML missing heading: %q", created.BodyHTML)
	}
	if !strings.Contains(created.BodyHTML, "<em>emphasis</em>") {
		t.Fatalf("bodyHTML missing emphasis: %q", created.BodyHTML)
	}

	got, err := fx.svc.Get(ctx, catalog.GetRequest{Key: created.Slug})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.BodyHTML == "" {
		t.Fatal("bodyHTML not derived on read")
	}
	if got.Body != "# Heading\n\nsome *emphasis*" {
		t.Fatalf("source body altered: %q", got.Body)
	}
}

func TestArticleMediaUpdateSemantics(t *testing.T) {
	fx := newArticleFixture(t, nil)
	ctx := context.Background()

	first := fx.seedMedia(t, "https://cdn.example.com/a.jpg")
	second := fx.seedMedia(t, "https://cdn.example.com/b.jpg")

	created, err := fx.svc.Create(ctx, catalog.CreateArticleRequest{
		Viewer:   authed,
		Title:    "Gallery Post",
		MediaIDs: []uuid.UUID{first.ID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	populated := catalog.ReadOptions{Populate: "media"}

	// Nil leaves attachments alone.
	if _, err := fx.svc.Update(ctx, created.Slug, catalog.UpdateArticleRequest{Viewer: authed, Title: strPtr("Renamed Post")}); err != nil {
		t.Fatalf("Update title: %v", err)
	}
	got, err := fx.svc.Get(ctx, catalog.GetRequest{ReadOptions: populated, Key: created.Slug})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Media) != 1 || got.Media[0].ID != first.ID {
		t.Fatalf("attachments changed by unrelated update: %+v", got.Media)
	}

	// Non-nil replaces the set wholesale.
	if _, err := fx.svc.Update(ctx, created.Slug, catalog.UpdateArticleRequest{Viewer: authed, MediaIDs: []uuid.UUID{second.ID}}); err != nil {
		t.Fatalf("Update media: %v", err)
	}
	got, err = fx.svc.Get(ctx, catalog.GetRequest{ReadOptions: populated, Key: created.Slug})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Media) != 1 || got.Media[0].ID != second.ID {
		t.Fatalf("attachments not replaced: %+v", got.Media)
	}

	// Empty clears attachments.
	if _, err := fx.svc.Update(ctx, created.Slug, catalog.UpdateArticleRequest{Viewer: authed, MediaIDs: []uuid.UUID{}}); err != nil {
		t.Fatalf("Update clear media: %v", err)
	}
	got, err = fx.svc.Get(ctx, catalog.GetRequest{ReadOptions: populated, Key: created.Slug})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Media) != 0 {
		t.Fatalf("attachments not cleared: %+v", got.Media)
	}
}

func TestArticleListPopulate(t *testing.T) {
	fx := newArticleFixture(t, nil)
	ctx := context.Background()

	author := fx.seedAuthor(t, "sam", "Sam")
	for _, title := range []string{"First Post", "Second Post"} {
		if _, err := fx.svc.Create(ctx, catalog.CreateArticleRequest{
			Viewer: authed, Title: title, AuthorID: &author.ID,
		}); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}

	list, err := fx.svc.List(ctx, catalog.ListRequest{
		ReadOptions: catalog.ReadOptions{Populate: "author"},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.Meta.Total != 2 {
		t.Fatalf("total = %d, want 2", list.Meta.Total)
	}
	for _, item := range list.Items {
		if item.Author == nil || item.Author.Slug != "sam" {
			t.Fatalf("author not populated on %q: %+v", item.Slug, item.Author)
		}
	}
}
