package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/sections"
	"github.com/goliatone/go-catalog/internal/status"
	"github.com/goliatone/go-catalog/pkg/testsupport"
	"github.com/google/uuid"
)

func seedBunPage(t *testing.T, store *catalog.BunPageStore, slug string, st string, at time.Time) *catalog.Page {
	t.Helper()
	record := &catalog.Page{
		ID:        uuid.New(),
		Slug:      slug,
		Title:     slug,
		Status:    mustStatus(t, st),
		CreatedAt: at,
		UpdatedAt: at,
	}
	if st == "published" {
		record.PublishedAt = &at
	}
	created, err := store.Create(context.Background(), record)
	if err != nil {
		t.Fatalf("seed page %q: %v", slug, err)
	}
	return created
}

func mustStatus(t *testing.T, raw string) domain.Status {
	t.Helper()
	parsed, ok := domain.ParseStatus(raw)
	if !ok {
		t.Fatalf("bad status %q", raw)
	}
	return parsed
}

func TestBunPageStore(t *testing.T) {
	db := testsupport.OpenSQLite(t, "bun_page_store")
	testsupport.CreateTables(t, db, (*catalog.Page)(nil))

	store := catalog.NewBunPageStore(db)
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	seedBunPage(t, store, "home", "published", base)
	seedBunPage(t, store, "pricing", "published", base.Add(time.Hour))
	draft := seedBunPage(t, store, "roadmap", "draft", base.Add(2*time.Hour))

	t.Run("get by slug", func(t *testing.T) {
		got, err := store.GetByKey(ctx, "home", catalog.GetQuery{})
		if err != nil {
			t.Fatalf("GetByKey: %v", err)
		}
		if got.Slug != "home" {
			t.Fatalf("slug = %q", got.Slug)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := store.GetByKey(ctx, draft.ID.String(), catalog.GetQuery{})
		if err != nil {
			t.Fatalf("GetByKey: %v", err)
		}
		if got.Slug != "roadmap" {
			t.Fatalf("slug = %q", got.Slug)
		}
	})

	t.Run("status filter hides drafts", func(t *testing.T) {
		_, err := store.GetByKey(ctx, "roadmap", catalog.GetQuery{Filter: status.FilterPublished})
		if !catalog.IsNotFound(err) {
			t.Fatalf("err = %v, want not found", err)
		}

		items, total, err := store.List(ctx, catalog.ListQuery{Filter: status.FilterPublished})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if total != 2 || len(items) != 2 {
			t.Fatalf("total = %d, items = %d, want 2/2", total, len(items))
		}
	})

	t.Run("sorted window", func(t *testing.T) {
		items, total, err := store.List(ctx, catalog.ListQuery{
			Sort:   catalog.SortOption{Field: "updated_at", Desc: true},
			Limit:  2,
			Offset: 0,
		})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if total != 3 {
			t.Fatalf("total = %d, want 3", total)
		}
		if len(items) != 2 || items[0].Slug != "roadmap" {
			t.Fatalf("window wrong: %d items, first %q", len(items), items[0].Slug)
		}
	})

	t.Run("sections round trip", func(t *testing.T) {
		record := &catalog.Page{
			ID:     uuid.New(),
			Slug:   "sectioned",
			Title:  "Sectioned",
			Status: mustStatus(t, "published"),
			Sections: []sections.RawSection{
				{"type": "text", "body": "persisted"},
			},
			CreatedAt: base,
			UpdatedAt: base,
		}
		if _, err := store.Create(ctx, record); err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := store.GetByKey(ctx, "sectioned", catalog.GetQuery{})
		if err != nil {
			t.Fatalf("GetByKey: %v", err)
		}
		if len(got.Sections) != 1 || got.Sections[0]["body"] != "persisted" {
			t.Fatalf("sections = %v", got.Sections)
		}
	})

	t.Run("partial column update", func(t *testing.T) {
		record, err := store.GetByKey(ctx, "home", catalog.GetQuery{})
		if err != nil {
			t.Fatalf("GetByKey: %v", err)
		}
		record.Title = "Welcome Home"
		record.UpdatedAt = base.Add(4 * time.Hour)
		if _, err := store.Update(ctx, record, []string{"title", "updated_at"}); err != nil {
			t.Fatalf("Update: %v", err)
		}
		got, err := store.GetByKey(ctx, "home", catalog.GetQuery{})
		if err != nil {
			t.Fatalf("GetByKey: %v", err)
		}
		if got.Title != "Welcome Home" {
			t.Fatalf("title = %q", got.Title)
		}
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := store.Delete(ctx, "pricing")
		if err != nil || !deleted {
			t.Fatalf("Delete = %v, %v", deleted, err)
		}
		deleted, err = store.Delete(ctx, "pricing")
		if err != nil || deleted {
			t.Fatalf("second delete = %v, %v", deleted, err)
		}
	})
}

func TestBunMediaStore(t *testing.T) {
	db := testsupport.OpenSQLite(t, "bun_media_store")
	testsupport.CreateTables(t, db, (*catalog.Media)(nil))

	store := catalog.NewBunMediaStore(db)
	ctx := context.Background()

	first, err := store.Create(ctx, &catalog.Media{
		ID:        uuid.New(),
		URL:       "https://cdn.example.com/one.png",
		Width:     640,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := store.Create(ctx, &catalog.Media{
		ID:        uuid.New(),
		URL:       "https://cdn.example.com/two.png",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.URL != first.URL || got.Width != 640 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	ok, err := store.Exists(ctx, []uuid.UUID{first.ID, second.ID})
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
	ok, err = store.Exists(ctx, []uuid.UUID{first.ID, uuid.New()})
	if err != nil || ok {
		t.Fatalf("Exists with missing id = %v, %v", ok, err)
	}

	deleted, err := store.Delete(ctx, second.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete = %v, %v", deleted, err)
	}
	if _, err := store.GetByID(ctx, second.ID); !catalog.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}
