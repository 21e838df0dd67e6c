package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/google/uuid"
)

type productFixture struct {
	svc        catalog.ProductService
	authors    *catalog.MemoryAuthorStore
	categories *catalog.MemoryCategoryStore
	media      *catalog.MemoryMediaStore
	clock      *testClock
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	clock := newTestClock()
	authors := catalog.NewMemoryAuthorStore()
	categories := catalog.NewMemoryCategoryStore()
	media := catalog.NewMemoryMediaStore()
	store := catalog.NewMemoryProductStore(authors, categories, media)
	svc := catalog.NewProductService(store, authors, categories, media,
		catalog.WithClock(clock.Now),
		catalog.WithIDGenerator(sequentialIDs()),
	)
	return &productFixture{svc: svc, authors: authors, categories: categories, media: media, clock: clock}
}

func TestProductPriceValidation(t *testing.T) {
	fx := newProductFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Create(ctx, catalog.CreateProductRequest{
		Viewer: authed, Name: "Bad Deal", Price: -0.01,
	})
	if !errors.Is(err, catalog.ErrPriceInvalid) {
		t.Fatalf("negative price err = %v, want ErrPriceInvalid", err)
	}

	free, err := fx.svc.Create(ctx, catalog.CreateProductRequest{
		Viewer: authed, Name: "Free Sample", Price: 0,
	})
	if err != nil {
		t.Fatalf("zero price rejected: %v", err)
	}
	if free.Price != 0 {
		t.Fatalf("price = %v, want 0", free.Price)
	}

	_, err = fx.svc.Update(ctx, free.Slug, catalog.UpdateProductRequest{
		Viewer: authed, Price: floatPtr(-5),
	})
	if !errors.Is(err, catalog.ErrPriceInvalid) {
		t.Fatalf("negative price update err = %v, want ErrPriceInvalid", err)
	}
}

func TestProductCreateDefaults(t *testing.T) {
	fx := newProductFixture(t)
	ctx := context.Background()

	created, err := fx.svc.Create(ctx, catalog.CreateProductRequest{
		Viewer:      authed,
		Name:        "Espresso Machine",
		Description: strPtr("pulls a decent shot"),
		Price:       349.99,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "espresso-machine" {
		t.Fatalf("slug = %q, want espresso-machine", created.Slug)
	}
	if created.PublishedAt == nil {
		t.Fatal("published default should stamp publishedAt")
	}
	if created.Description == nil || *created.Description != "pulls a decent shot" {
		t.Fatalf("description = %v", created.Description)
	}
}

func TestProductRelationVerification(t *testing.T) {
	fx := newProductFixture(t)
	ctx := context.Background()

	missing := uuid.New()
	_, err := fx.svc.Create(ctx, catalog.CreateProductRequest{
		Viewer: authed, Name: "Orphan", AuthorID: &missing,
	})
	if !errors.Is(err, catalog.ErrAuthorMissing) {
		t.Fatalf("err = %v, want ErrAuthorMissing", err)
	}
	_, err = fx.svc.Create(ctx, catalog.CreateProductRequest{
		Viewer: authed, Name: "Uncategorized", CategoryID: &missing,
	})
	if !errors.Is(err, catalog.ErrCategoryMissing) {
		t.Fatalf("err = %v, want ErrCategoryMissing", err)
	}
}

func TestProductListSorting(t *testing.T) {
	fx := newProductFixture(t)
	ctx := context.Background()

	prices := map[string]float64{"Widget": 9.99, "Gadget": 24.5, "Doohickey": 2.25}
	for name, price := range prices {
		if _, err := fx.svc.Create(ctx, catalog.CreateProductRequest{Viewer: authed, Name: name, Price: price}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
		fx.clock.Advance(time.Minute)
	}

	t.Run("ascending price", func(t *testing.T) {
		list, err := fx.svc.List(ctx, catalog.ListRequest{Sort: "price"})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if list.Items[0].Slug != "doohickey" || list.Items[2].Slug != "gadget" {
			t.Fatalf("price sort wrong: %s, %s, %s",
				list.Items[0].Slug, list.Items[1].Slug, list.Items[2].Slug)
		}
	})

	t.Run("descending price", func(t *testing.T) {
		list, err := fx.svc.List(ctx, catalog.ListRequest{Sort: "price:desc"})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if list.Items[0].Slug != "gadget" {
			t.Fatalf("first item = %q, want gadget", list.Items[0].Slug)
		}
	})

	t.Run("unknown sort falls back to default", func(t *testing.T) {
		list, err := fx.svc.List(ctx, catalog.ListRequest{Sort: "tastiness"})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if list.Items[0].Slug != "doohickey" && list.Items[0].Slug != "widget" && list.Items[0].Slug != "gadget" {
			t.Fatalf("unexpected item %q", list.Items[0].Slug)
		}
		if list.Meta.Total != 3 {
			t.Fatalf("total = %d, want 3", list.Meta.Total)
		}
	})

	t.Run("window beyond the last page is empty but addressable", func(t *testing.T) {
		list, err := fx.svc.List(ctx, catalog.ListRequest{Page: 9, PageSize: 2})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list.Items) != 0 {
			t.Fatalf("items = %d, want 0", len(list.Items))
		}
		if list.Meta.Page != 9 || list.Meta.Total != 3 || list.Meta.PageCount != 2 {
			t.Fatalf("meta = %+v", list.Meta)
		}
	})
}
