package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-catalog/internal/catalog"
	cataloghttp "github.com/goliatone/go-catalog/internal/http"
)

const testToken = "editorial-secret"

type fixture struct {
	mux   *http.ServeMux
	pages catalog.PageService
	media catalog.MediaService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	authorStore := catalog.NewMemoryAuthorStore()
	categoryStore := catalog.NewMemoryCategoryStore()
	mediaStore := catalog.NewMemoryMediaStore()
	articleStore := catalog.NewMemoryArticleStore(authorStore, categoryStore, mediaStore)
	productStore := catalog.NewMemoryProductStore(authorStore, categoryStore, mediaStore)

	pages := catalog.NewPageService(catalog.NewMemoryPageStore(), nil)
	media := catalog.NewMediaService(mediaStore, nil)

	api := cataloghttp.NewAPI(
		cataloghttp.WithBearerToken(testToken),
		cataloghttp.WithPageSizeLimit(50),
		cataloghttp.WithPageService(pages),
		cataloghttp.WithArticleService(catalog.NewArticleService(articleStore, authorStore, categoryStore, mediaStore, nil)),
		cataloghttp.WithProductService(catalog.NewProductService(productStore, authorStore, categoryStore, mediaStore)),
		cataloghttp.WithAuthorService(catalog.NewAuthorService(authorStore)),
		cataloghttp.WithCategoryService(catalog.NewCategoryService(categoryStore)),
		cataloghttp.WithMediaService(media),
	)

	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return &fixture{mux: mux, pages: pages, media: media}
}

func (f *fixture) do(t *testing.T, method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func errorName(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	errBlock, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error block in %q", rec.Body.String())
	}
	name, _ := errBlock["name"].(string)
	return name
}

func (f *fixture) seedPage(t *testing.T, title, status string) {
	t.Helper()
	if _, err := f.pages.Create(context.Background(), catalog.CreatePageRequest{
		Viewer: catalog.Viewer{Authenticated: true},
		Title:  title,
		Status: status,
	}); err != nil {
		t.Fatalf("seed page %q: %v", title, err)
	}
}

func TestPageEndpoints(t *testing.T) {
	fx := newFixture(t)

	t.Run("create requires bearer token", func(t *testing.T) {
		rec := fx.do(t, http.MethodPost, "/api/pages", `{"title":"Nope"}`, false)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if name := errorName(t, rec); name != "unauthorized" {
			t.Fatalf("error name = %q, want unauthorized", name)
		}
	})

	t.Run("create returns envelope", func(t *testing.T) {
		rec := fx.do(t, http.MethodPost, "/api/pages", `{"title":"Landing","sections":[{"type":"text","body":"hi"}]}`, true)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		data, ok := body["data"].(map[string]any)
		if !ok {
			t.Fatalf("no data block in %q", rec.Body.String())
		}
		if data["slug"] != "landing" {
			t.Fatalf("slug = %v, want landing", data["slug"])
		}
	})

	t.Run("invalid JSON rejected", func(t *testing.T) {
		rec := fx.do(t, http.MethodPost, "/api/pages", `{"title":`, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if name := errorName(t, rec); name != "bad_request" {
			t.Fatalf("error name = %q, want bad_request", name)
		}
	})

	t.Run("invalid section reports details", func(t *testing.T) {
		rec := fx.do(t, http.MethodPost, "/api/pages", `{"title":"Broken","sections":[{"type":"hero"}]}`, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		errBlock := body["error"].(map[string]any)
		if errBlock["name"] != "validation_failed" {
			t.Fatalf("error name = %v, want validation_failed", errBlock["name"])
		}
		if details, ok := errBlock["details"].([]any); !ok || len(details) == 0 {
			t.Fatalf("missing details in %q", rec.Body.String())
		}
	})

	t.Run("get missing returns 404", func(t *testing.T) {
		rec := fx.do(t, http.MethodGet, "/api/pages/nowhere", "", false)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if name := errorName(t, rec); name != "not_found" {
			t.Fatalf("error name = %q, want not_found", name)
		}
	})

	t.Run("get by slug", func(t *testing.T) {
		rec := fx.do(t, http.MethodGet, "/api/pages/landing", "", false)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("update via PUT", func(t *testing.T) {
		rec := fx.do(t, http.MethodPut, "/api/pages/landing", `{"title":"Landing v2"}`, true)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		data := body["data"].(map[string]any)
		if data["title"] != "Landing v2" {
			t.Fatalf("title = %v", data["title"])
		}
	})

	t.Run("delete returns 204 then 404", func(t *testing.T) {
		rec := fx.do(t, http.MethodDelete, "/api/pages/landing", "", true)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		rec = fx.do(t, http.MethodDelete, "/api/pages/landing", "", true)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestPageListEnvelope(t *testing.T) {
	fx := newFixture(t)
	fx.seedPage(t, "One", "published")
	fx.seedPage(t, "Two", "published")
	fx.seedPage(t, "Hidden", "draft")

	t.Run("anonymous listing excludes drafts", func(t *testing.T) {
		rec := fx.do(t, http.MethodGet, "/api/pages", "", false)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		body := decodeBody(t, rec)
		data, ok := body["data"].([]any)
		if !ok {
			t.Fatalf("no data array in %q", rec.Body.String())
		}
		if len(data) != 2 {
			t.Fatalf("items = %d, want 2", len(data))
		}
		meta := body["meta"].(map[string]any)
		pageMeta := meta["pagination"].(map[string]any)
		if pageMeta["total"] != float64(2) {
			t.Fatalf("total = %v, want 2", pageMeta["total"])
		}
	})

	t.Run("authenticated listing includes drafts", func(t *testing.T) {
		rec := fx.do(t, http.MethodGet, "/api/pages", "", true)
		body := decodeBody(t, rec)
		meta := body["meta"].(map[string]any)
		pageMeta := meta["pagination"].(map[string]any)
		if pageMeta["total"] != float64(3) {
			t.Fatalf("total = %v, want 3", pageMeta["total"])
		}
	})

	t.Run("page size is clamped", func(t *testing.T) {
		rec := fx.do(t, http.MethodGet, "/api/pages?pageSize=5000", "", false)
		body := decodeBody(t, rec)
		meta := body["meta"].(map[string]any)
		pageMeta := meta["pagination"].(map[string]any)
		if pageMeta["pageSize"] != float64(50) {
			t.Fatalf("pageSize = %v, want clamp to 50", pageMeta["pageSize"])
		}
	})
}

func TestWrongBearerToken(t *testing.T) {
	fx := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/pages", strings.NewReader(`{"title":"X"}`))
	req.Header.Set("Authorization", "Bearer wrong-secret")
	rec := httptest.NewRecorder()
	fx.mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestMediaEndpoints(t *testing.T) {
	fx := newFixture(t)

	rec := fx.do(t, http.MethodPost, "/api/media", `{"url":"https://cdn.example.com/x.png","width":100}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatalf("no id in %q", rec.Body.String())
	}

	t.Run("get by id", func(t *testing.T) {
		rec := fx.do(t, http.MethodGet, "/api/media/"+id, "", false)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("malformed id rejected", func(t *testing.T) {
		rec := fx.do(t, http.MethodGet, "/api/media/not-a-uuid", "", false)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid url rejected", func(t *testing.T) {
		rec := fx.do(t, http.MethodPost, "/api/media", `{"url":"not a url"}`, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := fx.do(t, http.MethodDelete, "/api/media/"+id, "", true)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
	})
}

func TestArticleEndpointRelations(t *testing.T) {
	fx := newFixture(t)

	rec := fx.do(t, http.MethodPost, "/api/authors", `{"name":"Casey Reporter"}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("author status = %d, body %s", rec.Code, rec.Body.String())
	}
	authorID := decodeBody(t, rec)["data"].(map[string]any)["id"].(string)

	rec = fx.do(t, http.MethodPost, "/api/articles", `{"title":"Scoop","body":"big news","author_id":"`+authorID+`"}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("article status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = fx.do(t, http.MethodGet, "/api/articles/scoop?populate=author", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	data := decodeBody(t, rec)["data"].(map[string]any)
	author, ok := data["author"].(map[string]any)
	if !ok {
		t.Fatalf("author not populated: %q", rec.Body.String())
	}
	if author["slug"] != "casey-reporter" {
		t.Fatalf("author slug = %v", author["slug"])
	}

	rec = fx.do(t, http.MethodPost, "/api/articles", `{"title":"Orphan","author_id":"00000000-0000-0000-0000-0000000000aa"}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing author status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestProductEndpointPriceValidation(t *testing.T) {
	fx := newFixture(t)

	rec := fx.do(t, http.MethodPost, "/api/products", `{"name":"Gizmo","price":-2}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if name := errorName(t, rec); name != "validation_failed" {
		t.Fatalf("error name = %q, want validation_failed", name)
	}

	rec = fx.do(t, http.MethodPost, "/api/products", `{"name":"Gizmo","price":19.5}`, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}
