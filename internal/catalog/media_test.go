package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	"github.com/google/uuid"
)

func newMediaFixture(t *testing.T) catalog.MediaService {
	t.Helper()
	clock := newTestClock()
	return catalog.NewMediaService(catalog.NewMemoryMediaStore(), nil,
		catalog.WithClock(clock.Now),
		catalog.WithIDGenerator(sequentialIDs()),
	)
}

// stubStorage resolves every upload to a fixed CDN descriptor.
type stubStorage struct {
	describes int
}

func (s *stubStorage) Describe(_ context.Context, upload interfaces.MediaUpload) (interfaces.MediaDescriptor, error) {
	s.describes++
	return interfaces.MediaDescriptor{
		URL:    "https://cdn.example.com/" + upload.Name,
		Width:  1024,
		Height: 768,
		Size:   upload.Size,
		Format: "png",
	}, nil
}

func TestMediaCreate(t *testing.T) {
	svc := newMediaFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, catalog.CreateMediaRequest{Viewer: anon, URL: "https://cdn.example.com/a.png"}); !errors.Is(err, catalog.ErrUnauthorized) {
		t.Fatalf("anonymous create err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Create(ctx, catalog.CreateMediaRequest{Viewer: authed}); !errors.Is(err, catalog.ErrMediaURLRequired) {
		t.Fatalf("missing url err = %v, want ErrMediaURLRequired", err)
	}
	if _, err := svc.Create(ctx, catalog.CreateMediaRequest{Viewer: authed, URL: "not a url"}); !errors.Is(err, catalog.ErrMediaURLRequired) {
		t.Fatalf("malformed url err = %v, want ErrMediaURLRequired", err)
	}
	if _, err := svc.Create(ctx, catalog.CreateMediaRequest{Viewer: authed, URL: "https://cdn.example.com/a.png", Width: -1}); err == nil {
		t.Fatal("negative width accepted")
	}

	created, err := svc.Create(ctx, catalog.CreateMediaRequest{
		Viewer: authed,
		URL:    "https://cdn.example.com/a.png",
		Width:  800,
		Height: 600,
		Size:   123456,
		Format: "png",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("id not assigned")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.URL != created.URL || got.Width != 800 || got.Format != "png" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestMediaIngest(t *testing.T) {
	storage := &stubStorage{}
	svc := catalog.NewMediaService(catalog.NewMemoryMediaStore(), storage,
		catalog.WithIDGenerator(sequentialIDs()),
	)
	ctx := context.Background()

	if _, err := svc.Ingest(ctx, catalog.IngestMediaRequest{Viewer: anon}); !errors.Is(err, catalog.ErrUnauthorized) {
		t.Fatalf("anonymous ingest err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Ingest(ctx, catalog.IngestMediaRequest{Viewer: authed}); !errors.Is(err, catalog.ErrMediaUploadInvalid) {
		t.Fatalf("nameless upload err = %v, want ErrMediaUploadInvalid", err)
	}

	created, err := svc.Ingest(ctx, catalog.IngestMediaRequest{
		Viewer: authed,
		Upload: interfaces.MediaUpload{Name: "banner.png", ContentType: "image/png", Size: 2048},
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if created.URL != "https://cdn.example.com/banner.png" {
		t.Fatalf("url = %q", created.URL)
	}
	if created.Width != 1024 || created.Size != 2048 || created.Format != "png" {
		t.Fatalf("descriptor not recorded: %+v", created)
	}
	if storage.describes != 1 {
		t.Fatalf("describes = %d, want 1", storage.describes)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.URL != created.URL {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestMediaIngestWithoutStorage(t *testing.T) {
	svc := newMediaFixture(t)

	_, err := svc.Ingest(context.Background(), catalog.IngestMediaRequest{
		Viewer: authed,
		Upload: interfaces.MediaUpload{Name: "orphan.png"},
	})
	if err == nil {
		t.Fatal("ingest succeeded without a storage collaborator")
	}
}

func TestMediaGetMissing(t *testing.T) {
	svc := newMediaFixture(t)

	_, err := svc.Get(context.Background(), uuid.New())
	if !catalog.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestMediaDelete(t *testing.T) {
	svc := newMediaFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalog.CreateMediaRequest{Viewer: authed, URL: "https://cdn.example.com/b.png"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Keys that are not identifiers address nothing.
	deleted, err := svc.Delete(ctx, catalog.DeleteRequest{Viewer: authed, Key: "some-slug"})
	if err != nil || deleted {
		t.Fatalf("non-uuid key delete = %v, %v", deleted, err)
	}

	deleted, err = svc.Delete(ctx, catalog.DeleteRequest{Viewer: authed, Key: created.ID.String()})
	if err != nil || !deleted {
		t.Fatalf("Delete = %v, %v", deleted, err)
	}

	deleted, err = svc.Delete(ctx, catalog.DeleteRequest{Viewer: authed, Key: created.ID.String()})
	if err != nil || deleted {
		t.Fatalf("second delete = %v, %v", deleted, err)
	}
}
