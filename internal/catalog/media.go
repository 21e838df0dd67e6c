package catalog

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	"github.com/google/uuid"
)

// mediaService implements MediaService. Media rows are immutable descriptors
// recorded once and shared by reference; there is no update path.
type mediaService struct {
	serviceBase
	store     MediaStore
	describer interfaces.MediaStore
}

// NewMediaService constructs the media service. The describer is the
// external binary storage collaborator and may be nil, which disables
// Ingest.
func NewMediaService(store MediaStore, describer interfaces.MediaStore, opts ...ServiceOption) MediaService {
	return &mediaService{
		serviceBase: newServiceBase(opts...),
		store:       store,
		describer:   describer,
	}
}

func (s *mediaService) Create(ctx context.Context, req CreateMediaRequest) (*Media, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return nil, err
	}

	if req.URL == "" {
		return nil, wrapValidationError(ErrMediaURLRequired)
	}
	if err := validation.Validate(req.URL, is.URL); err != nil {
		return nil, wrapValidationError(fmt.Errorf("%w: %v", ErrMediaURLRequired, err))
	}
	if err := (validation.Errors{
		"width":  validation.Validate(req.Width, validation.Min(0)),
		"height": validation.Validate(req.Height, validation.Min(0)),
		"size":   validation.Validate(req.Size, validation.Min(int64(0))),
	}).Filter(); err != nil {
		return nil, wrapValidationError(err)
	}

	record := &Media{
		ID:        s.id(),
		URL:       req.URL,
		Width:     req.Width,
		Height:    req.Height,
		Size:      req.Size,
		Format:    req.Format,
		CreatedAt: s.now(),
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, wrapStoreError(err, "media")
	}

	s.logger.Info("media recorded", "id", created.ID.String(), "url", created.URL)
	return created, nil
}

func (s *mediaService) Ingest(ctx context.Context, req IngestMediaRequest) (*Media, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return nil, err
	}
	if s.describer == nil {
		return nil, wrapStoreError(ErrStoreUnavailable, "media storage")
	}
	if req.Upload.Name == "" {
		return nil, wrapValidationError(ErrMediaUploadInvalid)
	}

	descriptor, err := s.describer.Describe(ctx, req.Upload)
	if err != nil {
		return nil, wrapStoreError(err, "media storage")
	}

	return s.Create(ctx, CreateMediaRequest{
		Viewer: req.Viewer,
		URL:    descriptor.URL,
		Width:  descriptor.Width,
		Height: descriptor.Height,
		Size:   descriptor.Size,
		Format: descriptor.Format,
	})
}

func (s *mediaService) Get(ctx context.Context, id uuid.UUID) (*Media, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, wrapStoreError(err, "media")
	}
	return record, nil
}

func (s *mediaService) Delete(ctx context.Context, req DeleteRequest) (bool, error) {
	if err := requireAuthenticated(req.Viewer); err != nil {
		return false, err
	}

	id, err := uuid.Parse(req.Key)
	if err != nil {
		return false, nil
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, wrapStoreError(err, "media")
	}
	if deleted {
		s.logger.Info("media deleted", "id", id.String())
	}
	return deleted, nil
}
