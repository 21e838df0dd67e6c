package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/logging"
	"github.com/goliatone/go-catalog/internal/pagination"
	"github.com/goliatone/go-catalog/internal/populate"
	"github.com/goliatone/go-catalog/internal/status"
	"github.com/goliatone/go-catalog/pkg/interfaces"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// serviceBase carries the collaborators every entity service shares.
type serviceBase struct {
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger
}

// ServiceOption configures a service at construction time.
type ServiceOption func(*serviceBase)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *serviceBase) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator for new records.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *serviceBase) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *serviceBase) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newServiceBase(opts ...ServiceOption) serviceBase {
	base := serviceBase{
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}
	return base
}

// buildListQuery resolves the read-path query surface for listings: status
// visibility from the viewer, relations from the populate expression, sort
// against the entity's column set, and a normalized pagination window.
func buildListQuery(req ListRequest, kind domain.EntityKind, sortable map[string]string) (ListQuery, int, int) {
	page, pageSize := pagination.Normalize(req.Page, req.PageSize)
	return ListQuery{
		Filter:    status.Resolve(req.Authenticated, req.Status),
		Relations: populate.Resolve(req.Populate, kind),
		Sort:      parseSort(req.Sort, sortable),
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}, page, pageSize
}

// buildGetQuery resolves the read-path query surface for single lookups.
func buildGetQuery(opts ReadOptions, kind domain.EntityKind) GetQuery {
	return GetQuery{
		Filter:    status.Resolve(opts.Authenticated, opts.Status),
		Relations: populate.Resolve(opts.Populate, kind),
	}
}

// paginateMeta builds the pagination metadata returned alongside listings.
func paginateMeta(page, pageSize, total int) pagination.Result {
	return pagination.Paginate(page, pageSize, total)
}

// requireAuthenticated gates write paths. Credential verification happens
// outside the catalog; services only consume the resolved boolean.
func requireAuthenticated(v Viewer) error {
	if !v.Authenticated {
		return wrapUnauthorizedError(ErrUnauthorized)
	}
	return nil
}

// normalizeSlug trims and slugifies the caller-supplied value.
func normalizeSlug(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrSlugRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" || !slug.IsValid(normalized) {
		return "", fmt.Errorf("%w: %q", ErrSlugInvalid, raw)
	}
	return normalized, nil
}

// deriveSlug prefers the explicit slug and falls back to slugifying the
// display value.
func deriveSlug(explicit, fallback string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return normalizeSlug(explicit)
	}
	return normalizeSlug(fallback)
}

// chooseStatus parses the requested write status, defaulting to published
// when absent.
func chooseStatus(raw string) (domain.Status, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.StatusPublished, nil
	}
	parsed, ok := domain.ParseStatus(trimmed)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrStatusInvalid, raw)
	}
	return parsed, nil
}

// transition applies an explicit status change, stamping or clearing the
// publication timestamp. Returns false when the requested status matches the
// current one.
func (s serviceBase) transition(requested string, current *domain.Status, publishedAt **time.Time) (bool, error) {
	parsed, ok := domain.ParseStatus(strings.TrimSpace(requested))
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrStatusInvalid, requested)
	}
	if parsed == *current {
		return false, nil
	}
	*current = parsed
	if parsed == domain.StatusPublished {
		now := s.now()
		*publishedAt = &now
	} else {
		*publishedAt = nil
	}
	return true, nil
}

// publishedStamp returns the publication timestamp for a freshly created
// record, nil for drafts.
func (s serviceBase) publishedStamp(st domain.Status) *time.Time {
	if st != domain.StatusPublished {
		return nil
	}
	now := s.now()
	return &now
}
