package status

import (
	"github.com/goliatone/go-catalog/internal/domain"
)

// Filter is the resolved visibility rule applied to catalog reads.
type Filter string

const (
	// FilterPublished restricts reads to published rows.
	FilterPublished Filter = "published"
	// FilterDraft restricts reads to draft rows.
	FilterDraft Filter = "draft"
	// FilterNone applies no status predicate; drafts and published rows are
	// both visible.
	FilterNone Filter = "none"
)

// Status returns the domain status the filter selects. The second return is
// false for FilterNone, which selects every row.
func (f Filter) Status() (domain.Status, bool) {
	switch f {
	case FilterPublished:
		return domain.StatusPublished, true
	case FilterDraft:
		return domain.StatusDraft, true
	default:
		return "", false
	}
}

// Resolve maps caller identity and the requested status onto an effective
// visibility filter. The function is total: every input combination yields
// exactly one filter.
//
// Unauthenticated callers always read published content, whatever they
// requested. Authenticated callers get drafts when they ask for drafts, the
// unfiltered view when they ask for nothing, and published rows for any
// other request, including an explicit "published".
func Resolve(isAuthenticated bool, requested string) Filter {
	if !isAuthenticated {
		return FilterPublished
	}

	parsed, ok := domain.ParseStatus(requested)
	if !ok {
		if requested == "" {
			return FilterNone
		}
		return FilterPublished
	}

	if parsed == domain.StatusDraft {
		return FilterDraft
	}
	return FilterPublished
}
