package pagination

// DefaultPage and DefaultPageSize apply when the caller omits parameters.
const (
	DefaultPage     = 1
	DefaultPageSize = 25
)

// Result carries the offset used for the query and the metadata block
// returned to callers alongside listings.
type Result struct {
	Offset    int `json:"-"`
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// Normalize replaces out-of-range page parameters with defaults. Page numbers
// beyond the last page are left alone: they address a valid, empty window.
func Normalize(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// Paginate converts (page, pageSize, total) into a consistent offset and
// metadata block. Offset is monotonic in page and never negative; pageCount
// is zero when total is zero.
func Paginate(page, pageSize, total int) Result {
	page, pageSize = Normalize(page, pageSize)
	if total < 0 {
		total = 0
	}

	pageCount := 0
	if total > 0 {
		pageCount = (total + pageSize - 1) / pageSize
	}

	return Result{
		Offset:    (page - 1) * pageSize,
		Page:      page,
		PageSize:  pageSize,
		PageCount: pageCount,
		Total:     total,
	}
}
