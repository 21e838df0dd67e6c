package catalog

import "strings"

// Sortable columns per entity kind. Keys accept both snake_case and the
// camelCase aliases the query surface uses.
var (
	pageSortColumns = map[string]string{
		"slug":         "slug",
		"title":        "title",
		"status":       "status",
		"created_at":   "created_at",
		"createdat":    "created_at",
		"updated_at":   "updated_at",
		"updatedat":    "updated_at",
		"published_at": "published_at",
		"publishedat":  "published_at",
	}
	articleSortColumns = pageSortColumns
	productSortColumns = map[string]string{
		"slug":         "slug",
		"name":         "name",
		"price":        "price",
		"status":       "status",
		"created_at":   "created_at",
		"createdat":    "created_at",
		"updated_at":   "updated_at",
		"updatedat":    "updated_at",
		"published_at": "published_at",
		"publishedat":  "published_at",
	}
	taxonomySortColumns = map[string]string{
		"slug":       "slug",
		"name":       "name",
		"status":     "status",
		"created_at": "created_at",
		"createdat":  "created_at",
		"updated_at": "updated_at",
		"updatedat":  "updated_at",
	}
)

// defaultSort orders listings by update recency.
var defaultSort = SortOption{Field: "updated_at", Desc: true}

// parseSort resolves a raw "field:direction" pair against the allowed column
// set. Unrecognized fields or directions fall back to the default rather
// than failing the listing.
func parseSort(raw string, allowed map[string]string) SortOption {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return defaultSort
	}

	field := trimmed
	direction := ""
	if idx := strings.IndexByte(trimmed, ':'); idx >= 0 {
		field = trimmed[:idx]
		direction = trimmed[idx+1:]
	}

	column, ok := allowed[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return defaultSort
	}

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", "asc":
		return SortOption{Field: column}
	case "desc":
		return SortOption{Field: column, Desc: true}
	default:
		return defaultSort
	}
}
