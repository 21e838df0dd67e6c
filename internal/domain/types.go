package domain

import "strings"

// Status represents lifecycle states for catalog entities. A single stored
// row carries its status flag; the draft/published duality is never modelled
// as two rows.
type Status string

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft Status = "draft"
	// StatusPublished identifies content available to consumers.
	StatusPublished Status = "published"
)

// ParseStatus normalizes a raw status string. The second return reports
// whether the input named a known status.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusDraft:
		return StatusDraft, true
	case StatusPublished:
		return StatusPublished, true
	default:
		return "", false
	}
}

// EntityKind identifies one of the catalog entity families.
type EntityKind string

const (
	KindPage     EntityKind = "page"
	KindProduct  EntityKind = "product"
	KindArticle  EntityKind = "article"
	KindAuthor   EntityKind = "author"
	KindCategory EntityKind = "category"
	KindMedia    EntityKind = "media"
)

// Relation names an association that can be eager-loaded on read.
type Relation string

const (
	RelationAuthor   Relation = "author"
	RelationCategory Relation = "category"
	RelationMedia    Relation = "media"
)
