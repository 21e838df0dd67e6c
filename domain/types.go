package domain

import internaldomain "github.com/goliatone/go-catalog/internal/domain"

// Status represents lifecycle states for catalog entities.
type Status = internaldomain.Status

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPublished identifies content available to consumers.
	StatusPublished = internaldomain.StatusPublished
)

// EntityKind identifies one of the catalog entity families.
type EntityKind = internaldomain.EntityKind

const (
	KindPage     = internaldomain.KindPage
	KindProduct  = internaldomain.KindProduct
	KindArticle  = internaldomain.KindArticle
	KindAuthor   = internaldomain.KindAuthor
	KindCategory = internaldomain.KindCategory
	KindMedia    = internaldomain.KindMedia
)

// Relation names an association that can be eager-loaded on read.
type Relation = internaldomain.Relation
