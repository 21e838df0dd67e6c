package populate

import (
	"strings"

	"github.com/goliatone/go-catalog/internal/domain"
)

// Wildcard expands to the entity kind's default relation set.
const Wildcard = "*"

// defaults is the static table of relations loaded for the wildcard, keyed
// by entity kind. It is fixed at compile time; resolution never introspects
// models.
var defaults = map[domain.EntityKind][]domain.Relation{
	domain.KindArticle: {domain.RelationAuthor, domain.RelationCategory, domain.RelationMedia},
	domain.KindProduct: {domain.RelationAuthor, domain.RelationCategory, domain.RelationMedia},
}

// known is the static table of associations each entity kind supports.
var known = map[domain.EntityKind][]domain.Relation{
	domain.KindArticle: {domain.RelationAuthor, domain.RelationCategory, domain.RelationMedia},
	domain.KindProduct: {domain.RelationAuthor, domain.RelationCategory, domain.RelationMedia},
}

// Known returns the associations registered for an entity kind.
func Known(kind domain.EntityKind) []domain.Relation {
	out := make([]domain.Relation, len(known[kind]))
	copy(out, known[kind])
	return out
}

// Defaults returns the wildcard relation set for an entity kind.
func Defaults(kind domain.EntityKind) []domain.Relation {
	out := make([]domain.Relation, len(defaults[kind]))
	copy(out, defaults[kind])
	return out
}

// Resolve expands a requested relation list into the associations to
// eager-load. The resolver is permissive: names outside the known set are
// dropped silently so stale clients never break listings. An absent or empty
// request loads nothing; the wildcard loads the kind's default set.
func Resolve(requested string, kind domain.EntityKind) []domain.Relation {
	trimmed := strings.TrimSpace(requested)
	if trimmed == "" {
		return nil
	}
	if trimmed == Wildcard {
		return Defaults(kind)
	}

	allowed := make(map[domain.Relation]struct{}, len(known[kind]))
	for _, rel := range known[kind] {
		allowed[rel] = struct{}{}
	}

	out := make([]domain.Relation, 0, len(allowed))
	seen := make(map[domain.Relation]struct{}, len(allowed))
	for _, part := range strings.Split(trimmed, ",") {
		name := domain.Relation(strings.ToLower(strings.TrimSpace(part)))
		if name == "" {
			continue
		}
		if _, ok := allowed[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
