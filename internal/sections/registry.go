package sections

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-catalog/internal/validation"
	"github.com/goliatone/go-slug"
)

// Registry stores the known section variants and validates section sequences
// against them. Write paths go through Normalize; read paths go through
// Decode, which never fails and never drops unknown variants.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Default returns a registry seeded with the built-in variants.
func Default() *Registry {
	r := NewRegistry()
	for _, def := range builtinDefinitions() {
		if err := r.Register(def); err != nil {
			panic(fmt.Sprintf("sections: builtin %q: %v", def.Type, err))
		}
	}
	return r
}

// Register adds a variant definition. The discriminator is slug-normalized
// and the schema must compile.
func (r *Registry) Register(def Definition) error {
	name := normalizeType(def.Type)
	if name == "" {
		return ErrTypeRequired
	}
	if err := validation.ValidateSchema(def.Schema); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrSchemaInvalid, name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[name]; exists {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, name)
	}
	def.Type = name
	r.defs[name] = def
	return nil
}

// Types lists the registered discriminators in stable order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.defs))
	for name := range r.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the definition registered for a discriminator.
func (r *Registry) Lookup(sectionType string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[normalizeType(sectionType)]
	return def, ok
}

// Normalize validates an ordered sequence of raw blocks for persistence.
// Every element must carry a registered discriminator and satisfy that
// variant's attribute contract. Output order equals input order; sections
// are never reordered, deduplicated, or merged.
func (r *Registry) Normalize(raw []RawSection) ([]Section, error) {
	if raw == nil {
		return nil, nil
	}

	out := make([]Section, 0, len(raw))
	for index, element := range raw {
		sectionType, attributes := split(element)
		if sectionType == "" {
			return nil, newSectionError(index, "", ErrTypeMissing, nil)
		}

		def, ok := r.Lookup(sectionType)
		if !ok {
			return nil, newSectionError(index, sectionType, ErrTypeUnknown, nil)
		}

		if err := validation.ValidatePayload(def.Schema, attributes); err != nil {
			return nil, newSectionError(index, sectionType, ErrSectionInvalid, validation.Issues(err))
		}

		out = append(out, Section{Type: def.Type, Attributes: attributes, Known: true})
	}
	return out, nil
}

// Decode converts persisted blocks for reading. Stored content is already
// trusted, so no validation runs; discriminators the registry no longer (or
// does not yet) know become opaque attribute bags instead of read failures.
func (r *Registry) Decode(raw []RawSection) []Section {
	if raw == nil {
		return nil
	}

	out := make([]Section, 0, len(raw))
	for _, element := range raw {
		sectionType, attributes := split(element)
		_, known := r.Lookup(sectionType)
		out = append(out, Section{
			Type:       sectionType,
			Attributes: attributes,
			Known:      known && sectionType != "",
		})
	}
	return out
}

// split separates the discriminator from the remaining attributes.
func split(element RawSection) (string, map[string]any) {
	attributes := make(map[string]any, len(element))
	sectionType := ""
	for key, value := range element {
		if key == DiscriminatorKey {
			if typed, ok := value.(string); ok {
				sectionType = strings.TrimSpace(typed)
			}
			continue
		}
		attributes[key] = value
	}
	return sectionType, attributes
}

func normalizeType(value string) string {
	candidate := strings.TrimSpace(value)
	if candidate == "" {
		return ""
	}
	normalizer := slug.Default()
	normalized, err := normalizer.Normalize(candidate)
	if err != nil || normalized == "" {
		return strings.ToLower(candidate)
	}
	return normalized
}
