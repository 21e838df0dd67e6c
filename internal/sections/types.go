package sections

// DiscriminatorKey is the attribute identifying which variant a block is.
const DiscriminatorKey = "type"

// RawSection is one undecoded content block, either supplied by a caller on
// write or loaded back from storage. Attributes live inline next to the
// discriminator, e.g. {"type":"hero","title":"X"}.
type RawSection map[string]any

// Section is a normalized content block. Attributes holds every key except
// the discriminator. Known reports whether the variant was registered when
// the section was decoded; unknown variants round-trip opaquely so content
// written under a newer variant set survives older readers.
type Section struct {
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Known      bool           `json:"-"`
}

// Raw re-assembles the stored wire shape, discriminator inline.
func (s Section) Raw() RawSection {
	out := make(RawSection, len(s.Attributes)+1)
	for key, value := range s.Attributes {
		out[key] = value
	}
	if s.Type != "" {
		out[DiscriminatorKey] = s.Type
	}
	return out
}

// Encode converts normalized sections back into their stored representation,
// preserving order verbatim.
func Encode(list []Section) []RawSection {
	if list == nil {
		return nil
	}
	out := make([]RawSection, len(list))
	for i, section := range list {
		out[i] = section.Raw()
	}
	return out
}

// Definition declares a section variant: its discriminator plus a JSON
// schema describing the attribute contract.
type Definition struct {
	Type   string
	Schema map[string]any
}
