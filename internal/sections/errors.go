package sections

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-catalog/internal/validation"
)

var (
	ErrTypeMissing       = errors.New("sections: discriminator is required")
	ErrTypeUnknown       = errors.New("sections: unknown section type")
	ErrSectionInvalid    = errors.New("sections: section attributes invalid")
	ErrSchemaInvalid     = errors.New("sections: variant schema invalid")
	ErrTypeRequired      = errors.New("sections: variant type is required")
	ErrAlreadyRegistered = errors.New("sections: variant already registered")
)

// SectionError reports a validation failure for one element of a section
// sequence, naming the offending index and field.
type SectionError struct {
	Index  int
	Type   string
	Field  string
	Issues []validation.Issue
	cause  error
}

func (e *SectionError) Error() string {
	label := e.Type
	if label == "" {
		label = "section"
	}
	field := strings.TrimSpace(e.Field)
	if field != "" {
		return fmt.Sprintf("%v: index=%d type=%s field=%s", e.cause, e.Index, label, field)
	}
	return fmt.Sprintf("%v: index=%d type=%s", e.cause, e.Index, label)
}

func (e *SectionError) Unwrap() error {
	return e.cause
}

func newSectionError(index int, sectionType string, cause error, issues []validation.Issue) *SectionError {
	field := ""
	if len(issues) > 0 {
		field = strings.Trim(strings.TrimSpace(issues[0].Location), "/")
		field = strings.ReplaceAll(field, "/", ".")
	}
	return &SectionError{
		Index:  index,
		Type:   sectionType,
		Field:  field,
		Issues: issues,
		cause:  cause,
	}
}
