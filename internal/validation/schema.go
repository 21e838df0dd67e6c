package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// Issue is a single validation failure located inside a payload.
type Issue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// PayloadError reports the full set of issues a payload produced against a
// section schema. It unwraps to ErrSchemaValidation.
type PayloadError struct {
	Issues []Issue
	Cause  error
}

func (e *PayloadError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.render())
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadError) Unwrap() error {
	return ErrSchemaValidation
}

func (i Issue) render() string {
	location := strings.TrimSpace(i.Location)
	switch {
	case location == "":
		location = "#"
	case !strings.HasPrefix(location, "#"):
		location = "#" + location
	}
	if i.Message == "" {
		return location
	}
	return fmt.Sprintf("%s: %s", location, i.Message)
}

// ValidateSchema ensures a section schema compiles. Empty schemas are
// permitted and validate nothing.
func ValidateSchema(schema map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	if _, err := compile(schema); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return nil
}

// ValidatePayload checks payload against schema, returning a *PayloadError
// on failure. A nil payload is treated as an empty object.
func ValidatePayload(schema, payload map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	if payload == nil {
		payload = map[string]any{}
	}

	compiled, err := compile(schema)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if err := compiled.Validate(payload); err != nil {
		return &PayloadError{Issues: Issues(err), Cause: err}
	}
	return nil
}

// Issues flattens any validation error into located issues. Unrecognised
// errors degrade to a single message-only issue.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var schemaErr *jsonschema.ValidationError
	if errors.As(err, &schemaErr) && schemaErr != nil {
		return flatten(schemaErr, nil)
	}
	return []Issue{{Message: err.Error()}}
}

func compile(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// flatten collects leaf causes; branch nodes only aggregate their children.
func flatten(node *jsonschema.ValidationError, issues []Issue) []Issue {
	if node == nil {
		return issues
	}
	if len(node.Causes) == 0 {
		return append(issues, Issue{
			Location: strings.TrimSpace(node.InstanceLocation),
			Message:  strings.TrimSpace(node.Message),
		})
	}
	for _, cause := range node.Causes {
		issues = flatten(cause, issues)
	}
	return issues
}
