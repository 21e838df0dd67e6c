package validation_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-catalog/internal/validation"
)

func personSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"name"},
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": 1},
			"age":  map[string]any{"type": "integer", "minimum": 0},
		},
	}
}

func TestValidateSchema(t *testing.T) {
	if err := validation.ValidateSchema(personSchema()); err != nil {
		t.Fatalf("valid schema rejected: %v", err)
	}
	if err := validation.ValidateSchema(nil); err != nil {
		t.Fatalf("empty schema should compile: %v", err)
	}
	err := validation.ValidateSchema(map[string]any{"type": 42})
	if !errors.Is(err, validation.ErrSchemaInvalid) {
		t.Fatalf("err = %v, want ErrSchemaInvalid", err)
	}
}

func TestValidatePayload(t *testing.T) {
	schema := personSchema()

	if err := validation.ValidatePayload(schema, map[string]any{"name": "Ada", "age": 36}); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	if err := validation.ValidatePayload(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("empty schema should accept anything: %v", err)
	}

	err := validation.ValidatePayload(schema, map[string]any{"age": -1})
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("err = %v, want ErrSchemaValidation", err)
	}

	issues := validation.Issues(err)
	if len(issues) == 0 {
		t.Fatal("expected issues from failed validation")
	}
	for _, issue := range issues {
		if issue.Message == "" {
			t.Fatalf("issue missing message: %+v", issue)
		}
	}
}

func TestValidatePayloadNilPayload(t *testing.T) {
	err := validation.ValidatePayload(personSchema(), nil)
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("nil payload should fail required check, got %v", err)
	}
}

func TestIssues(t *testing.T) {
	if got := validation.Issues(nil); got != nil {
		t.Fatalf("Issues(nil) = %v", got)
	}
	got := validation.Issues(errors.New("boom"))
	if len(got) != 1 || got[0].Message != "boom" {
		t.Fatalf("Issues(plain error) = %v", got)
	}
}
