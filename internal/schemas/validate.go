// Package schemas validates model-produced JSON against JSON Schemas before
// any lenient decoding is attempted.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError reports the fields that failed schema validation.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError reports problems in the schema itself rather than the
// document being checked.
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateJSONString validates JSON content against a JSON Schema, both
// given as strings. A nil return means the document conforms.
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// JobDetails is the schema for the two-field extraction payload the model
// returns when asked for a posting's title and company. Both snake_case and
// camelCase key spellings are accepted, but at least one title variant and
// the company must be present.
const JobDetails = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "JobDetails",
  "type": "object",
  "properties": {
    "job_title": {"type": "string"},
    "jobTitle": {"type": "string"},
    "company": {"type": "string"}
  },
  "anyOf": [
    {"required": ["job_title", "company"]},
    {"required": ["jobTitle", "company"]}
  ],
  "additionalProperties": false
}`
