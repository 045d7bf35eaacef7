// Package schemas guards the boundary between the model and the rest of
// the application. Anything a model produces that the code will act on,
// like an intent classification, is checked against an embedded JSON
// Schema first. Schemas ship inside the binary, so validation never
// touches the filesystem.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// FieldError is one schema violation, located by field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every violation found in one document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed:\n")
	for i, fe := range ve.Errors {
		fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return b.String()
}

// SchemaLoadError means the schema or document could not be loaded at all,
// as opposed to loading fine and failing validation.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateJSONString checks a JSON document against a schema, both given
// as strings. Returns nil on success, a *ValidationError listing each
// violation, or a *SchemaLoadError when either input cannot be parsed.
func ValidateJSONString(schemaContent, jsonContent string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}
	return &ValidationError{Errors: fieldErrors(result)}
}

func fieldErrors(result *gojsonschema.Result) []FieldError {
	errs := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		errs = append(errs, FieldError{Field: field, Message: desc.Description()})
	}
	return errs
}
