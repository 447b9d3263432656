// Package schemas provides JSON Schema validation for persisted resume data.
package schemas

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"

	schemafiles "github.com/jonathan/resume-editor/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
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

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// compiled caches one embedded schema after its first use
type compiled struct {
	name   string
	once   sync.Once
	schema *gojsonschema.Schema
	err    error
}

func (c *compiled) load() (*gojsonschema.Schema, error) {
	c.once.Do(func() {
		data, err := fs.ReadFile(schemafiles.FS, c.name)
		if err != nil {
			c.err = &SchemaLoadError{Path: c.name, Message: "embedded schema missing", Cause: err}
			return
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			c.err = &SchemaLoadError{Path: c.name, Message: "schema failed to compile", Cause: err}
			return
		}
		c.schema = schema
	})
	return c.schema, c.err
}

var (
	versionStoreSchema = &compiled{name: schemafiles.VersionStoreFile}
	resumeSchema       = &compiled{name: schemafiles.ResumeFile}
	updateSchema       = &compiled{name: schemafiles.DocumentUpdateFile}
)

// ValidateVersionStore validates a serialized version store root
func ValidateVersionStore(data []byte) error {
	return validateWith(versionStoreSchema, data)
}

// ValidateDocument validates a serialized resume document, such as the
// legacy single-document blob
func ValidateDocument(data []byte) error {
	return validateWith(resumeSchema, data)
}

// ValidateDocumentUpdate validates a document sent by the editor. Unlike
// ValidateDocument it does not require updatedAt, which the save stamps.
func ValidateDocumentUpdate(data []byte) error {
	return validateWith(updateSchema, data)
}

func validateWith(c *compiled, data []byte) error {
	schema, err := c.load()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to read document for %s: %w", c.name, err)
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
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
