package versions

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/types"
)

// RawStore is a version store that passed schema validation but has not
// been normalized. Each record's document is still in its generic map form.
type RawStore struct {
	SchemaVersion   int         `json:"schemaVersion"`
	ActiveVersionID string      `json:"activeVersionId"`
	Versions        []RawRecord `json:"versions"`
}

// RawRecord is one version record before normalization
type RawRecord struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Kind      types.VersionKind `json:"kind"`
	Resume    map[string]any    `json:"resume"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// DecodeError explains why a persisted blob was rejected
type DecodeError struct {
	Reason string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("decode failed: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Decode failure reasons
const (
	ReasonMalformed      = "malformed JSON"
	ReasonSchemaMismatch = "schema mismatch"
)

// DecodeStore parses and validates a persisted version store
func DecodeStore(data []byte) (*RawStore, error) {
	if !json.Valid(data) {
		return nil, &DecodeError{Reason: ReasonMalformed}
	}
	if err := schemas.ValidateVersionStore(data); err != nil {
		return nil, &DecodeError{Reason: ReasonSchemaMismatch, Cause: err}
	}

	var raw RawStore
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Reason: ReasonSchemaMismatch, Cause: err}
	}
	return &raw, nil
}

// DecodeLegacyDocument parses and validates a pre-versioning document blob
func DecodeLegacyDocument(data []byte) (map[string]any, error) {
	if !json.Valid(data) {
		return nil, &DecodeError{Reason: ReasonMalformed}
	}
	if err := schemas.ValidateDocument(data); err != nil {
		return nil, &DecodeError{Reason: ReasonSchemaMismatch, Cause: err}
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Reason: ReasonSchemaMismatch, Cause: err}
	}
	return doc, nil
}
