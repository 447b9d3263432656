// Package storage provides the key-value backends the version store persists through.
package storage

import "fmt"

// Persisted keys
const (
	// VersionStoreKey holds the versioned store root
	VersionStoreKey = "resume_builder_versions_v1"
	// LegacyDocumentKey holds a single pre-versioning document; it is consumed
	// once by migration and then removed
	LegacyDocumentKey = "resume_builder_v2"
)

// Backend is a synchronous string key-value facility
type Backend interface {
	// Get returns the value under key; ok is false when the key is absent
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value
	Set(key, value string) error
	// Remove deletes key; removing an absent key is not an error
	Remove(key string) error
}

// Lister is implemented by backends that can enumerate their keys
type Lister interface {
	// Keys returns every stored key in lexical order
	Keys() ([]string, error)
}

// BackendError represents a failed backend operation
type BackendError struct {
	Op    string
	Key   string
	Cause error
}

func (e *BackendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("storage %s %q failed", e.Op, e.Key)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}
