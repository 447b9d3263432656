package storage

import (
	"context"
	"fmt"
)

// Backend kinds accepted by Open
const (
	KindFile     = "file"
	KindPostgres = "postgres"
	KindMemory   = "memory"
)

// Options selects and parameterizes a backend
type Options struct {
	Kind        string
	DataDir     string
	DatabaseURL string
}

// Open returns the backend named by opts.Kind and a function that releases
// it. The release function is never nil.
func Open(ctx context.Context, opts Options) (Backend, func(), error) {
	switch opts.Kind {
	case KindFile, "":
		backend, err := NewFileBackend(opts.DataDir)
		if err != nil {
			return nil, func() {}, err
		}
		return backend, func() {}, nil
	case KindMemory:
		return NewMemoryBackend(), func() {}, nil
	case KindPostgres:
		if opts.DatabaseURL == "" {
			return nil, func() {}, fmt.Errorf("database URL is required for postgres storage")
		}
		backend, database, err := OpenPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, func() {}, err
		}
		return backend, database.Close, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown storage backend %q", opts.Kind)
	}
}
