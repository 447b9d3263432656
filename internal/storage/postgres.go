package storage

import (
	"context"
	"time"

	"github.com/jonathan/resume-editor/internal/db"
)

// DefaultPostgresTimeout bounds each backend call
const DefaultPostgresTimeout = 5 * time.Second

// PostgresBackend adapts the resume_kv table to the synchronous Backend interface
type PostgresBackend struct {
	db      *db.DB
	timeout time.Duration
}

// NewPostgresBackend wraps an open database. A non-positive timeout uses
// DefaultPostgresTimeout.
func NewPostgresBackend(database *db.DB, timeout time.Duration) *PostgresBackend {
	if timeout <= 0 {
		timeout = DefaultPostgresTimeout
	}
	return &PostgresBackend{db: database, timeout: timeout}
}

// OpenPostgres connects, ensures the table exists and returns the backend
// along with the database handle the caller must close.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresBackend, *db.DB, error) {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, nil, err
	}
	return NewPostgresBackend(database, DefaultPostgresTimeout), database, nil
}

// Get implements Backend
func (b *PostgresBackend) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	value, ok, err := b.db.GetValue(ctx, key)
	if err != nil {
		return "", false, &BackendError{Op: "get", Key: key, Cause: err}
	}
	return value, ok, nil
}

// Set implements Backend
func (b *PostgresBackend) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if err := b.db.SetValue(ctx, key, value); err != nil {
		return &BackendError{Op: "set", Key: key, Cause: err}
	}
	return nil
}

// Remove implements Backend
func (b *PostgresBackend) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if err := b.db.DeleteValue(ctx, key); err != nil {
		return &BackendError{Op: "remove", Key: key, Cause: err}
	}
	return nil
}

// Keys implements Lister
func (b *PostgresBackend) Keys() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	keys, err := b.db.ListKeys(ctx)
	if err != nil {
		return nil, &BackendError{Op: "list", Cause: err}
	}
	return keys, nil
}
