package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// FileBackend stores each key as one JSON file inside a directory
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend rooted at dir, creating it if needed
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is empty")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir returns the directory the backend writes to
func (b *FileBackend) Dir() string {
	return b.dir
}

// Path returns the file that holds key
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

// Get implements Backend
func (b *FileBackend) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(b.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, &BackendError{Op: "get", Key: key, Cause: err}
	}
	return string(data), true, nil
}

// Set implements Backend. The value is written to a temporary file and
// renamed into place so readers never see a partial write.
func (b *FileBackend) Set(key, value string) error {
	tmp, err := os.CreateTemp(b.dir, ".tmp-*")
	if err != nil {
		return &BackendError{Op: "set", Key: key, Cause: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &BackendError{Op: "set", Key: key, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &BackendError{Op: "set", Key: key, Cause: err}
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		_ = os.Remove(tmpName)
		return &BackendError{Op: "set", Key: key, Cause: err}
	}
	if err := os.Rename(tmpName, b.Path(key)); err != nil {
		_ = os.Remove(tmpName)
		return &BackendError{Op: "set", Key: key, Cause: err}
	}
	return nil
}

// Remove implements Backend
func (b *FileBackend) Remove(key string) error {
	err := os.Remove(b.Path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &BackendError{Op: "remove", Key: key, Cause: err}
	}
	return nil
}

// Keys implements Lister. Names are reported as stored, so a key that
// needed sanitizing comes back in its file-safe form.
func (b *FileBackend) Keys() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, &BackendError{Op: "list", Cause: err}
	}
	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".tmp-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}
