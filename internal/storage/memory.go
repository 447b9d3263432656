package storage

import (
	"sort"
	"sync"
)

// MemoryBackend keeps values in a map. It is intended for tests and for the
// throwaway "memory" storage mode.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryBackend returns an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: map[string]string{}}
}

// Get implements Backend
func (b *MemoryBackend) Get(key string) (string, bool, error) {
	b.mu.RLock()
	value, ok := b.values[key]
	b.mu.RUnlock()
	return value, ok, nil
}

// Set implements Backend
func (b *MemoryBackend) Set(key, value string) error {
	b.mu.Lock()
	b.values[key] = value
	b.mu.Unlock()
	return nil
}

// Remove implements Backend
func (b *MemoryBackend) Remove(key string) error {
	b.mu.Lock()
	delete(b.values, key)
	b.mu.Unlock()
	return nil
}

// Keys implements Lister
func (b *MemoryBackend) Keys() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.values))
	for key := range b.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
