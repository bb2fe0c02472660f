// Package settings provides the key-value store that persists user preferences.
package settings

import (
	"errors"
	"sync"
)

// ErrInvalidKey is returned when a key is empty.
var ErrInvalidKey = errors.New("settings: invalid key")

// Store is a small durable key-value store for user preferences.
// Implementations are read when a component initializes and written when it changes.
type Store interface {
	// Get returns the stored value and whether it was present.
	Get(key string) (string, bool)
	// Set records value under key.
	Set(key, value string) error
}

// MemoryStore is an in-process Store, used by the CLI and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set implements Store.
func (m *MemoryStore) Set(key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
