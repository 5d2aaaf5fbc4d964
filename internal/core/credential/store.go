// Package credential holds the Bitpanda API key for the lifetime of the
// process. The key is never persisted.
package credential

import (
	"strings"
	"sync"
)

// Store is the single shared cell for the API key. A SetKey call is visible
// to subsequent reads; an in-flight request that already captured the old
// key keeps using it.
type Store struct {
	mu  sync.RWMutex
	key string
}

// NewStore creates a store, optionally seeded with an initial key.
func NewStore(key string) *Store {
	return &Store{key: key}
}

// HasKey reports whether a non-blank key is configured.
func (s *Store) HasKey() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.TrimSpace(s.key) != ""
}

// SetKey overwrites the stored key unconditionally. The value itself is not
// validated here; validation is a separate explicit call against the API.
func (s *Store) SetKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
}

// Key returns the current raw key.
func (s *Store) Key() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}
