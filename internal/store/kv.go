// Package store persists named field-schema templates. The collection
// lives under a single key in a small key-value backend; every mutation
// rewrites the whole collection. Read-modify-write is not atomic
// against concurrent writers — acceptable because the intended
// execution context is single in-flight user actions.
package store

import (
	"context"
	"sync"
)

// KV is the minimal key-value surface a template backend must provide.
// Implementations exist for SQLite, a plain JSON file, Firestore, and
// an in-memory map for tests.
type KV interface {
	// Get returns the stored payload for key, with found=false when the
	// key has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set writes the payload for key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

// MemKV is an in-memory KV, used in tests and as a throwaway backend.
type MemKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string][]byte)}
}

func (m *MemKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (m *MemKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}
