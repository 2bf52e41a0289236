package kv

import (
	"context"
	"sync"
)

// memory is an in-memory map-based KV.
type memory struct {
	mu     sync.RWMutex      // guards values
	values map[string]string
}

// NewMemory constructs an empty in-memory KV.
func NewMemory() KV {
	return &memory{values: make(map[string]string)}
}

func (m *memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
