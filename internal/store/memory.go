// internal/store/memory.go
//
// In-memory session store for games in progress.
//
// Characteristics:
//   - Stores values keyed by game ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Tracks last access so idle games can be swept.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game sessions.
type Store[T any] interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, id string, v T) error

	// Get retrieves a session by ID and marks it as used.
	Get(ctx context.Context, id string) (T, error)

	// Sweep removes sessions not used since cutoff and returns them.
	Sweep(cutoff time.Time) []T

	// Len reports how many sessions are held.
	Len() int
}

type entry[T any] struct {
	v        T
	lastSeen time.Time
}

// memory is an in-memory map-based Store implementation.
type memory[T any] struct {
	mu    sync.RWMutex         // guards items
	items map[string]*entry[T] // keyed by game ID
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore[T any]() Store[T] {
	return &memory[T]{items: make(map[string]*entry[T]), now: time.Now}
}

func (m *memory[T]) Save(ctx context.Context, id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = &entry[T]{v: v, lastSeen: m.now()}
	return nil
}

// Get takes the write lock because it refreshes lastSeen.
func (m *memory[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	e.lastSeen = m.now()
	return e.v, nil
}

func (m *memory[T]) Sweep(cutoff time.Time) []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []T
	for id, e := range m.items {
		if e.lastSeen.Before(cutoff) {
			out = append(out, e.v)
			delete(m.items, id)
		}
	}
	return out
}

func (m *memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
