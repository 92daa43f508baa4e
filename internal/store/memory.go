// internal/store/memory.go
//
// In-memory implementation of the snapshot Store.
// Used by default: snapshots survive suspend/resume within one process and
// are lost when it restarts.
//
// Characteristics:
//   - Stores quiz.Snapshot values keyed by snapshot ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Errors with ErrNotFound for missing IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/geoquiz/internal/quiz"
)

// ErrNotFound is returned by Get when no snapshot exists for an ID.
var ErrNotFound = errors.New("snapshot not found")

// Store defines the persistence interface for session snapshots.
// Only the current question index is ever persisted.
type Store interface {
	// Save persists or replaces the snapshot under id.
	Save(ctx context.Context, id string, snap quiz.Snapshot) error

	// Get retrieves the snapshot saved under id.
	// Returns ErrNotFound if there is none.
	Get(ctx context.Context, id string) (quiz.Snapshot, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex             // guards snaps map
	snaps map[string]quiz.Snapshot // keyed by snapshot ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{snaps: make(map[string]quiz.Snapshot)}
}

// Save adds or updates the snapshot in the map.
func (m *memory) Save(ctx context.Context, id string, snap quiz.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[id] = snap
	return nil
}

// Get looks up a snapshot by ID.
func (m *memory) Get(ctx context.Context, id string) (quiz.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.snaps[id]; ok {
		return s, nil
	}
	return quiz.Snapshot{}, ErrNotFound
}
