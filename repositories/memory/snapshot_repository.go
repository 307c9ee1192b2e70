// Package memory keeps snapshots in process memory. It backs the service when
// no database is configured and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/thoufiq2326/NexusAI/repositories"
)

// SnapshotRepository stores encoded snapshot values in a map
type SnapshotRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
	saves  int
}

// NewSnapshotRepository creates an empty in-memory snapshot repository
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{values: make(map[string][]byte)}
}

// Save replaces every key
func (r *SnapshotRepository) Save(ctx context.Context, snapshot *repositories.Snapshot) error {
	values, err := repositories.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = values
	r.saves++
	return nil
}

// Load returns a fresh copy of the stored snapshot
func (r *SnapshotRepository) Load(ctx context.Context) (*repositories.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.values) == 0 {
		return nil, repositories.ErrSnapshotNotFound
	}
	return repositories.DecodeSnapshot(r.values)
}

// Clear drops every key
func (r *SnapshotRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = make(map[string][]byte)
	return nil
}

// HealthCheck always succeeds
func (r *SnapshotRepository) HealthCheck(ctx context.Context) error {
	return nil
}

// Saves returns how many times Save succeeded
func (r *SnapshotRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
