package monitoring

import (
	"context"
	"sync"
	"sync/atomic"
)

// Repository persists whole collections. Backends only expose get-all and
// replace-all; every mutation is a read-modify-replace done by the Store.
//
// The repository also owns the mutation counter, so every Store sharing a
// backend sees one version sequence. BumpVersion is called after the
// mutated collection has been saved.
type Repository interface {
	Load(ctx context.Context, c Collection) ([]Record, error)
	Save(ctx context.Context, c Collection, records []Record) error
	Version(ctx context.Context) (int64, error)
	BumpVersion(ctx context.Context) (int64, error)
}

// MemoryRepository keeps collections in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	data    map[Collection][]Record
	version atomic.Int64
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[Collection][]Record)}
}

// Load returns a copy of the collection.
func (m *MemoryRepository) Load(_ context.Context, c Collection) ([]Record, error) {
	if !c.Valid() {
		return nil, ErrUnknownCollection
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneAll(m.data[c]), nil
}

// Save replaces the collection with a copy of records.
func (m *MemoryRepository) Save(_ context.Context, c Collection, records []Record) error {
	if !c.Valid() {
		return ErrUnknownCollection
	}
	m.mu.Lock()
	m.data[c] = cloneAll(records)
	m.mu.Unlock()
	return nil
}

// Version returns the current mutation counter.
func (m *MemoryRepository) Version(context.Context) (int64, error) {
	return m.version.Load(), nil
}

// BumpVersion advances the mutation counter.
func (m *MemoryRepository) BumpVersion(context.Context) (int64, error) {
	return m.version.Add(1), nil
}
