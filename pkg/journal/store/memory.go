package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory listener store for testing and single-run
// setups. Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[pairKey]Record
	closed  bool
}

// pairKey identifies a record by its uniqueness invariant.
type pairKey struct {
	path        string
	destination string
}

// NewMemoryStore creates a new in-memory listener store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[pairKey]Record),
	}
}

// ListListeners implements Store.
func (m *MemoryStore) ListListeners(_ context.Context, scope string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	recs := make([]Record, 0)
	for _, rec := range m.records {
		if rec.Scope == scope {
			recs = append(recs, rec)
		}
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Path != recs[j].Path {
			return recs[i].Path < recs[j].Path
		}
		return recs[i].Destination < recs[j].Destination
	})

	return recs, nil
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, path, destination string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Record{}, ErrStoreClosed
	}

	rec, ok := m.records[pairKey{path, destination}]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Put implements Store.
func (m *MemoryStore) Put(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	rec.UpdatedAt = time.Now().UTC()
	m.records[pairKey{rec.Path, rec.Destination}] = rec
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, path, destination string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.records, pairKey{path, destination})
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.records = nil
	return nil
}

// Len returns the number of stored records across all scopes.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
