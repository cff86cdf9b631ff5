package issuer

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrRecordNotFound is returned when no record has the requested id.
var ErrRecordNotFound = errors.New("record not found")

// Store persists issued pass records.
type Store interface {
	// Save stores a record. Saving an existing id replaces it.
	Save(ctx context.Context, rec Record) error

	// Get returns the record with id.
	Get(ctx context.Context, id string) (Record, error)

	// ListBySuffix returns records for an account suffix, oldest first.
	// An empty suffix lists everything.
	ListBySuffix(ctx context.Context, suffix string) ([]Record, error)

	// Close releases the store's resources.
	Close() error
}

// MemoryStore is a Store held in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return rec, nil
}

// ListBySuffix implements Store.
func (s *MemoryStore) ListBySuffix(_ context.Context, suffix string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, rec := range s.records {
		if suffix == "" || rec.PrimaryAccountSuffix == suffix {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
