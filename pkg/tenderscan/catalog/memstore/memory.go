package memstore

import (
	"context"
	"sync"

	"github.com/tenderscan/tenderscan/pkg/tenderscan/catalog"
)

// Store is an in-memory implementation of catalog.Store, used by tests
// and by callers that supply a catalog without persistence.
type Store struct {
	mu       sync.RWMutex
	managers map[string]catalog.Manager
	order    []string // insertion order, drives List
}

// New creates an empty in-memory catalog store.
func New() *Store {
	return &Store{managers: make(map[string]catalog.Manager)}
}

// Close implements catalog.Store.
func (s *Store) Close() error { return nil }

// Upsert inserts or replaces an entry, keyed by ID. A new ID is
// appended to the iteration order; an existing one keeps its slot.
func (s *Store) Upsert(ctx context.Context, m catalog.Manager) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.managers[m.ID]; !ok {
		s.order = append(s.order, m.ID)
	}
	s.managers[m.ID] = copyManager(m)
	return nil
}

// Get returns an entry by ID.
func (s *Store) Get(ctx context.Context, id string) (catalog.Manager, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.managers[id]
	if !ok {
		return catalog.Manager{}, false, nil
	}
	return copyManager(m), true, nil
}

// List returns all entries in insertion order.
func (s *Store) List(ctx context.Context) ([]catalog.Manager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Manager, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copyManager(s.managers[id]))
	}
	return out, nil
}

// Delete removes an entry. Deleting an unknown ID is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.managers[id]; !ok {
		return nil
	}
	delete(s.managers, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ReplaceAll swaps the whole catalog for the given entries.
func (s *Store) ReplaceAll(ctx context.Context, managers []catalog.Manager) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.managers = make(map[string]catalog.Manager, len(managers))
	s.order = s.order[:0]
	for _, m := range managers {
		if _, ok := s.managers[m.ID]; !ok {
			s.order = append(s.order, m.ID)
		}
		s.managers[m.ID] = copyManager(m)
	}
	return nil
}

func copyManager(m catalog.Manager) catalog.Manager {
	out := m
	out.Synonyms = append([]string(nil), m.Synonyms...)
	out.Exclusions = append([]string(nil), m.Exclusions...)
	return out
}
