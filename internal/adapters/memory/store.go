package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]tree.Snapshot
	mu   sync.RWMutex
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		data: make(map[string]tree.Snapshot),
	}
}

// Save records a copy of snap.
func (s *Store) Save(ctx context.Context, treeName string, snap *tree.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[treeName] = clone(*snap)
	return nil
}

// Load returns a copy so callers can't mutate the store through the slices.
func (s *Store) Load(ctx context.Context, treeName string) (*tree.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[treeName]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	ret := clone(snap)
	return &ret, nil
}

// Delete forgets treeName.
func (s *Store) Delete(ctx context.Context, treeName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, treeName)
	return nil
}

// List returns the recorded tree names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func clone(snap tree.Snapshot) tree.Snapshot {
	snap.Nodes = slices.Clone(snap.Nodes)
	snap.Running = slices.Clone(snap.Running)
	snap.PreviouslyRunning = slices.Clone(snap.PreviouslyRunning)
	return snap
}
