package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for development and testing.
type MemoryStore struct {
	mu        sync.RWMutex
	workflows map[string]Workflow
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{workflows: make(map[string]Workflow)}
}

// Create stores a new workflow.
func (s *MemoryStore) Create(ctx context.Context, w Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.workflows[w.ID]; exists {
		return Conflict(w.ID)
	}
	s.workflows[w.ID] = w
	return nil
}

// Get retrieves a workflow by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workflows[id]
	if !ok {
		return Workflow{}, NotFound(id)
	}
	return w, nil
}

// Update replaces an existing workflow's name and graph.
func (s *MemoryStore) Update(ctx context.Context, w Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.workflows[w.ID]
	if !ok {
		return NotFound(w.ID)
	}
	cur.Name = w.Name
	cur.Graph = w.Graph
	cur.UpdatedAt = time.Now().UTC()
	s.workflows[w.ID] = cur
	return nil
}

// Delete removes a workflow.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workflows[id]; !ok {
		return NotFound(id)
	}
	delete(s.workflows, id)
	return nil
}

// List returns all workflows, most recently updated first.
func (s *MemoryStore) List(ctx context.Context) ([]Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Workflow, 0, len(s.workflows))
	for _, w := range s.workflows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
