package store

import (
	"context"
	"slices"
	"sync"

	"github.com/archscope/archscope/pkg/report"
)

// MemoryStore is an in-process ReportStore for development and tests.
// Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*report.Report
	order   []string // insertion order, oldest first
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]*report.Report)}
}

// Put stores a report under its run ID.
func (s *MemoryStore) Put(ctx context.Context, r *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reports[r.ID]; !exists {
		s.order = append(s.order, r.ID)
	}
	s.reports[r.ID] = r
	return nil
}

// Get retrieves a report by run ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, NotFound(id)
	}
	return r, nil
}

// List returns run IDs, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := slices.Clone(s.order)
	slices.Reverse(ids)
	return ids, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements ReportStore.
var _ ReportStore = (*MemoryStore)(nil)
