package storage

import (
	"context"
	"sync"

	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
)

// MemoryInspectionRepository keeps inspection history in memory.
type MemoryInspectionRepository struct {
	mu    sync.RWMutex
	byID  map[string]*entity.Inspection
	order []string // insertion order, oldest first
}

// NewMemoryInspectionRepository creates an empty in-memory history.
func NewMemoryInspectionRepository() *MemoryInspectionRepository {
	return &MemoryInspectionRepository{
		byID: make(map[string]*entity.Inspection),
	}
}

// Save persists an inspection keyed by its request ID.
func (r *MemoryInspectionRepository) Save(ctx context.Context, insp *entity.Inspection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := insp.Record.RequestID
	if _, exists := r.byID[id]; !exists {
		r.order = append(r.order, id)
	}
	r.byID[id] = insp

	return nil
}

// Get returns the inspection with the given request ID.
func (r *MemoryInspectionRepository) Get(ctx context.Context, requestID string) (*entity.Inspection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	insp, exists := r.byID[requestID]
	if !exists {
		return nil, port.ErrNotFound
	}
	return insp, nil
}

// List returns the most recent inspections, newest first. A limit of
// zero or less returns everything.
func (r *MemoryInspectionRepository) List(ctx context.Context, limit int) ([]*entity.Inspection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.order)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]*entity.Inspection, 0, n)
	for i := len(r.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.byID[r.order[i]])
	}
	return out, nil
}

var _ port.InspectionRepository = (*MemoryInspectionRepository)(nil)
