package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"terreins-inventory-api/internal/model"
)

// MemoryPartRepository implements PartRepository with an in-process slice.
// This is the default backend; it carries the reference ordering semantics
// that the durable backends must round-trip.
type MemoryPartRepository struct {
	mu    sync.RWMutex
	parts []model.Part
}

// NewMemoryPartRepository creates an empty in-memory part repository.
func NewMemoryPartRepository() *MemoryPartRepository {
	return &MemoryPartRepository{parts: []model.Part{}}
}

// List returns a deep copy of all parts in canonical order.
func (r *MemoryPartRepository) List(ctx context.Context) ([]model.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Part, len(r.parts))
	for i := range r.parts {
		out[i] = r.parts[i].Clone()
	}
	return out, nil
}

// Get returns a copy of the part with the given id, or nil if absent.
func (r *MemoryPartRepository) Get(ctx context.Context, id string) (*model.Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.parts {
		if r.parts[i].ID == id {
			p := r.parts[i].Clone()
			return &p, nil
		}
	}
	return nil, nil
}

// Upsert inserts or replaces a part and restores the canonical order.
// New parts are prepended before the stable sort, so among equal dates
// the most recently inserted part comes first; replaced parts keep
// their position.
func (r *MemoryPartRepository) Upsert(ctx context.Context, part model.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := part.Clone()
	replaced := false
	for i := range r.parts {
		if r.parts[i].ID == stored.ID {
			r.parts[i] = stored
			replaced = true
			break
		}
	}
	if !replaced {
		r.parts = append([]model.Part{stored}, r.parts...)
	}

	sort.SliceStable(r.parts, func(i, j int) bool {
		return r.parts[i].DateAdded.After(r.parts[j].DateAdded)
	})
	return nil
}

// Delete removes the part with the given id if present.
func (r *MemoryPartRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.parts {
		if r.parts[i].ID == id {
			r.parts = append(r.parts[:i], r.parts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Stats returns statistics about the in-memory store.
func (r *MemoryPartRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make(map[string]interface{})
	stats["total_parts"] = len(r.parts)

	outOfStock := 0
	var lastAdded time.Time
	for i := range r.parts {
		if r.parts[i].Stock == 0 {
			outOfStock++
		}
		if r.parts[i].DateAdded.After(lastAdded) {
			lastAdded = r.parts[i].DateAdded
		}
	}
	stats["out_of_stock"] = outOfStock
	if !lastAdded.IsZero() {
		stats["last_part_added"] = lastAdded
	}
	return stats, nil
}

// Close is a no-op for the in-memory backend.
func (r *MemoryPartRepository) Close() error {
	return nil
}

// Ensure MemoryPartRepository implements PartRepository
var _ PartRepository = (*MemoryPartRepository)(nil)
