package repository

import (
	"context"

	"terreins-inventory-api/internal/model"
)

// PartRepository defines part catalogue data access methods.
//
// List must return parts ordered by date added, newest first, with ties
// broken by insertion order (most recently inserted first). The invariants
// on a part record (history append rule, sales log preservation) are
// enforced by the inventory service; repositories store records verbatim.
type PartRepository interface {
	// List returns a snapshot of all parts in canonical order.
	List(ctx context.Context) ([]model.Part, error)

	// Get returns the part with the given id, or nil if absent.
	Get(ctx context.Context, id string) (*model.Part, error)

	// Upsert inserts a new part or replaces an existing one by id.
	// Replacing keeps the record's insertion position.
	Upsert(ctx context.Context, part model.Part) error

	// Delete removes the part with the given id. Reports whether a
	// record was removed; absence is not an error.
	Delete(ctx context.Context, id string) (bool, error)

	// Stats returns statistics about the underlying store.
	Stats(ctx context.Context) (map[string]interface{}, error)

	// Close closes the repository connection.
	Close() error
}
