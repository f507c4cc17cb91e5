package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"terreins-inventory-api/internal/model"
	"terreins-inventory-api/internal/repository"
	"terreins-inventory-api/pkg/apierror"
	"terreins-inventory-api/pkg/uid"
)

// InventoryService is the single source of truth for the part catalogue.
// It enforces the record invariants on every mutation: stock never goes
// negative, stock history gains an entry exactly when stock changes,
// the sales log and the id/dateAdded pair survive updates untouched.
//
// The clock and id generator are injectable so history timestamps and
// aggregation windows are deterministic under test.
type InventoryService struct {
	repo repository.PartRepository

	now   func() time.Time
	newID func() string

	// version increments on every mutation; report caching keys off it.
	version atomic.Int64
}

// NewInventoryService creates a new inventory service.
// Returns nil if repo is nil (required dependency).
func NewInventoryService(repo repository.PartRepository) *InventoryService {
	if repo == nil {
		return nil
	}
	return &InventoryService{
		repo:  repo,
		now:   time.Now,
		newID: uid.New,
	}
}

// Version returns the current mutation counter.
func (s *InventoryService) Version() int64 {
	return s.version.Load()
}

func (s *InventoryService) bump() {
	s.version.Add(1)
}

// List returns a snapshot of the catalogue, newest first.
func (s *InventoryService) List(ctx context.Context) ([]model.Part, error) {
	return s.repo.List(ctx)
}

// Get returns the part with the given id, or nil if absent.
func (s *InventoryService) Get(ctx context.Context, id string) (*model.Part, error) {
	return s.repo.Get(ctx, id)
}

// Create validates a draft and stores it as a new part. The id and
// dateAdded are assigned here; the stock history is seeded with a single
// entry at the creation timestamp and the sales log starts empty.
func (s *InventoryService) Create(ctx context.Context, draft model.PartDraft) (*model.Part, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	now := s.now()
	part := model.Part{
		ID:          s.newID(),
		Name:        draft.Name,
		SKU:         draft.SKU,
		Category:    draft.Category,
		Stock:       draft.Stock,
		Price:       draft.Price,
		Description: draft.Description,
		ImageURL:    draft.ImageURL,
		DateAdded:   now,
		SalesLog:    []model.SaleEntry{},
		StockHistory: []model.StockEntry{
			{Date: now, Quantity: draft.Stock},
		},
	}

	if err := s.repo.Upsert(ctx, part); err != nil {
		return nil, fmt.Errorf("failed to store part: %w", err)
	}
	s.bump()
	return &part, nil
}

// Update replaces the stored record with the supplied one, preserving the
// existing id, dateAdded and sales log, and appending a stock history
// entry iff the stock changed. Updating an unknown id behaves as a create
// with the supplied payload, re-seeding both logs.
func (s *InventoryService) Update(ctx context.Context, part model.Part) (*model.Part, error) {
	if err := validateDraft(draftOf(part)); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, part.ID)
	if err != nil {
		return nil, err
	}

	updated := part.Clone()
	if existing == nil {
		if updated.ID == "" {
			updated.ID = s.newID()
		}
		if updated.DateAdded.IsZero() {
			updated.DateAdded = s.now()
		}
		updated.SalesLog = []model.SaleEntry{}
		updated.StockHistory = []model.StockEntry{
			{Date: updated.DateAdded, Quantity: updated.Stock},
		}
	} else {
		updated.ID = existing.ID
		updated.DateAdded = existing.DateAdded
		updated.SalesLog = existing.SalesLog
		if updated.Stock != existing.Stock {
			updated.StockHistory = append(existing.StockHistory,
				model.StockEntry{Date: s.now(), Quantity: updated.Stock})
		} else {
			updated.StockHistory = existing.StockHistory
		}
	}

	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to store part: %w", err)
	}
	s.bump()
	return &updated, nil
}

// Delete removes a part. Reports whether a record was removed so the
// caller can clear a stale selection; absence is a no-op, not an error.
func (s *InventoryService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.bump()
	}
	return deleted, nil
}

// RecordSale appends a dispatch event to a part's sales log and decrements
// its stock, clamped at zero. The stock history rule applies: an entry is
// appended only when the stock level actually changed. A zero time means
// "now". Returns nil when the part does not exist.
func (s *InventoryService) RecordSale(ctx context.Context, id string, quantity int, at time.Time) (*model.Part, error) {
	if quantity <= 0 {
		return nil, apierror.ValidationError("invalid sale",
			apierror.FieldError{Field: "quantity", Message: "must be a positive integer"})
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if at.IsZero() {
		at = s.now()
	}

	updated := existing.Clone()
	updated.SalesLog = append(updated.SalesLog, model.SaleEntry{Date: at, Quantity: quantity})

	newStock := updated.Stock - quantity
	if newStock < 0 {
		newStock = 0
	}
	if newStock != updated.Stock {
		updated.Stock = newStock
		updated.StockHistory = append(updated.StockHistory,
			model.StockEntry{Date: at, Quantity: newStock})
	}

	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to store part: %w", err)
	}
	s.bump()
	return &updated, nil
}

// AdjustStock applies a relative stock adjustment, clamped at zero on the
// way down. Returns nil when the part does not exist.
func (s *InventoryService) AdjustStock(ctx context.Context, id string, delta int) (*model.Part, error) {
	if delta == 0 {
		return nil, apierror.ValidationError("invalid adjustment",
			apierror.FieldError{Field: "delta", Message: "must be a non-zero integer"})
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	updated := existing.Clone()
	newStock := updated.Stock + delta
	if newStock < 0 {
		newStock = 0
	}
	if newStock != updated.Stock {
		updated.Stock = newStock
		updated.StockHistory = append(updated.StockHistory,
			model.StockEntry{Date: s.now(), Quantity: newStock})
	}

	if err := s.repo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to store part: %w", err)
	}
	s.bump()
	return &updated, nil
}

// Seed loads parts verbatim when the backing store is empty. Used to load
// the sample catalogue on first boot; an already-populated store is left
// alone.
func (s *InventoryService) Seed(ctx context.Context, parts []model.Part) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	// Insert oldest first so insertion order matches date order.
	for i := len(parts) - 1; i >= 0; i-- {
		if err := s.repo.Upsert(ctx, parts[i]); err != nil {
			return 0, fmt.Errorf("failed to seed part %s: %w", parts[i].ID, err)
		}
	}
	s.bump()
	return len(parts), nil
}

// draftOf projects the caller-editable fields of a part for validation.
func draftOf(p model.Part) model.PartDraft {
	return model.PartDraft{
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		Stock:       p.Stock,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}

// validateDraft enforces the store-boundary validation rules: required
// text fields, a known category, and non-negative stock and price.
func validateDraft(d model.PartDraft) error {
	var details []apierror.FieldError

	if d.Name == "" {
		details = append(details, apierror.FieldError{Field: "name", Message: "is required"})
	}
	if d.SKU == "" {
		details = append(details, apierror.FieldError{Field: "sku", Message: "is required"})
	}
	if d.Description == "" {
		details = append(details, apierror.FieldError{Field: "description", Message: "is required"})
	}
	if !d.Category.Valid() {
		details = append(details, apierror.FieldError{Field: "category", Message: "is not a known category"})
	}
	if d.Stock < 0 {
		details = append(details, apierror.FieldError{Field: "stock", Message: "must not be negative"})
	}
	if d.Price < 0 {
		details = append(details, apierror.FieldError{Field: "price", Message: "must not be negative"})
	}

	if len(details) > 0 {
		return apierror.ValidationError("invalid part", details...)
	}
	return nil
}
