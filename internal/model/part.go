package model

import (
	"sort"
	"time"
)

// PartCategory is the closed set of catalogue categories.
type PartCategory string

const (
	CategoryEngine      PartCategory = "Engine"
	CategoryBrakes      PartCategory = "Brakes"
	CategorySuspension  PartCategory = "Suspension"
	CategoryExhaust     PartCategory = "Exhaust"
	CategoryLighting    PartCategory = "Lighting"
	CategoryWheels      PartCategory = "Wheels & Tires"
	CategoryAccessories PartCategory = "Accessories"
)

// Categories returns all part categories in display-menu order.
func Categories() []PartCategory {
	return []PartCategory{
		CategoryEngine,
		CategoryBrakes,
		CategorySuspension,
		CategoryExhaust,
		CategoryLighting,
		CategoryWheels,
		CategoryAccessories,
	}
}

// Valid reports whether c is one of the known categories.
func (c PartCategory) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// StockEntry is one snapshot in a part's stock history.
type StockEntry struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

// SaleEntry is one dispatch event in a part's sales log.
type SaleEntry struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

// Part is a catalogue entry. ID and DateAdded are immutable after creation;
// StockHistory is append-only and gains an entry whenever Stock changes.
type Part struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	SKU          string       `json:"sku"`
	Category     PartCategory `json:"category"`
	Stock        int          `json:"stock"`
	Price        float64      `json:"price"`
	Description  string       `json:"description"`
	ImageURL     string       `json:"imageUrl"`
	DateAdded    time.Time    `json:"dateAdded"`
	SalesLog     []SaleEntry  `json:"salesLog"`
	StockHistory []StockEntry `json:"stockHistory"`
}

// PartDraft carries the caller-supplied fields for creating a part.
// ID, DateAdded and both logs are assigned by the inventory service.
type PartDraft struct {
	Name        string       `json:"name"`
	SKU         string       `json:"sku"`
	Category    PartCategory `json:"category"`
	Stock       int          `json:"stock"`
	Price       float64      `json:"price"`
	Description string       `json:"description"`
	ImageURL    string       `json:"imageUrl"`
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the stored slices.
func (p Part) Clone() Part {
	out := p
	if p.SalesLog != nil {
		out.SalesLog = make([]SaleEntry, len(p.SalesLog))
		copy(out.SalesLog, p.SalesLog)
	}
	if p.StockHistory != nil {
		out.StockHistory = make([]StockEntry, len(p.StockHistory))
		copy(out.StockHistory, p.StockHistory)
	}
	return out
}

// SortedStockHistory returns the history newest-first for display.
// Storage order stays append-only; only the view is sorted.
func (p Part) SortedStockHistory() []StockEntry {
	out := make([]StockEntry, len(p.StockHistory))
	copy(out, p.StockHistory)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
