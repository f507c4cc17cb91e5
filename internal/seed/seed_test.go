package seed

import (
	"testing"
	"time"
)

func TestSamplePartsCanonicalOrder(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	parts := SampleParts(now)

	if len(parts) != 7 {
		t.Fatalf("Expected 7 sample parts, got %d", len(parts))
	}

	seen := make(map[string]bool)
	for i, p := range parts {
		if seen[p.ID] {
			t.Errorf("Duplicate id %s", p.ID)
		}
		seen[p.ID] = true

		if !p.Category.Valid() {
			t.Errorf("Part %s has unknown category %q", p.ID, p.Category)
		}
		if p.Stock < 0 || p.Price < 0 {
			t.Errorf("Part %s has negative stock or price", p.ID)
		}
		if len(p.StockHistory) == 0 {
			t.Errorf("Part %s has no stock history", p.ID)
		}
		if p.SalesLog == nil {
			t.Errorf("Part %s has nil sales log", p.ID)
		}

		if i > 0 && parts[i-1].DateAdded.Before(p.DateAdded) {
			t.Errorf("Parts out of order at %d: %v before %v", i, parts[i-1].DateAdded, p.DateAdded)
		}
	}
}

func TestSamplePartsFeedEveryReportWindow(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	parts := SampleParts(now)

	daily, weekly, yearly := 0, 0, 0
	for _, p := range parts {
		for _, s := range p.SalesLog {
			d := now.Sub(s.Date)
			if s.Date.Year() == now.Year() {
				yearly++
			}
			if d >= 0 && d <= 7*24*time.Hour {
				weekly++
			}
			if s.Date.Equal(now) {
				daily++
			}
		}
	}

	if daily == 0 {
		t.Error("Expected at least one sale today")
	}
	if weekly == 0 {
		t.Error("Expected at least one sale inside the weekly window")
	}
	if yearly == 0 {
		t.Error("Expected at least one sale this year")
	}

	// A part added today keeps the end-of-day report non-empty.
	newToday := false
	for _, p := range parts {
		if p.DateAdded.Equal(now) {
			newToday = true
		}
	}
	if !newToday {
		t.Error("Expected a part added today")
	}
}
