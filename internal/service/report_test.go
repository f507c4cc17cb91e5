package service

import (
	"context"
	"testing"
	"time"

	"terreins-inventory-api/internal/cache"
	"terreins-inventory-api/internal/model"
	"terreins-inventory-api/internal/repository"
)

func TestComputeDashboard(t *testing.T) {
	parts := []model.Part{
		{Stock: 5, Price: 10.0},  // low stock
		{Stock: 10, Price: 2.5},  // exactly at threshold: not low
		{Stock: 0, Price: 99.0},  // low stock
		{Stock: 100, Price: 1.0},
	}

	m := ComputeDashboard(parts)

	if m.TotalItems != 4 {
		t.Errorf("Expected 4 total items, got %d", m.TotalItems)
	}
	want := 5*10.0 + 10*2.5 + 0*99.0 + 100*1.0
	if m.TotalStockValue != want {
		t.Errorf("Expected stock value %.2f, got %.2f", want, m.TotalStockValue)
	}
	if m.LowStockCount != 2 {
		t.Errorf("Expected 2 low-stock parts, got %d", m.LowStockCount)
	}
}

func TestComputeDashboardEmpty(t *testing.T) {
	m := ComputeDashboard(nil)
	if m.TotalItems != 0 || m.TotalStockValue != 0 || m.LowStockCount != 0 {
		t.Errorf("Expected zero metrics for empty snapshot, got %+v", m)
	}
}

func TestSummaryWeeklyWindowIsExactDuration(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	parts := []model.Part{
		{
			ID: "p1", Category: model.CategoryEngine, Price: 10,
			SalesLog: []model.SaleEntry{
				// 2024-06-04T00:00:00Z is within 168h of 2024-06-10T15:00:00Z.
				{Date: time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), Quantity: 2},
				// 2024-06-02T23:00:00Z is 183h ago: excluded.
				{Date: time.Date(2024, 6, 2, 23, 0, 0, 0, time.UTC), Quantity: 7},
				// Exactly 168h ago: still included.
				{Date: now.Add(-7 * 24 * time.Hour), Quantity: 1},
				// Future-dated: excluded.
				{Date: now.Add(time.Minute), Quantity: 5},
			},
		},
	}

	s := ComputeDispatchSummary(parts, model.PeriodWeekly, now)

	if s.TotalUnitsSold != 3 {
		t.Errorf("Expected 3 units in window, got %d", s.TotalUnitsSold)
	}
	if s.UniqueDispatchedItems != 1 {
		t.Errorf("Expected 1 unique item, got %d", s.UniqueDispatchedItems)
	}
	if s.TotalSalesValue != 30 {
		t.Errorf("Expected sales value 30, got %.2f", s.TotalSalesValue)
	}
}

func TestSummaryDailyIsCalendarDay(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 30, 0, 0, time.UTC)

	parts := []model.Part{
		{
			ID: "p1", Category: model.CategoryBrakes, Price: 5,
			SalesLog: []model.SaleEntry{
				{Date: time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC), Quantity: 4}, // same day, later hour
				{Date: time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC), Quantity: 9}, // yesterday
			},
		},
	}

	s := ComputeDispatchSummary(parts, model.PeriodDaily, now)
	if s.TotalUnitsSold != 4 {
		t.Errorf("Expected same-calendar-day sale counted, got %d units", s.TotalUnitsSold)
	}
}

func TestSummaryYearlyIsCalendarYear(t *testing.T) {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	parts := []model.Part{
		{
			ID: "p1", Category: model.CategoryExhaust, Price: 1,
			SalesLog: []model.SaleEntry{
				{Date: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), Quantity: 3}, // same year, future month
				{Date: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), Quantity: 8}, // last year
			},
		},
	}

	s := ComputeDispatchSummary(parts, model.PeriodYearly, now)
	if s.TotalUnitsSold != 3 {
		t.Errorf("Expected only same-year sales, got %d units", s.TotalUnitsSold)
	}
}

func TestSummaryBestSellingCategory(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	sale := func(q int) model.SaleEntry {
		return model.SaleEntry{Date: now.Add(-time.Hour), Quantity: q}
	}

	t.Run("clear winner", func(t *testing.T) {
		parts := []model.Part{
			{ID: "a", Category: model.CategoryEngine, SalesLog: []model.SaleEntry{sale(2)}},
			{ID: "b", Category: model.CategoryBrakes, SalesLog: []model.SaleEntry{sale(5)}},
		}
		s := ComputeDispatchSummary(parts, model.PeriodWeekly, now)
		if s.BestSellingCategory != string(model.CategoryBrakes) {
			t.Errorf("Expected Brakes, got %s", s.BestSellingCategory)
		}
	})

	t.Run("tie keeps first encountered", func(t *testing.T) {
		parts := []model.Part{
			{ID: "a", Category: model.CategoryLighting, SalesLog: []model.SaleEntry{sale(4)}},
			{ID: "b", Category: model.CategoryEngine, SalesLog: []model.SaleEntry{sale(4)}},
		}
		s := ComputeDispatchSummary(parts, model.PeriodWeekly, now)
		if s.BestSellingCategory != string(model.CategoryLighting) {
			t.Errorf("Expected Lighting on tie, got %s", s.BestSellingCategory)
		}
	})

	t.Run("empty window", func(t *testing.T) {
		parts := []model.Part{
			{ID: "a", Category: model.CategoryEngine, SalesLog: []model.SaleEntry{
				{Date: now.Add(-30 * 24 * time.Hour), Quantity: 10},
			}},
		}
		s := ComputeDispatchSummary(parts, model.PeriodWeekly, now)
		if s.BestSellingCategory != model.NoBestSeller {
			t.Errorf("Expected %q, got %s", model.NoBestSeller, s.BestSellingCategory)
		}
		if s.TotalUnitsSold != 0 || s.UniqueDispatchedItems != 0 || s.TotalSalesValue != 0 {
			t.Errorf("Expected zero totals, got %+v", s)
		}
	})
}

func TestSummaryUniqueItemsCountedOnce(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	parts := []model.Part{
		{
			ID: "p1", Category: model.CategoryEngine, Price: 2,
			SalesLog: []model.SaleEntry{
				{Date: now.Add(-time.Hour), Quantity: 1},
				{Date: now.Add(-2 * time.Hour), Quantity: 3},
			},
		},
	}

	s := ComputeDispatchSummary(parts, model.PeriodWeekly, now)
	if s.UniqueDispatchedItems != 1 {
		t.Errorf("Expected part counted once across multiple sales, got %d", s.UniqueDispatchedItems)
	}
	if s.TotalUnitsSold != 4 {
		t.Errorf("Expected 4 units, got %d", s.TotalUnitsSold)
	}
}

func TestComputeEndOfDayOverlap(t *testing.T) {
	now := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)

	parts := []model.Part{
		{ID: "new-instock", Name: "A", SKU: "A1", Stock: 4, Price: 10, DateAdded: now.Add(-2 * time.Hour)},
		{ID: "new-empty", Name: "B", SKU: "B1", Stock: 0, Price: 50, DateAdded: now.Add(-time.Hour)},
		{ID: "old-empty", Name: "C", SKU: "C1", Stock: 0, Price: 5, DateAdded: now.Add(-48 * time.Hour)},
		{ID: "old-instock", Name: "D", SKU: "D1", Stock: 9, Price: 1, DateAdded: now.Add(-72 * time.Hour)},
	}

	r := ComputeEndOfDay(parts, now)

	if r.NewPartsCount != 2 {
		t.Errorf("Expected 2 new parts, got %d", r.NewPartsCount)
	}
	if r.OutOfStockCount != 2 {
		t.Errorf("Expected 2 out-of-stock parts, got %d", r.OutOfStockCount)
	}
	if r.ValueOfNewStock != 40 {
		t.Errorf("Expected new stock value 40, got %.2f", r.ValueOfNewStock)
	}

	// A part added today with zero stock appears in both lists.
	inNew, inOut := false, false
	for _, p := range r.NewPartsToday {
		if p.ID == "new-empty" {
			inNew = true
		}
	}
	for _, p := range r.OutOfStockParts {
		if p.ID == "new-empty" {
			inOut = true
		}
	}
	if !inNew || !inOut {
		t.Errorf("Expected new-empty in both lists, got new=%v out=%v", inNew, inOut)
	}
}

func TestReportServiceCacheInvalidatesOnMutation(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	inv, _ := newTestService(start)
	ctx := context.Background()

	c := cache.NewMemoryCache()
	defer c.Close()

	reports := NewReportService(inv, c, time.Minute)
	reports.now = func() time.Time { return start }

	m, err := reports.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if m.TotalItems != 0 {
		t.Fatalf("Expected empty dashboard, got %+v", m)
	}

	if _, err := inv.Create(ctx, validDraft()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The mutation bumped the store version, so the cached empty
	// dashboard must not be served again.
	m, err = reports.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if m.TotalItems != 1 {
		t.Errorf("Expected dashboard recomputed after mutation, got %+v", m)
	}
}

func TestReportServiceWorksWithoutCache(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	inv := NewInventoryService(repository.NewMemoryPartRepository())
	inv.now = func() time.Time { return start }
	ctx := context.Background()

	reports := NewReportService(inv, nil, 0)
	reports.now = func() time.Time { return start }

	if _, err := inv.Create(ctx, validDraft()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	s, err := reports.Summary(ctx, model.PeriodWeekly)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if s.Period != model.PeriodWeekly {
		t.Errorf("Expected weekly period echoed, got %s", s.Period)
	}

	r, err := reports.EndOfDay(ctx)
	if err != nil {
		t.Fatalf("EndOfDay failed: %v", err)
	}
	if r.NewPartsCount != 1 {
		t.Errorf("Expected the created part counted as new today, got %d", r.NewPartsCount)
	}
}
