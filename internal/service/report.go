package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"terreins-inventory-api/internal/cache"
	"terreins-inventory-api/internal/model"
)

// ReportService computes dashboard metrics, period dispatch summaries and
// end-of-day reports from inventory snapshots. Results are memoized keyed
// by the store's version counter plus the calendar date, never by wall
// clock alone, so a cache entry can only outlive its inputs until the
// next mutation or the next day.
type ReportService struct {
	inventory *InventoryService
	cache     cache.Cache
	ttl       time.Duration

	now func() time.Time
}

// NewReportService creates a report service. cache may be nil, in which
// case every report is recomputed from the snapshot.
func NewReportService(inventory *InventoryService, c cache.Cache, ttl time.Duration) *ReportService {
	if inventory == nil {
		return nil
	}
	return &ReportService{
		inventory: inventory,
		cache:     c,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Dashboard returns the headline inventory metrics.
func (s *ReportService) Dashboard(ctx context.Context) (*model.DashboardMetrics, error) {
	key := fmt.Sprintf("dashboard:v%d", s.inventory.Version())
	var out model.DashboardMetrics
	err := s.cached(ctx, key, &out, func() (interface{}, error) {
		parts, err := s.inventory.List(ctx)
		if err != nil {
			return nil, err
		}
		return ComputeDashboard(parts), nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Summary returns the dispatch summary for a period window ending now.
func (s *ReportService) Summary(ctx context.Context, period model.SummaryPeriod) (*model.DispatchSummary, error) {
	now := s.now()
	key := fmt.Sprintf("summary:%s:%s:v%d", period, now.Format("2006-01-02"), s.inventory.Version())
	var out model.DispatchSummary
	err := s.cached(ctx, key, &out, func() (interface{}, error) {
		parts, err := s.inventory.List(ctx)
		if err != nil {
			return nil, err
		}
		return ComputeDispatchSummary(parts, period, now), nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// EndOfDay returns the end-of-day report for today.
func (s *ReportService) EndOfDay(ctx context.Context) (*model.EodReport, error) {
	now := s.now()
	key := fmt.Sprintf("eod:%s:v%d", now.Format("2006-01-02"), s.inventory.Version())
	var out model.EodReport
	err := s.cached(ctx, key, &out, func() (interface{}, error) {
		parts, err := s.inventory.List(ctx)
		if err != nil {
			return nil, err
		}
		return ComputeEndOfDay(parts, now), nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// cached runs compute through the cache when one is configured,
// marshalling the result as JSON either way.
func (s *ReportService) cached(ctx context.Context, key string, out interface{}, compute func() (interface{}, error)) error {
	fill := func() ([]byte, error) {
		v, err := compute()
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}

	var data []byte
	var err error
	if s.cache != nil {
		data, err = s.cache.GetOrSet(ctx, key, s.ttl, fill)
	} else {
		data, err = fill()
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// ComputeDashboard derives the dashboard metrics from a snapshot.
func ComputeDashboard(parts []model.Part) model.DashboardMetrics {
	m := model.DashboardMetrics{TotalItems: len(parts)}
	for _, p := range parts {
		m.TotalStockValue += float64(p.Stock) * p.Price
		if p.Stock < model.LowStockThreshold {
			m.LowStockCount++
		}
	}
	return m
}

// sameDay reports whether two instants fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// withinLastSevenDays uses the exact duration, not calendar weeks: a sale
// exactly 168h old is still included, a future-dated one is not.
func withinLastSevenDays(d, now time.Time) bool {
	const sevenDays = 7 * 24 * time.Hour
	return !d.After(now) && now.Sub(d) <= sevenDays
}

func inPeriod(d time.Time, period model.SummaryPeriod, now time.Time) bool {
	switch period {
	case model.PeriodDaily:
		return sameDay(d, now)
	case model.PeriodWeekly:
		return withinLastSevenDays(d, now)
	case model.PeriodYearly:
		return d.Year() == now.Year()
	}
	return false
}

// ComputeDispatchSummary flattens every part's sales log, keeps the sales
// inside the period window, and aggregates them. Sales are valued at the
// part's current price; there is no historical price snapshot. The
// best-selling category tie breaks toward the category first encountered
// in snapshot order, and is "N/A" when the window is empty.
func ComputeDispatchSummary(parts []model.Part, period model.SummaryPeriod, now time.Time) model.DispatchSummary {
	summary := model.DispatchSummary{
		Period:              period,
		BestSellingCategory: model.NoBestSeller,
	}

	seen := make(map[string]bool)
	categoryUnits := make(map[model.PartCategory]int)
	var categoryOrder []model.PartCategory

	for _, p := range parts {
		for _, sale := range p.SalesLog {
			if !inPeriod(sale.Date, period, now) {
				continue
			}
			if !seen[p.ID] {
				seen[p.ID] = true
				summary.UniqueDispatchedItems++
			}
			summary.TotalUnitsSold += sale.Quantity
			summary.TotalSalesValue += float64(sale.Quantity) * p.Price

			if _, ok := categoryUnits[p.Category]; !ok {
				categoryOrder = append(categoryOrder, p.Category)
			}
			categoryUnits[p.Category] += sale.Quantity
		}
	}

	best := 0
	for _, c := range categoryOrder {
		if categoryUnits[c] > best {
			best = categoryUnits[c]
			summary.BestSellingCategory = string(c)
		}
	}
	return summary
}

// ComputeEndOfDay derives the end-of-day report in a single pass. A part
// added today with zero stock shows up in both lists.
func ComputeEndOfDay(parts []model.Part, now time.Time) model.EodReport {
	report := model.EodReport{
		Date:            now,
		NewPartsToday:   []model.EodPart{},
		OutOfStockParts: []model.EodPart{},
	}

	for _, p := range parts {
		row := model.EodPart{ID: p.ID, Name: p.Name, SKU: p.SKU, Stock: p.Stock}
		if sameDay(p.DateAdded, now) {
			report.NewPartsToday = append(report.NewPartsToday, row)
			report.ValueOfNewStock += float64(p.Stock) * p.Price
		}
		if p.Stock == 0 {
			report.OutOfStockParts = append(report.OutOfStockParts, row)
		}
	}

	report.NewPartsCount = len(report.NewPartsToday)
	report.OutOfStockCount = len(report.OutOfStockParts)
	return report
}
