package model

import "time"

// LowStockThreshold is the stock level below which a part counts as low stock.
const LowStockThreshold = 10

// SummaryPeriod selects the time window of a dispatch summary.
type SummaryPeriod string

const (
	PeriodDaily  SummaryPeriod = "daily"
	PeriodWeekly SummaryPeriod = "weekly"
	PeriodYearly SummaryPeriod = "yearly"
)

// ParseSummaryPeriod maps a query value to a SummaryPeriod.
func ParseSummaryPeriod(s string) (SummaryPeriod, bool) {
	switch SummaryPeriod(s) {
	case PeriodDaily, PeriodWeekly, PeriodYearly:
		return SummaryPeriod(s), true
	}
	return "", false
}

// DashboardMetrics are the headline inventory figures.
type DashboardMetrics struct {
	TotalItems      int     `json:"totalItems"`
	TotalStockValue float64 `json:"totalStockValue"`
	LowStockCount   int     `json:"lowStockCount"`
}

// NoBestSeller is reported when no sale falls inside the summary window.
const NoBestSeller = "N/A"

// DispatchSummary aggregates the sales logs over a period window.
type DispatchSummary struct {
	Period               SummaryPeriod `json:"period"`
	UniqueDispatchedItems int          `json:"uniqueDispatchedItems"`
	TotalUnitsSold       int           `json:"totalUnitsSold"`
	TotalSalesValue      float64       `json:"totalSalesValue"`
	BestSellingCategory  string        `json:"bestSellingCategory"`
}

// EodPart is the slimmed part row shown in end-of-day report tables.
type EodPart struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	SKU   string `json:"sku"`
	Stock int    `json:"stock"`
}

// EodReport is the end-of-day snapshot for a calendar date. A part added
// today with zero stock appears in both lists.
type EodReport struct {
	Date            time.Time `json:"date"`
	NewPartsToday   []EodPart `json:"newPartsToday"`
	OutOfStockParts []EodPart `json:"outOfStockParts"`
	NewPartsCount   int       `json:"newPartsCount"`
	OutOfStockCount int       `json:"outOfStockCount"`
	ValueOfNewStock float64   `json:"valueOfNewStock"`
}
