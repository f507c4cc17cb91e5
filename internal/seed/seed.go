// Package seed provides the sample catalogue loaded on first boot so the
// dashboards and reports have data to show. Sales dates are generated
// relative to the given time so the daily, weekly and yearly summaries
// all have qualifying entries.
package seed

import (
	"time"

	"terreins-inventory-api/internal/model"
)

// SampleParts returns the demo catalogue. Records are returned in
// canonical order (newest dateAdded first).
func SampleParts(now time.Time) []model.Part {
	twoDaysAgo := now.AddDate(0, 0, -2)
	threeDaysAgo := now.AddDate(0, 0, -3)
	earlierThisYear := time.Date(now.Year(), time.February, 10, 0, 0, 0, 0, now.Location())
	evenEarlierThisYear := time.Date(now.Year(), time.January, 15, 0, 0, 0, 0, now.Location())

	date := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}

	parts := []model.Part{
		{
			ID:          "1",
			Name:        "Terreins 'Street Fury' Performance Pipe for NMAX",
			SKU:         "TR-SC-EX-001",
			Category:    model.CategoryExhaust,
			Stock:       18,
			Price:       2850.00,
			Description: "Unleash your scooter's true potential with the Terreins Street Fury performance pipe. Engineered for the Yamaha NMAX, it delivers a throaty exhaust note, improved throttle response, and a noticeable power boost. Full stainless steel construction.",
			ImageURL:    "https://picsum.photos/seed/nmaxpipe/400/300",
			DateAdded:   date("2023-10-26T10:00:00Z"),
			SalesLog: []model.SaleEntry{
				{Date: now, Quantity: 1},
				{Date: threeDaysAgo, Quantity: 2},
			},
			StockHistory: []model.StockEntry{
				{Date: date("2023-10-26T10:00:00Z"), Quantity: 18},
			},
		},
		{
			ID:          "2",
			Name:        "Terreins 'Quick-Launch' CVT Kit",
			SKU:         "TR-SC-CVT-001",
			Category:    model.CategoryEngine,
			Stock:       25,
			Price:       1500.00,
			Description: "Upgrade your scooter's acceleration with the Terreins Quick-Launch CVT Kit. Includes performance flyballs and clutch springs for faster take-offs and improved mid-range pull. Perfect for city commuting.",
			ImageURL:    "https://picsum.photos/seed/cvtkit/400/300",
			DateAdded:   date("2023-11-05T11:30:00Z"),
			SalesLog: []model.SaleEntry{
				{Date: twoDaysAgo, Quantity: 3},
				{Date: evenEarlierThisYear, Quantity: 10},
			},
			StockHistory: []model.StockEntry{
				{Date: date("2023-11-05T11:30:00Z"), Quantity: 25},
			},
		},
		{
			ID:          "3",
			Name:        "Terreins CNC Adjustable Brake Levers (Pair)",
			SKU:         "TR-SC-BR-005",
			Category:    model.CategoryBrakes,
			Stock:       40,
			Price:       899.00,
			Description: "Get the perfect feel and control with Terreins CNC-machined adjustable brake levers. Six levels of adjustment for a custom fit. Made from high-grade aluminum with a durable anodized finish. Universal fit for most Philippine scooter models.",
			ImageURL:    "https://picsum.photos/seed/levers/400/300",
			DateAdded:   date("2023-11-15T09:20:00Z"),
			SalesLog: []model.SaleEntry{
				{Date: threeDaysAgo, Quantity: 5},
			},
			StockHistory: []model.StockEntry{
				{Date: date("2023-11-15T09:20:00Z"), Quantity: 40},
			},
		},
		{
			ID:          "4",
			Name:        "Terreins 'Night Piercer' LED Mini Driving Lights",
			SKU:         "TR-AC-LGT-012",
			Category:    model.CategoryLighting,
			Stock:       32,
			Price:       1250.00,
			Description: "Illuminate the road ahead with the ultra-bright Night Piercer LED lights. Compact, waterproof, and energy-efficient, they provide exceptional visibility for safer night rides. Comes with a complete wiring harness and switch.",
			ImageURL:    "https://picsum.photos/seed/minidriving/400/300",
			DateAdded:   date("2024-01-20T14:00:00Z"),
			SalesLog:    []model.SaleEntry{},
			StockHistory: []model.StockEntry{
				{Date: date("2024-01-20T14:00:00Z"), Quantity: 32},
			},
		},
		{
			ID:          "5",
			Name:        "Terreins 'Cargo-Max' 45L Alloy Top Box",
			SKU:         "TR-AC-TB-045",
			Category:    model.CategoryAccessories,
			Stock:       12,
			Price:       4500.00,
			Description: "Secure your belongings with the rugged Terreins Cargo-Max top box. With a 45-liter capacity, this waterproof and dustproof alloy case can hold a full-face helmet and more. Features a quick-release base plate.",
			ImageURL:    "https://picsum.photos/seed/topbox/400/300",
			DateAdded:   earlierThisYear, // shows up in the yearly summary
			SalesLog: []model.SaleEntry{
				{Date: earlierThisYear, Quantity: 3},
			},
			StockHistory: []model.StockEntry{
				{Date: earlierThisYear, Quantity: 12},
			},
		},
		{
			ID:          "6",
			Name:        "Terreins 'Grip-Pro' Scooter Tire (110/80-14)",
			SKU:         "TR-SC-WH-110",
			Category:    model.CategoryWheels,
			Stock:       50,
			Price:       1800.00,
			Description: "Experience superior handling in wet or dry conditions with the Grip-Pro scooter tire. Its advanced tread compound offers excellent grip and longevity, making it the ideal choice for daily commuters. Size 110/80-14.",
			ImageURL:    "https://picsum.photos/seed/tire/400/300",
			DateAdded:   threeDaysAgo, // shows up in the weekly summary
			SalesLog:    []model.SaleEntry{},
			StockHistory: []model.StockEntry{
				{Date: threeDaysAgo, Quantity: 50},
			},
		},
		{
			ID:          "7",
			Name:        "Terreins 'Comfort-Ride' Rear Shock (310mm)",
			SKU:         "TR-SC-SP-310",
			Category:    model.CategorySuspension,
			Stock:       22,
			Price:       2100.00,
			Description: "Smooth out rough Philippine roads with the Terreins Comfort-Ride rear shock absorber. Features adjustable preload and a gas-charged reservoir for consistent damping performance. A direct-fit upgrade for Honda Click models.",
			ImageURL:    "https://picsum.photos/seed/scootershock/400/300",
			DateAdded:   now, // shows up in the daily summary and EOD report
			SalesLog: []model.SaleEntry{
				{Date: now, Quantity: 2},
			},
			StockHistory: []model.StockEntry{
				{Date: now, Quantity: 22},
			},
		},
	}

	// Canonical order is newest first.
	ordered := []model.Part{parts[6], parts[5], parts[4], parts[3], parts[2], parts[1], parts[0]}
	return ordered
}
