package service

import (
	"strings"

	"terreins-inventory-api/internal/model"
)

// AllCategories is the category filter value that matches every part.
const AllCategories = "All"

// FilterParts derives a display subset from a snapshot: a part matches
// when its name or SKU contains the search term (case-insensitive) and
// its category matches the filter. An empty search term matches
// everything. The input order is preserved and the snapshot is not
// mutated.
func FilterParts(parts []model.Part, searchTerm, category string) []model.Part {
	term := strings.ToLower(searchTerm)

	out := make([]model.Part, 0, len(parts))
	for _, p := range parts {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.SKU), term)
		matchesCategory := category == "" || category == AllCategories ||
			string(p.Category) == category

		if matchesSearch && matchesCategory {
			out = append(out, p)
		}
	}
	return out
}
