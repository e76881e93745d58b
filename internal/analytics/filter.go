// Package analytics is the pure aggregation library behind the dashboard:
// every function takes a record slice plus view parameters and returns a
// fresh derived structure. Nothing here mutates its input or performs I/O,
// so every aggregate can be recomputed from scratch at any time with
// identical results.
package analytics

import "salesdash/internal/models"

// Apply returns the records passing every active filter, in their original
// relative order. The input slice and its records are never mutated.
//
// Date filtering is lenient: a record with no order date always passes,
// regardless of the selected range. Categorical filters are inclusion sets
// where an empty set means unrestricted; membership is exact string equality.
func Apply(records []models.TransactionRecord, filter models.FilterState) []models.TransactionRecord {
	out := make([]models.TransactionRecord, 0, len(records))
	for _, r := range records {
		if r.OrderDate != nil && !filter.DateRange.Contains(*r.OrderDate) {
			continue
		}
		if !includes(filter.Regions, r.RegionName) {
			continue
		}
		if !includes(filter.Countries, r.CountryName) {
			continue
		}
		if !includes(filter.Categories, r.CategoryName) {
			continue
		}
		if !includes(filter.Statuses, r.Status) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func includes(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
