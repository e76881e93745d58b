package analytics

import (
	"slices"
	"strings"

	"salesdash/internal/models"
)

// unknownBucket collects records whose grouping dimension is missing.
const unknownBucket = "Unknown"

// defaultProductLimit caps the product rollup for the bar chart.
const defaultProductLimit = 10

// CategoryRollups sums sales and profit per category, bucketing records
// without a category under "Unknown". Sorted by sales descending, name
// ascending on ties so output is deterministic.
func CategoryRollups(records []models.TransactionRecord) []models.CategoryRollup {
	groups := make(map[string]*models.CategoryRollup)
	order := []string{}
	for _, r := range records {
		cat := r.CategoryName
		if cat == "" {
			cat = unknownBucket
		}
		g := groups[cat]
		if g == nil {
			g = &models.CategoryRollup{Category: cat}
			groups[cat] = g
			order = append(order, cat)
		}
		g.Sales += r.TotalAmount
		g.Profit += r.Profit
	}

	out := make([]models.CategoryRollup, 0, len(order))
	for _, cat := range order {
		out = append(out, *groups[cat])
	}
	slices.SortFunc(out, func(a, b models.CategoryRollup) int {
		if a.Sales != b.Sales {
			if a.Sales > b.Sales {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Category, b.Category)
	})
	return out
}

// ProductRollups sums sales and profit per product and returns the top
// `limit` products by profit descending (the bar chart's product mode).
// A limit of zero or less falls back to the default of 10.
func ProductRollups(records []models.TransactionRecord, limit int) []models.ProductRollup {
	if limit <= 0 {
		limit = defaultProductLimit
	}

	groups := make(map[string]*models.ProductRollup)
	order := []string{}
	for _, r := range records {
		product := r.ProductName
		if product == "" {
			product = unknownBucket
		}
		g := groups[product]
		if g == nil {
			g = &models.ProductRollup{Product: product}
			groups[product] = g
			order = append(order, product)
		}
		g.Sales += r.TotalAmount
		g.Profit += r.Profit
	}

	out := make([]models.ProductRollup, 0, len(order))
	for _, product := range order {
		out = append(out, *groups[product])
	}
	slices.SortFunc(out, func(a, b models.ProductRollup) int {
		if a.Profit != b.Profit {
			if a.Profit > b.Profit {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Product, b.Product)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
