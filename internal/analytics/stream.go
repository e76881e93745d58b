package analytics

import (
	"sort"

	"salesdash/internal/models"
)

// Stream builds the month x category sales matrix behind the stream graph.
// Records missing either the order date or the category are skipped; a
// record with no month or no band has no cell. Months come back ascending,
// categories keep first-seen order; missing cells are zero-filled.
func Stream(records []models.TransactionRecord) models.StreamMatrix {
	cells := make(map[string]map[string]float64)
	categories := []string{}
	seenCategory := make(map[string]struct{})

	for _, r := range records {
		if r.OrderDate == nil || r.CategoryName == "" {
			continue
		}
		month := r.OrderDate.Format("2006-01")
		row := cells[month]
		if row == nil {
			row = make(map[string]float64)
			cells[month] = row
		}
		row[r.CategoryName] += r.TotalAmount
		if _, ok := seenCategory[r.CategoryName]; !ok {
			seenCategory[r.CategoryName] = struct{}{}
			categories = append(categories, r.CategoryName)
		}
	}

	months := make([]string, 0, len(cells))
	for m := range cells {
		months = append(months, m)
	}
	sort.Strings(months)

	values := make([][]float64, len(months))
	for i, m := range months {
		row := make([]float64, len(categories))
		for j, cat := range categories {
			row[j] = cells[m][cat]
		}
		values[i] = row
	}

	return models.StreamMatrix{
		Months:     months,
		Categories: categories,
		Values:     values,
	}
}
