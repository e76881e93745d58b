package analytics

import "salesdash/internal/models"

// Options derives the distinct value sets available for the filter controls.
// It is always fed the full unfiltered dataset so narrowing one filter never
// shrinks the choices offered for the others. Each list keeps first-seen
// order and excludes empty values.
func Options(records []models.TransactionRecord) models.FilterOptions {
	return models.FilterOptions{
		Regions:    distinct(records, func(r models.TransactionRecord) string { return r.RegionName }),
		Countries:  distinct(records, func(r models.TransactionRecord) string { return r.CountryName }),
		Categories: distinct(records, func(r models.TransactionRecord) string { return r.CategoryName }),
		Statuses:   distinct(records, func(r models.TransactionRecord) string { return r.Status }),
	}
}

func distinct(records []models.TransactionRecord, key func(models.TransactionRecord) string) []string {
	seen := make(map[string]struct{}, 16)
	out := []string{}
	for _, r := range records {
		v := key(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
