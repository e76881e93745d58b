package analytics

import (
	"slices"
	"strings"

	"salesdash/internal/models"
)

// GeoQuery selects the drill level and an optional parent context for the
// geographic rollup. When Within is set and the level is below country,
// only records whose value at Within's level equals Within's name
// contribute, mirroring map drill-down.
type GeoQuery struct {
	Level  models.GeoLevel
	Within *GeoSelection
}

// GeoSelection names the location a user drilled into.
type GeoSelection struct {
	Level models.GeoLevel `json:"level"`
	Name  string          `json:"name"`
}

// ParseGeoLevel maps a query-string value onto a GeoLevel, defaulting to
// country.
func ParseGeoLevel(s string) models.GeoLevel {
	switch models.GeoLevel(s) {
	case models.GeoState, models.GeoCity, models.GeoWarehouse:
		return models.GeoLevel(s)
	default:
		return models.GeoCountry
	}
}

// GeoRollups aggregates the three map measures in parallel per location at
// the requested level: quantity shipped, record count, and standard cost.
// Missing locations bucket under "Unknown". Sorted by products value
// descending, name ascending on ties.
func GeoRollups(records []models.TransactionRecord, q GeoQuery) []models.GeoRollup {
	groups := make(map[string]*models.GeoRollup)
	for _, r := range records {
		if q.Within != nil && q.Level != models.GeoCountry && locationAt(r, q.Within.Level) != q.Within.Name {
			continue
		}
		name := locationAt(r, q.Level)
		if name == "" {
			name = unknownBucket
		}
		g := groups[name]
		if g == nil {
			g = &models.GeoRollup{LocationName: name, LocationType: q.Level}
			groups[name] = g
		}
		g.ProductsValue += r.OrderItemQuantity
		g.EmployeesValue++
		g.InventoryValue += r.ProductStandardCost
	}

	out := make([]models.GeoRollup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	slices.SortFunc(out, func(a, b models.GeoRollup) int {
		if a.ProductsValue != b.ProductsValue {
			if a.ProductsValue > b.ProductsValue {
				return -1
			}
			return 1
		}
		return strings.Compare(a.LocationName, b.LocationName)
	})
	return out
}

func locationAt(r models.TransactionRecord, level models.GeoLevel) string {
	switch level {
	case models.GeoState:
		return r.State
	case models.GeoCity:
		return r.City
	case models.GeoWarehouse:
		return r.WarehouseName
	default:
		return r.CountryName
	}
}
