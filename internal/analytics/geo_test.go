package analytics

import (
	"testing"

	"salesdash/internal/models"
)

func geoRecord(t *testing.T, country, state, city, warehouse string, quantity, cost float64) models.TransactionRecord {
	t.Helper()
	r := record(t, "2016-01-15", quantity, 10, 0)
	r.CountryName = country
	r.State = state
	r.City = city
	r.WarehouseName = warehouse
	r.ProductStandardCost = cost
	return r
}

func TestGeoRollups_CountryLevel(t *testing.T) {
	records := []models.TransactionRecord{
		geoRecord(t, "Japan", "Tokyo", "Tokyo", "Tokyo Warehouse", 5, 100),
		geoRecord(t, "Japan", "Osaka", "Osaka", "Osaka Warehouse", 3, 50),
		geoRecord(t, "Germany", "Bavaria", "Munich", "Munich Warehouse", 2, 80),
	}

	got := GeoRollups(records, GeoQuery{Level: models.GeoCountry})
	if len(got) != 2 {
		t.Fatalf("GeoRollups() = %d locations, want 2", len(got))
	}

	japan := got[0]
	if japan.LocationName != "Japan" {
		t.Fatalf("first location = %q, want Japan (highest quantity)", japan.LocationName)
	}
	if japan.ProductsValue != 8 {
		t.Errorf("Japan ProductsValue = %v, want 8", japan.ProductsValue)
	}
	if japan.EmployeesValue != 2 {
		t.Errorf("Japan EmployeesValue = %v, want 2", japan.EmployeesValue)
	}
	if japan.InventoryValue != 150 {
		t.Errorf("Japan InventoryValue = %v, want 150", japan.InventoryValue)
	}
	if japan.LocationType != models.GeoCountry {
		t.Errorf("LocationType = %v, want country", japan.LocationType)
	}
}

func TestGeoRollups_Levels(t *testing.T) {
	records := []models.TransactionRecord{
		geoRecord(t, "Japan", "Tokyo", "Shibuya", "Tokyo Warehouse", 1, 0),
	}

	tests := []struct {
		level models.GeoLevel
		want  string
	}{
		{models.GeoCountry, "Japan"},
		{models.GeoState, "Tokyo"},
		{models.GeoCity, "Shibuya"},
		{models.GeoWarehouse, "Tokyo Warehouse"},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			got := GeoRollups(records, GeoQuery{Level: tt.level})
			if len(got) != 1 || got[0].LocationName != tt.want {
				t.Errorf("GeoRollups(%s) = %+v, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestGeoRollups_UnknownBucket(t *testing.T) {
	records := []models.TransactionRecord{record(t, "2016-01-15", 1, 10, 0)}

	got := GeoRollups(records, GeoQuery{Level: models.GeoCountry})
	if len(got) != 1 || got[0].LocationName != "Unknown" {
		t.Errorf("GeoRollups() = %+v, want single Unknown bucket", got)
	}
}

func TestGeoRollups_DrillContext(t *testing.T) {
	records := []models.TransactionRecord{
		geoRecord(t, "Japan", "Tokyo", "Tokyo", "", 1, 0),
		geoRecord(t, "Germany", "Bavaria", "Munich", "", 1, 0),
	}

	got := GeoRollups(records, GeoQuery{
		Level:  models.GeoState,
		Within: &GeoSelection{Level: models.GeoCountry, Name: "Japan"},
	})
	if len(got) != 1 || got[0].LocationName != "Tokyo" {
		t.Errorf("drilled rollup = %+v, want only Tokyo", got)
	}
}

func TestGeoRollups_DrillContextIgnoredAtCountryLevel(t *testing.T) {
	records := []models.TransactionRecord{
		geoRecord(t, "Japan", "", "", "", 1, 0),
		geoRecord(t, "Germany", "", "", "", 1, 0),
	}

	got := GeoRollups(records, GeoQuery{
		Level:  models.GeoCountry,
		Within: &GeoSelection{Level: models.GeoCountry, Name: "Japan"},
	})
	if len(got) != 2 {
		t.Errorf("country-level rollup with context = %d locations, want 2", len(got))
	}
}

func TestGeoRollups_EmptyInput(t *testing.T) {
	got := GeoRollups(nil, GeoQuery{Level: models.GeoCountry})
	if got == nil || len(got) != 0 {
		t.Errorf("GeoRollups(nil) = %v, want empty slice", got)
	}
}
