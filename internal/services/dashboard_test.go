package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"salesdash/internal/analytics"
	apperrors "salesdash/internal/errors"
	"salesdash/internal/models"
)

func testDashboard(t *testing.T) *Dashboard {
	t.Helper()
	d := NewDashboard(analytics.GraphConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	d.SetData(testRecords(t))
	return d
}

func testRecords(t *testing.T) []models.TransactionRecord {
	t.Helper()
	day := func(value string) *time.Time {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			t.Fatalf("bad test date %q: %v", value, err)
		}
		return &parsed
	}
	return []models.TransactionRecord{
		{OrderDate: day("2016-01-15"), RegionName: "Asia", CategoryName: "Electronics", CustomerName: "Ava", OrderItemQuantity: 2, PerUnitPrice: 100, TotalAmount: 200},
		{OrderDate: day("2016-02-10"), RegionName: "Europe", CategoryName: "Furniture", CustomerName: "Ben", OrderItemQuantity: 1, PerUnitPrice: 50, TotalAmount: 50},
	}
}

func TestDashboard_FilteredAppliesFilters(t *testing.T) {
	d := testDashboard(t)

	if got := d.Filtered(); len(got) != 2 {
		t.Fatalf("unfiltered set = %d records, want 2", len(got))
	}

	if err := d.UpdateFilter(models.DimensionRegions, []string{"Asia"}); err != nil {
		t.Fatalf("UpdateFilter: %v", err)
	}
	got := d.Filtered()
	if len(got) != 1 || got[0].RegionName != "Asia" {
		t.Errorf("filtered set = %+v, want only the Asia record", got)
	}
}

func TestDashboard_UpdateFilterValidation(t *testing.T) {
	d := testDashboard(t)

	tests := []struct {
		name      string
		dimension models.FilterDimension
		value     any
	}{
		{"wrong type for date range", models.DimensionDateRange, []string{"2016"}},
		{"wrong type for categorical", models.DimensionRegions, "Asia"},
		{"unknown dimension", models.FilterDimension("vibes"), []string{"x"}},
		{"end before start", models.DimensionDateRange, models.DateRange{
			StartDate: time.Date(2016, 1, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.UpdateFilter(tt.dimension, tt.value)
			if err == nil {
				t.Fatal("UpdateFilter() = nil error, want validation failure")
			}
			appErr, ok := err.(*apperrors.AppError)
			if !ok || appErr.Code != apperrors.CodeValidation {
				t.Errorf("error = %v, want AppError with validation code", err)
			}
		})
	}
}

func TestDashboard_ResetFilters(t *testing.T) {
	d := testDashboard(t)

	if err := d.UpdateFilter(models.DimensionRegions, []string{"Asia"}); err != nil {
		t.Fatalf("UpdateFilter: %v", err)
	}
	d.ResetFilters()

	if got := d.Filters(); len(got.Regions) != 0 {
		t.Errorf("Regions after reset = %v, want empty", got.Regions)
	}
	if got := d.Filtered(); len(got) != 2 {
		t.Errorf("filtered set after reset = %d records, want 2", len(got))
	}
}

func TestDashboard_FiltersReturnsCopy(t *testing.T) {
	d := testDashboard(t)
	if err := d.UpdateFilter(models.DimensionRegions, []string{"Asia"}); err != nil {
		t.Fatalf("UpdateFilter: %v", err)
	}

	f := d.Filters()
	f.Regions[0] = "mutated"

	if got := d.Filters(); got.Regions[0] != "Asia" {
		t.Error("mutating a returned filter state must not affect the dashboard")
	}
}

func TestDashboard_FilteredMemoization(t *testing.T) {
	d := testDashboard(t)

	first := d.Filtered()
	second := d.Filtered()
	if &first[0] != &second[0] {
		t.Error("repeated Filtered() calls with unchanged filters must share the slice")
	}

	if err := d.UpdateFilter(models.DimensionCategories, []string{"Electronics"}); err != nil {
		t.Fatalf("UpdateFilter: %v", err)
	}
	if got := d.Filtered(); len(got) != 1 {
		t.Errorf("filter change must invalidate the memo, got %d records", len(got))
	}
}

func TestDashboard_SetDataReplaces(t *testing.T) {
	d := testDashboard(t)
	d.SetData(testRecords(t)[:1])

	if got := d.Filtered(); len(got) != 1 {
		t.Errorf("after SetData = %d records, want 1", len(got))
	}
	if got := d.Options(); len(got.Regions) != 1 {
		t.Errorf("options after SetData = %v, want recomputed", got.Regions)
	}
}

func TestDashboard_AggregatesUseFilteredSet(t *testing.T) {
	d := testDashboard(t)
	if err := d.UpdateFilter(models.DimensionRegions, []string{"Asia"}); err != nil {
		t.Fatalf("UpdateFilter: %v", err)
	}

	if got := d.KPIs(); got.TotalSales != 200 {
		t.Errorf("KPIs().TotalSales = %v, want 200", got.TotalSales)
	}
	if got := d.CategoryRollups(); len(got) != 1 || got[0].Category != "Electronics" {
		t.Errorf("CategoryRollups() = %+v, want only Electronics", got)
	}
	if got := d.Table(analytics.TableQuery{}); got.TotalRows != 1 {
		t.Errorf("Table().TotalRows = %d, want 1", got.TotalRows)
	}
}

func TestDashboard_Stats(t *testing.T) {
	d := testDashboard(t)
	d.Filtered()

	stats := d.Stats()
	if stats["record_count"] != 2 {
		t.Errorf("record_count = %v, want 2", stats["record_count"])
	}
	if stats["regions"] != 2 || stats["categories"] != 2 {
		t.Errorf("option counts = %v/%v, want 2/2", stats["regions"], stats["categories"])
	}
}
