package analytics

import (
	"testing"
	"time"

	"salesdash/internal/models"
)

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return &parsed
}

func record(t *testing.T, day string, quantity, price, profit float64) models.TransactionRecord {
	t.Helper()
	r := models.TransactionRecord{
		OrderItemQuantity: quantity,
		PerUnitPrice:      price,
		Profit:            profit,
	}
	if day != "" {
		r.OrderDate = date(t, day)
	}
	r.TotalAmount = r.OrderItemQuantity * r.PerUnitPrice
	return r
}

// sampleRecords is the two-record scenario used across the aggregator tests.
func sampleRecords(t *testing.T) []models.TransactionRecord {
	t.Helper()
	a := record(t, "2016-01-15", 5, 10, 20)
	a.CategoryName = "A"
	b := record(t, "2016-02-10", 2, 50, 30)
	b.CategoryName = "B"
	return []models.TransactionRecord{a, b}
}

func rangeBetween(t *testing.T, start, end string) models.DateRange {
	t.Helper()
	return models.DateRange{StartDate: *date(t, start), EndDate: *date(t, end)}
}

func unrestricted(t *testing.T) models.FilterState {
	t.Helper()
	f := models.DefaultFilterState()
	f.DateRange = rangeBetween(t, "2000-01-01", "2099-12-31")
	return f
}
