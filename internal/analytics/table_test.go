package analytics

import (
	"testing"

	"salesdash/internal/models"
)

func tableRecords(t *testing.T) []models.TransactionRecord {
	t.Helper()
	a := record(t, "2016-01-10", 1, 10, 0)
	a.CustomerName = "Ava"
	a.ProductName = "Laptop"
	b := record(t, "2016-03-10", 1, 20, 0)
	b.CustomerName = "Ben"
	b.ProductName = "Mouse"
	c := record(t, "2016-02-10", 1, 30, 0)
	c.CustomerName = "Chloe"
	c.ProductName = "Desk"
	return []models.TransactionRecord{a, b, c}
}

func TestTable_DefaultsToOrderDateDesc(t *testing.T) {
	got := Table(tableRecords(t), TableQuery{})

	if got.Page != 1 || got.PerPage != 10 {
		t.Errorf("defaults = page %d per %d, want 1/10", got.Page, got.PerPage)
	}
	if len(got.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(got.Rows))
	}
	if got.Rows[0].CustomerName != "Ben" || got.Rows[2].CustomerName != "Ava" {
		t.Errorf("rows = [%s %s %s], want newest order first",
			got.Rows[0].CustomerName, got.Rows[1].CustomerName, got.Rows[2].CustomerName)
	}
}

func TestTable_Search(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"case-insensitive match", "LAPTOP", 1},
		{"substring match", "apt", 1},
		{"no match", "zebra", 0},
		{"blank matches all", "   ", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Table(tableRecords(t), TableQuery{Search: tt.search})
			if got.TotalRows != tt.want {
				t.Errorf("TotalRows = %d, want %d", got.TotalRows, tt.want)
			}
		})
	}
}

func TestTable_SortColumns(t *testing.T) {
	records := tableRecords(t)

	got := Table(records, TableQuery{SortColumn: "PerUnitPrice", SortDir: SortAsc})
	if got.Rows[0].PerUnitPrice != 10 || got.Rows[2].PerUnitPrice != 30 {
		t.Errorf("numeric ascending sort = %v %v %v",
			got.Rows[0].PerUnitPrice, got.Rows[1].PerUnitPrice, got.Rows[2].PerUnitPrice)
	}

	got = Table(records, TableQuery{SortColumn: "CustomerName", SortDir: SortAsc})
	if got.Rows[0].CustomerName != "Ava" || got.Rows[2].CustomerName != "Chloe" {
		t.Errorf("string ascending sort = %s %s %s",
			got.Rows[0].CustomerName, got.Rows[1].CustomerName, got.Rows[2].CustomerName)
	}
}

func TestTable_NilDatesSortLast(t *testing.T) {
	records := tableRecords(t)
	dateless := record(t, "", 1, 5, 0)
	dateless.CustomerName = "Drew"
	records = append(records, dateless)

	got := Table(records, TableQuery{})
	if got.Rows[len(got.Rows)-1].CustomerName != "Drew" {
		t.Errorf("descending date sort should push dateless rows to the end, got %s last",
			got.Rows[len(got.Rows)-1].CustomerName)
	}
}

func TestTable_Pagination(t *testing.T) {
	records := []models.TransactionRecord{}
	for i := 0; i < 25; i++ {
		records = append(records, record(t, "2016-01-10", 1, 10, 0))
	}

	got := Table(records, TableQuery{Page: 3, PerPage: 10})
	if got.TotalRows != 25 || got.TotalPages != 3 {
		t.Errorf("totals = %d rows %d pages, want 25/3", got.TotalRows, got.TotalPages)
	}
	if len(got.Rows) != 5 {
		t.Errorf("page 3 has %d rows, want 5", len(got.Rows))
	}

	got = Table(records, TableQuery{Page: 9, PerPage: 10})
	if len(got.Rows) != 0 {
		t.Errorf("out-of-range page has %d rows, want 0", len(got.Rows))
	}
}

func TestTable_InputNotReordered(t *testing.T) {
	records := tableRecords(t)
	Table(records, TableQuery{SortColumn: "CustomerName", SortDir: SortAsc})

	if records[0].CustomerName != "Ava" || records[1].CustomerName != "Ben" || records[2].CustomerName != "Chloe" {
		t.Error("Table must not reorder its input slice")
	}
}
