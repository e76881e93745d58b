package dataset

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"salesdash/internal/models"
)

// Row is one raw CSV row keyed by header name, before normalization.
type Row map[string]string

// recognizedColumns are consumed into typed record fields; anything else
// passes through in Extra.
var recognizedColumns = map[string]struct{}{
	"OrderDate": {}, "EmployeeHireDate": {},
	"RegionName": {}, "CountryName": {}, "State": {}, "City": {},
	"CategoryName": {}, "ProductName": {}, "CustomerName": {},
	"EmployeeName": {}, "Status": {},
	"WarehouseName": {}, "PostalCode": {},
	"OrderItemQuantity": {}, "PerUnitPrice": {}, "Profit": {}, "ProductStandardCost": {},
}

// dateLayouts are tried in order when parsing date columns.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-Jan-06",
	"01/02/2006",
}

const normalizeBatch = 2048

// Normalize converts raw rows into TransactionRecords, one per input row in
// input order. Unparseable dates become nil, unparseable numerics become 0;
// normalization never fails on a bad value. TotalAmount is computed here,
// exactly once, and is authoritative from then on.
func Normalize(rows []Row) []models.TransactionRecord {
	records := make([]models.TransactionRecord, len(rows))

	var g errgroup.Group
	for start := 0; start < len(rows); start += normalizeBatch {
		end := min(start+normalizeBatch, len(rows))
		g.Go(func() error {
			for i := start; i < end; i++ {
				records[i] = normalizeRow(rows[i])
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return an error, rows are coerced not rejected

	return records
}

func normalizeRow(row Row) models.TransactionRecord {
	r := models.TransactionRecord{
		OrderDate:        parseDate(row["OrderDate"]),
		EmployeeHireDate: parseDate(row["EmployeeHireDate"]),

		RegionName:   strings.TrimSpace(row["RegionName"]),
		CountryName:  strings.TrimSpace(row["CountryName"]),
		State:        strings.TrimSpace(row["State"]),
		City:         strings.TrimSpace(row["City"]),
		CategoryName: strings.TrimSpace(row["CategoryName"]),
		ProductName:  strings.TrimSpace(row["ProductName"]),
		CustomerName: strings.TrimSpace(row["CustomerName"]),
		EmployeeName: strings.TrimSpace(row["EmployeeName"]),
		Status:       strings.TrimSpace(row["Status"]),

		WarehouseName: strings.TrimSpace(row["WarehouseName"]),
		PostalCode:    strings.TrimSpace(row["PostalCode"]),

		OrderItemQuantity:   parseNumber(row["OrderItemQuantity"]),
		PerUnitPrice:        parseNumber(row["PerUnitPrice"]),
		Profit:              parseNumber(row["Profit"]),
		ProductStandardCost: parseNumber(row["ProductStandardCost"]),
	}
	r.TotalAmount = r.OrderItemQuantity * r.PerUnitPrice

	for k, v := range row {
		if _, ok := recognizedColumns[k]; ok {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[k] = v
	}
	return r
}

// parseDate returns nil for empty or unparseable values, never a zero time.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// parseNumber coerces missing or malformed numerics to 0.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}
