package analytics

import (
	"sort"
	"strings"
	"time"

	"salesdash/internal/models"
)

// SortDir is the table sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

const defaultPerPage = 10

// TableQuery shapes the paginated transaction table: free-text search over
// the string dimensions, a typed column sort, then pagination.
type TableQuery struct {
	Search     string
	SortColumn string
	SortDir    SortDir
	Page       int
	PerPage    int
}

func (q TableQuery) withDefaults() TableQuery {
	if q.SortColumn == "" {
		q.SortColumn = "OrderDate"
	}
	if q.SortDir != SortAsc {
		q.SortDir = SortDesc
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}
	return q
}

// Table applies search, sort and pagination over the filtered record set and
// returns one page. The input slice is never reordered; sorting happens on a
// copy.
func Table(records []models.TransactionRecord, q TableQuery) models.TablePage {
	q = q.withDefaults()

	matched := records
	if needle := strings.ToLower(strings.TrimSpace(q.Search)); needle != "" {
		matched = make([]models.TransactionRecord, 0, len(records))
		for _, r := range records {
			if matchesSearch(r, needle) {
				matched = append(matched, r)
			}
		}
	}

	sorted := make([]models.TransactionRecord, len(matched))
	copy(sorted, matched)
	sort.SliceStable(sorted, func(i, j int) bool {
		less := columnLess(sorted[i], sorted[j], q.SortColumn)
		if q.SortDir == SortDesc {
			return columnLess(sorted[j], sorted[i], q.SortColumn)
		}
		return less
	})

	totalRows := len(sorted)
	totalPages := (totalRows + q.PerPage - 1) / q.PerPage
	start := (q.Page - 1) * q.PerPage
	if start > totalRows {
		start = totalRows
	}
	end := start + q.PerPage
	if end > totalRows {
		end = totalRows
	}

	rows := make([]models.TransactionRecord, end-start)
	copy(rows, sorted[start:end])

	return models.TablePage{
		Rows:       rows,
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalRows:  totalRows,
		TotalPages: totalPages,
	}
}

func matchesSearch(r models.TransactionRecord, needle string) bool {
	fields := []string{
		r.RegionName, r.CountryName, r.State, r.City,
		r.CategoryName, r.ProductName, r.CustomerName,
		r.EmployeeName, r.Status, r.WarehouseName, r.PostalCode,
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func columnLess(a, b models.TransactionRecord, column string) bool {
	switch column {
	case "OrderDate":
		return dateLess(a.OrderDate, b.OrderDate)
	case "EmployeeHireDate":
		return dateLess(a.EmployeeHireDate, b.EmployeeHireDate)
	case "OrderItemQuantity":
		return a.OrderItemQuantity < b.OrderItemQuantity
	case "PerUnitPrice":
		return a.PerUnitPrice < b.PerUnitPrice
	case "Profit":
		return a.Profit < b.Profit
	case "ProductStandardCost":
		return a.ProductStandardCost < b.ProductStandardCost
	case "TotalAmount":
		return a.TotalAmount < b.TotalAmount
	default:
		return strings.ToLower(stringColumn(a, column)) < strings.ToLower(stringColumn(b, column))
	}
}

// dateLess orders nil dates first so they surface at the end of the default
// descending view.
func dateLess(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}

func stringColumn(r models.TransactionRecord, column string) string {
	switch column {
	case "RegionName":
		return r.RegionName
	case "CountryName":
		return r.CountryName
	case "State":
		return r.State
	case "City":
		return r.City
	case "CategoryName":
		return r.CategoryName
	case "ProductName":
		return r.ProductName
	case "CustomerName":
		return r.CustomerName
	case "EmployeeName":
		return r.EmployeeName
	case "Status":
		return r.Status
	case "WarehouseName":
		return r.WarehouseName
	case "PostalCode":
		return r.PostalCode
	default:
		return r.Extra[column]
	}
}
