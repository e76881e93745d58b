// Package exports writes the filtered transaction table as an XLSX workbook
// for download.
package exports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"salesdash/internal/models"
)

const sheetName = "Transactions"

var columns = []string{
	"OrderDate", "CustomerName", "RegionName", "CountryName", "State", "City",
	"CategoryName", "ProductName", "Status", "OrderItemQuantity",
	"PerUnitPrice", "TotalAmount", "Profit",
}

// WriteWorkbook streams an XLSX workbook with one row per record.
func WriteWorkbook(w io.Writer, records []models.TransactionRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}

		orderDate := ""
		if r.OrderDate != nil {
			orderDate = r.OrderDate.Format("2006-01-02")
		}

		row := []any{
			orderDate, r.CustomerName, r.RegionName, r.CountryName, r.State,
			r.City, r.CategoryName, r.ProductName, r.Status,
			r.OrderItemQuantity, r.PerUnitPrice, r.TotalAmount, r.Profit,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}
