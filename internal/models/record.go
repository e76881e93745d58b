package models

import "time"

// TransactionRecord is one normalized row of the sales dataset. Records are
// immutable after normalization: aggregators copy, never edit in place.
//
// Missing categorical fields are kept as "" here; aggregators map them to
// "Unknown" at grouping time. Missing numeric fields are 0.
type TransactionRecord struct {
	OrderDate        *time.Time `json:"order_date"`
	EmployeeHireDate *time.Time `json:"employee_hire_date"`

	RegionName   string `json:"region_name"`
	CountryName  string `json:"country_name"`
	State        string `json:"state"`
	City         string `json:"city"`
	CategoryName string `json:"category_name"`
	ProductName  string `json:"product_name"`
	CustomerName string `json:"customer_name"`
	EmployeeName string `json:"employee_name"`
	Status       string `json:"status"`

	WarehouseName string `json:"warehouse_name"`
	PostalCode    string `json:"postal_code"`

	OrderItemQuantity   float64 `json:"order_item_quantity"`
	PerUnitPrice        float64 `json:"per_unit_price"`
	Profit              float64 `json:"profit"`
	ProductStandardCost float64 `json:"product_standard_cost"`

	// TotalAmount = OrderItemQuantity * PerUnitPrice, computed once at
	// normalization time and authoritative thereafter.
	TotalAmount float64 `json:"total_amount"`

	// Extra holds unrecognized CSV columns verbatim.
	Extra map[string]string `json:"extra,omitempty"`
}

// HasOrderDate reports whether the record carries a parseable order date.
func (r *TransactionRecord) HasOrderDate() bool {
	return r.OrderDate != nil
}

// OrderKey is the distinct-order grouping key: timestamp plus customer.
// Records missing either field have no order key and do not count toward
// order totals. Kept identical to the original dashboard for comparability.
func (r *TransactionRecord) OrderKey() (string, bool) {
	if r.OrderDate == nil || r.CustomerName == "" {
		return "", false
	}
	return r.OrderDate.Format(time.RFC3339) + "_" + r.CustomerName, true
}
