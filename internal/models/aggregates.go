package models

import "time"

// KPIMetricSeries holds one value per month for the KPI sparklines,
// oldest first, at most the last six months present in the filtered set.
type KPIMetricSeries struct {
	Sales     []float64 `json:"sales"`
	Profit    []float64 `json:"profit"`
	Orders    []int     `json:"orders"`
	Customers []int     `json:"customers"`
}

// KPIChanges is the period-over-period percentage change per metric,
// comparing the last month of the series against the one before it.
// Zero when fewer than two months exist or the base month is zero.
type KPIChanges struct {
	Sales     float64 `json:"sales"`
	Profit    float64 `json:"profit"`
	Orders    float64 `json:"orders"`
	Customers float64 `json:"customers"`
}

// KPISummary is the headline aggregate for the KPI cards.
type KPISummary struct {
	TotalSales      float64         `json:"total_sales"`
	TotalProfit     float64         `json:"total_profit"`
	TotalOrders     int             `json:"total_orders"`
	UniqueCustomers int             `json:"unique_customers"`
	Months          []string        `json:"months"`
	MonthlySeries   KPIMetricSeries `json:"monthly_series"`
	Changes         KPIChanges      `json:"changes"`
}

// TimeSeriesPoint is one bucket of the sales/profit trend, monthly or weekly.
type TimeSeriesPoint struct {
	PeriodKey   string    `json:"period_key"`
	PeriodStart time.Time `json:"period_start"`
	Sales       float64   `json:"sales"`
	Profit      float64   `json:"profit"`
}

// CategoryRollup is sales and profit summed per category.
type CategoryRollup struct {
	Category string  `json:"category"`
	Sales    float64 `json:"sales"`
	Profit   float64 `json:"profit"`
}

// ProductRollup is sales and profit summed per product.
type ProductRollup struct {
	Product string  `json:"product"`
	Sales   float64 `json:"sales"`
	Profit  float64 `json:"profit"`
}

// StreamMatrix is the month x category sales matrix behind the stream graph.
// Months are ascending; Categories keep first-seen order; Values[i][j] is the
// sales for Months[i] and Categories[j], zero-filled for missing cells.
type StreamMatrix struct {
	Months     []string    `json:"months"`
	Categories []string    `json:"categories"`
	Values     [][]float64 `json:"values"`
}

// GeoLevel selects the geographic drill level.
type GeoLevel string

const (
	GeoCountry   GeoLevel = "country"
	GeoState     GeoLevel = "state"
	GeoCity      GeoLevel = "city"
	GeoWarehouse GeoLevel = "warehouse"
)

// GeoRollup aggregates the three map measures in parallel for one location,
// so the consumer can switch measure without recomputing.
type GeoRollup struct {
	LocationName   string   `json:"location_name"`
	LocationType   GeoLevel `json:"location_type"`
	ProductsValue  float64  `json:"products_value"`
	EmployeesValue int      `json:"employees_value"`
	InventoryValue float64  `json:"inventory_value"`
}

// HierarchyNode is one node of the region -> country -> category -> product
// tree. Non-leaf totals are always the sum over descendant leaves.
type HierarchyNode struct {
	Name     string           `json:"name"`
	Value    float64          `json:"value"`
	Profit   float64          `json:"profit"`
	Count    int              `json:"count"`
	Children []*HierarchyNode `json:"children,omitempty"`
}

// GraphNodeType distinguishes the two node kinds of the product graph.
type GraphNodeType string

const (
	NodeCategory GraphNodeType = "category"
	NodeProduct  GraphNodeType = "product"
)

// GraphNode is a category or product vertex of the co-purchase graph.
type GraphNode struct {
	ID            string        `json:"id"`
	Type          GraphNodeType `json:"type"`
	Category      string        `json:"category,omitempty"`
	TotalSales    float64       `json:"total_sales"`
	Count         int           `json:"count"`
	ProductCount  int           `json:"product_count,omitempty"`
	CustomerCount int           `json:"customer_count,omitempty"`
	OrderCount    int           `json:"order_count,omitempty"`
}

// GraphLinkType distinguishes structural links from co-purchase edges.
type GraphLinkType string

const (
	LinkCategoryProduct GraphLinkType = "category-product"
	LinkCoPurchase      GraphLinkType = "co-purchase"
)

// GraphLink is one edge of the product graph. For co-purchase edges Weight
// is the number of shared purchase events and CustomerCount the number of
// distinct customers behind them.
type GraphLink struct {
	Source        string        `json:"source"`
	Target        string        `json:"target"`
	Type          GraphLinkType `json:"type"`
	Weight        int           `json:"weight"`
	CustomerCount int           `json:"customer_count,omitempty"`
}

// ProductGraph is the pruned co-purchase graph handed to the network view.
type ProductGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// TablePage is one page of the sortable, searchable transaction table.
type TablePage struct {
	Rows       []TransactionRecord `json:"rows"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
	TotalRows  int                 `json:"total_rows"`
	TotalPages int                 `json:"total_pages"`
}
