package dataset

import (
	"fmt"
	"math/rand"
	"time"

	"salesdash/internal/models"
)

// mockSeed fixes the synthetic dataset so the fallback is reproducible
// run to run.
const mockSeed = 20160101

const mockRecords = 240

type mockGeo struct {
	region    string
	country   string
	state     string
	city      string
	warehouse string
}

var mockGeos = []mockGeo{
	{"North America", "United States", "California", "San Francisco", "Southlake Warehouse"},
	{"North America", "United States", "Texas", "Austin", "Southlake Warehouse"},
	{"North America", "Canada", "Ontario", "Toronto", "Toronto Warehouse"},
	{"Europe", "Germany", "Bavaria", "Munich", "Munich Warehouse"},
	{"Europe", "United Kingdom", "England", "Oxford", "Oxford Warehouse"},
	{"Asia", "Japan", "Tokyo", "Tokyo", "Tokyo Warehouse"},
	{"Asia", "India", "Maharashtra", "Bombay", "Bombay Warehouse"},
	{"Middle East and Africa", "Egypt", "Cairo", "Cairo", "Cairo Warehouse"},
}

type mockProduct struct {
	category string
	name     string
	price    float64
	cost     float64
}

var mockProducts = []mockProduct{
	{"Electronics", "Laptop", 1200, 800},
	{"Electronics", "Smartphone", 600, 380},
	{"Electronics", "Monitor", 300, 190},
	{"Furniture", "Office Chair", 120, 70},
	{"Furniture", "Standing Desk", 450, 280},
	{"Office Supplies", "Paper Ream", 8, 4},
	{"Office Supplies", "Toner Cartridge", 65, 35},
	{"Appliances", "Coffee Machine", 220, 140},
}

var mockCustomers = []string{
	"Ava Carter", "Ben Walsh", "Chloe Nguyen", "Daniel Reyes",
	"Elena Fischer", "Farid Haddad", "Grace Kim", "Hiro Tanaka",
	"Ines Moreau", "Jonas Berg",
}

var mockEmployees = []string{
	"Summer Payne", "Rose Stephens", "Annabelle Dunn", "Tommy Bailey",
}

var mockStatuses = []string{"Shipped", "Delivered", "Processing", "Pending", "Canceled"}

// Mock returns the deterministic synthetic dataset used when the real CSV
// cannot be loaded. Same shape as normalized CSV records, smaller volume.
func Mock() []models.TransactionRecord {
	rng := rand.New(rand.NewSource(mockSeed))
	start := time.Date(2013, time.March, 1, 0, 0, 0, 0, time.UTC)
	span := int(time.Date(2017, time.September, 30, 0, 0, 0, 0, time.UTC).Sub(start).Hours() / 24)

	records := make([]models.TransactionRecord, 0, mockRecords)
	for i := 0; i < mockRecords; i++ {
		geo := mockGeos[rng.Intn(len(mockGeos))]
		product := mockProducts[rng.Intn(len(mockProducts))]
		orderDate := start.AddDate(0, 0, rng.Intn(span))
		hireDate := orderDate.AddDate(-rng.Intn(6)-1, 0, 0)
		quantity := float64(rng.Intn(20) + 1)

		r := models.TransactionRecord{
			OrderDate:        &orderDate,
			EmployeeHireDate: &hireDate,
			RegionName:       geo.region,
			CountryName:      geo.country,
			State:            geo.state,
			City:             geo.city,
			WarehouseName:    geo.warehouse,
			PostalCode:       fmt.Sprintf("%05d", rng.Intn(99999)),
			CategoryName:     product.category,
			ProductName:      product.name,
			CustomerName:     mockCustomers[rng.Intn(len(mockCustomers))],
			EmployeeName:     mockEmployees[rng.Intn(len(mockEmployees))],
			Status:           mockStatuses[rng.Intn(len(mockStatuses))],

			OrderItemQuantity:   quantity,
			PerUnitPrice:        product.price,
			ProductStandardCost: product.cost,
		}
		r.TotalAmount = r.OrderItemQuantity * r.PerUnitPrice
		r.Profit = (product.price - product.cost) * quantity * (0.5 + rng.Float64()/2)
		records = append(records, r)
	}
	return records
}
