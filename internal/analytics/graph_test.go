package analytics

import (
	"testing"

	"salesdash/internal/models"
)

func graphRecord(t *testing.T, customer, category, product string, sales float64) models.TransactionRecord {
	t.Helper()
	r := record(t, "2016-01-15", 1, sales, 0)
	r.CustomerName = customer
	r.CategoryName = category
	r.ProductName = product
	return r
}

func coPurchaseLinks(g models.ProductGraph) []models.GraphLink {
	links := []models.GraphLink{}
	for _, l := range g.Links {
		if l.Type == models.LinkCoPurchase {
			links = append(links, l)
		}
	}
	return links
}

func TestGraph_CoPurchaseWeightIsDistinctCustomers(t *testing.T) {
	records := []models.TransactionRecord{
		graphRecord(t, "Ava", "Electronics", "Laptop", 100),
		graphRecord(t, "Ava", "Electronics", "Mouse", 20),
		graphRecord(t, "Ava", "Electronics", "Mouse", 20), // repeat purchase, same customer
		graphRecord(t, "Ben", "Electronics", "Laptop", 100),
		graphRecord(t, "Ben", "Electronics", "Mouse", 20),
	}

	got := Graph(records, GraphConfig{MinEdgeWeight: 1})

	links := coPurchaseLinks(got)
	if len(links) != 1 {
		t.Fatalf("got %d co-purchase links, want 1", len(links))
	}
	l := links[0]
	if l.Source != "Laptop" || l.Target != "Mouse" {
		t.Errorf("link = %s -> %s, want Laptop -> Mouse", l.Source, l.Target)
	}
	if l.Weight != 2 || l.CustomerCount != 2 {
		t.Errorf("weight/customers = %d/%d, want 2/2", l.Weight, l.CustomerCount)
	}
}

func TestGraph_MinEdgeWeightPrunes(t *testing.T) {
	// Exactly one customer bought both, so the pair's weight is 1.
	records := []models.TransactionRecord{
		graphRecord(t, "Ava", "Electronics", "Laptop", 100),
		graphRecord(t, "Ava", "Electronics", "Mouse", 20),
	}

	got := Graph(records, GraphConfig{MinEdgeWeight: 1})
	if links := coPurchaseLinks(got); len(links) != 0 {
		t.Errorf("got %d co-purchase links, want 0 (weight 1 is not above threshold)", len(links))
	}
}

func TestGraph_TopCategoryAndProductLimits(t *testing.T) {
	records := []models.TransactionRecord{
		graphRecord(t, "Ava", "Electronics", "Laptop", 300),
		graphRecord(t, "Ben", "Furniture", "Desk", 200),
		graphRecord(t, "Cam", "Office", "Stapler", 5),
	}

	got := Graph(records, GraphConfig{TopCategories: 2, TopProducts: 2, MinEdgeWeight: 1})

	var categoryIDs, productIDs []string
	for _, n := range got.Nodes {
		switch n.Type {
		case models.NodeCategory:
			categoryIDs = append(categoryIDs, n.ID)
		case models.NodeProduct:
			productIDs = append(productIDs, n.ID)
		}
	}

	if len(categoryIDs) != 2 || categoryIDs[0] != "Electronics" || categoryIDs[1] != "Furniture" {
		t.Errorf("category nodes = %v, want top two by sales [Electronics Furniture]", categoryIDs)
	}
	// Stapler's category was cut, so the product goes with it.
	if len(productIDs) != 2 || productIDs[0] != "Laptop" || productIDs[1] != "Desk" {
		t.Errorf("product nodes = %v, want [Laptop Desk]", productIDs)
	}
}

func TestGraph_CategoryProductLinks(t *testing.T) {
	records := []models.TransactionRecord{
		graphRecord(t, "Ava", "Electronics", "Laptop", 100),
		graphRecord(t, "Ben", "Electronics", "Mouse", 20),
	}

	got := Graph(records, GraphConfig{})

	structural := 0
	for _, l := range got.Links {
		if l.Type != models.LinkCategoryProduct {
			continue
		}
		structural++
		if l.Source != "Electronics" {
			t.Errorf("structural link source = %s, want Electronics", l.Source)
		}
		if l.Weight != 3 {
			t.Errorf("structural link weight = %d, want 3", l.Weight)
		}
	}
	if structural != 2 {
		t.Errorf("got %d structural links, want one per product", structural)
	}
}

func TestGraph_NodeStats(t *testing.T) {
	records := []models.TransactionRecord{
		graphRecord(t, "Ava", "Electronics", "Laptop", 100),
		graphRecord(t, "Ben", "Electronics", "Laptop", 100),
	}

	got := Graph(records, GraphConfig{})

	var laptop *models.GraphNode
	for i := range got.Nodes {
		if got.Nodes[i].Type == models.NodeProduct && got.Nodes[i].ID == "Laptop" {
			laptop = &got.Nodes[i]
		}
	}
	if laptop == nil {
		t.Fatal("Laptop node missing")
	}
	if laptop.TotalSales != 200 || laptop.Count != 2 || laptop.CustomerCount != 2 {
		t.Errorf("Laptop node = %+v, want sales 200, count 2, customers 2", laptop)
	}
	if laptop.OrderCount != 1 {
		t.Errorf("Laptop OrderCount = %d, want 1 (same order date)", laptop.OrderCount)
	}
	if laptop.Category != "Electronics" {
		t.Errorf("Laptop category = %s, want Electronics", laptop.Category)
	}
}

func TestGraph_EmptyInput(t *testing.T) {
	got := Graph(nil, GraphConfig{})
	if got.Nodes == nil || got.Links == nil {
		t.Error("Graph(nil) must return empty slices, not nil")
	}
	if len(got.Nodes) != 0 || len(got.Links) != 0 {
		t.Errorf("Graph(nil) = %d nodes %d links, want none", len(got.Nodes), len(got.Links))
	}
}
