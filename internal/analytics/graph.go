package analytics

import (
	"slices"
	"sort"
	"strings"
	"time"

	"salesdash/internal/models"
)

// GraphConfig tunes how hard the co-purchase graph is pruned before it is
// handed to the force layout. The defaults keep the graph renderable on a
// typical dataset; they are presentation policy, not correctness.
type GraphConfig struct {
	TopCategories int
	TopProducts   int
	MinEdgeWeight int
}

// DefaultGraphConfig mirrors the original dashboard: top 5 categories,
// top 30 products within them, co-purchase edges kept only above weight 1.
func DefaultGraphConfig() GraphConfig {
	return GraphConfig{TopCategories: 5, TopProducts: 30, MinEdgeWeight: 1}
}

func (c GraphConfig) withDefaults() GraphConfig {
	d := DefaultGraphConfig()
	if c.TopCategories <= 0 {
		c.TopCategories = d.TopCategories
	}
	if c.TopProducts <= 0 {
		c.TopProducts = d.TopProducts
	}
	if c.MinEdgeWeight < 0 {
		c.MinEdgeWeight = d.MinEdgeWeight
	}
	return c
}

type productStats struct {
	category  string
	sales     float64
	count     int
	customers map[string]struct{}
	orders    map[string]struct{}
}

type categoryStats struct {
	sales    float64
	count    int
	products map[string]struct{}
}

type edgeStats struct {
	source    string
	target    string
	weight    int
	customers map[string]struct{}
}

// Graph builds the pruned product co-purchase graph: category and product
// nodes ranked by sales, category->product structure links, and co-purchase
// edges weighted by how many distinct customers bought both endpoints.
func Graph(records []models.TransactionRecord, cfg GraphConfig) models.ProductGraph {
	cfg = cfg.withDefaults()

	products := make(map[string]*productStats)
	categories := make(map[string]*categoryStats)
	purchases := make(map[string]map[string]struct{})

	for _, r := range records {
		if r.ProductName != "" {
			p := products[r.ProductName]
			if p == nil {
				p = &productStats{
					category:  r.CategoryName,
					customers: make(map[string]struct{}),
					orders:    make(map[string]struct{}),
				}
				products[r.ProductName] = p
			}
			p.sales += r.TotalAmount
			p.count++
			if r.CustomerName != "" {
				p.customers[r.CustomerName] = struct{}{}
			}
			if r.OrderDate != nil {
				p.orders[r.OrderDate.Format(time.RFC3339)] = struct{}{}
			}
		}

		if r.CategoryName != "" {
			c := categories[r.CategoryName]
			if c == nil {
				c = &categoryStats{products: make(map[string]struct{})}
				categories[r.CategoryName] = c
			}
			c.sales += r.TotalAmount
			c.count++
			if r.ProductName != "" {
				c.products[r.ProductName] = struct{}{}
			}
		}

		if r.CustomerName != "" && r.ProductName != "" {
			set := purchases[r.CustomerName]
			if set == nil {
				set = make(map[string]struct{})
				purchases[r.CustomerName] = set
			}
			set[r.ProductName] = struct{}{}
		}
	}

	edges := coPurchaseEdges(purchases)

	topCategories := rankCategories(categories, cfg.TopCategories)
	topCategoryIDs := make(map[string]struct{}, len(topCategories))
	for _, c := range topCategories {
		topCategoryIDs[c.ID] = struct{}{}
	}

	topProducts := rankProducts(products, topCategoryIDs, cfg.TopProducts)
	topProductIDs := make(map[string]struct{}, len(topProducts))
	for _, p := range topProducts {
		topProductIDs[p.ID] = struct{}{}
	}

	graph := models.ProductGraph{
		Nodes: append(topCategories, topProducts...),
		Links: []models.GraphLink{},
	}

	for _, p := range topProducts {
		graph.Links = append(graph.Links, models.GraphLink{
			Source: p.Category,
			Target: p.ID,
			Type:   models.LinkCategoryProduct,
			Weight: 3,
		})
	}

	for _, e := range edges {
		if e.weight <= cfg.MinEdgeWeight {
			continue
		}
		if _, ok := topProductIDs[e.source]; !ok {
			continue
		}
		if _, ok := topProductIDs[e.target]; !ok {
			continue
		}
		graph.Links = append(graph.Links, models.GraphLink{
			Source:        e.source,
			Target:        e.target,
			Type:          models.LinkCoPurchase,
			Weight:        e.weight,
			CustomerCount: len(e.customers),
		})
	}

	return graph
}

// coPurchaseEdges counts, for every unordered pair of distinct products, the
// customers who bought both. Edges come back in a stable key order.
func coPurchaseEdges(purchases map[string]map[string]struct{}) []*edgeStats {
	edges := make(map[string]*edgeStats)
	for customer, set := range purchases {
		bought := make([]string, 0, len(set))
		for p := range set {
			bought = append(bought, p)
		}
		sort.Strings(bought)
		for i := 0; i < len(bought); i++ {
			for j := i + 1; j < len(bought); j++ {
				key := bought[i] + "\x00" + bought[j]
				e := edges[key]
				if e == nil {
					e = &edgeStats{
						source:    bought[i],
						target:    bought[j],
						customers: make(map[string]struct{}),
					}
					edges[key] = e
				}
				e.weight++
				e.customers[customer] = struct{}{}
			}
		}
	}

	keys := make([]string, 0, len(edges))
	for k := range edges {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*edgeStats, 0, len(keys))
	for _, k := range keys {
		out = append(out, edges[k])
	}
	return out
}

func rankCategories(categories map[string]*categoryStats, limit int) []models.GraphNode {
	nodes := make([]models.GraphNode, 0, len(categories))
	for name, c := range categories {
		nodes = append(nodes, models.GraphNode{
			ID:           name,
			Type:         models.NodeCategory,
			TotalSales:   c.sales,
			Count:        c.count,
			ProductCount: len(c.products),
		})
	}
	sortNodesBySales(nodes)
	if len(nodes) > limit {
		nodes = nodes[:limit]
	}
	return nodes
}

func rankProducts(products map[string]*productStats, topCategories map[string]struct{}, limit int) []models.GraphNode {
	nodes := make([]models.GraphNode, 0, len(products))
	for name, p := range products {
		if _, ok := topCategories[p.category]; !ok {
			continue
		}
		nodes = append(nodes, models.GraphNode{
			ID:            name,
			Type:          models.NodeProduct,
			Category:      p.category,
			TotalSales:    p.sales,
			Count:         p.count,
			CustomerCount: len(p.customers),
			OrderCount:    len(p.orders),
		})
	}
	sortNodesBySales(nodes)
	if len(nodes) > limit {
		nodes = nodes[:limit]
	}
	return nodes
}

func sortNodesBySales(nodes []models.GraphNode) {
	slices.SortFunc(nodes, func(a, b models.GraphNode) int {
		if a.TotalSales != b.TotalSales {
			if a.TotalSales > b.TotalSales {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
}
