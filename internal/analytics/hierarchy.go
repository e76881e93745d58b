package analytics

import "salesdash/internal/models"

// Hierarchy builds the 4-level region -> country -> category -> product tree
// behind the sunburst view. Leaves accumulate sales value, profit and record
// count; every non-leaf total is recomputed bottom-up once the tree is fully
// populated, so parents are always exactly the sum of their descendants.
// Missing keys at any level bucket under "Unknown". Children keep
// first-seen order.
func Hierarchy(records []models.TransactionRecord) *models.HierarchyNode {
	root := &models.HierarchyNode{Name: "root", Children: []*models.HierarchyNode{}}

	for _, r := range records {
		region := childNode(root, orUnknown(r.RegionName))
		country := childNode(region, orUnknown(r.CountryName))
		category := childNode(country, orUnknown(r.CategoryName))
		product := childNode(category, orUnknown(r.ProductName))

		product.Value += r.TotalAmount
		product.Profit += r.Profit
		product.Count++
	}

	sumUp(root)
	return root
}

func orUnknown(s string) string {
	if s == "" {
		return unknownBucket
	}
	return s
}

func childNode(parent *models.HierarchyNode, name string) *models.HierarchyNode {
	for _, c := range parent.Children {
		if c.Name == name {
			return c
		}
	}
	c := &models.HierarchyNode{Name: name}
	parent.Children = append(parent.Children, c)
	return c
}

// sumUp recomputes non-leaf totals as the sum over children. Leaves keep
// their accumulated values.
func sumUp(node *models.HierarchyNode) (value, profit float64, count int) {
	if len(node.Children) == 0 {
		return node.Value, node.Profit, node.Count
	}
	node.Value, node.Profit, node.Count = 0, 0, 0
	for _, c := range node.Children {
		v, p, n := sumUp(c)
		node.Value += v
		node.Profit += p
		node.Count += n
	}
	return node.Value, node.Profit, node.Count
}
