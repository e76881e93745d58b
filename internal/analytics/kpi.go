package analytics

import (
	"sort"

	"salesdash/internal/models"
)

// sparklineMonths caps the KPI sparkline at the last N calendar months
// present in the filtered set.
const sparklineMonths = 6

type monthAccumulator struct {
	sales     float64
	profit    float64
	orders    map[string]struct{}
	customers map[string]struct{}
}

// KPIs folds the filtered record set into the four headline totals plus a
// monthly sparkline series and period-over-period changes.
//
// TotalOrders counts distinct (order date, customer) pairs; records missing
// either field do not contribute. That under-counts orders lacking a
// customer, which matches the original dashboard and is kept for
// comparability.
func KPIs(records []models.TransactionRecord) models.KPISummary {
	summary := models.KPISummary{
		Months: []string{},
		MonthlySeries: models.KPIMetricSeries{
			Sales:     []float64{},
			Profit:    []float64{},
			Orders:    []int{},
			Customers: []int{},
		},
	}

	orderKeys := make(map[string]struct{})
	customers := make(map[string]struct{})
	byMonth := make(map[string]*monthAccumulator)

	for _, r := range records {
		summary.TotalSales += r.TotalAmount
		summary.TotalProfit += r.Profit

		if key, ok := r.OrderKey(); ok {
			orderKeys[key] = struct{}{}
		}
		if r.CustomerName != "" {
			customers[r.CustomerName] = struct{}{}
		}

		if r.OrderDate == nil {
			continue
		}
		month := r.OrderDate.Format("2006-01")
		acc := byMonth[month]
		if acc == nil {
			acc = &monthAccumulator{
				orders:    make(map[string]struct{}),
				customers: make(map[string]struct{}),
			}
			byMonth[month] = acc
		}
		acc.sales += r.TotalAmount
		acc.profit += r.Profit
		if key, ok := r.OrderKey(); ok {
			acc.orders[key] = struct{}{}
		}
		if r.CustomerName != "" {
			acc.customers[r.CustomerName] = struct{}{}
		}
	}

	summary.TotalOrders = len(orderKeys)
	summary.UniqueCustomers = len(customers)

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > sparklineMonths {
		months = months[len(months)-sparklineMonths:]
	}

	for _, m := range months {
		acc := byMonth[m]
		summary.Months = append(summary.Months, m)
		summary.MonthlySeries.Sales = append(summary.MonthlySeries.Sales, acc.sales)
		summary.MonthlySeries.Profit = append(summary.MonthlySeries.Profit, acc.profit)
		summary.MonthlySeries.Orders = append(summary.MonthlySeries.Orders, len(acc.orders))
		summary.MonthlySeries.Customers = append(summary.MonthlySeries.Customers, len(acc.customers))
	}

	summary.Changes = models.KPIChanges{
		Sales:     periodChange(summary.MonthlySeries.Sales),
		Profit:    periodChange(summary.MonthlySeries.Profit),
		Orders:    periodChangeInts(summary.MonthlySeries.Orders),
		Customers: periodChangeInts(summary.MonthlySeries.Customers),
	}
	return summary
}

// periodChange compares the last series value against the one before it.
// Returns 0 when fewer than two values exist or the base is zero, never
// NaN or Inf.
func periodChange(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	last := series[len(series)-1]
	base := series[len(series)-2]
	if base == 0 {
		return 0
	}
	return (last - base) / base * 100
}

func periodChangeInts(series []int) float64 {
	floats := make([]float64, len(series))
	for i, v := range series {
		floats[i] = float64(v)
	}
	return periodChange(floats)
}
