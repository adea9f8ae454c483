package metrics

import (
	"fmt"
	"slices"
	"strings"

	"ecommerce-dashboard/internal/models"
)

type groupAgg struct {
	revenue float64
	items   int
}

// CategoryPerformance attributes each line item of the period to its product
// category and aggregates revenue, item count and mean item price per
// category, sorted by revenue descending. Product ids must be unique in the
// products table; a duplicate would fan the join out and double-count items,
// so it is rejected.
func CategoryPerformance(sales []models.SalesRecord, products []models.Product, col PeriodColumn, period int) ([]models.CategoryPerformance, error) {
	categoryByProduct := make(map[string]string, len(products))
	for _, p := range products {
		if _, ok := categoryByProduct[p.ID]; ok {
			return nil, fmt.Errorf("duplicate product id %q in products table", p.ID)
		}
		categoryByProduct[p.ID] = p.CategoryName
	}

	groups := make(map[string]*groupAgg)
	for _, rec := range filterPeriod(sales, col, period) {
		category, ok := categoryByProduct[rec.ProductID]
		if !ok || category == "" || !rec.Price.Valid {
			continue
		}
		agg := groups[category]
		if agg == nil {
			agg = &groupAgg{}
			groups[category] = agg
		}
		agg.revenue += rec.Price.Float64
		agg.items++
	}

	out := make([]models.CategoryPerformance, 0, len(groups))
	for category, agg := range groups {
		out = append(out, models.CategoryPerformance{
			Category:     category,
			TotalRevenue: agg.revenue,
			Items:        agg.items,
			AvgItemPrice: agg.revenue / float64(agg.items),
		})
	}
	slices.SortFunc(out, func(a, b models.CategoryPerformance) int {
		if c := compareRevenue(a.TotalRevenue, b.TotalRevenue); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return out, nil
}

// GeographicPerformance attributes each line item to the customer's state via
// the two-hop join sales→orders→customers. Both lookup sides must be unique
// on their key so that an item is attributed exactly once.
func GeographicPerformance(sales []models.SalesRecord, orders []models.Order, customers []models.Customer, col PeriodColumn, period int) ([]models.StatePerformance, error) {
	customerByOrder := make(map[string]string, len(orders))
	for _, o := range orders {
		if _, ok := customerByOrder[o.ID]; ok {
			return nil, fmt.Errorf("duplicate order id %q in orders table", o.ID)
		}
		customerByOrder[o.ID] = o.CustomerID
	}

	stateByCustomer := make(map[string]string, len(customers))
	for _, c := range customers {
		if _, ok := stateByCustomer[c.ID]; ok {
			return nil, fmt.Errorf("duplicate customer id %q in customers table", c.ID)
		}
		stateByCustomer[c.ID] = c.State
	}

	groups := make(map[string]*groupAgg)
	for _, rec := range filterPeriod(sales, col, period) {
		customerID, ok := customerByOrder[rec.OrderID]
		if !ok {
			continue
		}
		state, ok := stateByCustomer[customerID]
		if !ok || state == "" || !rec.Price.Valid {
			continue
		}
		agg := groups[state]
		if agg == nil {
			agg = &groupAgg{}
			groups[state] = agg
		}
		agg.revenue += rec.Price.Float64
		agg.items++
	}

	out := make([]models.StatePerformance, 0, len(groups))
	for state, agg := range groups {
		out = append(out, models.StatePerformance{
			State:        state,
			TotalRevenue: agg.revenue,
			Items:        agg.items,
			AvgItemPrice: agg.revenue / float64(agg.items),
		})
	}
	slices.SortFunc(out, func(a, b models.StatePerformance) int {
		if c := compareRevenue(a.TotalRevenue, b.TotalRevenue); c != 0 {
			return c
		}
		return strings.Compare(a.State, b.State)
	})
	return out, nil
}

func compareRevenue(a, b float64) int {
	if a > b {
		return -1
	}
	if a < b {
		return 1
	}
	return 0
}
