package metrics

import (
	"slices"
	"strings"

	"ecommerce-dashboard/internal/models"
)

// StatusDistribution is the normalized frequency of each order status among
// orders purchased in the given year. It runs over the raw orders table, not
// the sales join, so cancelled and unfulfilled orders are represented.
func StatusDistribution(orders []models.Order, year int) []models.StatusShare {
	counts := make(map[string]int)
	total := 0
	for _, o := range orders {
		if o.Year != year || o.Status == "" {
			continue
		}
		counts[o.Status]++
		total++
	}
	if total == 0 {
		return nil
	}

	out := make([]models.StatusShare, 0, len(counts))
	for status, n := range counts {
		out = append(out, models.StatusShare{
			Status: status,
			Orders: n,
			Share:  float64(n) / float64(total),
		})
	}
	slices.SortFunc(out, func(a, b models.StatusShare) int {
		if a.Orders != b.Orders {
			return b.Orders - a.Orders
		}
		return strings.Compare(a.Status, b.Status)
	})
	return out
}
