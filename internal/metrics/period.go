// Package metrics computes descriptive business metrics over the sales table.
// Every function is a pure reduction over its inputs; nothing here holds
// state between calls.
package metrics

import (
	"ecommerce-dashboard/internal/models"
)

// PeriodColumn selects the date part used to bucket sales records.
type PeriodColumn string

const (
	PeriodYear  PeriodColumn = "year"
	PeriodMonth PeriodColumn = "month"
)

func (p PeriodColumn) Value(rec models.SalesRecord) int {
	if p == PeriodMonth {
		return rec.Month
	}
	return rec.Year
}

func filterPeriod(sales []models.SalesRecord, col PeriodColumn, period int) []models.SalesRecord {
	out := make([]models.SalesRecord, 0, len(sales))
	for _, rec := range sales {
		if col.Value(rec) == period {
			out = append(out, rec)
		}
	}
	return out
}

// growthPct is the period-over-period growth percentage. A non-positive
// comparison yields exactly 0, not an error.
func growthPct(current, comparison float64) float64 {
	if comparison > 0 {
		return (current - comparison) / comparison * 100
	}
	return 0
}

func sumPrice(sales []models.SalesRecord) float64 {
	var total float64
	for _, rec := range sales {
		if rec.Price.Valid {
			total += rec.Price.Float64
		}
	}
	return total
}
