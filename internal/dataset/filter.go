package dataset

import (
	"slices"

	"ecommerce-dashboard/internal/models"
)

// Filter narrows sales records to an analysis period. Zero-valued fields
// impose no constraint.
type Filter struct {
	StartYear int
	EndYear   int
	Months    []int
	Quarters  []int
}

// FilterSales returns the records matching every set constraint. Records
// without a purchase timestamp (year zero) never match a year bound.
func FilterSales(records []models.SalesRecord, f Filter) []models.SalesRecord {
	out := make([]models.SalesRecord, 0, len(records))
	for _, rec := range records {
		if f.StartYear != 0 && rec.Year < f.StartYear {
			continue
		}
		if f.EndYear != 0 && rec.Year > f.EndYear {
			continue
		}
		if len(f.Months) > 0 && !slices.Contains(f.Months, rec.Month) {
			continue
		}
		if len(f.Quarters) > 0 && !slices.Contains(f.Quarters, rec.Quarter) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
