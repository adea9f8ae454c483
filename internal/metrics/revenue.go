package metrics

import (
	"slices"

	"ecommerce-dashboard/internal/models"
)

// Revenue sums item prices for the current and comparison periods.
func Revenue(sales []models.SalesRecord, col PeriodColumn, current, comparison int) models.RevenueMetrics {
	currentRevenue := sumPrice(filterPeriod(sales, col, current))
	comparisonRevenue := sumPrice(filterPeriod(sales, col, comparison))

	return models.RevenueMetrics{
		CurrentRevenue:    currentRevenue,
		ComparisonRevenue: comparisonRevenue,
		GrowthPct:         growthPct(currentRevenue, comparisonRevenue),
		CurrentPeriod:     current,
		ComparisonPeriod:  comparison,
	}
}

// OrderVolume counts distinct order ids per period. One order spanning
// several line items counts once.
func OrderVolume(sales []models.SalesRecord, col PeriodColumn, current, comparison int) models.OrderVolumeMetrics {
	currentOrders := countDistinctOrders(filterPeriod(sales, col, current))
	comparisonOrders := countDistinctOrders(filterPeriod(sales, col, comparison))

	return models.OrderVolumeMetrics{
		CurrentOrders:    currentOrders,
		ComparisonOrders: comparisonOrders,
		GrowthPct:        growthPct(float64(currentOrders), float64(comparisonOrders)),
	}
}

// AverageOrderValue is the mean of per-order price totals: line items are
// first rolled up into order totals, then the totals are averaged. With no
// orders in a period the AOV is 0.
func AverageOrderValue(sales []models.SalesRecord, col PeriodColumn, current, comparison int) models.AOVMetrics {
	currentAOV := meanOrderTotal(filterPeriod(sales, col, current))
	comparisonAOV := meanOrderTotal(filterPeriod(sales, col, comparison))

	return models.AOVMetrics{
		CurrentAOV:    currentAOV,
		ComparisonAOV: comparisonAOV,
		GrowthPct:     growthPct(currentAOV, comparisonAOV),
	}
}

// MonthlyGrowthTrend sums revenue per month within one year and computes the
// month-over-month change as a fraction (0.5 means +50%), unlike the
// period-comparison metrics which report percentages. Only months present in
// the data appear, ordered ascending; the first month has no prior month, so
// its growth is nil.
func MonthlyGrowthTrend(sales []models.SalesRecord, targetYear int) []models.MonthlyGrowthPoint {
	byMonth := make(map[int]float64)
	for _, rec := range sales {
		if rec.Year != targetYear || !rec.Price.Valid {
			continue
		}
		byMonth[rec.Month] += rec.Price.Float64
	}

	months := make([]int, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	slices.Sort(months)

	trend := make([]models.MonthlyGrowthPoint, 0, len(months))
	for i, m := range months {
		point := models.MonthlyGrowthPoint{Month: m, Revenue: byMonth[m]}
		if i > 0 {
			var g float64
			if prev := byMonth[months[i-1]]; prev > 0 {
				g = (byMonth[m] - prev) / prev
			}
			point.GrowthPct = &g
		}
		trend = append(trend, point)
	}
	return trend
}

// AverageMonthlyGrowth is the mean month-over-month growth fraction across a
// trend. Months without a prior month are skipped; an empty or single-month
// trend averages to 0.
func AverageMonthlyGrowth(trend []models.MonthlyGrowthPoint) float64 {
	var sum float64
	var n int
	for _, p := range trend {
		if p.GrowthPct != nil {
			sum += *p.GrowthPct
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func countDistinctOrders(sales []models.SalesRecord) int {
	seen := make(map[string]struct{}, len(sales))
	for _, rec := range sales {
		seen[rec.OrderID] = struct{}{}
	}
	return len(seen)
}

func meanOrderTotal(sales []models.SalesRecord) float64 {
	totals := make(map[string]float64, len(sales))
	for _, rec := range sales {
		if _, ok := totals[rec.OrderID]; !ok {
			totals[rec.OrderID] = 0
		}
		if rec.Price.Valid {
			totals[rec.OrderID] += rec.Price.Float64
		}
	}
	if len(totals) == 0 {
		return 0
	}
	var sum float64
	for _, t := range totals {
		sum += t
	}
	return sum / float64(len(totals))
}
