package metrics

import (
	"fmt"
	"math"

	"ecommerce-dashboard/internal/models"
)

// Delivery speed buckets. Boundaries are inclusive: 3 days is fast, 7 is
// mid, 8 and above is slow.
const (
	BucketFast = "1-3 days"
	BucketMid  = "4-7 days"
	BucketSlow = "8+ days"
)

type satisfactionRow struct {
	orderID      string
	deliveryDays int
	hasDelivery  bool
	score        float64
	hasScore     bool
}

// Satisfaction joins the period's sales records with reviews by order id and
// collapses the result to order level before averaging: delivery time and
// review score are order-level facts, and keeping one row per line item would
// overweight multi-item orders. Rows without a delivery timestamp contribute
// to the review average but are excluded from delivery averages and buckets;
// negative delivery times are kept as a data-quality signal.
func Satisfaction(sales []models.SalesRecord, reviews []models.Review, col PeriodColumn, period int) models.SatisfactionMetrics {
	scoresByOrder := make(map[string][]models.NullFloat64, len(reviews))
	for _, rv := range reviews {
		scoresByOrder[rv.OrderID] = append(scoresByOrder[rv.OrderID], rv.Score)
	}

	seen := make(map[string]struct{})
	var rows []satisfactionRow
	for _, rec := range filterPeriod(sales, col, period) {
		days, hasDays := deliveryDays(rec)
		for _, score := range scoresByOrder[rec.OrderID] {
			row := satisfactionRow{
				orderID:      rec.OrderID,
				deliveryDays: days,
				hasDelivery:  hasDays,
				score:        score.Float64,
				hasScore:     score.Valid,
			}
			key := dedupKey(row)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			rows = append(rows, row)
		}
	}

	var scoreSum, daySum float64
	var scoreCount, dayCount int
	bucketSum := make(map[string]float64, 3)
	bucketCount := make(map[string]int, 3)
	for _, row := range rows {
		if row.hasScore {
			scoreSum += row.score
			scoreCount++
		}
		if row.hasDelivery {
			daySum += float64(row.deliveryDays)
			dayCount++
		}
		if row.hasScore && row.hasDelivery {
			b := deliveryBucket(row.deliveryDays)
			bucketSum[b] += row.score
			bucketCount[b]++
		}
	}

	byBucket := make(map[string]float64, len(bucketSum))
	for b, sum := range bucketSum {
		byBucket[b] = sum / float64(bucketCount[b])
	}

	m := models.SatisfactionMetrics{
		ByDeliverySpeed: byBucket,
		Orders:          len(rows),
	}
	if scoreCount > 0 {
		m.AvgReviewScore = scoreSum / float64(scoreCount)
	}
	if dayCount > 0 {
		m.AvgDeliveryDays = daySum / float64(dayCount)
	}
	return m
}

// deliveryDays is the whole-day delivery time, floored. It is absent when
// either timestamp is missing.
func deliveryDays(rec models.SalesRecord) (int, bool) {
	if !rec.PurchasedAt.Valid || !rec.DeliveredAt.Valid {
		return 0, false
	}
	hours := rec.DeliveredAt.Time.Sub(rec.PurchasedAt.Time).Hours()
	return int(math.Floor(hours / 24)), true
}

func deliveryBucket(days int) string {
	switch {
	case days <= 3:
		return BucketFast
	case days <= 7:
		return BucketMid
	default:
		return BucketSlow
	}
}

func dedupKey(row satisfactionRow) string {
	return fmt.Sprintf("%s|%d|%t|%g|%t", row.orderID, row.deliveryDays, row.hasDelivery, row.score, row.hasScore)
}
