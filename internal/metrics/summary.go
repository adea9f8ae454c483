package metrics

import (
	"fmt"
	"math"
	"strings"

	"ecommerce-dashboard/internal/models"
)

// BusinessSummary renders the computed metrics as a plain-text report with
// threshold-based insight lines.
func BusinessSummary(revenue models.RevenueMetrics, aov models.AOVMetrics, volume models.OrderVolumeMetrics, satisfaction models.SatisfactionMetrics) string {
	var b strings.Builder

	b.WriteString("BUSINESS PERFORMANCE SUMMARY\n")
	b.WriteString("============================\n\n")

	fmt.Fprintf(&b, "Revenue Analysis:\n")
	fmt.Fprintf(&b, "- Total Revenue: $%.2f\n", revenue.CurrentRevenue)
	fmt.Fprintf(&b, "- Revenue Growth: %.2f%%\n", revenue.GrowthPct)
	fmt.Fprintf(&b, "- Period: %d vs %d\n\n", revenue.CurrentPeriod, revenue.ComparisonPeriod)

	fmt.Fprintf(&b, "Order Metrics:\n")
	fmt.Fprintf(&b, "- Total Orders: %d\n", volume.CurrentOrders)
	fmt.Fprintf(&b, "- Order Growth: %.2f%%\n", volume.GrowthPct)
	fmt.Fprintf(&b, "- Average Order Value: $%.2f\n", aov.CurrentAOV)
	fmt.Fprintf(&b, "- AOV Growth: %.2f%%\n\n", aov.GrowthPct)

	fmt.Fprintf(&b, "Customer Experience:\n")
	fmt.Fprintf(&b, "- Average Review Score: %.2f/5.0\n", satisfaction.AvgReviewScore)
	fmt.Fprintf(&b, "- Average Delivery Time: %.1f days\n\n", satisfaction.AvgDeliveryDays)

	b.WriteString("Key Insights:\n")
	if revenue.GrowthPct < 0 {
		fmt.Fprintf(&b, "- Revenue declined by %.1f%%, indicating potential market challenges\n", math.Abs(revenue.GrowthPct))
	} else {
		fmt.Fprintf(&b, "- Revenue grew by %.1f%%, showing positive business growth\n", revenue.GrowthPct)
	}
	if satisfaction.AvgReviewScore >= 4.0 {
		fmt.Fprintf(&b, "- Customer satisfaction is strong with %.1f/5.0 average rating\n", satisfaction.AvgReviewScore)
	} else {
		fmt.Fprintf(&b, "- Customer satisfaction needs attention with %.1f/5.0 average rating\n", satisfaction.AvgReviewScore)
	}
	switch {
	case satisfaction.AvgDeliveryDays <= 5:
		b.WriteString("- Delivery performance is excellent with fast shipping times\n")
	case satisfaction.AvgDeliveryDays <= 10:
		b.WriteString("- Delivery performance is acceptable but could be improved\n")
	default:
		b.WriteString("- Delivery times are slow and may impact customer satisfaction\n")
	}

	return b.String()
}
