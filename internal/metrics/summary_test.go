package metrics

import (
	"strings"
	"testing"

	"ecommerce-dashboard/internal/models"
)

func TestBusinessSummary_Insights(t *testing.T) {
	tests := []struct {
		name         string
		revenue      models.RevenueMetrics
		satisfaction models.SatisfactionMetrics
		wantLines    []string
		rejectLines  []string
	}{
		{
			name:         "healthy business",
			revenue:      models.RevenueMetrics{CurrentRevenue: 1000, GrowthPct: 12.5, CurrentPeriod: 2023, ComparisonPeriod: 2022},
			satisfaction: models.SatisfactionMetrics{AvgReviewScore: 4.3, AvgDeliveryDays: 4},
			wantLines: []string{
				"Revenue grew by 12.5%",
				"Customer satisfaction is strong",
				"Delivery performance is excellent",
			},
		},
		{
			name:         "struggling business",
			revenue:      models.RevenueMetrics{CurrentRevenue: 500, GrowthPct: -20, CurrentPeriod: 2023, ComparisonPeriod: 2022},
			satisfaction: models.SatisfactionMetrics{AvgReviewScore: 3.1, AvgDeliveryDays: 14},
			wantLines: []string{
				"Revenue declined by 20.0%",
				"Customer satisfaction needs attention",
				"Delivery times are slow",
			},
			rejectLines: []string{"Revenue grew"},
		},
		{
			name:         "middling delivery",
			revenue:      models.RevenueMetrics{GrowthPct: 0},
			satisfaction: models.SatisfactionMetrics{AvgReviewScore: 4.0, AvgDeliveryDays: 8},
			wantLines: []string{
				"Delivery performance is acceptable",
				"Customer satisfaction is strong",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BusinessSummary(tc.revenue, models.AOVMetrics{}, models.OrderVolumeMetrics{}, tc.satisfaction)

			for _, line := range tc.wantLines {
				if !strings.Contains(got, line) {
					t.Errorf("summary missing %q:\n%s", line, got)
				}
			}
			for _, line := range tc.rejectLines {
				if strings.Contains(got, line) {
					t.Errorf("summary should not contain %q:\n%s", line, got)
				}
			}
		})
	}
}

func TestBusinessSummary_HeaderAndFigures(t *testing.T) {
	got := BusinessSummary(
		models.RevenueMetrics{CurrentRevenue: 1234.5, GrowthPct: 10, CurrentPeriod: 2023, ComparisonPeriod: 2022},
		models.AOVMetrics{CurrentAOV: 61.73},
		models.OrderVolumeMetrics{CurrentOrders: 20},
		models.SatisfactionMetrics{AvgReviewScore: 4.2, AvgDeliveryDays: 5.5},
	)

	for _, want := range []string{
		"BUSINESS PERFORMANCE SUMMARY",
		"Total Revenue: $1234.50",
		"Period: 2023 vs 2022",
		"Total Orders: 20",
		"Average Order Value: $61.73",
		"Average Review Score: 4.20/5.0",
		"Average Delivery Time: 5.5 days",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}
