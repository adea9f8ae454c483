package models

type RevenueMetrics struct {
	CurrentRevenue    float64 `json:"current_revenue"`
	ComparisonRevenue float64 `json:"comparison_revenue"`
	GrowthPct         float64 `json:"revenue_growth_pct"`
	CurrentPeriod     int     `json:"current_period"`
	ComparisonPeriod  int     `json:"comparison_period"`
}

type OrderVolumeMetrics struct {
	CurrentOrders    int     `json:"current_orders"`
	ComparisonOrders int     `json:"comparison_orders"`
	GrowthPct        float64 `json:"order_growth_pct"`
}

type AOVMetrics struct {
	CurrentAOV    float64 `json:"current_aov"`
	ComparisonAOV float64 `json:"comparison_aov"`
	GrowthPct     float64 `json:"aov_growth_pct"`
}

// MonthlyGrowthPoint is one month of the month-over-month trend. GrowthPct is
// nil for the first month present, which has no prior month to compare with.
type MonthlyGrowthPoint struct {
	Month     int      `json:"month"`
	Revenue   float64  `json:"revenue"`
	GrowthPct *float64 `json:"growth_pct"`
}

type CategoryPerformance struct {
	Category     string  `json:"category"`
	TotalRevenue float64 `json:"total_revenue"`
	Items        int     `json:"items"`
	AvgItemPrice float64 `json:"avg_item_price"`
}

type StatePerformance struct {
	State        string  `json:"state"`
	TotalRevenue float64 `json:"total_revenue"`
	Items        int     `json:"items"`
	AvgItemPrice float64 `json:"avg_item_price"`
}

type SatisfactionMetrics struct {
	AvgReviewScore  float64            `json:"avg_review_score"`
	AvgDeliveryDays float64            `json:"avg_delivery_time_days"`
	ByDeliverySpeed map[string]float64 `json:"satisfaction_by_delivery_speed"`
	Orders          int                `json:"orders"`
}

// StatusShare is the normalized frequency of one order status within a year.
type StatusShare struct {
	Status string  `json:"status"`
	Orders int     `json:"orders"`
	Share  float64 `json:"share"`
}
