package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"ecommerce-dashboard/internal/config"
	"ecommerce-dashboard/internal/metrics"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/services"
)

const maxCategoryRows = 15

var kpiTemplate = template.Must(template.New("kpiCards").Parse(`
<div id="kpi-cards" class="kpi-grid">
<div class="kpi-card">
<p class="kpi-label">Total Revenue</p>
<p class="kpi-value">${{printf "%.2f" .Revenue.CurrentRevenue}}</p>
<p class="{{if ge .Revenue.GrowthPct 0.0}}trend-positive{{else}}trend-negative{{end}}">{{printf "%+.1f" .Revenue.GrowthPct}}% vs {{.Revenue.ComparisonPeriod}}</p>
</div>
<div class="kpi-card">
<p class="kpi-label">Total Orders</p>
<p class="kpi-value">{{.Orders.CurrentOrders}}</p>
<p class="{{if ge .Orders.GrowthPct 0.0}}trend-positive{{else}}trend-negative{{end}}">{{printf "%+.1f" .Orders.GrowthPct}}%</p>
</div>
<div class="kpi-card">
<p class="kpi-label">Average Order Value</p>
<p class="kpi-value">${{printf "%.2f" .AOV.CurrentAOV}}</p>
<p class="{{if ge .AOV.GrowthPct 0.0}}trend-positive{{else}}trend-negative{{end}}">{{printf "%+.1f" .AOV.GrowthPct}}%</p>
</div>
<div class="kpi-card">
<p class="kpi-label">Monthly Growth</p>
<p class="kpi-value">{{printf "%.1f" .MonthlyGrowthPct}}%</p>
<p class="{{if ge .MonthlyGrowthPct 0.0}}trend-positive{{else}}trend-negative{{end}}">avg month over month</p>
</div>
</div>`))

var categoryTableTemplate = template.Must(template.New("categoryTable").Parse(`
<div id="category-content">
<table class="modern-table">
<thead><tr><th>Category</th><th>Revenue</th><th>Items</th><th>Avg Price</th></tr></thead>
<tbody>
{{range .}}<tr>
<td>{{.Category}}</td>
<td><strong>${{printf "%.2f" .TotalRevenue}}</strong></td>
<td>{{.Items}}</td>
<td>${{printf "%.2f" .AvgItemPrice}}</td>
</tr>{{end}}
</tbody>
</table>
</div>`))

var satisfactionTemplate = template.Must(template.New("satisfaction").Parse(`
<div id="satisfaction-content">
<p class="bottom-value">{{printf "%.2f" .AvgReviewScore}}<span class="stars">★</span></p>
<p class="bottom-label">avg review, {{printf "%.1f" .AvgDeliveryDays}} day delivery</p>
</div>`))

// signalInt tolerates both JSON numbers and strings: a bound <select>
// publishes its value as a string, while the initial data-signals
// literal carries numbers.
type signalInt int

func (v *signalInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*v = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("parse signal value %q: %w", s, err)
	}
	*v = signalInt(n)
	return nil
}

type dashboardSignals struct {
	Year       signalInt `json:"year"`
	Comparison signalInt `json:"comparison"`
	Months     []int     `json:"months"`
}

type SSEHandlers struct {
	dashboard *services.Dashboard
	defaults  config.DataConfig
	logger    *slog.Logger
}

func NewSSEHandlers(dashboard *services.Dashboard, defaults config.DataConfig, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dashboard: dashboard,
		defaults:  defaults,
		logger:    logger,
	}
}

// readSignals decodes the client's period selection; a request without
// signals (first page load) gets the configured defaults.
func (h *SSEHandlers) readSignals(r *http.Request) dashboardSignals {
	sig := dashboardSignals{
		Year:       signalInt(h.defaults.DefaultYear),
		Comparison: signalInt(h.defaults.ComparisonYear),
	}
	if err := datastar.ReadSignals(r, &sig); err != nil {
		h.logger.Debug("no dashboard signals in request, using defaults", "error", err)
	}
	if sig.Year == 0 {
		sig.Year = signalInt(h.defaults.DefaultYear)
	}
	if sig.Comparison == 0 {
		sig.Comparison = signalInt(h.defaults.ComparisonYear)
	}
	return sig
}

// kpiData augments the overview with the average month-over-month
// revenue growth, shown as its own card.
type kpiData struct {
	services.Overview
	MonthlyGrowthPct float64
}

func (h *SSEHandlers) renderKPICards(overview services.Overview, monthlyGrowthPct float64) (string, error) {
	var buf strings.Builder
	err := kpiTemplate.Execute(&buf, kpiData{Overview: overview, MonthlyGrowthPct: monthlyGrowthPct})
	return buf.String(), err
}

func (h *SSEHandlers) renderCategoryTable(categories []models.CategoryPerformance) (string, error) {
	if len(categories) > maxCategoryRows {
		categories = categories[:maxCategoryRows]
	}
	var buf strings.Builder
	err := categoryTableTemplate.Execute(&buf, categories)
	return buf.String(), err
}

func (h *SSEHandlers) renderSatisfaction(m models.SatisfactionMetrics) (string, error) {
	var buf strings.Builder
	err := satisfactionTemplate.Execute(&buf, m)
	return buf.String(), err
}

// HandleOverview patches the KPI cards for the selected year pair.
func (h *SSEHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	sig := h.readSignals(r)

	overview, err := h.dashboard.Overview(int(sig.Year), int(sig.Comparison), sig.Months)
	if err != nil {
		h.logger.Error("compute overview", "error", err, "year", sig.Year)
		return
	}

	trend, err := h.dashboard.MonthlyTrend(int(sig.Year), sig.Months)
	if err != nil {
		h.logger.Error("compute monthly trend", "error", err, "year", sig.Year)
		return
	}

	html, err := h.renderKPICards(overview, metrics.AverageMonthlyGrowth(trend)*100)
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}
	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleCharts pushes chart data as signals plus the category table fragment.
func (h *SSEHandlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	sig := h.readSignals(r)

	trend, err := h.dashboard.MonthlyTrend(int(sig.Year), sig.Months)
	if err != nil {
		h.logger.Error("compute monthly trend", "error", err, "year", sig.Year)
		return
	}

	states, err := h.dashboard.States(int(sig.Year), sig.Months)
	if err != nil {
		h.logger.Warn("state performance unavailable", "error", err)
	}

	statuses, err := h.dashboard.StatusDistribution(int(sig.Year))
	if err != nil {
		h.logger.Warn("status distribution unavailable", "error", err)
	}

	jsonData, err := json.Marshal(map[string]any{
		"trendData":  trend,
		"statesData": states,
		"statusData": statuses,
	})
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	categories, err := h.dashboard.Categories(int(sig.Year), sig.Months)
	if err != nil {
		h.logger.Warn("category performance unavailable", "error", err)
	} else {
		html, rerr := h.renderCategoryTable(categories)
		if rerr != nil {
			h.logger.Error("render category table", "error", rerr)
			return
		}
		sse.PatchElements(html)
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleRefreshAll recomputes every dashboard element for the selected
// period in one SSE response.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	sig := h.readSignals(r)

	overview, err := h.dashboard.Overview(int(sig.Year), int(sig.Comparison), sig.Months)
	if err != nil {
		h.logger.Error("compute overview", "error", err, "year", sig.Year)
		return
	}
	trend, _ := h.dashboard.MonthlyTrend(int(sig.Year), sig.Months)
	html, err := h.renderKPICards(overview, metrics.AverageMonthlyGrowth(trend)*100)
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}
	sse.PatchElements(html)

	if satisfaction, serr := h.dashboard.Satisfaction(int(sig.Year), sig.Months); serr != nil {
		h.logger.Warn("satisfaction unavailable", "error", serr)
	} else if frag, rerr := h.renderSatisfaction(satisfaction); rerr == nil {
		sse.PatchElements(frag)
	}

	if categories, cerr := h.dashboard.Categories(int(sig.Year), sig.Months); cerr != nil {
		h.logger.Warn("category performance unavailable", "error", cerr)
	} else if frag, rerr := h.renderCategoryTable(categories); rerr == nil {
		sse.PatchElements(frag)
	}

	states, _ := h.dashboard.States(int(sig.Year), sig.Months)
	statuses, _ := h.dashboard.StatusDistribution(int(sig.Year))

	allSignals, err := json.Marshal(map[string]any{
		"trendData":  trend,
		"statesData": states,
		"statusData": statuses,
	})
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err)
		return
	}
	sse.PatchSignals(allSignals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
