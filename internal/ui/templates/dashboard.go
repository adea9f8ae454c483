// Package templates holds the templ components for the dashboard page.
// The page is a static shell; every data element is patched in over SSE.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Dashboard renders the page shell. The year selectors are bound to datastar
// signals; changing either triggers a full SSE refresh of KPIs, tables and
// chart data.
func Dashboard(years []int, defaultYear, comparisonYear int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageTop); err != nil {
			return err
		}
		if err := writeSelectors(w, years, defaultYear, comparisonYear); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageBottom)
		return err
	})
}

func writeSelectors(w io.Writer, years []int, defaultYear, comparisonYear int) error {
	signals := fmt.Sprintf(`{year: %d, comparison: %d, months: [], trendData: [], statesData: [], statusData: []}`, defaultYear, comparisonYear)
	if _, err := fmt.Fprintf(w, `<div class="controls" data-signals="%s" data-on-load="@get('/sse/refresh-all')">`, templ.EscapeString(signals)); err != nil {
		return err
	}

	if _, err := io.WriteString(w, `<label>Analysis Year <select data-bind-year data-on-change="@get('/sse/refresh-all')">`); err != nil {
		return err
	}
	for _, y := range years {
		selected := ""
		if y == defaultYear {
			selected = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%d"%s>%d</option>`, y, selected, y); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</select></label>`); err != nil {
		return err
	}

	if _, err := io.WriteString(w, `<label>Compare With <select data-bind-comparison data-on-change="@get('/sse/refresh-all')">`); err != nil {
		return err
	}
	for _, y := range years {
		selected := ""
		if y == comparisonYear {
			selected = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%d"%s>%d</option>`, y, selected, y); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</select></label></div>`)
	return err
}

const pageTop = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>E-commerce Business Dashboard</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@main/bundles/datastar.js"></script>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; margin: 0; background: #f9fafb; color: #1f2937; }
.header { padding: 1.5rem 2rem; background: white; border-bottom: 1px solid #e5e7eb; }
.header h1 { font-size: 1.8rem; font-weight: 700; margin: 0; }
.controls { display: flex; gap: 2rem; padding: 1rem 2rem; }
.controls label { font-weight: 600; color: #374151; }
.kpi-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 1rem; padding: 0 2rem; }
.kpi-card { background: white; padding: 1.5rem; border-radius: 0.5rem; border: 1px solid #e5e7eb; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.kpi-value { font-size: 2rem; font-weight: 700; margin: 0; }
.kpi-label { font-size: 0.9rem; color: #6b7280; margin: 0; }
.trend-positive { color: #10b981; font-weight: 600; }
.trend-negative { color: #ef4444; font-weight: 600; }
.panel { background: white; margin: 1rem 2rem; padding: 1.5rem; border-radius: 0.5rem; border: 1px solid #e5e7eb; }
.modern-table { width: 100%; border-collapse: collapse; }
.modern-table th, .modern-table td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid #e5e7eb; }
.bottom-value { font-size: 2.5rem; font-weight: 700; margin: 0; }
.bottom-label { font-size: 1rem; color: #6b7280; }
.stars { color: #fbbf24; font-size: 1.5rem; margin-left: 0.5rem; }
</style>
</head>
<body>
<div class="header"><h1>E-commerce Business Dashboard</h1></div>
`

const pageBottom = `
<div id="kpi-cards" class="kpi-grid"></div>
<div class="panel">
<h2>Monthly Revenue Trend</h2>
<canvas id="trend-chart" height="90" data-effect="renderTrendChart($trendData)"></canvas>
</div>
<div class="panel" id="category-content"><p>Loading category performance…</p></div>
<div class="panel">
<h2>Revenue by State</h2>
<canvas id="states-chart" height="90" data-effect="renderStatesChart($statesData)"></canvas>
</div>
<div class="panel">
<h2>Order Status Distribution</h2>
<canvas id="status-chart" height="90" data-effect="renderStatusChart($statusData)"></canvas>
</div>
<div class="panel" id="satisfaction-content"><p>Loading satisfaction metrics…</p></div>
<script>
const charts = {};
function upsertChart(id, type, labels, data, label) {
  if (charts[id]) { charts[id].destroy(); }
  const ctx = document.getElementById(id);
  if (!ctx) return;
  charts[id] = new Chart(ctx, {
    type: type,
    data: { labels: labels, datasets: [{ label: label, data: data, backgroundColor: '#6366f1' }] },
    options: { responsive: true, plugins: { legend: { display: false } } }
  });
}
function renderTrendChart(points) {
  if (!points || !points.length) return;
  upsertChart('trend-chart', 'line', points.map(p => 'M' + p.month), points.map(p => p.revenue), 'Revenue');
}
function renderStatesChart(rows) {
  if (!rows || !rows.length) return;
  upsertChart('states-chart', 'bar', rows.map(r => r.state), rows.map(r => r.total_revenue), 'Revenue');
}
function renderStatusChart(rows) {
  if (!rows || !rows.length) return;
  upsertChart('status-chart', 'bar', rows.map(r => r.status), rows.map(r => r.share * 100), 'Share %');
}
</script>
</body>
</html>
`
