package services

import (
	"log/slog"
	"slices"
	"sync"

	"ecommerce-dashboard/internal/dataset"
	"ecommerce-dashboard/internal/metrics"
	"ecommerce-dashboard/internal/models"
)

// Overview bundles the KPI-card metrics for one year pair.
type Overview struct {
	Revenue models.RevenueMetrics     `json:"revenue"`
	Orders  models.OrderVolumeMetrics `json:"orders"`
	AOV     models.AOVMetrics         `json:"aov"`
}

// Dashboard owns the loaded tables and serves metric bundles to the HTTP
// layer. The delivered-only sales join is built once and reused for every
// render; the tables are never mutated after load, so concurrent reads need
// no locking beyond the memoization guard.
type Dashboard struct {
	mu     sync.Mutex
	tables *dataset.Tables
	logger *slog.Logger

	salesBuilt bool
	sales      []models.SalesRecord
	salesErr   error
}

func NewDashboard(tables *dataset.Tables, logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dashboard{tables: tables, logger: logger}
}

// SetTables swaps the dataset and drops the memoized sales join. Used by
// tests; production code loads once at startup.
func (d *Dashboard) SetTables(tables *dataset.Tables) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables = tables
	d.salesBuilt = false
	d.sales = nil
	d.salesErr = nil
}

// Sales returns the delivered-only sales table, building it on first use.
func (d *Dashboard) Sales() ([]models.SalesRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.salesBuilt {
		d.sales, d.salesErr = dataset.BuildSales(d.tables, dataset.SalesOptions{})
		d.salesBuilt = true
		if d.salesErr == nil {
			d.logger.Info("sales table built", "records", len(d.sales))
		}
	}
	return d.sales, d.salesErr
}

// Years lists the purchase years present in the sales table, ascending.
func (d *Dashboard) Years() ([]int, error) {
	sales, err := d.Sales()
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{})
	for _, rec := range sales {
		if rec.Year != 0 {
			seen[rec.Year] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	slices.Sort(years)
	return years, nil
}

// Overview computes the revenue, order volume and AOV KPIs for the given
// year against the comparison year. A non-empty months set narrows both
// periods to those purchase months.
func (d *Dashboard) Overview(year, comparison int, months []int) (Overview, error) {
	sales, err := d.monthSales(months)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Revenue: metrics.Revenue(sales, metrics.PeriodYear, year, comparison),
		Orders:  metrics.OrderVolume(sales, metrics.PeriodYear, year, comparison),
		AOV:     metrics.AverageOrderValue(sales, metrics.PeriodYear, year, comparison),
	}, nil
}

func (d *Dashboard) MonthlyTrend(year int, months []int) ([]models.MonthlyGrowthPoint, error) {
	sales, err := d.monthSales(months)
	if err != nil {
		return nil, err
	}
	return metrics.MonthlyGrowthTrend(sales, year), nil
}

func (d *Dashboard) Categories(year int, months []int) ([]models.CategoryPerformance, error) {
	if err := d.tables.Require(dataset.TableProducts); err != nil {
		return nil, err
	}
	sales, err := d.monthSales(months)
	if err != nil {
		return nil, err
	}
	return metrics.CategoryPerformance(sales, d.tables.Products, metrics.PeriodYear, year)
}

func (d *Dashboard) States(year int, months []int) ([]models.StatePerformance, error) {
	if err := d.tables.Require(dataset.TableCustomers); err != nil {
		return nil, err
	}
	sales, err := d.monthSales(months)
	if err != nil {
		return nil, err
	}
	return metrics.GeographicPerformance(sales, d.tables.Orders, d.tables.Customers, metrics.PeriodYear, year)
}

func (d *Dashboard) Satisfaction(year int, months []int) (models.SatisfactionMetrics, error) {
	if err := d.tables.Require(dataset.TableReviews); err != nil {
		return models.SatisfactionMetrics{}, err
	}
	sales, err := d.monthSales(months)
	if err != nil {
		return models.SatisfactionMetrics{}, err
	}
	return metrics.Satisfaction(sales, d.tables.Reviews, metrics.PeriodYear, year), nil
}

// StatusDistribution works over the raw orders table, independent of the
// delivered-only sales filter.
func (d *Dashboard) StatusDistribution(year int) ([]models.StatusShare, error) {
	if err := d.tables.Require(dataset.TableOrders); err != nil {
		return nil, err
	}
	return metrics.StatusDistribution(d.tables.Orders, year), nil
}

func (d *Dashboard) Summary(year, comparison int) (string, error) {
	overview, err := d.Overview(year, comparison, nil)
	if err != nil {
		return "", err
	}
	satisfaction, err := d.Satisfaction(year, nil)
	if err != nil {
		return "", err
	}
	return metrics.BusinessSummary(overview.Revenue, overview.AOV, overview.Orders, satisfaction), nil
}

// Stats reports table row counts for the admin endpoint.
func (d *Dashboard) Stats() map[string]any {
	stats := make(map[string]any)
	for table, rows := range d.tables.RowCounts() {
		stats[table] = rows
	}
	d.mu.Lock()
	if d.salesBuilt && d.salesErr == nil {
		stats["sales_records"] = len(d.sales)
	}
	d.mu.Unlock()
	return stats
}

func (d *Dashboard) monthSales(months []int) ([]models.SalesRecord, error) {
	sales, err := d.Sales()
	if err != nil {
		return nil, err
	}
	if len(months) == 0 {
		return sales, nil
	}
	return dataset.FilterSales(sales, dataset.Filter{Months: months}), nil
}
