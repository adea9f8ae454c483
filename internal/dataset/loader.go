package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"ecommerce-dashboard/internal/models"
)

var fileNames = map[string]string{
	TableOrders:     "orders_dataset.csv",
	TableOrderItems: "order_items_dataset.csv",
	TableProducts:   "products_dataset.csv",
	TableCustomers:  "customers_dataset.csv",
	TableReviews:    "order_reviews_dataset.csv",
	TablePayments:   "order_payments_dataset.csv",
}

// timestamp layouts seen in the source files, most common first
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Loader reads the six entity CSV files from a directory. Parsing is
// permissive: a field that fails to parse becomes a null value, never an
// error, and a missing file is skipped with a warning.
type Loader struct {
	dir    string
	logger *slog.Logger
}

func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{dir: dir, logger: logger}
}

// Load reads every available table concurrently. It fails only when no table
// could be loaded at all.
func (l *Loader) Load(ctx context.Context) (*Tables, error) {
	tables := &Tables{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)

	load := func(name string, fill func(*csvTable)) {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			path := filepath.Join(l.dir, fileNames[name])
			raw, err := readTable(path)
			if err != nil {
				if os.IsNotExist(err) {
					l.logger.Warn("data file not found, skipping table", "table", name, "path", path)
					return nil
				}
				return fmt.Errorf("load %s: %w", name, err)
			}

			mu.Lock()
			fill(raw)
			tables.markPresent(name)
			mu.Unlock()

			l.logger.Info("table loaded", "table", name, "rows", len(raw.rows))
			return nil
		})
	}

	load(TableOrders, func(raw *csvTable) { tables.Orders = parseOrders(raw) })
	load(TableOrderItems, func(raw *csvTable) { tables.OrderItems = parseOrderItems(raw) })
	load(TableProducts, func(raw *csvTable) { tables.Products = parseProducts(raw) })
	load(TableCustomers, func(raw *csvTable) { tables.Customers = parseCustomers(raw) })
	load(TableReviews, func(raw *csvTable) { tables.Reviews = parseReviews(raw) })
	load(TablePayments, func(raw *csvTable) { tables.Payments = parsePayments(raw) })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(tables.RowCounts()) == 0 {
		return nil, fmt.Errorf("no data files found in %s", l.dir)
	}
	return tables, nil
}

// csvTable is a raw file: a header index plus the data rows.
type csvTable struct {
	index map[string]int
	rows  [][]string
}

func readTable(path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// malformed row, keep going
			continue
		}
		rows = append(rows, record)
	}

	return &csvTable{index: index, rows: rows}, nil
}

func (t *csvTable) col(row []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseFloat(s string) models.NullFloat64 {
	if s == "" {
		return models.NullFloat64{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.NullFloat64{}
	}
	return models.Float(v)
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func parseTime(s string) models.NullTime {
	if s == "" {
		return models.NullTime{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Time(t)
		}
	}
	return models.NullTime{}
}

func parseOrders(raw *csvTable) []models.Order {
	orders := make([]models.Order, 0, len(raw.rows))
	for _, row := range raw.rows {
		o := models.Order{
			ID:                  raw.col(row, "order_id"),
			CustomerID:          raw.col(row, "customer_id"),
			Status:              raw.col(row, "order_status"),
			PurchasedAt:         parseTime(raw.col(row, "order_purchase_timestamp")),
			ApprovedAt:          parseTime(raw.col(row, "order_approved_at")),
			DeliveredCarrierAt:  parseTime(raw.col(row, "order_delivered_carrier_date")),
			DeliveredAt:         parseTime(raw.col(row, "order_delivered_customer_date")),
			EstimatedDeliveryAt: parseTime(raw.col(row, "order_estimated_delivery_date")),
		}
		if o.ID == "" {
			continue
		}
		if o.PurchasedAt.Valid {
			t := o.PurchasedAt.Time
			o.Year = t.Year()
			o.Month = int(t.Month())
			o.Quarter = (int(t.Month())-1)/3 + 1
			o.DayOfWeek = (int(t.Weekday()) + 6) % 7 // Monday == 0
		}
		orders = append(orders, o)
	}
	return orders
}

func parseOrderItems(raw *csvTable) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(raw.rows))
	for _, row := range raw.rows {
		it := models.OrderItem{
			OrderID:         raw.col(row, "order_id"),
			ProductID:       raw.col(row, "product_id"),
			SellerID:        raw.col(row, "seller_id"),
			ShippingLimitAt: parseTime(raw.col(row, "shipping_limit_date")),
			Price:           parseFloat(raw.col(row, "price")),
			FreightValue:    parseFloat(raw.col(row, "freight_value")),
		}
		if it.OrderID == "" {
			continue
		}
		if it.Price.Valid && it.FreightValue.Valid {
			it.TotalValue = models.Float(it.Price.Float64 + it.FreightValue.Float64)
		}
		items = append(items, it)
	}
	return items
}

func parseProducts(raw *csvTable) []models.Product {
	products := make([]models.Product, 0, len(raw.rows))
	for _, row := range raw.rows {
		p := models.Product{
			ID:           raw.col(row, "product_id"),
			CategoryName: raw.col(row, "product_category_name"),
			NameLength:   parseFloat(raw.col(row, "product_name_length")),
			DescLength:   parseFloat(raw.col(row, "product_description_length")),
			PhotosQty:    parseFloat(raw.col(row, "product_photos_qty")),
			WeightG:      parseFloat(raw.col(row, "product_weight_g")),
			LengthCm:     parseFloat(raw.col(row, "product_length_cm")),
			HeightCm:     parseFloat(raw.col(row, "product_height_cm")),
			WidthCm:      parseFloat(raw.col(row, "product_width_cm")),
		}
		if p.ID == "" {
			continue
		}
		if p.LengthCm.Valid && p.HeightCm.Valid && p.WidthCm.Valid {
			p.VolumeCm3 = models.Float(p.LengthCm.Float64 * p.HeightCm.Float64 * p.WidthCm.Float64)
		}
		products = append(products, p)
	}
	return products
}

func parseCustomers(raw *csvTable) []models.Customer {
	customers := make([]models.Customer, 0, len(raw.rows))
	for _, row := range raw.rows {
		c := models.Customer{
			ID:    raw.col(row, "customer_id"),
			City:  raw.col(row, "customer_city"),
			State: raw.col(row, "customer_state"),
		}
		if c.ID == "" {
			continue
		}
		customers = append(customers, c)
	}
	return customers
}

func parseReviews(raw *csvTable) []models.Review {
	reviews := make([]models.Review, 0, len(raw.rows))
	for _, row := range raw.rows {
		rv := models.Review{
			ID:         raw.col(row, "review_id"),
			OrderID:    raw.col(row, "order_id"),
			Score:      parseFloat(raw.col(row, "review_score")),
			CreatedAt:  parseTime(raw.col(row, "review_creation_date")),
			AnsweredAt: parseTime(raw.col(row, "review_answer_timestamp")),
		}
		if rv.OrderID == "" {
			continue
		}
		reviews = append(reviews, rv)
	}
	return reviews
}

func parsePayments(raw *csvTable) []models.Payment {
	payments := make([]models.Payment, 0, len(raw.rows))
	for _, row := range raw.rows {
		p := models.Payment{
			OrderID:      raw.col(row, "order_id"),
			Sequential:   parseInt(raw.col(row, "payment_sequential")),
			Type:         raw.col(row, "payment_type"),
			Installments: parseInt(raw.col(row, "payment_installments")),
			Value:        parseFloat(raw.col(row, "payment_value")),
		}
		if p.OrderID == "" {
			continue
		}
		payments = append(payments, p)
	}
	return payments
}
