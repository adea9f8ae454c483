package dataset

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDataFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

const ordersCSV = `order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date
o1,c1,delivered,2023-05-10 14:30:00,2023-05-10 15:00:00,2023-05-11 09:00:00,2023-05-13 10:00:00,2023-05-20 00:00:00
o2,c2,cancelled,2023-07-01 08:00:00,,,,
o3,c3,delivered,not-a-date,,,,
`

const orderItemsCSV = `order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value
o1,1,p1,s1,2023-05-12 00:00:00,10.50,2.50
o1,2,p2,s1,,oops,3.00
o2,1,p1,s2,,20.00,4.00
`

const productsCSV = `product_id,product_category_name,product_name_length,product_description_length,product_photos_qty,product_weight_g,product_length_cm,product_height_cm,product_width_cm
p1,electronics,40,250,3,500,10,2,5
p2,toys,30,100,1,200,8,4,
`

const customersCSV = `customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state
c1,u1,01310,sao paulo,SP
c2,u2,20040,rio de janeiro,RJ
`

const reviewsCSV = `review_id,order_id,review_score,review_comment_title,review_comment_message,review_creation_date,review_answer_timestamp
r1,o1,5,,,2023-05-14 00:00:00,2023-05-15 12:00:00
r2,o2,bad,,,,
`

const paymentsCSV = `order_id,payment_sequential,payment_type,payment_installments,payment_value
o1,1,credit_card,3,13.00
o2,1,boleto,1,24.00
`

func writeFullDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeDataFile(t, dir, "orders_dataset.csv", ordersCSV)
	writeDataFile(t, dir, "order_items_dataset.csv", orderItemsCSV)
	writeDataFile(t, dir, "products_dataset.csv", productsCSV)
	writeDataFile(t, dir, "customers_dataset.csv", customersCSV)
	writeDataFile(t, dir, "order_reviews_dataset.csv", reviewsCSV)
	writeDataFile(t, dir, "order_payments_dataset.csv", paymentsCSV)
	return dir
}

func TestLoader_Load_AllTables(t *testing.T) {
	dir := writeFullDataset(t)

	tables, err := NewLoader(dir, testLogger()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	for _, name := range []string{TableOrders, TableOrderItems, TableProducts, TableCustomers, TableReviews, TablePayments} {
		if !tables.Has(name) {
			t.Errorf("table %s should be present", name)
		}
	}

	if len(tables.Orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(tables.Orders))
	}
	if len(tables.OrderItems) != 3 {
		t.Fatalf("expected 3 order items, got %d", len(tables.OrderItems))
	}
}

func TestLoader_Load_DerivedOrderColumns(t *testing.T) {
	dir := writeFullDataset(t)
	tables, err := NewLoader(dir, testLogger()).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	o1 := tables.Orders[0]
	if o1.Year != 2023 || o1.Month != 5 {
		t.Errorf("expected year 2023 month 5, got %d/%d", o1.Year, o1.Month)
	}
	if o1.Quarter != 2 {
		t.Errorf("expected quarter 2, got %d", o1.Quarter)
	}
	// 2023-05-10 was a Wednesday
	if o1.DayOfWeek != 2 {
		t.Errorf("expected day-of-week 2 (Monday==0), got %d", o1.DayOfWeek)
	}
	if !o1.DeliveredAt.Valid {
		t.Error("o1 delivered timestamp should be set")
	}

	// unparseable purchase timestamp becomes null, not an error
	o3 := tables.Orders[2]
	if o3.PurchasedAt.Valid {
		t.Error("o3 purchase timestamp should be null")
	}
	if o3.Year != 0 {
		t.Errorf("o3 should have no derived year, got %d", o3.Year)
	}
}

func TestLoader_Load_PermissiveItemParsing(t *testing.T) {
	dir := writeFullDataset(t)
	tables, err := NewLoader(dir, testLogger()).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	good := tables.OrderItems[0]
	if !good.Price.Valid || good.Price.Float64 != 10.50 {
		t.Errorf("expected price 10.50, got %+v", good.Price)
	}
	if !good.TotalValue.Valid || good.TotalValue.Float64 != 13.00 {
		t.Errorf("expected total value 13.00, got %+v", good.TotalValue)
	}

	// bad price coerced to null; the row survives
	bad := tables.OrderItems[1]
	if bad.Price.Valid {
		t.Error("unparseable price should be null")
	}
	if bad.TotalValue.Valid {
		t.Error("total value should be null when price is null")
	}
	if !bad.FreightValue.Valid || bad.FreightValue.Float64 != 3.00 {
		t.Errorf("freight should still parse, got %+v", bad.FreightValue)
	}
}

func TestLoader_Load_ProductVolume(t *testing.T) {
	dir := writeFullDataset(t)
	tables, err := NewLoader(dir, testLogger()).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	p1 := tables.Products[0]
	if !p1.VolumeCm3.Valid || p1.VolumeCm3.Float64 != 100 {
		t.Errorf("expected volume 100, got %+v", p1.VolumeCm3)
	}

	// missing width leaves the volume undefined
	p2 := tables.Products[1]
	if p2.VolumeCm3.Valid {
		t.Errorf("p2 volume should be null, got %+v", p2.VolumeCm3)
	}
}

func TestLoader_Load_MissingFileSkipped(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "orders_dataset.csv", ordersCSV)
	writeDataFile(t, dir, "order_items_dataset.csv", orderItemsCSV)

	tables, err := NewLoader(dir, testLogger()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() with partial dataset should not fail: %v", err)
	}

	if !tables.Has(TableOrders) || !tables.Has(TableOrderItems) {
		t.Error("present tables should load")
	}
	if tables.Has(TableReviews) {
		t.Error("reviews table should be absent")
	}

	err = tables.Require(TableReviews)
	if err == nil {
		t.Fatal("Require() on a skipped table should fail")
	}
	if !errors.Is(err, ErrTableMissing) {
		t.Errorf("expected ErrTableMissing, got %v", err)
	}
}

func TestLoader_Load_EmptyDirectory(t *testing.T) {
	_, err := NewLoader(t.TempDir(), testLogger()).Load(context.Background())
	if err == nil {
		t.Fatal("Load() with no data files should fail")
	}
}

func TestLoader_Load_ReviewScoreCoercion(t *testing.T) {
	dir := writeFullDataset(t)
	tables, err := NewLoader(dir, testLogger()).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if !tables.Reviews[0].Score.Valid || tables.Reviews[0].Score.Float64 != 5 {
		t.Errorf("expected score 5, got %+v", tables.Reviews[0].Score)
	}
	if tables.Reviews[1].Score.Valid {
		t.Error("non-numeric review score should be null")
	}
}

func TestParseTime_Layouts(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  time.Time
	}{
		{"2023-05-10 14:30:00", true, time.Date(2023, 5, 10, 14, 30, 0, 0, time.UTC)},
		{"2023-05-10T14:30:00", true, time.Date(2023, 5, 10, 14, 30, 0, 0, time.UTC)},
		{"2023-05-10", true, time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"10/05/2023", false, time.Time{}},
	}

	for _, tc := range tests {
		got := parseTime(tc.in)
		if got.Valid != tc.valid {
			t.Errorf("parseTime(%q).Valid = %t, want %t", tc.in, got.Valid, tc.valid)
			continue
		}
		if tc.valid && !got.Time.Equal(tc.want) {
			t.Errorf("parseTime(%q) = %v, want %v", tc.in, got.Time, tc.want)
		}
	}
}
