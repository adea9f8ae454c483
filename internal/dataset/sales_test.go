package dataset

import (
	"errors"
	"testing"
	"time"

	"ecommerce-dashboard/internal/models"
)

func order(id, status string, purchased time.Time) models.Order {
	o := models.Order{ID: id, Status: status}
	if !purchased.IsZero() {
		o.PurchasedAt = models.Time(purchased)
		o.Year = purchased.Year()
		o.Month = int(purchased.Month())
		o.Quarter = (int(purchased.Month())-1)/3 + 1
	}
	return o
}

func item(orderID, productID string, price, freight float64) models.OrderItem {
	return models.OrderItem{
		OrderID:      orderID,
		ProductID:    productID,
		Price:        models.Float(price),
		FreightValue: models.Float(freight),
		TotalValue:   models.Float(price + freight),
	}
}

func TestBuildSales_StatusFiltering(t *testing.T) {
	may := time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)
	tables := NewTables(
		[]models.Order{
			order("o1", StatusDelivered, may),
			order("o2", StatusCancelled, may),
			order("o3", "shipped", may),
		},
		[]models.OrderItem{
			item("o1", "p1", 10, 2),
			item("o2", "p1", 20, 3),
			item("o3", "p2", 30, 4),
			item("o9", "p2", 40, 5), // no matching order
		},
		nil, nil, nil, nil,
	)

	tests := []struct {
		name string
		opts SalesOptions
		want []string
	}{
		{"default delivered", SalesOptions{}, []string{"o1"}},
		{"delivered plus cancelled", SalesOptions{IncludeCancelled: true}, []string{"o1", "o2"}},
		{"explicit shipped", SalesOptions{Status: "shipped"}, []string{"o3"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			records, err := BuildSales(tables, tc.opts)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, rec := range records {
				got = append(got, rec.OrderID)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got orders %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("record %d: got order %s, want %s", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestBuildSales_CarriesOrderColumns(t *testing.T) {
	may := time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)
	tables := NewTables(
		[]models.Order{order("o1", StatusDelivered, may)},
		[]models.OrderItem{item("o1", "p1", 10, 2)},
		nil, nil, nil, nil,
	)

	records, err := BuildSales(tables, SalesOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Year != 2023 || rec.Month != 5 || rec.Quarter != 2 {
		t.Errorf("got period %d/%d Q%d, want 2023/5 Q2", rec.Year, rec.Month, rec.Quarter)
	}
	if !rec.TotalValue.Valid || rec.TotalValue.Float64 != 12 {
		t.Errorf("got total %+v, want 12", rec.TotalValue)
	}
}

func TestBuildSales_FirstOrderWinsOnDuplicateID(t *testing.T) {
	may := time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)
	tables := NewTables(
		[]models.Order{
			order("o1", StatusDelivered, may),
			order("o1", StatusCancelled, may),
		},
		[]models.OrderItem{item("o1", "p1", 10, 2)},
		nil, nil, nil, nil,
	)

	records, err := BuildSales(tables, SalesOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Status != StatusDelivered {
		t.Errorf("expected one delivered record, got %+v", records)
	}
}

func TestBuildSales_RequiresOrdersAndItems(t *testing.T) {
	tables := NewTables(nil, []models.OrderItem{item("o1", "p1", 10, 2)}, nil, nil, nil, nil)
	_, err := BuildSales(tables, SalesOptions{})
	if !errors.Is(err, ErrTableMissing) {
		t.Fatalf("expected ErrTableMissing, got %v", err)
	}
}
