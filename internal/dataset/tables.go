package dataset

import (
	"errors"
	"fmt"

	"ecommerce-dashboard/internal/models"
)

// Table names as used by Require and Stats.
const (
	TableOrders     = "orders"
	TableOrderItems = "order_items"
	TableProducts   = "products"
	TableCustomers  = "customers"
	TableReviews    = "reviews"
	TablePayments   = "payments"
)

// ErrTableMissing is returned when a metric needs a table whose source file
// was absent at load time.
var ErrTableMissing = errors.New("required table not loaded")

// Tables holds every loaded entity table for the process lifetime. Nothing is
// mutated after Load returns.
type Tables struct {
	Orders     []models.Order
	OrderItems []models.OrderItem
	Products   []models.Product
	Customers  []models.Customer
	Reviews    []models.Review
	Payments   []models.Payment

	present map[string]bool
}

// NewTables assembles a Tables value from already-parsed rows; a nil slice
// marks the table absent. Loader.Load is the production path, this is for
// tests and embedded callers.
func NewTables(orders []models.Order, items []models.OrderItem, products []models.Product, customers []models.Customer, reviews []models.Review, payments []models.Payment) *Tables {
	t := &Tables{
		Orders:     orders,
		OrderItems: items,
		Products:   products,
		Customers:  customers,
		Reviews:    reviews,
		Payments:   payments,
	}
	if orders != nil {
		t.markPresent(TableOrders)
	}
	if items != nil {
		t.markPresent(TableOrderItems)
	}
	if products != nil {
		t.markPresent(TableProducts)
	}
	if customers != nil {
		t.markPresent(TableCustomers)
	}
	if reviews != nil {
		t.markPresent(TableReviews)
	}
	if payments != nil {
		t.markPresent(TablePayments)
	}
	return t
}

func (t *Tables) Has(name string) bool {
	return t.present[name]
}

// Require fails with ErrTableMissing naming the first absent table, so that a
// metric depending on a skipped file surfaces a clear error instead of
// silently returning zeros.
func (t *Tables) Require(names ...string) error {
	for _, name := range names {
		if !t.present[name] {
			return fmt.Errorf("%w: %s", ErrTableMissing, name)
		}
	}
	return nil
}

// RowCounts reports the number of rows per loaded table.
func (t *Tables) RowCounts() map[string]int {
	counts := make(map[string]int, 6)
	if t.Has(TableOrders) {
		counts[TableOrders] = len(t.Orders)
	}
	if t.Has(TableOrderItems) {
		counts[TableOrderItems] = len(t.OrderItems)
	}
	if t.Has(TableProducts) {
		counts[TableProducts] = len(t.Products)
	}
	if t.Has(TableCustomers) {
		counts[TableCustomers] = len(t.Customers)
	}
	if t.Has(TableReviews) {
		counts[TableReviews] = len(t.Reviews)
	}
	if t.Has(TablePayments) {
		counts[TablePayments] = len(t.Payments)
	}
	return counts
}

func (t *Tables) markPresent(name string) {
	if t.present == nil {
		t.present = make(map[string]bool, 6)
	}
	t.present[name] = true
}
