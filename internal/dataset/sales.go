package dataset

import (
	"ecommerce-dashboard/internal/models"
)

const (
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// SalesOptions controls which order statuses survive the sales join.
// A zero Status means delivered.
type SalesOptions struct {
	Status           string
	IncludeCancelled bool
}

// BuildSales joins order items with their orders into the denormalized sales
// table. A record is retained iff its order status equals the requested
// status, or equals cancelled when IncludeCancelled is set. Items whose order
// id has no match carry an empty status and are therefore dropped by the
// same predicate.
func BuildSales(t *Tables, opts SalesOptions) ([]models.SalesRecord, error) {
	if err := t.Require(TableOrders, TableOrderItems); err != nil {
		return nil, err
	}
	if opts.Status == "" {
		opts.Status = StatusDelivered
	}

	ordersByID := make(map[string]*models.Order, len(t.Orders))
	for i := range t.Orders {
		o := &t.Orders[i]
		if _, ok := ordersByID[o.ID]; !ok {
			ordersByID[o.ID] = o
		}
	}

	keep := func(status string) bool {
		if status == opts.Status {
			return true
		}
		return opts.IncludeCancelled && status == StatusCancelled
	}

	records := make([]models.SalesRecord, 0, len(t.OrderItems))
	for _, item := range t.OrderItems {
		rec := models.SalesRecord{
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			Price:        item.Price,
			FreightValue: item.FreightValue,
			TotalValue:   item.TotalValue,
		}
		if o, ok := ordersByID[item.OrderID]; ok {
			rec.Status = o.Status
			rec.PurchasedAt = o.PurchasedAt
			rec.DeliveredAt = o.DeliveredAt
			rec.Year = o.Year
			rec.Month = o.Month
			rec.Quarter = o.Quarter
		}
		if !keep(rec.Status) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
