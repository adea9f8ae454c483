package models

// Order is one row of the orders table. Date parts are derived from the
// purchase timestamp at load time; they are zero when the timestamp is absent.
type Order struct {
	ID                  string
	CustomerID          string
	Status              string
	PurchasedAt         NullTime
	ApprovedAt          NullTime
	DeliveredCarrierAt  NullTime
	DeliveredAt         NullTime
	EstimatedDeliveryAt NullTime
	Year                int
	Month               int
	Quarter             int
	DayOfWeek           int // Monday == 0
}

// OrderItem is one line item of an order. TotalValue is price plus freight,
// derived at load time.
type OrderItem struct {
	OrderID         string
	ProductID       string
	SellerID        string
	ShippingLimitAt NullTime
	Price           NullFloat64
	FreightValue    NullFloat64
	TotalValue      NullFloat64
}

// Product carries the catalog attributes used for category attribution.
// VolumeCm3 is derived from the three dimensions at load time.
type Product struct {
	ID           string
	CategoryName string
	NameLength   NullFloat64
	DescLength   NullFloat64
	PhotosQty    NullFloat64
	WeightG      NullFloat64
	LengthCm     NullFloat64
	HeightCm     NullFloat64
	WidthCm      NullFloat64
	VolumeCm3    NullFloat64
}

type Customer struct {
	ID    string
	City  string
	State string
}

type Review struct {
	ID         string
	OrderID    string
	Score      NullFloat64
	CreatedAt  NullTime
	AnsweredAt NullTime
}

// Payment is loaded for completeness; no current metric consumes it.
type Payment struct {
	OrderID      string
	Sequential   int
	Type         string
	Installments int
	Value        NullFloat64
}

// SalesRecord is one order line item enriched with order status, timestamps
// and derived date parts. It is the primary analysis row.
type SalesRecord struct {
	OrderID      string
	ProductID    string
	Price        NullFloat64
	FreightValue NullFloat64
	TotalValue   NullFloat64
	Status       string
	PurchasedAt  NullTime
	DeliveredAt  NullTime
	Year         int
	Month        int
	Quarter      int
}
