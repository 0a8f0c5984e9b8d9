package domain

import "time"

// Order status lifecycle. An order is created confirmed from a cart,
// becomes paid through the payment endpoint, and the remaining states
// are advanced administratively.
const (
	OrderStatusUnfinished = "unfinished"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusPaid       = "paid"
	OrderStatusCollected  = "collected"
	OrderStatusDelivered  = "delivered"
)

const (
	PaymentTypeOnline = "online"
	PaymentTypeCash   = "cash"
)

const (
	DeliveryTypeFree = "free"
	DeliveryTypePaid = "paid"
)

type Order struct {
	ID           int64       `json:"id"`
	ProfileID    int64       `json:"-"`
	FullName     string      `json:"fullName"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	CreatedAt    time.Time   `json:"createdAt"`
	Status       string      `json:"status"`
	PaymentType  string      `json:"paymentType"`
	DeliveryType string      `json:"deliveryType"`
	City         string      `json:"city"`
	Address      string      `json:"address"`
	Lines        []OrderLine `json:"-"`
}

// TotalCents is the order cost from the line snapshots.
func (o Order) TotalCents() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.PriceCents * int64(l.Quantity)
	}
	return total
}

// OrderLine is the immutable per-product snapshot taken at checkout.
type OrderLine struct {
	OrderID    int64 `json:"-"`
	ProductID  int64 `json:"id"`
	Quantity   int   `json:"count"`
	PriceCents int64 `json:"price"`

	// Denormalized product display fields, filled on reads.
	Product *Product `json:"-"`
}
