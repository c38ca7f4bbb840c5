package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the server-owned record. The client only ever holds the last
// confirmed snapshot and overwrites it wholesale on refresh, never merging
// fields from concurrent responses.
type Order struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	RestaurantID    uint            `json:"restaurant_id"`
	RiderID         *uint           `json:"rider_id,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	OrderItems      []OrderItem     `json:"order_items,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// AssignedTo reports whether riderID is the rider on this order.
func (o *Order) AssignedTo(riderID uint) bool {
	return o.RiderID != nil && *o.RiderID == riderID
}
