package models

import (
	"math"
	"time"
)

// OrderStatus is the closed set of order states.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status, in lifecycle order. Used for
// validation messages.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// ParseOrderStatus maps an incoming string onto a known status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses {
		if OrderStatus(s) == st {
			return st, true
		}
	}
	return "", false
}

// orderTransitions is the single source of truth for legal status changes:
// the forward path pending -> processing -> shipped -> delivered, with
// cancellation allowed from any non-terminal state.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// CanTransitionTo reports whether the status change from s to next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from s.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// Order is the model for the 'orders' table. TotalAmount is computed once at
// creation from the cart's price snapshots and never recomputed; only Status
// changes afterward.
type Order struct {
	ID          int64       `json:"id" db:"id"`
	UserID      int64       `json:"userId" db:"user_id"`
	TotalAmount float64     `json:"totalAmount" db:"total_amount"`
	Status      OrderStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is the model for the 'order_items' table. PriceAtOrder is the
// unit price at the moment the order was placed, decoupled from the live
// product price.
type OrderItem struct {
	ID           int64     `json:"id" db:"id"`
	OrderID      int64     `json:"orderId" db:"order_id"`
	ProductID    int64     `json:"productId" db:"product_id"`
	Quantity     int       `json:"quantity" db:"quantity"`
	PriceAtOrder float64   `json:"priceAtOrder" db:"price_at_order"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// OrderItemDetail is an order item with its product summary loaded. Product
// is nil when the product has since been deleted; the snapshot fields on the
// item itself are what make the order historically accurate.
type OrderItemDetail struct {
	OrderItem
	Product *ProductSummary `json:"product"`
}

// OrderDetail is the composed order view returned by the API: the order, its
// items, and (on admin listings) the owning user.
type OrderDetail struct {
	Order
	Items []OrderItemDetail `json:"orderItems"`
	User  *UserSummary      `json:"user,omitempty"`
}

// Round2 rounds a currency amount to two decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
