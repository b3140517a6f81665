package entity

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// CanTransitionTo reports whether next is a valid successor state.
// Orders move PENDING → CONFIRMED → SHIPPED → DELIVERED and may be
// cancelled until they ship.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Order is a placed order in the remote document store. The shipping
// address is snapshotted at checkout time.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Items           []*CartItem `json:"items"`
	ShippingAddress Address     `json:"shipping_address"`
	Subtotal        float64     `json:"subtotal"`
	ShippingFee     float64     `json:"shipping_fee"`
	Total           float64     `json:"total"`
	PaymentMethod   string      `json:"payment_method"`
	Status          OrderStatus `json:"status"`
	PlacedAt        time.Time   `json:"placed_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
