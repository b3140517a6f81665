package usecase

import (
	"context"

	"shopfront/internal/domain/entity"
)

// CheckoutInput represents the input for placing an order
type CheckoutInput struct {
	// AddressID selects an explicit shipping address. When nil the user's
	// default address is used.
	AddressID *int64 `json:"address_id,omitempty"`

	PaymentMethod string `json:"payment_method"`
}

// CheckoutResult carries the placed order and its pickup QR code.
type CheckoutResult struct {
	Order    *entity.Order `json:"order"`
	PickupQR []byte        `json:"pickup_qr"`
}

// OrderUsecase defines checkout and order management use cases
type OrderUsecase interface {
	// Checkout validates the cart, snapshots the shipping address, creates
	// a PENDING order, clears the cart and publishes an order event.
	Checkout(ctx context.Context, userID string, input *CheckoutInput) (*CheckoutResult, error)

	// ListOrders returns the user's orders, newest first.
	ListOrders(ctx context.Context, userID string) ([]*entity.Order, error)

	// GetOrder returns one order, verifying ownership.
	GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error)

	// UpdateOrderStatus transitions an order's lifecycle state (admin only)
	// and publishes an order event for push delivery.
	UpdateOrderStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error)

	// CancelOrder cancels a not-yet-shipped order on behalf of its owner.
	CancelOrder(ctx context.Context, userID, orderID string) (*entity.Order, error)
}
