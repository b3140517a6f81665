package repository

import (
	"context"

	"shopfront/internal/domain/entity"
	"shopfront/internal/errors"
)

// ErrOrderNotFound is returned when an order document does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository reads and writes order documents in the remote document store.
type OrderRepository interface {
	// CreateOrder writes a new order document under its pre-assigned id.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// GetOrder retrieves an order document by id.
	// Returns ErrOrderNotFound when the document does not exist.
	GetOrder(ctx context.Context, id string) (*entity.Order, error)

	// ListOrdersByUser returns a user's orders, newest first.
	ListOrdersByUser(ctx context.Context, userID string) ([]*entity.Order, error)

	// UpdateStatus sets the lifecycle status of an order.
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
}
