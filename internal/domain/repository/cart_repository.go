package repository

import (
	"context"

	"shopfront/internal/domain/entity"
	"shopfront/internal/errors"
)

// ErrCartItemNotFound is returned when a cart line does not exist.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository reads and writes per-user cart documents in the remote
// document store. Each user has one cart keyed by uid.
type CartRepository interface {
	// ListItems returns the cart lines of a user, oldest first.
	ListItems(ctx context.Context, userID string) ([]*entity.CartItem, error)

	// UpsertItem writes a cart line, replacing any line for the same product.
	UpsertItem(ctx context.Context, userID string, item *entity.CartItem) error

	// UpdateQuantity changes the quantity of an existing line.
	// Returns ErrCartItemNotFound when the line does not exist.
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error

	// RemoveItem deletes a cart line.
	RemoveItem(ctx context.Context, userID, productID string) error

	// ClearCart deletes every line of a user's cart.
	ClearCart(ctx context.Context, userID string) error
}
