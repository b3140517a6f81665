package usecase

import (
	"context"

	"shopfront/internal/domain/entity"
)

// CartSummary is a cart listing with its computed total.
type CartSummary struct {
	Items []*entity.CartItem `json:"items"`
	Total float64            `json:"total"`
}

// CartUsecase defines the shopping cart use cases
type CartUsecase interface {
	// GetCart returns the user's cart lines and total.
	GetCart(ctx context.Context, userID string) (*CartSummary, error)

	// AddToCart adds a product to the cart, snapshotting name, price and
	// image. Adding an existing product replaces its line.
	AddToCart(ctx context.Context, userID, productID string, quantity int) error

	// UpdateQuantity changes the quantity of a cart line. A quantity of
	// zero removes the line.
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error

	// RemoveFromCart deletes a cart line.
	RemoveFromCart(ctx context.Context, userID, productID string) error

	// ClearCart empties the cart.
	ClearCart(ctx context.Context, userID string) error
}
