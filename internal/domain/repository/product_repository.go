package repository

import (
	"context"

	"shopfront/internal/domain/entity"
	"shopfront/internal/errors"
)

// ErrProductNotFound is returned when a product document does not exist.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock is returned when a stock decrement would go negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository reads and writes catalog documents in the remote document store.
type ProductRepository interface {
	// ListProducts returns the full catalog, newest first.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// ListProductsByCategory returns the catalog filtered by category.
	ListProductsByCategory(ctx context.Context, category string) ([]*entity.Product, error)

	// GetProduct retrieves a product document by id.
	// Returns ErrProductNotFound when the document does not exist.
	GetProduct(ctx context.Context, id string) (*entity.Product, error)

	// SaveProduct writes the full product document, creating it when absent.
	SaveProduct(ctx context.Context, product *entity.Product) error

	// DeleteProduct removes a product document.
	DeleteProduct(ctx context.Context, id string) error

	// AdjustStock changes the stock quantity by delta (negative to reserve).
	// Returns ErrInsufficientStock when the result would be negative.
	AdjustStock(ctx context.Context, id string, delta int) error
}
