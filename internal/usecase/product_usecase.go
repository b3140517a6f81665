package usecase

import (
	"context"
	"io"

	"shopfront/internal/domain/entity"
)

// SaveProductInput represents the input for creating or updating a product
type SaveProductInput struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

// ProductUsecase defines the catalog use cases
type ProductUsecase interface {
	// ListProducts returns the catalog, optionally filtered by category.
	ListProducts(ctx context.Context, category string) ([]*entity.Product, error)

	// GetProduct retrieves a single product.
	GetProduct(ctx context.Context, id string) (*entity.Product, error)

	// SaveProduct creates or replaces a product (admin only).
	SaveProduct(ctx context.Context, input *SaveProductInput) (*entity.Product, error)

	// DeleteProduct removes a product (admin only).
	DeleteProduct(ctx context.Context, id string) error

	// UploadProductImage stores an image and attaches its URL to the product.
	UploadProductImage(ctx context.Context, productID, contentType string, body io.Reader) (string, error)
}
