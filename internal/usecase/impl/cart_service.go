package impl

import (
	"context"
	"time"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/errors"
	"shopfront/internal/usecase"
)

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service instance
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) usecase.CartUsecase {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart lines and total.
func (s *cartService) GetCart(ctx context.Context, userID string) (*usecase.CartSummary, error) {
	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart items")
	}

	return &usecase.CartSummary{
		Items: items,
		Total: entity.CartTotal(items),
	}, nil
}

// AddToCart snapshots the product's name, price and image into a cart line.
// Adding a product already in the cart replaces its line.
func (s *cartService) AddToCart(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return domainerrors.ErrInsufficientStock.WrapMessage("quantity must be positive")
	}

	product, err := s.productRepo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to load product for cart add")
	}

	if !product.InStock(quantity) {
		return domainerrors.ErrInsufficientStock
	}

	item := &entity.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		ImageURL:  product.ImageURL,
		AddedAt:   time.Now(),
	}

	if err := s.cartRepo.UpsertItem(ctx, userID, item); err != nil {
		return errors.Wrap(err, "failed to upsert cart item")
	}

	return nil
}

// UpdateQuantity changes a line's quantity; zero removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 0 {
		return domainerrors.ErrInsufficientStock.WrapMessage("quantity must not be negative")
	}

	if quantity == 0 {
		return s.RemoveFromCart(ctx, userID, productID)
	}

	if err := s.cartRepo.UpdateQuantity(ctx, userID, productID, quantity); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return domainerrors.ErrProductNotFound.WrapMessage("product is not in the cart")
		}

		return errors.Wrap(err, "failed to update cart quantity")
	}

	return nil
}

// RemoveFromCart deletes a cart line.
func (s *cartService) RemoveFromCart(ctx context.Context, userID, productID string) error {
	if err := s.cartRepo.RemoveItem(ctx, userID, productID); err != nil {
		return errors.Wrap(err, "failed to remove cart item")
	}

	return nil
}

// ClearCart empties the cart.
func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.cartRepo.ClearCart(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}
