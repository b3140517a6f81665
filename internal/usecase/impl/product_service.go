package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
)

type productService struct {
	productRepo  repository.ProductRepository
	imageStorage service.ImageStorage
	logger       *slog.Logger
}

// NewProductService creates a new product service instance
func NewProductService(
	productRepo repository.ProductRepository,
	imageStorage service.ImageStorage,
	logger *slog.Logger,
) usecase.ProductUsecase {
	return &productService{
		productRepo:  productRepo,
		imageStorage: imageStorage,
		logger:       logger,
	}
}

// ListProducts returns the catalog, optionally filtered by category.
func (s *productService) ListProducts(ctx context.Context, category string) ([]*entity.Product, error) {
	if category != "" {
		products, err := s.productRepo.ListProductsByCategory(ctx, category)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list products by category")
		}

		return products, nil
	}

	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct retrieves a single product.
func (s *productService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

// SaveProduct creates or replaces a product.
func (s *productService) SaveProduct(ctx context.Context, input *usecase.SaveProductInput) (*entity.Product, error) {
	now := time.Now()
	product := &entity.Product{
		ID:            input.ID,
		Name:          input.Name,
		Description:   input.Description,
		Category:      input.Category,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		UpdatedAt:     now,
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
		product.CreatedAt = now
	} else {
		existing, err := s.productRepo.GetProduct(ctx, product.ID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrProductNotFound
			}

			return nil, errors.Wrap(err, "failed to load product for update")
		}
		product.CreatedAt = existing.CreatedAt
		product.ImageURL = existing.ImageURL
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to save product")
	}

	return product, nil
}

// DeleteProduct removes a product.
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// UploadProductImage stores an image in the blob bucket and attaches its
// public URL to the product document.
func (s *productService) UploadProductImage(ctx context.Context, productID, contentType string, body io.Reader) (string, error) {
	product, err := s.productRepo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return "", domainerrors.ErrProductNotFound
		}

		return "", errors.Wrap(err, "failed to load product for image upload")
	}

	key := "products/" + productID
	url, err := s.imageStorage.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", errors.Wrap(err, "failed to upload product image")
	}

	product.ImageURL = url
	product.UpdatedAt = time.Now()
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return "", errors.Wrap(err, "failed to attach image URL to product")
	}

	s.logger.Info("product image uploaded",
		slog.String("product_id", productID),
		slog.String("url", url),
	)

	return url, nil
}
