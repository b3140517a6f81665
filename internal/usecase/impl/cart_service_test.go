package impl

import (
	"context"
	"testing"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/errors"
	mockRepo "shopfront/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCartService_GetCart(t *testing.T) {
	mockCartRepo := mockRepo.NewMockCartRepository(t)
	mockProductRepo := mockRepo.NewMockProductRepository(t)
	svc := NewCartService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	items := []*entity.CartItem{
		{ProductID: "prod-1", Name: "Coffee", Price: 12.5, Quantity: 2},
		{ProductID: "prod-2", Name: "Mug", Price: 8.0, Quantity: 1},
	}

	mockCartRepo.On("ListItems", ctx, "user-1").Return(items, nil)

	summary, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, items, summary.Items)
	assert.InDelta(t, 33.0, summary.Total, 0.001)
}

func TestCartService_AddToCart_SnapshotsProduct(t *testing.T) {
	mockCartRepo := mockRepo.NewMockCartRepository(t)
	mockProductRepo := mockRepo.NewMockProductRepository(t)
	svc := NewCartService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	product := &entity.Product{
		ID:            "prod-1",
		Name:          "Coffee",
		Price:         12.5,
		StockQuantity: 10,
		ImageURL:      "https://img.example.com/coffee.png",
	}

	mockProductRepo.On("GetProduct", ctx, "prod-1").Return(product, nil)
	mockCartRepo.On("UpsertItem", ctx, "user-1", mock.MatchedBy(func(item *entity.CartItem) bool {
		return item.ProductID == "prod-1" &&
			item.Name == "Coffee" &&
			item.Price == 12.5 &&
			item.Quantity == 2 &&
			item.ImageURL == product.ImageURL
	})).Return(nil)

	err := svc.AddToCart(ctx, "user-1", "prod-1", 2)
	require.NoError(t, err)
}

func TestCartService_AddToCart_InsufficientStock(t *testing.T) {
	mockCartRepo := mockRepo.NewMockCartRepository(t)
	mockProductRepo := mockRepo.NewMockProductRepository(t)
	svc := NewCartService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	product := &entity.Product{ID: "prod-1", Name: "Coffee", StockQuantity: 1}

	mockProductRepo.On("GetProduct", ctx, "prod-1").Return(product, nil)

	err := svc.AddToCart(ctx, "user-1", "prod-1", 3)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
	mockCartRepo.AssertNotCalled(t, "UpsertItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	mockCartRepo := mockRepo.NewMockCartRepository(t)
	mockProductRepo := mockRepo.NewMockProductRepository(t)
	svc := NewCartService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	mockProductRepo.On("GetProduct", ctx, "prod-404").Return(nil, repository.ErrProductNotFound)

	err := svc.AddToCart(ctx, "user-1", "prod-404", 1)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCartService_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	mockCartRepo := mockRepo.NewMockCartRepository(t)
	mockProductRepo := mockRepo.NewMockProductRepository(t)
	svc := NewCartService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	mockCartRepo.On("RemoveItem", ctx, "user-1", "prod-1").Return(nil)

	err := svc.UpdateQuantity(ctx, "user-1", "prod-1", 0)
	require.NoError(t, err)
	mockCartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_UpdateQuantity_MissingLine(t *testing.T) {
	mockCartRepo := mockRepo.NewMockCartRepository(t)
	mockProductRepo := mockRepo.NewMockProductRepository(t)
	svc := NewCartService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	mockCartRepo.On("UpdateQuantity", ctx, "user-1", "prod-1", 2).Return(repository.ErrCartItemNotFound)

	err := svc.UpdateQuantity(ctx, "user-1", "prod-1", 2)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCartService_ClearCart(t *testing.T) {
	mockCartRepo := mockRepo.NewMockCartRepository(t)
	mockProductRepo := mockRepo.NewMockProductRepository(t)
	svc := NewCartService(mockCartRepo, mockProductRepo)

	ctx := context.Background()
	mockCartRepo.On("ClearCart", ctx, "user-1").Return(nil)

	require.NoError(t, svc.ClearCart(ctx, "user-1"))
}
