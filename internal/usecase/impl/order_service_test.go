package impl

import (
	"context"
	"testing"

	"shopfront/config"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/domain/resource"
	"shopfront/internal/errors"
	mockRepo "shopfront/internal/mocks/repository"
	mockService "shopfront/internal/mocks/service"
	mockUsecase "shopfront/internal/mocks/usecase"
	"shopfront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderTestMocks struct {
	orderRepo   *mockRepo.MockOrderRepository
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
	address     *mockUsecase.MockAddressUsecase
	qrcode      *mockService.MockQRCodeService
	publisher   *mockService.MockEventPublisher
}

func newOrderTestService(t *testing.T, cfg *config.Config) (usecase.OrderUsecase, *orderTestMocks) {
	m := &orderTestMocks{
		orderRepo:   mockRepo.NewMockOrderRepository(t),
		cartRepo:    mockRepo.NewMockCartRepository(t),
		productRepo: mockRepo.NewMockProductRepository(t),
		address:     mockUsecase.NewMockAddressUsecase(t),
		qrcode:      mockService.NewMockQRCodeService(t),
		publisher:   mockService.NewMockEventPublisher(t),
	}

	svc := NewOrderService(
		m.orderRepo,
		m.cartRepo,
		m.productRepo,
		m.address,
		m.qrcode,
		m.publisher,
		cfg,
		newDiscardLogger(),
	)

	return svc, m
}

func checkoutTestConfig() *config.Config {
	return &config.Config{
		Checkout: &config.CheckoutConfig{
			ShippingFee:       5,
			FreeShippingAbove: 50,
		},
	}
}

func TestOrderService_Checkout_UsesDefaultAddress(t *testing.T) {
	svc, m := newOrderTestService(t, checkoutTestConfig())

	ctx := context.Background()
	items := []*entity.CartItem{
		{ProductID: "prod-1", Name: "Coffee", Price: 12.5, Quantity: 2},
	}
	defaultAddress := &entity.Address{ID: 3, UserID: "user-1", Name: "Home", IsDefault: true}

	m.cartRepo.On("ListItems", ctx, "user-1").Return(items, nil)
	m.address.On("DefaultAddress", ctx, "user-1").Return(resource.Success(defaultAddress))
	m.productRepo.On("AdjustStock", ctx, "prod-1", -2).Return(nil)
	m.orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	m.cartRepo.On("ClearCart", ctx, "user-1").Return(nil)
	m.qrcode.On("GeneratePickupQR", mock.AnythingOfType("string")).Return([]byte("png"), nil)
	m.publisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	result, err := svc.Checkout(ctx, "user-1", &usecase.CheckoutInput{PaymentMethod: "CARD"})
	require.NoError(t, err)

	order := result.Order
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, *defaultAddress, order.ShippingAddress)
	assert.InDelta(t, 25.0, order.Subtotal, 0.001)
	assert.InDelta(t, 5.0, order.ShippingFee, 0.001)
	assert.InDelta(t, 30.0, order.Total, 0.001)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, []byte("png"), result.PickupQR)
}

func TestOrderService_Checkout_FreeShippingAboveThreshold(t *testing.T) {
	svc, m := newOrderTestService(t, checkoutTestConfig())

	ctx := context.Background()
	items := []*entity.CartItem{
		{ProductID: "prod-1", Name: "Espresso Machine", Price: 60, Quantity: 1},
	}

	m.cartRepo.On("ListItems", ctx, "user-1").Return(items, nil)
	m.address.On("DefaultAddress", ctx, "user-1").
		Return(resource.Success(&entity.Address{ID: 3, UserID: "user-1"}))
	m.productRepo.On("AdjustStock", ctx, "prod-1", -1).Return(nil)
	m.orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	m.cartRepo.On("ClearCart", ctx, "user-1").Return(nil)
	m.qrcode.On("GeneratePickupQR", mock.AnythingOfType("string")).Return([]byte("png"), nil)
	m.publisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	result, err := svc.Checkout(ctx, "user-1", &usecase.CheckoutInput{PaymentMethod: "CARD"})
	require.NoError(t, err)
	assert.Zero(t, result.Order.ShippingFee)
	assert.InDelta(t, 60.0, result.Order.Total, 0.001)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	svc, m := newOrderTestService(t, checkoutTestConfig())

	ctx := context.Background()
	m.cartRepo.On("ListItems", ctx, "user-1").Return([]*entity.CartItem{}, nil)

	result, err := svc.Checkout(ctx, "user-1", &usecase.CheckoutInput{PaymentMethod: "CARD"})
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domainerrors.ErrCartEmpty))
}

func TestOrderService_Checkout_ExplicitAddress(t *testing.T) {
	svc, m := newOrderTestService(t, checkoutTestConfig())

	ctx := context.Background()
	addressID := int64(7)
	picked := &entity.Address{ID: 7, UserID: "user-1", Name: "Work"}
	items := []*entity.CartItem{
		{ProductID: "prod-1", Name: "Coffee", Price: 10, Quantity: 1},
	}

	m.cartRepo.On("ListItems", ctx, "user-1").Return(items, nil)
	m.address.On("ListAddresses", ctx, "user-1").
		Return(resource.Success([]*entity.Address{{ID: 3, UserID: "user-1"}, picked}))
	m.productRepo.On("AdjustStock", ctx, "prod-1", -1).Return(nil)
	m.orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	m.cartRepo.On("ClearCart", ctx, "user-1").Return(nil)
	m.qrcode.On("GeneratePickupQR", mock.AnythingOfType("string")).Return([]byte("png"), nil)
	m.publisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	result, err := svc.Checkout(ctx, "user-1", &usecase.CheckoutInput{
		AddressID:     &addressID,
		PaymentMethod: "CARD",
	})
	require.NoError(t, err)
	assert.Equal(t, *picked, result.Order.ShippingAddress)
}

func TestOrderService_Checkout_AddressNotInBook(t *testing.T) {
	svc, m := newOrderTestService(t, checkoutTestConfig())

	ctx := context.Background()
	addressID := int64(404)
	items := []*entity.CartItem{
		{ProductID: "prod-1", Name: "Coffee", Price: 10, Quantity: 1},
	}

	m.cartRepo.On("ListItems", ctx, "user-1").Return(items, nil)
	m.address.On("ListAddresses", ctx, "user-1").
		Return(resource.Success([]*entity.Address{{ID: 3, UserID: "user-1"}}))

	_, err := svc.Checkout(ctx, "user-1", &usecase.CheckoutInput{
		AddressID:     &addressID,
		PaymentMethod: "CARD",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrAddressNotFound))
}

func TestOrderService_Checkout_NoDefaultAddress(t *testing.T) {
	svc, m := newOrderTestService(t, checkoutTestConfig())

	ctx := context.Background()
	items := []*entity.CartItem{
		{ProductID: "prod-1", Name: "Coffee", Price: 10, Quantity: 1},
	}

	m.cartRepo.On("ListItems", ctx, "user-1").Return(items, nil)
	m.address.On("DefaultAddress", ctx, "user-1").
		Return(resource.Error[*entity.Address]("No default address is set", domainerrors.ErrNoDefaultAddress))

	_, err := svc.Checkout(ctx, "user-1", &usecase.CheckoutInput{PaymentMethod: "CARD"})
	assert.True(t, errors.Is(err, domainerrors.ErrNoDefaultAddress))
}

func TestOrderService_Checkout_RollsBackReservedStock(t *testing.T) {
	svc, m := newOrderTestService(t, checkoutTestConfig())

	ctx := context.Background()
	items := []*entity.CartItem{
		{ProductID: "prod-1", Name: "Coffee", Price: 10, Quantity: 2},
		{ProductID: "prod-2", Name: "Mug", Price: 8, Quantity: 1},
	}

	m.cartRepo.On("ListItems", ctx, "user-1").Return(items, nil)
	m.address.On("DefaultAddress", ctx, "user-1").
		Return(resource.Success(&entity.Address{ID: 3, UserID: "user-1"}))
	m.productRepo.On("AdjustStock", ctx, "prod-1", -2).Return(nil)
	m.productRepo.On("AdjustStock", ctx, "prod-2", -1).Return(repository.ErrInsufficientStock)
	m.productRepo.On("AdjustStock", ctx, "prod-1", 2).Return(nil)

	_, err := svc.Checkout(ctx, "user-1", &usecase.CheckoutInput{PaymentMethod: "CARD"})
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
	m.orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestOrderService_GetOrder_Forbidden(t *testing.T) {
	svc, m := newOrderTestService(t, checkoutTestConfig())

	ctx := context.Background()
	m.orderRepo.On("GetOrder", ctx, "order-1").
		Return(&entity.Order{ID: "order-1", UserID: "someone-else"}, nil)

	_, err := svc.GetOrder(ctx, "user-1", "order-1")
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestOrderService_UpdateOrderStatus_ValidTransition(t *testing.T) {
	svc, m := newOrderTestService(t, checkoutTestConfig())

	ctx := context.Background()
	m.orderRepo.On("GetOrder", ctx, "order-1").
		Return(&entity.Order{ID: "order-1", UserID: "user-1", Status: entity.OrderStatusPending}, nil)
	m.orderRepo.On("UpdateStatus", ctx, "order-1", entity.OrderStatusConfirmed).Return(nil)
	m.publisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	order, err := svc.UpdateOrderStatus(ctx, "order-1", entity.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, order.Status)
}

func TestOrderService_UpdateOrderStatus_InvalidTransition(t *testing.T) {
	svc, m := newOrderTestService(t, checkoutTestConfig())

	ctx := context.Background()
	m.orderRepo.On("GetOrder", ctx, "order-1").
		Return(&entity.Order{ID: "order-1", UserID: "user-1", Status: entity.OrderStatusDelivered}, nil)

	_, err := svc.UpdateOrderStatus(ctx, "order-1", entity.OrderStatusConfirmed)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOrderStatus))
	m.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CancelOrder_ReleasesStock(t *testing.T) {
	svc, m := newOrderTestService(t, checkoutTestConfig())

	ctx := context.Background()
	order := &entity.Order{
		ID:     "order-1",
		UserID: "user-1",
		Status: entity.OrderStatusPending,
		Items: []*entity.CartItem{
			{ProductID: "prod-1", Name: "Coffee", Quantity: 2},
		},
	}

	m.orderRepo.On("GetOrder", ctx, "order-1").Return(order, nil)
	m.orderRepo.On("UpdateStatus", ctx, "order-1", entity.OrderStatusCancelled).Return(nil)
	m.productRepo.On("AdjustStock", ctx, "prod-1", 2).Return(nil)
	m.publisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	cancelled, err := svc.CancelOrder(ctx, "user-1", "order-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
}

func TestOrderService_CancelOrder_AlreadyShipped(t *testing.T) {
	svc, m := newOrderTestService(t, checkoutTestConfig())

	ctx := context.Background()
	m.orderRepo.On("GetOrder", ctx, "order-1").
		Return(&entity.Order{ID: "order-1", UserID: "user-1", Status: entity.OrderStatusShipped}, nil)

	_, err := svc.CancelOrder(ctx, "user-1", "order-1")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOrderStatus))
}
