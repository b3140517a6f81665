package impl

import (
	"context"
	"log/slog"
	"time"

	"shopfront/config"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
)

type orderService struct {
	orderRepo      repository.OrderRepository
	cartRepo       repository.CartRepository
	productRepo    repository.ProductRepository
	addressUsecase usecase.AddressUsecase
	qrcodeService  service.QRCodeService
	eventPublisher service.EventPublisher
	shippingFee    float64
	freeAbove      float64
	logger         *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	addressUsecase usecase.AddressUsecase,
	qrcodeService service.QRCodeService,
	eventPublisher service.EventPublisher,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.OrderUsecase {
	var shippingFee, freeAbove float64
	if cfg.Checkout != nil {
		shippingFee = cfg.Checkout.ShippingFee
		freeAbove = cfg.Checkout.FreeShippingAbove
	}

	return &orderService{
		orderRepo:      orderRepo,
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		addressUsecase: addressUsecase,
		qrcodeService:  qrcodeService,
		eventPublisher: eventPublisher,
		shippingFee:    shippingFee,
		freeAbove:      freeAbove,
		logger:         logger,
	}
}

// Checkout validates the cart, snapshots the shipping address, reserves
// stock, creates a PENDING order, clears the cart and publishes an event.
func (s *orderService) Checkout(ctx context.Context, userID string, input *usecase.CheckoutInput) (*usecase.CheckoutResult, error) {
	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart items")
	}
	if len(items) == 0 {
		return nil, domainerrors.ErrCartEmpty
	}

	shippingAddress, err := s.resolveShippingAddress(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	// Reserve stock line by line; roll back prior reservations on failure.
	reserved := make([]*entity.CartItem, 0, len(items))
	for _, item := range items {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			s.releaseStock(ctx, reserved)
			if errors.Is(err, repository.ErrInsufficientStock) {
				return nil, domainerrors.ErrInsufficientStock.WrapMessage(item.Name)
			}
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrProductNotFound.WrapMessage(item.Name)
			}

			return nil, errors.Wrap(err, "failed to reserve stock")
		}
		reserved = append(reserved, item)
	}

	subtotal := entity.CartTotal(items)
	shippingFee := s.shippingFee
	if s.freeAbove > 0 && subtotal >= s.freeAbove {
		shippingFee = 0
	}

	now := time.Now()
	order := &entity.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: *shippingAddress,
		Subtotal:        subtotal,
		ShippingFee:     shippingFee,
		Total:           subtotal + shippingFee,
		PaymentMethod:   input.PaymentMethod,
		Status:          entity.OrderStatusPending,
		PlacedAt:        now,
		UpdatedAt:       now,
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		s.releaseStock(ctx, reserved)

		return nil, errors.Wrap(err, "failed to create order")
	}

	if err := s.cartRepo.ClearCart(ctx, userID); err != nil {
		// The order exists; a stale cart is recoverable and not worth failing checkout.
		s.logger.Warn("failed to clear cart after checkout",
			slog.String("user_id", userID),
			slog.String("order_id", order.ID),
			slog.Any("error", err),
		)
	}

	pickupQR, err := s.qrcodeService.GeneratePickupQR(order.ID)
	if err != nil {
		s.logger.Warn("failed to generate pickup QR",
			slog.String("order_id", order.ID),
			slog.Any("error", err),
		)
		pickupQR = nil
	}

	s.publishEvent(ctx, order)

	return &usecase.CheckoutResult{
		Order:    order,
		PickupQR: pickupQR,
	}, nil
}

// resolveShippingAddress picks the explicit address when given, otherwise
// the user's default address.
func (s *orderService) resolveShippingAddress(ctx context.Context, userID string, input *usecase.CheckoutInput) (*entity.Address, error) {
	if input.AddressID != nil {
		addresses := s.addressUsecase.ListAddresses(ctx, userID)
		if addresses.IsError() {
			return nil, errors.Wrap(addresses.Cause(), "failed to resolve shipping address")
		}
		for _, address := range addresses.Value() {
			if address.ID == *input.AddressID {
				return address, nil
			}
		}

		return nil, domainerrors.ErrAddressNotFound
	}

	res := s.addressUsecase.DefaultAddress(ctx, userID)
	if res.IsError() {
		if errors.Is(res.Cause(), domainerrors.ErrNoDefaultAddress) {
			return nil, domainerrors.ErrNoDefaultAddress
		}

		return nil, errors.Wrap(res.Cause(), "failed to resolve default address")
	}

	return res.Value(), nil
}

// releaseStock undoes reservations of a failed checkout.
func (s *orderService) releaseStock(ctx context.Context, reserved []*entity.CartItem) {
	for _, item := range reserved {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("failed to release reserved stock",
				slog.String("product_id", item.ProductID),
				slog.Any("error", err),
			)
		}
	}
}

// ListOrders returns the user's orders, newest first.
func (s *orderService) ListOrders(ctx context.Context, userID string) ([]*entity.Order, error) {
	orders, err := s.orderRepo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder returns one order, verifying ownership.
func (s *orderService) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := s.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to get order")
	}

	if order.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}

	return order, nil
}

// UpdateOrderStatus transitions an order's lifecycle state and publishes
// an order event for push delivery.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error) {
	order, err := s.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to get order")
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, domainerrors.ErrInvalidOrderStatus.WithDetails(
			string(order.Status) + " -> " + string(status),
		)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	order.Status = status
	order.UpdatedAt = time.Now()
	s.publishEvent(ctx, order)

	return order, nil
}

// CancelOrder cancels a not-yet-shipped order on behalf of its owner.
func (s *orderService) CancelOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(entity.OrderStatusCancelled) {
		return nil, domainerrors.ErrInvalidOrderStatus.WrapMessage("order can no longer be cancelled")
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, entity.OrderStatusCancelled); err != nil {
		return nil, errors.Wrap(err, "failed to cancel order")
	}

	// Return reserved stock to the catalog.
	s.releaseStock(ctx, order.Items)

	order.Status = entity.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	s.publishEvent(ctx, order)

	return order, nil
}

// publishEvent enqueues the order event; publish failures are logged, not
// surfaced, because the order state change already committed.
func (s *orderService) publishEvent(ctx context.Context, order *entity.Order) {
	event := &service.OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: time.Now(),
	}

	if err := s.eventPublisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish order event",
			slog.String("order_id", order.ID),
			slog.Any("error", err),
		)
	}
}
