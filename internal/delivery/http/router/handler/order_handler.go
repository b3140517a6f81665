package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/delivery/http/response"
	"shopfront/internal/domain/entity"
	"shopfront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for the checkout and order handlers
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// CheckoutResponse carries the created order and its pickup QR code.
type CheckoutResponse struct {
	Order    *entity.Order `json:"order"`
	PickupQR string        `json:"pickup_qr"` // base64 encoded PNG
}

// Checkout handles POST /orders/checkout
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	var req usecase.CheckoutInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.orderUC.Checkout(c.Request().Context(), userID, &req)
	if err != nil {
		return err
	}

	h.logger.Info("Order placed",
		slog.String("order_id", result.Order.ID),
		slog.String("user_id", userID),
	)

	return response.Success(c, http.StatusCreated, CheckoutResponse{
		Order:    result.Order,
		PickupQR: base64.StdEncoding.EncodeToString(result.PickupQR),
	}, "Order placed successfully")
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	orders, err := h.orderUC.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	order, err := h.orderUC.GetOrder(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// CancelOrder handles POST /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	if _, err := h.orderUC.CancelOrder(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Order cancelled successfully")
}
