package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/delivery/http/response"
	"shopfront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler holds dependencies for the shopping cart handlers
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	summary, err := h.cartUC.GetCart(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, summary, "Cart retrieved successfully")
}

// AddToCartRequest represents the request body for adding a product to the cart
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.cartUC.AddToCart(c.Request().Context(), userID, req.ProductID, req.Quantity); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Product added to cart")
}

// UpdateQuantityRequest represents the request body for changing a line quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// UpdateQuantity handles PUT /cart/items/:product_id
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.cartUC.UpdateQuantity(c.Request().Context(), userID, c.Param("product_id"), req.Quantity); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Cart updated successfully")
}

// RemoveFromCart handles DELETE /cart/items/:product_id
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	if err := h.cartUC.RemoveFromCart(c.Request().Context(), userID, c.Param("product_id")); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Product removed from cart")
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	if err := h.cartUC.ClearCart(c.Request().Context(), userID); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Cart cleared successfully")
}
