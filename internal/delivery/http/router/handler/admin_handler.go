package handler

import (
	"log/slog"
	"net/http"

	"shopfront/internal/delivery/http/response"
	"shopfront/internal/domain/entity"
	"shopfront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AuthUC    usecase.AdminAuthUsecase
	ProductUC usecase.ProductUsecase
	OrderUC   usecase.OrderUsecase
	Logger    *slog.Logger
}

// AdminHandler holds dependencies for the back-office handlers
type AdminHandler struct {
	authUC    usecase.AdminAuthUsecase
	productUC usecase.ProductUsecase
	orderUC   usecase.OrderUsecase
	logger    *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		authUC:    params.AuthUC,
		productUC: params.ProductUC,
		orderUC:   params.OrderUC,
		logger:    params.Logger,
	}
}

// Login handles POST /admin/auth/login
func (h *AdminHandler) Login(c echo.Context) error {
	var req usecase.AdminLoginInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.authUC.Login(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, pair, "Login successful")
}

// RefreshRequest represents the request body for refreshing a token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh handles POST /admin/auth/refresh
func (h *AdminHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.authUC.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, pair, "Token refreshed successfully")
}

// Register handles POST /admin/auth/register. Only an authenticated admin
// can provision another account.
func (h *AdminHandler) Register(c echo.Context) error {
	var req usecase.RegisterAdminInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authUC.Register(c.Request().Context(), &req); err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, nil, "Admin account created successfully")
}

// SaveProduct handles POST /admin/products and PUT /admin/products/:id
func (h *AdminHandler) SaveProduct(c echo.Context) error {
	var req usecase.SaveProductInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if id := c.Param("id"); id != "" {
		req.ID = id
	}
	if req.Name == "" || req.Price < 0 || req.StockQuantity < 0 {
		return response.BadRequest(c, "VALIDATION_ERROR", "Product name is required and price and stock must be non-negative")
	}

	product, err := h.productUC.SaveProduct(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, product, "Product saved successfully")
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.productUC.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// UploadProductImage handles POST /admin/products/:id/image with a
// multipart form carrying the image file.
func (h *AdminHandler) UploadProductImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded image")
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("Failed to close uploaded image", slog.String("error", closeErr.Error()))
		}
	}()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.productUC.UploadProductImage(c.Request().Context(), c.Param("id"), contentType, file)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]string{"image_url": url}, "Image uploaded successfully")
}

// UpdateOrderStatusRequest represents the request body for an order
// lifecycle transition
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), c.Param("id"), entity.OrderStatus(req.Status))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}
