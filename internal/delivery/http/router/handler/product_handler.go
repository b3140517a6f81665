package handler

import (
	"log/slog"
	"net/http"

	"shopfront/internal/delivery/http/response"
	"shopfront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler holds dependencies for the public catalog handlers
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

// ListProducts handles GET /products?category=..
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productUC.ListProducts(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUC.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}
