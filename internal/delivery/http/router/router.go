// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"shopfront/internal/delivery/http/middleware"
	"shopfront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AddressHandler *handler.AddressHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	UserHandler    *handler.UserHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	addressHandler *handler.AddressHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	userHandler    *handler.UserHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		addressHandler: params.AddressHandler,
		productHandler: params.ProductHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		userHandler:    params.UserHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public catalog
	e.GET("/products", r.productHandler.ListProducts)
	e.GET("/products/:id", r.productHandler.GetProduct)

	// Customer profile routes
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.PUT("/profile", r.userHandler.UpdateProfile)
		userGroup.PUT("/fcm-token", r.userHandler.RegisterFCMToken)
	}

	// Address book routes
	addressGroup := e.Group("/addresses")
	addressGroup.Use(r.authMiddleware.Authenticate)
	{
		addressGroup.GET("", r.addressHandler.ListAddresses)
		addressGroup.POST("", r.addressHandler.CreateAddress)
		addressGroup.DELETE("", r.addressHandler.ClearAddresses)
		addressGroup.GET("/lookup", r.addressHandler.LookupByZipCode)
		addressGroup.GET("/stream", r.addressHandler.StreamAddresses)
		addressGroup.GET("/default", r.addressHandler.GetDefaultAddress)
		addressGroup.GET("/nearest", r.addressHandler.NearestAddress)
		addressGroup.GET("/geocode", r.addressHandler.Geocode)
		addressGroup.GET("/reverse-geocode", r.addressHandler.ReverseGeocode)
		addressGroup.GET("/places/search", r.addressHandler.SearchPlaces)
		addressGroup.GET("/search/stream", r.addressHandler.StreamSearch)
		addressGroup.POST("/places/select", r.addressHandler.SelectPlace)
		addressGroup.GET("/places/:place_id", r.addressHandler.GetPlaceDetails)
		addressGroup.PUT("/:id", r.addressHandler.UpdateAddress)
		addressGroup.DELETE("/:id", r.addressHandler.DeleteAddress)
		addressGroup.POST("/:id/default", r.addressHandler.SetDefaultAddress)
	}

	// Shopping cart routes
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
		cartGroup.POST("/items", r.cartHandler.AddToCart)
		cartGroup.PUT("/items/:product_id", r.cartHandler.UpdateQuantity)
		cartGroup.DELETE("/items/:product_id", r.cartHandler.RemoveFromCart)
	}

	// Checkout and order routes
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("/checkout", r.orderHandler.Checkout)
		orderGroup.GET("", r.orderHandler.ListOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.POST("/:id/cancel", r.orderHandler.CancelOrder)
	}

	// Back-office routes
	adminAuthGroup := e.Group("/admin/auth")
	{
		adminAuthGroup.POST("/login", r.adminHandler.Login)
		adminAuthGroup.POST("/refresh", r.adminHandler.Refresh)
	}

	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.AuthenticateAdmin)
	{
		adminGroup.POST("/auth/register", r.adminHandler.Register)
		adminGroup.POST("/products", r.adminHandler.SaveProduct)
		adminGroup.PUT("/products/:id", r.adminHandler.SaveProduct)
		adminGroup.DELETE("/products/:id", r.adminHandler.DeleteProduct)
		adminGroup.POST("/products/:id/image", r.adminHandler.UploadProductImage)
		adminGroup.PUT("/orders/:id/status", r.adminHandler.UpdateOrderStatus)
	}
}
