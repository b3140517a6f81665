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

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for the customer profile handlers
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// GetProfile handles GET /user/profile. The profile is created on first
// sign-in from the verified token claims.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)
	email := deliverycontext.GetUserEmail(c)

	user, err := h.userUC.GetProfile(c.Request().Context(), userID, email)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, user, "Profile retrieved successfully")
}

// UpdateProfile handles PUT /user/profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	var req usecase.UpdateProfileInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userUC.UpdateProfile(c.Request().Context(), userID, &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, user, "Profile updated successfully")
}

// FCMTokenRequest represents the request body for registering a device token
type FCMTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// RegisterFCMToken handles PUT /user/fcm-token
func (h *UserHandler) RegisterFCMToken(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	var req FCMTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid token input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userUC.RegisterFCMToken(c.Request().Context(), userID, req.Token); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Device token registered successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
