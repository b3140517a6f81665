// Package context carries request-scoped values between middleware and handlers.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyUserID is the key for the authenticated customer's uid.
	KeyUserID ContextKey = "user_id"

	// KeyUserEmail is the key for the authenticated customer's email.
	KeyUserEmail ContextKey = "user_email"

	// KeyAdminID is the key for the authenticated admin account id.
	KeyAdminID ContextKey = "admin_id"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	val := c.Get(string(KeyRequestID))
	if id, ok := val.(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetRequestIDFromContext extracts the request ID from a context.Context.
// Returns an empty string when none is set.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// GetUserID extracts the authenticated customer's uid from echo.Context.
func GetUserID(c echo.Context) string {
	if uid, ok := c.Get(string(KeyUserID)).(string); ok {
		return uid
	}

	return ""
}

// SetUser stores the authenticated customer's identity on echo.Context.
func SetUser(c echo.Context, uid, email string) {
	c.Set(string(KeyUserID), uid)
	c.Set(string(KeyUserEmail), email)
}

// GetUserEmail extracts the authenticated customer's email from echo.Context.
func GetUserEmail(c echo.Context) string {
	if email, ok := c.Get(string(KeyUserEmail)).(string); ok {
		return email
	}

	return ""
}

// GetAdminID extracts the authenticated admin id from echo.Context.
func GetAdminID(c echo.Context) string {
	if id, ok := c.Get(string(KeyAdminID)).(string); ok {
		return id
	}

	return ""
}

// SetAdminID stores the authenticated admin id on echo.Context.
func SetAdminID(c echo.Context, adminID string) {
	c.Set(string(KeyAdminID), adminID)
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context,
// falling back to the provided logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
