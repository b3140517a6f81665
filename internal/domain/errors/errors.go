package errors

import (
	"net/http"

	"shopfront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Wrap attaches an underlying cause while keeping the typed error in the chain
func (e *BaseError) Wrap(err error) error {
	return errors.Join(e, err)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Address book errors
	ErrAddressLimitReached = NewBaseError(
		http.StatusConflict,
		"ADDRESS_LIMIT_REACHED",
		"Maximum address limit reached",
		"",
	)

	ErrAddressNotFound = NewBaseError(
		http.StatusNotFound,
		"ADDRESS_NOT_FOUND",
		"Address not found",
		"",
	)

	ErrNoDefaultAddress = NewBaseError(
		http.StatusNotFound,
		"NO_DEFAULT_ADDRESS",
		"No default address is set",
		"",
	)

	ErrAddressInvalid = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ADDRESS",
		"Address is missing required fields",
		"",
	)

	ErrAddressDuplicate = NewBaseError(
		http.StatusConflict,
		"ADDRESS_DUPLICATE",
		"Address is already saved",
		"",
	)

	// Geocoding and places errors
	ErrGeocodeNoResults = NewBaseError(
		http.StatusNotFound,
		"GEOCODE_NO_RESULTS",
		"No address found for this location",
		"",
	)

	ErrGeocodeUnavailable = NewBaseError(
		http.StatusBadGateway,
		"GEOCODE_UNAVAILABLE",
		"Failed to reach the geocoding service",
		"",
	)

	ErrPlacesUnavailable = NewBaseError(
		http.StatusBadGateway,
		"PLACES_UNAVAILABLE",
		"Failed to reach the places service",
		"",
	)

	ErrLocationPermission = NewBaseError(
		http.StatusForbidden,
		"LOCATION_PERMISSION",
		"Location permission is required for this action",
		"",
	)

	// Account errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User account not found",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Email or password is incorrect",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication is required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have access to this resource",
		"",
	)

	// Catalog and checkout errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	ErrInsufficientStock = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_STOCK",
		"Not enough stock for the requested quantity",
		"",
	)

	ErrCartEmpty = NewBaseError(
		http.StatusBadRequest,
		"CART_EMPTY",
		"Cart is empty",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrInvalidOrderStatus = NewBaseError(
		http.StatusConflict,
		"INVALID_ORDER_STATUS",
		"Order cannot move to the requested status",
		"",
	)
)

// NewDatabaseExecuteError wraps an unexpected storage failure. The original
// error lands in details; the user-facing message stays generic so storage
// faults never imply user error.
func NewDatabaseExecuteError(err error, message string) *BaseError {
	if message == "" {
		message = "A storage error occurred"
	}

	return NewBaseError(
		http.StatusInternalServerError,
		"STORE_ERROR",
		message,
		err.Error(),
	)
}
