// Package handler contains the HTTP API handlers.
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	deliverycontext "shopfront/internal/delivery/context"
	"shopfront/internal/delivery/http/response"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/resource"
	"shopfront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AddressHandlerParams holds dependencies for AddressHandler, injected by Fx.
type AddressHandlerParams struct {
	fx.In

	AddressUC          usecase.AddressUsecase
	CoordinatorFactory usecase.AddressCoordinatorFactory
	Logger             *slog.Logger
}

// AddressHandler holds dependencies for address book handlers
type AddressHandler struct {
	addressUC          usecase.AddressUsecase
	coordinatorFactory usecase.AddressCoordinatorFactory
	logger             *slog.Logger
}

// NewAddressHandler is the constructor for AddressHandler
func NewAddressHandler(params AddressHandlerParams) *AddressHandler {
	return &AddressHandler{
		addressUC:          params.AddressUC,
		coordinatorFactory: params.CoordinatorFactory,
		logger:             params.Logger,
	}
}

// AddressRequest represents the request body for creating or updating an address
type AddressRequest struct {
	Name             string  `json:"name" validate:"required"`
	AddressLine1     string  `json:"address_line1" validate:"required"`
	AddressLine2     string  `json:"address_line2"`
	City             string  `json:"city" validate:"required"`
	State            string  `json:"state"`
	ZipCode          string  `json:"zip_code" validate:"required"`
	Country          string  `json:"country" validate:"required"`
	PhoneNumber      string  `json:"phone_number"`
	Latitude         float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude        float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	PlaceID          string  `json:"place_id"`
	FormattedAddress string  `json:"formatted_address"`
}

func (r *AddressRequest) toEntity(userID string) *entity.Address {
	return &entity.Address{
		UserID:           userID,
		Name:             r.Name,
		AddressLine1:     r.AddressLine1,
		AddressLine2:     r.AddressLine2,
		City:             r.City,
		State:            r.State,
		ZipCode:          r.ZipCode,
		Country:          r.Country,
		PhoneNumber:      r.PhoneNumber,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		PlaceID:          r.PlaceID,
		FormattedAddress: r.FormattedAddress,
	}
}

// ListAddresses handles GET /addresses
func (h *AddressHandler) ListAddresses(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	res := h.addressUC.ListAddresses(c.Request().Context(), userID)
	if res.IsError() {
		return resourceFailure(res.Message(), res.Cause())
	}

	return response.Success(c, http.StatusOK, res.Value(), "Addresses retrieved successfully")
}

// CreateAddress handles POST /addresses
func (h *AddressHandler) CreateAddress(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res := h.addressUC.AddAddress(c.Request().Context(), req.toEntity(userID))
	if res.IsError() {
		return resourceFailure(res.Message(), res.Cause())
	}

	return response.Success(c, http.StatusCreated, map[string]int64{"id": res.Value()}, "Address created successfully")
}

// UpdateAddress handles PUT /addresses/:id
func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	addressID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid address ID")
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	address := req.toEntity(userID)
	address.ID = addressID

	res := h.addressUC.UpdateAddress(c.Request().Context(), address)
	if res.IsError() {
		return resourceFailure(res.Message(), res.Cause())
	}

	return response.Success(c, http.StatusOK, nil, "Address updated successfully")
}

// DeleteAddress handles DELETE /addresses/:id
func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	addressID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid address ID")
	}

	res := h.addressUC.DeleteAddress(c.Request().Context(), &entity.Address{ID: addressID, UserID: userID})
	if res.IsError() {
		return resourceFailure(res.Message(), res.Cause())
	}

	return response.Success(c, http.StatusOK, nil, "Address deleted successfully")
}

// ClearAddresses handles DELETE /addresses
func (h *AddressHandler) ClearAddresses(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	res := h.addressUC.ClearAddresses(c.Request().Context(), userID)
	if res.IsError() {
		return resourceFailure(res.Message(), res.Cause())
	}

	return response.Success(c, http.StatusOK, nil, "Addresses cleared successfully")
}

// LookupByZipCode handles GET /addresses/lookup?zip_code=..
func (h *AddressHandler) LookupByZipCode(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	zipCode := c.QueryParam("zip_code")
	if zipCode == "" {
		return response.BadRequest(c, "INVALID_INPUT", "zip_code query parameter is required")
	}

	res := h.addressUC.AddressByZipCode(c.Request().Context(), userID, zipCode)
	if res.IsError() {
		return resourceFailure(res.Message(), res.Cause())
	}

	return response.Success(c, http.StatusOK, res.Value(), "Address retrieved successfully")
}

// SetDefaultAddress handles POST /addresses/:id/default
func (h *AddressHandler) SetDefaultAddress(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	addressID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid address ID")
	}

	res := h.addressUC.SetDefaultAddress(c.Request().Context(), userID, addressID)
	if res.IsError() {
		return resourceFailure(res.Message(), res.Cause())
	}

	return response.Success(c, http.StatusOK, nil, "Default address updated successfully")
}

// GetDefaultAddress handles GET /addresses/default
func (h *AddressHandler) GetDefaultAddress(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	res := h.addressUC.DefaultAddress(c.Request().Context(), userID)
	if res.IsError() {
		return resourceFailure(res.Message(), res.Cause())
	}

	return response.Success(c, http.StatusOK, res.Value(), "Default address retrieved successfully")
}

// NearestAddress handles GET /addresses/nearest?latitude=..&longitude=..
func (h *AddressHandler) NearestAddress(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	location, err := parseLatLng(c.QueryParam("latitude"), c.QueryParam("longitude"))
	if err != nil {
		return response.BadRequest(c, "INVALID_COORDINATES", "Invalid latitude or longitude")
	}

	res := h.addressUC.NearestSavedAddress(c.Request().Context(), userID, location)
	if res.IsError() {
		return resourceFailure(res.Message(), res.Cause())
	}

	return response.Success(c, http.StatusOK, res.Value(), "Nearest address retrieved successfully")
}

// ReverseGeocode handles GET /addresses/reverse-geocode?latitude=..&longitude=..
func (h *AddressHandler) ReverseGeocode(c echo.Context) error {
	location, err := parseLatLng(c.QueryParam("latitude"), c.QueryParam("longitude"))
	if err != nil {
		return response.BadRequest(c, "INVALID_COORDINATES", "Invalid latitude or longitude")
	}

	res := h.addressUC.AddressFromLocation(c.Request().Context(), location)
	if res.IsError() {
		return resourceFailure(res.Message(), res.Cause())
	}

	return response.Success(c, http.StatusOK, res.Value(), "Address resolved successfully")
}

// Geocode handles GET /addresses/geocode?address=..
func (h *AddressHandler) Geocode(c echo.Context) error {
	text := c.QueryParam("address")
	if text == "" {
		return response.BadRequest(c, "INVALID_INPUT", "address query parameter is required")
	}

	res := h.addressUC.LocationFromAddress(c.Request().Context(), text)
	if res.IsError() {
		return resourceFailure(res.Message(), res.Cause())
	}

	return response.Success(c, http.StatusOK, res.Value(), "Location resolved successfully")
}

// SearchPlaces handles GET /addresses/places/search?q=..
// The request runs the full autocomplete pipeline and responds with its
// terminal result.
func (h *AddressHandler) SearchPlaces(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.BadRequest(c, "INVALID_INPUT", "q query parameter is required")
	}

	var terminal resource.Resource[[]*entity.PlacePrediction]
	for res := range h.addressUC.PlacePredictions(c.Request().Context(), query) {
		terminal = res
	}

	if terminal.IsError() {
		return resourceFailure(terminal.Message(), terminal.Cause())
	}

	return response.Success(c, http.StatusOK, terminal.Value(), "Predictions retrieved successfully")
}

// GetPlaceDetails handles GET /addresses/places/:place_id
func (h *AddressHandler) GetPlaceDetails(c echo.Context) error {
	res := h.addressUC.PlaceDetails(c.Request().Context(), c.Param("place_id"))
	if res.IsError() {
		return resourceFailure(res.Message(), res.Cause())
	}

	return response.Success(c, http.StatusOK, res.Value(), "Place details retrieved successfully")
}

// SelectPlaceRequest represents the request body for resolving a prediction
// into a draft address.
type SelectPlaceRequest struct {
	PlaceID string `json:"place_id" validate:"required"`
}

// SelectPlace handles POST /addresses/places/select. It runs the selection
// chain and returns the draft address ready for editing and saving.
func (h *AddressHandler) SelectPlace(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)

	var req SelectPlaceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid selection input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	coordinator, err := h.coordinatorFactory(c.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "failed to open address session")
	}
	defer coordinator.Close()

	coordinator.SelectPrediction(c.Request().Context(), req.PlaceID)

	// The chain is synchronous; its terminal outcome is the last buffered status.
	var terminal resource.Resource[string]
drain:
	for {
		select {
		case res := <-coordinator.Status():
			if !res.IsLoading() {
				terminal = res
			}
		default:
			break drain
		}
	}

	if terminal.IsError() {
		return resourceFailure(terminal.Message(), terminal.Cause())
	}

	draft, ok := coordinator.SelectedAddress().Get()
	if !ok {
		return resourceFailure("Could not resolve the selected place", nil)
	}

	return response.Success(c, http.StatusOK, draft, "Place selected successfully")
}

// StreamAddresses handles GET /addresses/stream. It holds an address book
// session open and pushes the list as a server-sent event on every
// committed change until the client disconnects.
func (h *AddressHandler) StreamAddresses(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)
	ctx := c.Request().Context()

	coordinator, err := h.coordinatorFactory(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to open address session")
	}
	defer coordinator.Close()

	updates, cancel := coordinator.Addresses().Subscribe()
	defer cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	// Heartbeats keep intermediaries from closing an idle stream.
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(res, ": heartbeat\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case addresses, ok := <-updates:
			if !ok {
				return nil
			}
			if err := writeSSEEvent(res, "addresses", addresses); err != nil {
				return nil
			}
		}
	}
}

// StreamSearch handles GET /addresses/search/stream?q=.. It feeds the query
// through the debounced search pipeline and pushes each state of the result
// as a server-sent event, ending after the terminal state.
func (h *AddressHandler) StreamSearch(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.BadRequest(c, "INVALID_INPUT", "q query parameter is required")
	}

	userID := deliverycontext.GetUserID(c)
	ctx := c.Request().Context()

	coordinator, err := h.coordinatorFactory(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to open address session")
	}
	defer coordinator.Close()

	updates, cancel := coordinator.Predictions().Subscribe()
	defer cancel()

	coordinator.SearchPlaces(query)

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case predictions, ok := <-updates:
			if !ok {
				return nil
			}

			event := map[string]any{"state": "loading"}
			switch {
			case predictions.IsSuccess():
				event = map[string]any{"state": "success", "predictions": predictions.Value()}
			case predictions.IsError():
				event = map[string]any{"state": "error", "message": predictions.Message()}
			}

			if err := writeSSEEvent(res, "predictions", event); err != nil {
				return nil
			}

			if !predictions.IsLoading() {
				return nil
			}
		}
	}
}

// writeSSEEvent renders one named server-sent event with a JSON payload.
func writeSSEEvent(res *echo.Response, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	res.Flush()

	return nil
}

// resourceFailure converts a failed tri-state result into a handler error.
// Typed causes keep their HTTP mapping; everything else becomes a store error.
func resourceFailure(message string, cause error) error {
	var appErr domainerrors.AppError
	if errors.As(cause, &appErr) {
		return cause
	}
	if cause == nil {
		cause = errors.New(message)
	}

	return domainerrors.NewDatabaseExecuteError(cause, message)
}

// parseLatLng parses coordinate query parameters.
func parseLatLng(latStr, lngStr string) (entity.LatLng, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return entity.LatLng{}, err
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return entity.LatLng{}, err
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return entity.LatLng{}, errors.New("coordinates out of range")
	}

	return entity.LatLng{Latitude: lat, Longitude: lng}, nil
}
