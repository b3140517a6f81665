// Package service defines interfaces for external collaborators such as
// geocoding, push notification, and token services.
package service

import (
	"context"

	"shopfront/internal/domain/entity"
	"shopfront/internal/errors"
)

// ErrNoResults is returned when the geocoder produces no match for the input.
var ErrNoResults = errors.New("geocoding returned no results")

// GeocodingService translates between coordinates and postal addresses.
type GeocodingService interface {
	// ReverseGeocode resolves coordinates to the closest postal address.
	// Returns ErrNoResults when nothing matches.
	ReverseGeocode(ctx context.Context, location entity.LatLng) (*entity.Address, error)

	// Geocode resolves a free-form address string to coordinates.
	// Returns ErrNoResults when nothing matches.
	Geocode(ctx context.Context, address string) (entity.LatLng, error)
}

// PlacesService provides typeahead search over the places index.
type PlacesService interface {
	// AutocompletePredictions returns ranked predictions for a partial
	// query. An empty result list is not an error.
	AutocompletePredictions(ctx context.Context, query string) ([]*entity.PlacePrediction, error)

	// PlaceDetails resolves a prediction's place id to its full record.
	// Returns ErrNoResults when the place id is unknown.
	PlaceDetails(ctx context.Context, placeID string) (*entity.PlaceDetails, error)
}
