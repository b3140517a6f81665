// Package usecase defines the application-facing interfaces of the storefront.
package usecase

import (
	"context"

	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/resource"
)

// AddressUsecase defines the address book use cases. Every method returns a
// tri-state resource; collaborator and store failures never escape as
// panics or raw errors.
type AddressUsecase interface {
	// ListAddresses returns the user's addresses, default first, then newest first.
	ListAddresses(ctx context.Context, userID string) resource.Resource[[]*entity.Address]

	// AddAddress inserts a new address. Fails with a capacity error at the
	// per-user cap; the first address of a user becomes the default.
	AddAddress(ctx context.Context, address *entity.Address) resource.Resource[int64]

	// UpdateAddress replaces the full row identified by the address key.
	UpdateAddress(ctx context.Context, address *entity.Address) resource.Resource[resource.Unit]

	// DeleteAddress removes an address. Deleting the default promotes the
	// most recent remaining address.
	DeleteAddress(ctx context.Context, address *entity.Address) resource.Resource[resource.Unit]

	// ClearAddresses removes every address of a user, as on account deletion.
	ClearAddresses(ctx context.Context, userID string) resource.Resource[resource.Unit]

	// AddressByZipCode returns the most recently saved address matching a
	// zip code.
	AddressByZipCode(ctx context.Context, userID, zipCode string) resource.Resource[*entity.Address]

	// SetDefaultAddress atomically moves the default flag. Idempotent.
	SetDefaultAddress(ctx context.Context, userID string, addressID int64) resource.Resource[resource.Unit]

	// DefaultAddress returns the user's default address.
	DefaultAddress(ctx context.Context, userID string) resource.Resource[*entity.Address]

	// AddressFromLocation reverse geocodes coordinates into a draft address.
	// Only postal fields and coordinates are populated; the caller merges
	// id and user id.
	AddressFromLocation(ctx context.Context, location entity.LatLng) resource.Resource[*entity.Address]

	// LocationFromAddress forward geocodes a free-form address string.
	LocationFromAddress(ctx context.Context, text string) resource.Resource[entity.LatLng]

	// PlacePredictions returns a cold single-shot pipeline: exactly one
	// Loading value followed by one terminal Success or Error, then close.
	PlacePredictions(ctx context.Context, query string) <-chan resource.Resource[[]*entity.PlacePrediction]

	// PlaceDetails resolves a prediction's place id to its full record.
	PlaceDetails(ctx context.Context, placeID string) resource.Resource[*entity.PlaceDetails]

	// NearestSavedAddress returns the saved address geodesically closest to
	// the given location, considering only rows with resolved coordinates.
	NearestSavedAddress(ctx context.Context, userID string, location entity.LatLng) resource.Resource[*entity.Address]

	// WatchAddresses streams the user's address list on every committed change.
	WatchAddresses(ctx context.Context, userID string) (<-chan []*entity.Address, func(), error)

	// WatchDefault streams the user's default address on every committed change.
	WatchDefault(ctx context.Context, userID string) (<-chan *entity.Address, func(), error)
}
