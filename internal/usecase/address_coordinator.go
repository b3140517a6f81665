package usecase

import (
	"context"

	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/resource"
	"shopfront/internal/observe"
)

// AddressCoordinatorFactory builds a per-user coordinator. The coordinator
// lives as long as its owning stream; callers must Close it.
type AddressCoordinatorFactory func(ctx context.Context, userID string) (AddressCoordinator, error)

// AddressCoordinator exposes reactive address book state to the delivery
// layer and sequences the multi-step search and selection flows.
type AddressCoordinator interface {
	// Addresses is the live, store-backed address list.
	Addresses() *observe.Value[[]*entity.Address]

	// SelectedAddress is the address currently chosen for map or edit flows.
	SelectedAddress() *observe.Value[*entity.Address]

	// SelectedLocation is the last resolved map coordinate.
	SelectedLocation() *observe.Value[entity.LatLng]

	// Predictions holds the last search's result, replaced on each new query.
	Predictions() *observe.Value[resource.Resource[[]*entity.PlacePrediction]]

	// Status carries the last operation's outcome for loading/error display.
	Status() <-chan resource.Resource[string]

	// SearchPlaces samples raw input. The lookup is dispatched only after
	// the configured quiet interval; queries shorter than the minimum
	// length publish an empty result without reaching the collaborator.
	SearchPlaces(query string)

	// SelectPrediction runs the fixed chain: place details, selected
	// location, reverse geocode, draft address. A failing step publishes
	// to Status and no partial draft appears.
	SelectPrediction(ctx context.Context, placeID string)

	// SelectAddress publishes an existing address as the selection.
	SelectAddress(address *entity.Address)

	// Close tears down timers and store subscriptions.
	Close()
}
