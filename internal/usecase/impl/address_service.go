// Package impl contains the concrete implementations of the use case interfaces.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shopfront/config"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/domain/resource"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"
	"shopfront/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

type addressService struct {
	txManager   repository.TransactionManager
	addressRepo repository.AddressRepository
	geocoder    service.GeocodingService
	places      service.PlacesService
	maxPerUser  int
	logger      *slog.Logger
}

// NewAddressService creates a new address service instance
func NewAddressService(
	txManager repository.TransactionManager,
	addressRepo repository.AddressRepository,
	geocoder service.GeocodingService,
	places service.PlacesService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AddressUsecase {
	return &addressService{
		txManager:   txManager,
		addressRepo: addressRepo,
		geocoder:    geocoder,
		places:      places,
		maxPerUser:  cfg.MaxAddressesPerUser(),
		logger:      logger,
	}
}

// ListAddresses returns the user's addresses, default first, then newest first.
func (s *addressService) ListAddresses(ctx context.Context, userID string) resource.Resource[[]*entity.Address] {
	addresses, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list addresses", slog.String("user_id", userID), slog.Any("error", err))

		return resource.Error[[]*entity.Address]("Could not load your addresses", err)
	}

	return resource.Success(addresses)
}

// AddAddress inserts a new address. The cap check, the insert and the
// first-address default promotion run in one store transaction, so two
// concurrent adds can never exceed the cap or produce two defaults.
func (s *addressService) AddAddress(ctx context.Context, address *entity.Address) resource.Resource[int64] {
	if address.Timestamp.IsZero() {
		address.Timestamp = time.Now()
	}

	var newID int64
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewAddressRepository()

		count, err := repo.Count(ctx, address.UserID)
		if err != nil {
			return err
		}
		if count >= int64(s.maxPerUser) {
			return domainerrors.ErrAddressLimitReached
		}

		// A prediction-sourced address carries a place id; the same place
		// saved twice is a duplicate, not a second row.
		if address.PlaceID != "" {
			existing, err := repo.FindByPlaceID(ctx, address.UserID, address.PlaceID)
			if err != nil && !errors.Is(err, repository.ErrAddressNotFound) {
				return err
			}
			if err == nil && existing != nil {
				return domainerrors.ErrAddressDuplicate
			}
		}

		newID, err = repo.Insert(ctx, address)
		if err != nil {
			return err
		}

		// The first address of a user becomes the default.
		if count == 0 {
			return repo.SetAsDefault(ctx, address.UserID, newID)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAddressLimitReached) {
			return resource.Error[int64](fmt.Sprintf("You can store at most %d addresses", s.maxPerUser), domainerrors.ErrAddressLimitReached)
		}
		if errors.Is(err, domainerrors.ErrAddressDuplicate) {
			return resource.Error[int64]("You already saved this address", domainerrors.ErrAddressDuplicate)
		}
		s.logger.Error("failed to add address", slog.String("user_id", address.UserID), slog.Any("error", err))

		return resource.Error[int64]("Could not save the address", err)
	}

	return resource.Success(newID)
}

// UpdateAddress replaces the full row identified by the address key.
// Editing does not change the row count, so the cap is not re-checked, and
// it never moves the default flag or the creation time.
func (s *addressService) UpdateAddress(ctx context.Context, address *entity.Address) resource.Resource[resource.Unit] {
	existing, err := s.addressRepo.FindByID(ctx, address.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return resource.Error[resource.Unit]("This address no longer exists", domainerrors.ErrAddressNotFound)
		}
		s.logger.Error("failed to load address", slog.Int64("address_id", address.ID), slog.Any("error", err))

		return resource.Error[resource.Unit]("Could not update the address", err)
	}
	if existing.UserID != address.UserID {
		return resource.Error[resource.Unit]("This address no longer exists", domainerrors.ErrAddressNotFound)
	}

	address.IsDefault = existing.IsDefault
	address.Timestamp = existing.Timestamp

	if err := s.addressRepo.Update(ctx, address); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return resource.Error[resource.Unit]("This address no longer exists", domainerrors.ErrAddressNotFound)
		}
		s.logger.Error("failed to update address", slog.Int64("address_id", address.ID), slog.Any("error", err))

		return resource.Error[resource.Unit]("Could not update the address", err)
	}

	return resource.Success(resource.Unit{})
}

// DeleteAddress removes an address. The store promotes the most recent
// remaining address when the default row is deleted.
func (s *addressService) DeleteAddress(ctx context.Context, address *entity.Address) resource.Resource[resource.Unit] {
	if err := s.addressRepo.Delete(ctx, address); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return resource.Error[resource.Unit]("This address no longer exists", domainerrors.ErrAddressNotFound)
		}
		s.logger.Error("failed to delete address", slog.Int64("address_id", address.ID), slog.Any("error", err))

		return resource.Error[resource.Unit]("Could not delete the address", err)
	}

	return resource.Success(resource.Unit{})
}

// ClearAddresses removes every address of a user.
func (s *addressService) ClearAddresses(ctx context.Context, userID string) resource.Resource[resource.Unit] {
	if err := s.addressRepo.DeleteAllByUser(ctx, userID); err != nil {
		s.logger.Error("failed to clear addresses", slog.String("user_id", userID), slog.Any("error", err))

		return resource.Error[resource.Unit]("Could not clear your addresses", err)
	}

	return resource.Success(resource.Unit{})
}

// AddressByZipCode returns the most recently saved address matching a zip code.
func (s *addressService) AddressByZipCode(ctx context.Context, userID, zipCode string) resource.Resource[*entity.Address] {
	address, err := s.addressRepo.FindByZipCode(ctx, userID, zipCode)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return resource.Error[*entity.Address]("No saved address matches this zip code", domainerrors.ErrAddressNotFound)
		}
		s.logger.Error("failed to find address by zip code", slog.String("user_id", userID), slog.Any("error", err))

		return resource.Error[*entity.Address]("Could not look up the address", err)
	}

	return resource.Success(address)
}

// SetDefaultAddress atomically moves the default flag. Calling it twice
// with the same arguments terminates in the same state.
func (s *addressService) SetDefaultAddress(ctx context.Context, userID string, addressID int64) resource.Resource[resource.Unit] {
	if err := s.addressRepo.SetAsDefault(ctx, userID, addressID); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return resource.Error[resource.Unit]("This address no longer exists", domainerrors.ErrAddressNotFound)
		}
		s.logger.Error("failed to set default address", slog.Int64("address_id", addressID), slog.Any("error", err))

		return resource.Error[resource.Unit]("Could not change the default address", err)
	}

	return resource.Success(resource.Unit{})
}

// DefaultAddress returns the user's default address.
func (s *addressService) DefaultAddress(ctx context.Context, userID string) resource.Resource[*entity.Address] {
	address, err := s.addressRepo.FindDefault(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return resource.Error[*entity.Address]("No default address is set", domainerrors.ErrNoDefaultAddress)
		}
		s.logger.Error("failed to find default address", slog.String("user_id", userID), slog.Any("error", err))

		return resource.Error[*entity.Address]("Could not load the default address", err)
	}

	return resource.Success(address)
}

// AddressFromLocation reverse geocodes coordinates into a draft address.
// Only the first candidate is consumed; the draft carries no id or user id.
func (s *addressService) AddressFromLocation(ctx context.Context, location entity.LatLng) resource.Resource[*entity.Address] {
	address, err := s.geocoder.ReverseGeocode(ctx, location)
	if err != nil {
		if errors.Is(err, service.ErrNoResults) {
			return resource.Error[*entity.Address]("No address found for this location", domainerrors.ErrGeocodeNoResults)
		}
		s.logger.Warn("reverse geocode failed", slog.Any("error", err))

		return resource.Error[*entity.Address]("Could not reach the location service", domainerrors.ErrGeocodeUnavailable.Wrap(err))
	}

	return resource.Success(address)
}

// LocationFromAddress forward geocodes a free-form address string.
func (s *addressService) LocationFromAddress(ctx context.Context, text string) resource.Resource[entity.LatLng] {
	location, err := s.geocoder.Geocode(ctx, text)
	if err != nil {
		if errors.Is(err, service.ErrNoResults) {
			return resource.Error[entity.LatLng]("No location found for this address", domainerrors.ErrGeocodeNoResults)
		}
		s.logger.Warn("forward geocode failed", slog.Any("error", err))

		return resource.Error[entity.LatLng]("Could not reach the location service", domainerrors.ErrGeocodeUnavailable.Wrap(err))
	}

	return resource.Success(location)
}

// PlacePredictions returns a cold single-shot pipeline: the channel carries
// exactly one Loading value and one terminal value, then closes.
func (s *addressService) PlacePredictions(ctx context.Context, query string) <-chan resource.Resource[[]*entity.PlacePrediction] {
	out := make(chan resource.Resource[[]*entity.PlacePrediction], 2)
	out <- resource.Loading[[]*entity.PlacePrediction]()

	go func() {
		defer close(out)

		predictions, err := s.places.AutocompletePredictions(ctx, query)
		if err != nil {
			s.logger.Warn("place autocomplete failed", slog.Any("error", err))
			out <- resource.Error[[]*entity.PlacePrediction]("Could not search for places", domainerrors.ErrPlacesUnavailable.Wrap(err))

			return
		}

		out <- resource.Success(predictions)
	}()

	return out
}

// PlaceDetails resolves a prediction's place id to its full record.
func (s *addressService) PlaceDetails(ctx context.Context, placeID string) resource.Resource[*entity.PlaceDetails] {
	details, err := s.places.PlaceDetails(ctx, placeID)
	if err != nil {
		if errors.Is(err, service.ErrNoResults) {
			return resource.Error[*entity.PlaceDetails]("This place could not be found", domainerrors.ErrGeocodeNoResults)
		}
		s.logger.Warn("place details failed", slog.String("place_id", placeID), slog.Any("error", err))

		return resource.Error[*entity.PlaceDetails]("Could not load the place details", domainerrors.ErrPlacesUnavailable.Wrap(err))
	}

	return resource.Success(details)
}

// NearestSavedAddress returns the saved address geodesically closest to the
// given location. Rows without resolved coordinates are ignored.
func (s *addressService) NearestSavedAddress(ctx context.Context, userID string, location entity.LatLng) resource.Resource[*entity.Address] {
	addresses, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list addresses", slog.String("user_id", userID), slog.Any("error", err))

		return resource.Error[*entity.Address]("Could not load your addresses", err)
	}

	origin := orb.Point{location.Longitude, location.Latitude}
	var nearest *entity.Address
	var nearestDistance float64

	for _, address := range addresses {
		if !address.HasCoordinates() {
			continue
		}

		distance := geo.Distance(origin, orb.Point{address.Longitude, address.Latitude})
		if nearest == nil || distance < nearestDistance {
			nearest = address
			nearestDistance = distance
		}
	}

	if nearest == nil {
		return resource.Error[*entity.Address]("None of your addresses has a location", domainerrors.ErrAddressNotFound)
	}

	return resource.Success(nearest)
}

// WatchAddresses streams the user's address list on every committed change.
func (s *addressService) WatchAddresses(ctx context.Context, userID string) (<-chan []*entity.Address, func(), error) {
	return s.addressRepo.WatchAddresses(ctx, userID)
}

// WatchDefault streams the user's default address on every committed change.
func (s *addressService) WatchDefault(ctx context.Context, userID string) (<-chan *entity.Address, func(), error) {
	return s.addressRepo.WatchDefault(ctx, userID)
}
