// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"shopfront/internal/domain/entity"
	"shopfront/internal/errors"
)

// ErrAddressNotFound is returned when an address is not found.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository is the durable, queryable store for address rows.
//
// Mutations are transactional: SetAsDefault clears and sets the default flag
// in one transaction so readers never observe zero defaults as a persisted
// state, and Delete promotes the next most recent address when the default
// row is removed.
type AddressRepository interface {
	// ListByUser returns all addresses of a user ordered by IsDefault
	// descending, then Timestamp descending.
	ListByUser(ctx context.Context, userID string) ([]*entity.Address, error)

	// FindByID retrieves an address by its key.
	// Returns ErrAddressNotFound when no row exists.
	FindByID(ctx context.Context, id int64) (*entity.Address, error)

	// FindDefault retrieves the row flagged as default for a user.
	// Returns ErrAddressNotFound when no default exists.
	FindDefault(ctx context.Context, userID string) (*entity.Address, error)

	// Count returns the number of addresses owned by a user.
	Count(ctx context.Context, userID string) (int64, error)

	// Insert persists a new address and returns the generated key.
	// An address carrying an existing key replaces that row.
	Insert(ctx context.Context, address *entity.Address) (int64, error)

	// Update replaces the full row identified by the address key.
	Update(ctx context.Context, address *entity.Address) error

	// Delete removes the row identified by the address key. Deleting the
	// current default promotes the most recent remaining address, if any.
	Delete(ctx context.Context, address *entity.Address) error

	// DeleteAllByUser removes every address owned by a user.
	DeleteAllByUser(ctx context.Context, userID string) error

	// FindByZipCode returns the first address of a user matching a zip code.
	FindByZipCode(ctx context.Context, userID, zipCode string) (*entity.Address, error)

	// FindByPlaceID returns the first address of a user matching an
	// external place identifier.
	FindByPlaceID(ctx context.Context, userID, placeID string) (*entity.Address, error)

	// SetAsDefault atomically clears the default flag on every row owned by
	// userID and sets it on addressID.
	SetAsDefault(ctx context.Context, userID string, addressID int64) error

	// WatchAddresses emits the current address list of a user immediately
	// and again after every committed change, until cancel is called or ctx
	// is done.
	WatchAddresses(ctx context.Context, userID string) (<-chan []*entity.Address, func(), error)

	// WatchDefault emits the current default address (nil when none)
	// immediately and again after every committed change.
	WatchDefault(ctx context.Context, userID string) (<-chan *entity.Address, func(), error)
}
