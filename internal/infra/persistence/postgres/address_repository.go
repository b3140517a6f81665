package postgres

import (
	"context"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/infra/persistence/model"
	"shopfront/internal/observe"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// addressRepository implements the repository.AddressRepository interface.
//
// Outside a transaction it notifies the change hub directly after each
// successful mutation. Inside a transaction the notify callback records the
// touched user instead, and the transaction manager flushes after commit.
type addressRepository struct {
	db     *gorm.DB
	hub    *observe.Hub
	notify func(userID string)
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB, hub *observe.Hub) repository.AddressRepository {
	return &addressRepository{
		db:     db,
		hub:    hub,
		notify: hub.Notify,
	}
}

// newTxAddressRepository binds the repository to an open transaction. The
// notify callback defers watcher wake-ups to the commit point, and watch
// methods are unavailable.
func newTxAddressRepository(tx *gorm.DB, notify func(userID string)) repository.AddressRepository {
	return &addressRepository{
		db:     tx,
		notify: notify,
	}
}

// ListByUser retrieves all addresses of a user, default first, then newest first.
func (repo *addressRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Address, error) {
	var addressModels []*model.UserAddressModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, timestamp DESC").
		Find(&addressModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list addresses by user")
	}

	addresses := make([]*entity.Address, 0, len(addressModels))
	for _, addressM := range addressModels {
		addresses = append(addresses, toAddressDomain(addressM))
	}

	return addresses, nil
}

// FindByID retrieves an address by its key.
func (repo *addressRepository) FindByID(ctx context.Context, id int64) (*entity.Address, error) {
	var addressM model.UserAddressModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&addressM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by ID")
	}

	return toAddressDomain(&addressM), nil
}

// FindDefault retrieves the row flagged as default for a user.
func (repo *addressRepository) FindDefault(ctx context.Context, userID string) (*entity.Address, error) {
	var addressM model.UserAddressModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&addressM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find default address")
	}

	return toAddressDomain(&addressM), nil
}

// Count returns the number of addresses owned by a user.
func (repo *addressRepository) Count(ctx context.Context, userID string) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.UserAddressModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count addresses")
	}

	return count, nil
}

// Insert persists an address. A zero key creates a new row, a non-zero key
// replaces the existing row.
func (repo *addressRepository) Insert(ctx context.Context, address *entity.Address) (int64, error) {
	addressM := fromAddressDomain(address)

	tx := repo.db.WithContext(ctx)
	var err error
	if addressM.ID == 0 {
		err = tx.Create(addressM).Error
	} else {
		err = tx.Save(addressM).Error
	}
	if err != nil {
		if isNotNullConstraintViolation(err) {
			return 0, domainerrors.ErrAddressInvalid.WrapMessage("missing required address information")
		}

		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to insert address")
	}

	address.ID = addressM.ID
	repo.notify(address.UserID)

	return addressM.ID, nil
}

// Update replaces the full row identified by the address key.
func (repo *addressRepository) Update(ctx context.Context, address *entity.Address) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserAddressModel{}).
		Where("id = ? AND user_id = ?", address.ID, address.UserID).
		Select("*").
		Omit("id").
		Updates(fromAddressDomain(address))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update address")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	repo.notify(address.UserID)

	return nil
}

// Delete removes an address. When the deleted row was the default, the most
// recent remaining address is promoted within the same transaction so the
// user never persists without a default while still owning addresses.
func (repo *addressRepository) Delete(ctx context.Context, address *entity.Address) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var addressM model.UserAddressModel
		if err := tx.
			Where("id = ? AND user_id = ?", address.ID, address.UserID).
			First(&addressM).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrAddressNotFound
			}

			return errors.Wrap(err, "failed to load address for delete")
		}

		if err := tx.Delete(&model.UserAddressModel{}, addressM.ID).Error; err != nil {
			return errors.Wrap(err, "failed to delete address")
		}

		if !addressM.IsDefault {
			return nil
		}

		// Promote the most recent remaining address, if any.
		var nextM model.UserAddressModel
		err := tx.
			Where("user_id = ?", addressM.UserID).
			Order("timestamp DESC").
			First(&nextM).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to find promotion candidate")
		}

		if err := tx.
			Model(&model.UserAddressModel{}).
			Where("id = ?", nextM.ID).
			Update("is_default", true).Error; err != nil {
			return errors.Wrap(err, "failed to promote default address")
		}

		return nil
	})
	if err != nil {
		return err
	}

	repo.notify(address.UserID)

	return nil
}

// DeleteAllByUser removes every address owned by a user.
func (repo *addressRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.UserAddressModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete addresses by user")
	}

	repo.notify(userID)

	return nil
}

// FindByZipCode returns the first address of a user matching a zip code.
func (repo *addressRepository) FindByZipCode(ctx context.Context, userID, zipCode string) (*entity.Address, error) {
	var addressM model.UserAddressModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND zip_code = ?", userID, zipCode).
		Order("timestamp DESC").
		First(&addressM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by zip code")
	}

	return toAddressDomain(&addressM), nil
}

// FindByPlaceID returns the first address of a user matching a place id.
func (repo *addressRepository) FindByPlaceID(ctx context.Context, userID, placeID string) (*entity.Address, error) {
	var addressM model.UserAddressModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Order("timestamp DESC").
		First(&addressM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by place id")
	}

	return toAddressDomain(&addressM), nil
}

// SetAsDefault atomically moves the default flag to the given address.
// Readers never observe a state with two defaults or none.
func (repo *addressRepository) SetAsDefault(ctx context.Context, userID string, addressID int64) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var addressM model.UserAddressModel
		if err := tx.
			Where("id = ? AND user_id = ?", addressID, userID).
			First(&addressM).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrAddressNotFound
			}

			return errors.Wrap(err, "failed to load address for default change")
		}

		if err := tx.
			Model(&model.UserAddressModel{}).
			Where("user_id = ? AND id <> ?", userID, addressID).
			Update("is_default", false).Error; err != nil {
			return errors.Wrap(err, "failed to clear previous default")
		}

		if err := tx.
			Model(&model.UserAddressModel{}).
			Where("id = ?", addressID).
			Update("is_default", true).Error; err != nil {
			return errors.Wrap(err, "failed to set default address")
		}

		return nil
	})
	if err != nil {
		return err
	}

	repo.notify(userID)

	return nil
}

// WatchAddresses emits the current address list immediately and re-queries
// after every committed change until cancel is called or ctx is done.
func (repo *addressRepository) WatchAddresses(ctx context.Context, userID string) (<-chan []*entity.Address, func(), error) {
	if repo.hub == nil {
		return nil, nil, errors.New("watch is not available inside a transaction")
	}

	signals, unsubscribe := repo.hub.Subscribe(userID)
	out := make(chan []*entity.Address, 1)
	watchCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(out)
		for {
			addresses, err := repo.ListByUser(watchCtx, userID)
			if err == nil {
				select {
				case out <- addresses:
				case <-watchCtx.Done():
					return
				}
			}

			select {
			case <-watchCtx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
			}
		}
	}()

	stop := func() {
		cancel()
		unsubscribe()
	}

	return out, stop, nil
}

// WatchDefault emits the current default address (nil when none) immediately
// and re-queries after every committed change.
func (repo *addressRepository) WatchDefault(ctx context.Context, userID string) (<-chan *entity.Address, func(), error) {
	if repo.hub == nil {
		return nil, nil, errors.New("watch is not available inside a transaction")
	}

	signals, unsubscribe := repo.hub.Subscribe(userID)
	out := make(chan *entity.Address, 1)
	watchCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(out)
		for {
			address, err := repo.FindDefault(watchCtx, userID)
			if err != nil && !errors.Is(err, repository.ErrAddressNotFound) {
				address = nil
			}
			if err == nil || errors.Is(err, repository.ErrAddressNotFound) {
				select {
				case out <- address:
				case <-watchCtx.Done():
					return
				}
			}

			select {
			case <-watchCtx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
			}
		}
	}()

	stop := func() {
		cancel()
		unsubscribe()
	}

	return out, stop, nil
}

// --- Mapper Functions ---

// toAddressDomain converts a GORM UserAddressModel to a domain Address entity.
func toAddressDomain(data *model.UserAddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:               data.ID,
		UserID:           data.UserID,
		Name:             data.Name,
		AddressLine1:     data.AddressLine1,
		AddressLine2:     data.AddressLine2,
		City:             data.City,
		State:            data.State,
		ZipCode:          data.ZipCode,
		Country:          data.Country,
		PhoneNumber:      data.PhoneNumber,
		IsDefault:        data.IsDefault,
		Latitude:         data.Latitude,
		Longitude:        data.Longitude,
		PlaceID:          data.PlaceID,
		FormattedAddress: data.FormattedAddress,
		Timestamp:        data.Timestamp,
	}
}

// fromAddressDomain converts a domain Address entity to a GORM UserAddressModel.
func fromAddressDomain(data *entity.Address) *model.UserAddressModel {
	if data == nil {
		return nil
	}

	return &model.UserAddressModel{
		ID:               data.ID,
		UserID:           data.UserID,
		Name:             data.Name,
		AddressLine1:     data.AddressLine1,
		AddressLine2:     data.AddressLine2,
		City:             data.City,
		State:            data.State,
		ZipCode:          data.ZipCode,
		Country:          data.Country,
		PhoneNumber:      data.PhoneNumber,
		IsDefault:        data.IsDefault,
		Latitude:         data.Latitude,
		Longitude:        data.Longitude,
		PlaceID:          data.PlaceID,
		FormattedAddress: data.FormattedAddress,
		Timestamp:        data.Timestamp,
	}
}
