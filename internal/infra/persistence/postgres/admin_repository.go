package postgres

import (
	"context"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// adminRepository implements the repository.AdminRepository interface.
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository is the constructor for adminRepository.
func NewAdminRepository(db *gorm.DB) repository.AdminRepository {
	return &adminRepository{
		db: db,
	}
}

// FindByEmail retrieves an admin account by email.
func (repo *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminAccount, error) {
	var adminM model.AdminAccountModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&adminM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAdminNotFound
		}

		return nil, errors.Wrap(err, "failed to find admin by email")
	}

	return toAdminDomain(&adminM), nil
}

// Create persists a new admin account.
func (repo *adminRepository) Create(ctx context.Context, account *entity.AdminAccount) error {
	adminM := fromAdminDomain(account)

	if err := repo.db.WithContext(ctx).Create(adminM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrInvalidCredentials.WrapMessage("email is already registered")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create admin account")
	}

	account.ID = adminM.ID
	account.CreatedAt = adminM.CreatedAt
	account.UpdatedAt = adminM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

func toAdminDomain(data *model.AdminAccountModel) *entity.AdminAccount {
	if data == nil {
		return nil
	}

	return &entity.AdminAccount{
		ID:           data.ID,
		Email:        data.Email,
		DisplayName:  data.DisplayName,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromAdminDomain(data *entity.AdminAccount) *model.AdminAccountModel {
	if data == nil {
		return nil
	}

	return &model.AdminAccountModel{
		ID:           data.ID,
		Email:        data.Email,
		DisplayName:  data.DisplayName,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
