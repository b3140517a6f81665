package repository

import (
	"context"

	"shopfront/internal/domain/entity"
	"shopfront/internal/errors"
)

// ErrAdminNotFound is returned when no admin account matches.
var ErrAdminNotFound = errors.New("admin account not found")

// AdminRepository stores back-office accounts in the local database.
type AdminRepository interface {
	// FindByEmail retrieves an admin account by email.
	// Returns ErrAdminNotFound when no account exists.
	FindByEmail(ctx context.Context, email string) (*entity.AdminAccount, error)

	// Create persists a new admin account.
	Create(ctx context.Context, account *entity.AdminAccount) error
}
