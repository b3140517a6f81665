package repository

import (
	"context"

	"shopfront/internal/domain/entity"
	"shopfront/internal/errors"
)

// ErrUserNotFound is returned when a user document does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserRepository reads and writes user documents in the remote document store.
type UserRepository interface {
	// GetUser retrieves a user document by the auth provider uid.
	// Returns ErrUserNotFound when the document does not exist.
	GetUser(ctx context.Context, id string) (*entity.User, error)

	// SaveUser writes the full user document, creating it when absent.
	SaveUser(ctx context.Context, user *entity.User) error

	// UpdateFCMToken updates only the push token field of a user document.
	UpdateFCMToken(ctx context.Context, userID, token string) error
}
