package usecase

import (
	"context"

	"shopfront/internal/domain/entity"
)

// UpdateProfileInput represents the input for updating a user profile
type UpdateProfileInput struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// UserUsecase defines the account profile use cases
type UserUsecase interface {
	// GetProfile returns the user document, creating a minimal one on
	// first sign-in.
	GetProfile(ctx context.Context, userID, email string) (*entity.User, error)

	// UpdateProfile applies partial profile changes.
	UpdateProfile(ctx context.Context, userID string, input *UpdateProfileInput) (*entity.User, error)

	// RegisterFCMToken stores the device push token on the user document.
	RegisterFCMToken(ctx context.Context, userID, token string) error
}
