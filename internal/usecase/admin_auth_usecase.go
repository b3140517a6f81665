package usecase

import (
	"context"

	"shopfront/internal/domain/service"
)

// AdminLoginInput represents admin login credentials
type AdminLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterAdminInput represents the input for provisioning an admin account
type RegisterAdminInput struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
}

// AdminAuthUsecase defines back-office authentication use cases
type AdminAuthUsecase interface {
	// Login verifies credentials and issues a token pair.
	Login(ctx context.Context, input *AdminLoginInput) (*service.TokenPair, error)

	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error)

	// Register provisions a new admin account.
	Register(ctx context.Context, input *RegisterAdminInput) error
}
