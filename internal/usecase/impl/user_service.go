package impl

import (
	"context"
	"time"

	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/repository"
	"shopfront/internal/errors"
	"shopfront/internal/usecase"
)

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repository.UserRepository) usecase.UserUsecase {
	return &userService{
		userRepo: userRepo,
	}
}

// GetProfile returns the user document, creating a minimal one on first sign-in.
func (s *userService) GetProfile(ctx context.Context, userID, email string) (*entity.User, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to get user profile")
	}

	now := time.Now()
	user = &entity.User{
		ID:        userID,
		Email:     email,
		UserType:  entity.UserTypeCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user profile")
	}

	return user, nil
}

// UpdateProfile applies partial profile changes.
func (s *userService) UpdateProfile(ctx context.Context, userID string, input *usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user profile")
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to save user profile")
	}

	return user, nil
}

// RegisterFCMToken stores the device push token on the user document.
func (s *userService) RegisterFCMToken(ctx context.Context, userID, token string) error {
	if err := s.userRepo.UpdateFCMToken(ctx, userID, token); err != nil {
		return errors.Wrap(err, "failed to register FCM token")
	}

	return nil
}
