package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"
	"shopfront/internal/usecase"

	"github.com/google/uuid"
)

type adminAuthService struct {
	txManager    repository.TransactionManager
	adminRepo    repository.AdminRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAdminAuthService creates a new admin authentication service instance
func NewAdminAuthService(
	txManager repository.TransactionManager,
	adminRepo repository.AdminRepository,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AdminAuthUsecase {
	return &adminAuthService{
		txManager:    txManager,
		adminRepo:    adminRepo,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Login verifies credentials and issues a token pair.
func (s *adminAuthService) Login(ctx context.Context, input *usecase.AdminLoginInput) (*service.TokenPair, error) {
	account, err := s.adminRepo.FindByEmail(ctx, strings.ToLower(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			// Same error as a wrong password so login probing reveals nothing.
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to look up admin account")
	}

	if err := s.hasher.Compare(account.PasswordHash, input.Password); err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	pair, err := s.tokenService.GenerateTokenPair(account.ID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens")
	}

	s.logger.Info("admin logged in", slog.String("admin_id", account.ID.String()))

	return pair, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (s *adminAuthService) Refresh(_ context.Context, refreshToken string) (*service.TokenPair, error) {
	adminID, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	pair, err := s.tokenService.GenerateTokenPair(adminID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens")
	}

	return pair, nil
}

// Register provisions a new admin account.
func (s *adminAuthService) Register(ctx context.Context, input *usecase.RegisterAdminInput) error {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	account := &entity.AdminAccount{
		ID:           uuid.New(),
		Email:        strings.ToLower(input.Email),
		DisplayName:  input.DisplayName,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewAdminRepository().Create(ctx, account)
	})
}
