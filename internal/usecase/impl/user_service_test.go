package impl

import (
	"context"
	"testing"

	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/repository"
	mockRepo "shopfront/internal/mocks/repository"
	"shopfront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetProfile_Existing(t *testing.T) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(mockUserRepo)

	ctx := context.Background()
	user := &entity.User{ID: "uid-1", Email: "jo@example.com", FirstName: "Jo"}

	mockUserRepo.On("GetUser", ctx, "uid-1").Return(user, nil)

	got, err := svc.GetProfile(ctx, "uid-1", "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserService_GetProfile_CreatesOnFirstSignIn(t *testing.T) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(mockUserRepo)

	ctx := context.Background()
	mockUserRepo.On("GetUser", ctx, "uid-1").Return(nil, repository.ErrUserNotFound)
	mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user *entity.User) bool {
		return user.ID == "uid-1" &&
			user.Email == "jo@example.com" &&
			user.UserType == entity.UserTypeCustomer
	})).Return(nil)

	got, err := svc.GetProfile(ctx, "uid-1", "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", got.ID)
	assert.Equal(t, entity.UserTypeCustomer, got.UserType)
}

func TestUserService_UpdateProfile_PartialChanges(t *testing.T) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(mockUserRepo)

	ctx := context.Background()
	existing := &entity.User{ID: "uid-1", FirstName: "Jo", LastName: "Smith", Phone: "111"}
	newPhone := "222"

	mockUserRepo.On("GetUser", ctx, "uid-1").Return(existing, nil)
	mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	got, err := svc.UpdateProfile(ctx, "uid-1", &usecase.UpdateProfileInput{Phone: &newPhone})
	require.NoError(t, err)
	assert.Equal(t, "222", got.Phone)
	assert.Equal(t, "Jo", got.FirstName)
	assert.Equal(t, "Smith", got.LastName)
}

func TestUserService_RegisterFCMToken(t *testing.T) {
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	svc := NewUserService(mockUserRepo)

	ctx := context.Background()
	mockUserRepo.On("UpdateFCMToken", ctx, "uid-1", "token-abc").Return(nil)

	require.NoError(t, svc.RegisterFCMToken(ctx, "uid-1", "token-abc"))
}
