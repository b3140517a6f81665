package firestore

import (
	"context"
	"time"

	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/repository"

	fs "cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// userDoc is the Firestore document shape for the 'users' collection.
// The document id is the auth provider uid.
type userDoc struct {
	FirstName       string    `firestore:"first_name"`
	LastName        string    `firestore:"last_name"`
	Email           string    `firestore:"email"`
	Phone           string    `firestore:"phone"`
	UserType        string    `firestore:"user_type"`
	ProfileImageURL string    `firestore:"profile_image_url"`
	FCMToken        string    `firestore:"fcm_token"`
	CreatedAt       time.Time `firestore:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	client *fs.Client
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(client *fs.Client) repository.UserRepository {
	return &userRepository{
		client: client,
	}
}

// GetUser retrieves a user document by the auth provider uid.
func (repo *userRepository) GetUser(ctx context.Context, id string) (*entity.User, error) {
	snap, err := repo.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to get user document")
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode user document")
	}

	return toUserDomain(snap.Ref.ID, &doc), nil
}

// SaveUser writes the full user document, creating it when absent.
func (repo *userRepository) SaveUser(ctx context.Context, user *entity.User) error {
	if _, err := repo.client.Collection(usersCollection).
		Doc(user.ID).
		Set(ctx, fromUserDomain(user)); err != nil {
		return errors.Wrap(err, "failed to save user document")
	}

	return nil
}

// UpdateFCMToken updates only the push token field of a user document.
func (repo *userRepository) UpdateFCMToken(ctx context.Context, userID, token string) error {
	_, err := repo.client.Collection(usersCollection).Doc(userID).Update(ctx, []fs.Update{
		{Path: "fcm_token", Value: token},
		{Path: "updated_at", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to update FCM token")
	}

	return nil
}

// --- Mapper Functions ---

func toUserDomain(id string, data *userDoc) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:              id,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Email:           data.Email,
		Phone:           data.Phone,
		UserType:        data.UserType,
		ProfileImageURL: data.ProfileImageURL,
		FCMToken:        data.FCMToken,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *userDoc {
	if data == nil {
		return nil
	}

	return &userDoc{
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Email:           data.Email,
		Phone:           data.Phone,
		UserType:        data.UserType,
		ProfileImageURL: data.ProfileImageURL,
		FCMToken:        data.FCMToken,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
