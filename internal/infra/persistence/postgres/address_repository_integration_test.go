package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/repository"
	"shopfront/internal/infra/persistence/model"
	"shopfront/internal/observe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newIntegrationRepo connects to the database named by TEST_POSTGRES_DSN and
// migrates the address table. Tests are skipped when the variable is unset.
func newIntegrationRepo(t *testing.T) repository.AddressRepository {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set; skipping store integration tests")
	}

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.UserAddressModel{}))

	return NewAddressRepository(db, observe.NewHub())
}

// newIntegrationUser returns a fresh user id and registers row cleanup.
func newIntegrationUser(t *testing.T, repo repository.AddressRepository) string {
	t.Helper()

	userID := "it-user-" + uuid.NewString()
	t.Cleanup(func() {
		_ = repo.DeleteAllByUser(context.Background(), userID)
	})

	return userID
}

func seedAddress(t *testing.T, repo repository.AddressRepository, userID, name string, timestamp time.Time) *entity.Address {
	t.Helper()

	address := &entity.Address{
		UserID:       userID,
		Name:         name,
		AddressLine1: name + " Street 1",
		City:         "Springfield",
		ZipCode:      "10001",
		Country:      "United States",
		Timestamp:    timestamp,
	}

	id, err := repo.Insert(context.Background(), address)
	require.NoError(t, err)
	require.NotZero(t, id)

	return address
}

// defaultCount tallies rows flagged as default in a listing.
func defaultCount(addresses []*entity.Address) int {
	count := 0
	for _, address := range addresses {
		if address.IsDefault {
			count++
		}
	}

	return count
}

func TestAddressRepository_ListByUser_DefaultFirstThenNewest(t *testing.T) {
	repo := newIntegrationRepo(t)
	userID := newIntegrationUser(t, repo)
	ctx := context.Background()
	base := time.Now().Truncate(time.Microsecond)

	oldest := seedAddress(t, repo, userID, "Oldest", base.Add(-3*time.Hour))
	middle := seedAddress(t, repo, userID, "Middle", base.Add(-2*time.Hour))
	newest := seedAddress(t, repo, userID, "Newest", base.Add(-1*time.Hour))

	// The default leads even when it is the oldest row.
	require.NoError(t, repo.SetAsDefault(ctx, userID, oldest.ID))

	addresses, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, addresses, 3)

	assert.Equal(t, oldest.ID, addresses[0].ID)
	assert.True(t, addresses[0].IsDefault)
	assert.Equal(t, newest.ID, addresses[1].ID)
	assert.Equal(t, middle.ID, addresses[2].ID)
}

func TestAddressRepository_SetAsDefault_SingleDefaultAndIdempotent(t *testing.T) {
	repo := newIntegrationRepo(t)
	userID := newIntegrationUser(t, repo)
	ctx := context.Background()
	base := time.Now().Truncate(time.Microsecond)

	first := seedAddress(t, repo, userID, "First", base.Add(-2*time.Hour))
	second := seedAddress(t, repo, userID, "Second", base.Add(-1*time.Hour))

	require.NoError(t, repo.SetAsDefault(ctx, userID, first.ID))
	require.NoError(t, repo.SetAsDefault(ctx, userID, second.ID))
	require.NoError(t, repo.SetAsDefault(ctx, userID, second.ID))

	addresses, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, defaultCount(addresses))

	current, err := repo.FindDefault(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
}

func TestAddressRepository_SetAsDefault_UnknownAddress(t *testing.T) {
	repo := newIntegrationRepo(t)
	userID := newIntegrationUser(t, repo)

	err := repo.SetAsDefault(context.Background(), userID, 987654321)
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)
}

func TestAddressRepository_Delete_PromotesMostRecentRemaining(t *testing.T) {
	repo := newIntegrationRepo(t)
	userID := newIntegrationUser(t, repo)
	ctx := context.Background()
	base := time.Now().Truncate(time.Microsecond)

	oldest := seedAddress(t, repo, userID, "Oldest", base.Add(-3*time.Hour))
	seedAddress(t, repo, userID, "Middle", base.Add(-2*time.Hour))
	newest := seedAddress(t, repo, userID, "Newest", base.Add(-1*time.Hour))

	require.NoError(t, repo.SetAsDefault(ctx, userID, oldest.ID))
	require.NoError(t, repo.Delete(ctx, &entity.Address{ID: oldest.ID, UserID: userID}))

	current, err := repo.FindDefault(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, current.ID)

	addresses, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, defaultCount(addresses))
}

func TestAddressRepository_Delete_NonDefaultKeepsDefault(t *testing.T) {
	repo := newIntegrationRepo(t)
	userID := newIntegrationUser(t, repo)
	ctx := context.Background()
	base := time.Now().Truncate(time.Microsecond)

	keeper := seedAddress(t, repo, userID, "Keeper", base.Add(-2*time.Hour))
	extra := seedAddress(t, repo, userID, "Extra", base.Add(-1*time.Hour))

	require.NoError(t, repo.SetAsDefault(ctx, userID, keeper.ID))
	require.NoError(t, repo.Delete(ctx, &entity.Address{ID: extra.ID, UserID: userID}))

	current, err := repo.FindDefault(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, keeper.ID, current.ID)
}

func TestAddressRepository_Delete_LastAddressLeavesNoDefault(t *testing.T) {
	repo := newIntegrationRepo(t)
	userID := newIntegrationUser(t, repo)
	ctx := context.Background()

	only := seedAddress(t, repo, userID, "Only", time.Now().Truncate(time.Microsecond))
	require.NoError(t, repo.SetAsDefault(ctx, userID, only.ID))
	require.NoError(t, repo.Delete(ctx, &entity.Address{ID: only.ID, UserID: userID}))

	_, err := repo.FindDefault(ctx, userID)
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)

	count, err := repo.Count(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAddressRepository_AddDefaultSwitchEndToEnd(t *testing.T) {
	repo := newIntegrationRepo(t)
	userID := newIntegrationUser(t, repo)
	ctx := context.Background()
	base := time.Now().Truncate(time.Microsecond)

	home := seedAddress(t, repo, userID, "Home", base.Add(-2*time.Hour))
	require.NoError(t, repo.SetAsDefault(ctx, userID, home.ID))

	work := seedAddress(t, repo, userID, "Work", base.Add(-1*time.Hour))

	addresses, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, home.ID, addresses[0].ID)

	require.NoError(t, repo.SetAsDefault(ctx, userID, work.ID))

	addresses, err = repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, work.ID, addresses[0].ID)
	assert.True(t, addresses[0].IsDefault)
	assert.False(t, addresses[1].IsDefault)
	assert.Equal(t, 1, defaultCount(addresses))
}

func TestAddressRepository_FindersAndClear(t *testing.T) {
	repo := newIntegrationRepo(t)
	userID := newIntegrationUser(t, repo)
	ctx := context.Background()
	base := time.Now().Truncate(time.Microsecond)

	older := seedAddress(t, repo, userID, "Older", base.Add(-2*time.Hour))
	newer := seedAddress(t, repo, userID, "Newer", base.Add(-1*time.Hour))

	older.PlaceID = "place-older"
	require.NoError(t, repo.Update(ctx, older))

	found, err := repo.FindByID(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Newer", found.Name)

	// Both rows share the seeded zip code; the newest one wins.
	byZip, err := repo.FindByZipCode(ctx, userID, "10001")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, byZip.ID)

	byPlace, err := repo.FindByPlaceID(ctx, userID, "place-older")
	require.NoError(t, err)
	assert.Equal(t, older.ID, byPlace.ID)

	_, err = repo.FindByZipCode(ctx, userID, "99999")
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)

	_, err = repo.FindByPlaceID(ctx, userID, "place-unknown")
	assert.ErrorIs(t, err, repository.ErrAddressNotFound)

	require.NoError(t, repo.DeleteAllByUser(ctx, userID))

	count, err := repo.Count(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
