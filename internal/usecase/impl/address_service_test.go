package impl

import (
	"context"
	"testing"
	"time"

	"shopfront/config"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/repository"
	"shopfront/internal/domain/service"
	"shopfront/internal/errors"
	mockRepo "shopfront/internal/mocks/repository"
	mockService "shopfront/internal/mocks/service"
	"shopfront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAddressTestService(
	t *testing.T,
	cfg *config.Config,
) (usecase.AddressUsecase, *mockRepo.MockAddressRepository, *mockService.MockGeocodingService, *mockService.MockPlacesService) {
	mockAddressRepo := mockRepo.NewMockAddressRepository(t)
	mockGeocoder := mockService.NewMockGeocodingService(t)
	mockPlaces := mockService.NewMockPlacesService(t)

	svc := NewAddressService(
		newStubTxManager(mockAddressRepo),
		mockAddressRepo,
		mockGeocoder,
		mockPlaces,
		cfg,
		newDiscardLogger(),
	)

	return svc, mockAddressRepo, mockGeocoder, mockPlaces
}

func TestAddressService_ListAddresses(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	expected := []*entity.Address{
		{ID: 2, UserID: "user-1", Name: "Work", IsDefault: true},
		{ID: 1, UserID: "user-1", Name: "Home"},
	}

	mockAddressRepo.On("ListByUser", ctx, "user-1").Return(expected, nil)

	res := svc.ListAddresses(ctx, "user-1")
	require.True(t, res.IsSuccess())
	assert.Equal(t, expected, res.Value())
}

func TestAddressService_AddAddress_FirstBecomesDefault(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	address := &entity.Address{UserID: "user-1", Name: "Home", AddressLine1: "123 Main St"}

	mockAddressRepo.On("Count", ctx, "user-1").Return(int64(0), nil)
	mockAddressRepo.On("Insert", ctx, address).Return(int64(7), nil)
	mockAddressRepo.On("SetAsDefault", ctx, "user-1", int64(7)).Return(nil)

	res := svc.AddAddress(ctx, address)
	require.True(t, res.IsSuccess())
	assert.Equal(t, int64(7), res.Value())
	assert.False(t, address.Timestamp.IsZero())
}

func TestAddressService_AddAddress_NotFirstKeepsDefault(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	address := &entity.Address{UserID: "user-1", Name: "Work", Timestamp: time.Now()}

	mockAddressRepo.On("Count", ctx, "user-1").Return(int64(2), nil)
	mockAddressRepo.On("Insert", ctx, address).Return(int64(9), nil)

	res := svc.AddAddress(ctx, address)
	require.True(t, res.IsSuccess())
	assert.Equal(t, int64(9), res.Value())
	mockAddressRepo.AssertNotCalled(t, "SetAsDefault", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddressService_AddAddress_LimitReached(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	address := &entity.Address{UserID: "user-1", Name: "One Too Many"}

	mockAddressRepo.On("Count", ctx, "user-1").Return(int64(5), nil)

	res := svc.AddAddress(ctx, address)
	require.True(t, res.IsError())
	assert.Equal(t, "You can store at most 5 addresses", res.Message())
	assert.True(t, errors.Is(res.Cause(), domainerrors.ErrAddressLimitReached))
	mockAddressRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAddressService_AddAddress_CapConfigurable(t *testing.T) {
	cfg := &config.Config{Address: &config.AddressConfig{MaxPerUser: 2}}
	svc, mockAddressRepo, _, _ := newAddressTestService(t, cfg)

	ctx := context.Background()
	mockAddressRepo.On("Count", ctx, "user-1").Return(int64(2), nil)

	res := svc.AddAddress(ctx, &entity.Address{UserID: "user-1"})
	require.True(t, res.IsError())
	assert.True(t, errors.Is(res.Cause(), domainerrors.ErrAddressLimitReached))
}

func TestAddressService_AddAddress_DuplicatePlace(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	address := &entity.Address{UserID: "user-1", Name: "Cafe", PlaceID: "place-abc"}

	mockAddressRepo.On("Count", ctx, "user-1").Return(int64(2), nil)
	mockAddressRepo.On("FindByPlaceID", ctx, "user-1", "place-abc").
		Return(&entity.Address{ID: 4, UserID: "user-1", PlaceID: "place-abc"}, nil)

	res := svc.AddAddress(ctx, address)
	require.True(t, res.IsError())
	assert.Equal(t, "You already saved this address", res.Message())
	assert.True(t, errors.Is(res.Cause(), domainerrors.ErrAddressDuplicate))
	mockAddressRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAddressService_AddAddress_NewPlaceIsNotDuplicate(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	address := &entity.Address{UserID: "user-1", Name: "Cafe", PlaceID: "place-new"}

	mockAddressRepo.On("Count", ctx, "user-1").Return(int64(2), nil)
	mockAddressRepo.On("FindByPlaceID", ctx, "user-1", "place-new").
		Return(nil, repository.ErrAddressNotFound)
	mockAddressRepo.On("Insert", ctx, address).Return(int64(11), nil)

	res := svc.AddAddress(ctx, address)
	require.True(t, res.IsSuccess())
	assert.Equal(t, int64(11), res.Value())
}

func TestAddressService_UpdateAddress_NotFound(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	address := &entity.Address{ID: 42, UserID: "user-1", Name: "Gone"}

	mockAddressRepo.On("FindByID", ctx, int64(42)).Return(nil, repository.ErrAddressNotFound)

	res := svc.UpdateAddress(ctx, address)
	require.True(t, res.IsError())
	assert.True(t, errors.Is(res.Cause(), domainerrors.ErrAddressNotFound))
	mockAddressRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddressService_UpdateAddress_PreservesDefaultAndTimestamp(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	existing := &entity.Address{ID: 6, UserID: "user-1", Name: "Home", IsDefault: true, Timestamp: created}
	edited := &entity.Address{ID: 6, UserID: "user-1", Name: "Home Sweet Home", Timestamp: time.Now()}

	mockAddressRepo.On("FindByID", ctx, int64(6)).Return(existing, nil)
	mockAddressRepo.On("Update", ctx, mock.MatchedBy(func(a *entity.Address) bool {
		return a.ID == 6 && a.IsDefault && a.Timestamp.Equal(created) && a.Name == "Home Sweet Home"
	})).Return(nil)

	res := svc.UpdateAddress(ctx, edited)
	require.True(t, res.IsSuccess())
}

func TestAddressService_UpdateAddress_WrongOwner(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	existing := &entity.Address{ID: 6, UserID: "user-2", Name: "Home"}

	mockAddressRepo.On("FindByID", ctx, int64(6)).Return(existing, nil)

	res := svc.UpdateAddress(ctx, &entity.Address{ID: 6, UserID: "user-1", Name: "Hijack"})
	require.True(t, res.IsError())
	assert.True(t, errors.Is(res.Cause(), domainerrors.ErrAddressNotFound))
	mockAddressRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddressService_DeleteAddress(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	address := &entity.Address{ID: 3, UserID: "user-1"}

	mockAddressRepo.On("Delete", ctx, address).Return(nil)

	res := svc.DeleteAddress(ctx, address)
	require.True(t, res.IsSuccess())
}

func TestAddressService_ClearAddresses(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	mockAddressRepo.On("DeleteAllByUser", ctx, "user-1").Return(nil)

	res := svc.ClearAddresses(ctx, "user-1")
	require.True(t, res.IsSuccess())
}

func TestAddressService_AddressByZipCode(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	expected := &entity.Address{ID: 2, UserID: "user-1", ZipCode: "10001"}

	mockAddressRepo.On("FindByZipCode", ctx, "user-1", "10001").Return(expected, nil)

	res := svc.AddressByZipCode(ctx, "user-1", "10001")
	require.True(t, res.IsSuccess())
	assert.Equal(t, expected, res.Value())
}

func TestAddressService_AddressByZipCode_NotFound(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	mockAddressRepo.On("FindByZipCode", ctx, "user-1", "99999").
		Return(nil, repository.ErrAddressNotFound)

	res := svc.AddressByZipCode(ctx, "user-1", "99999")
	require.True(t, res.IsError())
	assert.True(t, errors.Is(res.Cause(), domainerrors.ErrAddressNotFound))
}

func TestAddressService_SetDefaultAddress_Idempotent(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	mockAddressRepo.On("SetAsDefault", ctx, "user-1", int64(3)).Return(nil).Twice()

	first := svc.SetDefaultAddress(ctx, "user-1", 3)
	second := svc.SetDefaultAddress(ctx, "user-1", 3)
	require.True(t, first.IsSuccess())
	require.True(t, second.IsSuccess())
}

func TestAddressService_SetDefaultAddress_NotFound(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	mockAddressRepo.On("SetAsDefault", ctx, "user-1", int64(404)).Return(repository.ErrAddressNotFound)

	res := svc.SetDefaultAddress(ctx, "user-1", 404)
	require.True(t, res.IsError())
	assert.True(t, errors.Is(res.Cause(), domainerrors.ErrAddressNotFound))
}

func TestAddressService_DefaultAddress_NoneSet(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	mockAddressRepo.On("FindDefault", ctx, "user-1").Return(nil, repository.ErrAddressNotFound)

	res := svc.DefaultAddress(ctx, "user-1")
	require.True(t, res.IsError())
	assert.Equal(t, "No default address is set", res.Message())
	assert.True(t, errors.Is(res.Cause(), domainerrors.ErrNoDefaultAddress))
}

func TestAddressService_AddressFromLocation_NoResults(t *testing.T) {
	svc, _, mockGeocoder, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	location := entity.LatLng{Latitude: 40.7, Longitude: -74.0}

	mockGeocoder.On("ReverseGeocode", ctx, location).Return(nil, service.ErrNoResults)

	res := svc.AddressFromLocation(ctx, location)
	require.True(t, res.IsError())
	assert.Equal(t, "No address found for this location", res.Message())
	assert.True(t, errors.Is(res.Cause(), domainerrors.ErrGeocodeNoResults))
}

func TestAddressService_AddressFromLocation_Unavailable(t *testing.T) {
	svc, _, mockGeocoder, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	location := entity.LatLng{Latitude: 40.7, Longitude: -74.0}
	upstream := errors.New("connection refused")

	mockGeocoder.On("ReverseGeocode", ctx, location).Return(nil, upstream)

	res := svc.AddressFromLocation(ctx, location)
	require.True(t, res.IsError())
	assert.True(t, errors.Is(res.Cause(), domainerrors.ErrGeocodeUnavailable))
	assert.True(t, errors.Is(res.Cause(), upstream))
}

func TestAddressService_AddressFromLocation_Draft(t *testing.T) {
	svc, _, mockGeocoder, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	location := entity.LatLng{Latitude: 40.7128, Longitude: -74.006}
	draft := &entity.Address{
		AddressLine1: "123 Main St",
		City:         "New York",
		State:        "NY",
		ZipCode:      "10001",
		Country:      "United States",
		Latitude:     location.Latitude,
		Longitude:    location.Longitude,
	}

	mockGeocoder.On("ReverseGeocode", ctx, location).Return(draft, nil)

	res := svc.AddressFromLocation(ctx, location)
	require.True(t, res.IsSuccess())
	assert.Equal(t, draft, res.Value())
	assert.Zero(t, res.Value().ID)
	assert.Empty(t, res.Value().UserID)
}

func TestAddressService_LocationFromAddress(t *testing.T) {
	svc, _, mockGeocoder, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	expected := entity.LatLng{Latitude: 40.7, Longitude: -74.0}

	mockGeocoder.On("Geocode", ctx, "123 Main St, New York").Return(expected, nil)

	res := svc.LocationFromAddress(ctx, "123 Main St, New York")
	require.True(t, res.IsSuccess())
	assert.Equal(t, expected, res.Value())
}

func TestAddressService_PlacePredictions_PipelineShape(t *testing.T) {
	svc, _, _, mockPlaces := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	predictions := []*entity.PlacePrediction{
		{PlaceID: "place-1", Description: "Coffee Corner, Main St"},
	}

	mockPlaces.On("AutocompletePredictions", ctx, "coffee").Return(predictions, nil)

	out := svc.PlacePredictions(ctx, "coffee")

	first := <-out
	assert.True(t, first.IsLoading())

	second := <-out
	require.True(t, second.IsSuccess())
	assert.Equal(t, predictions, second.Value())

	_, open := <-out
	assert.False(t, open)
}

func TestAddressService_PlacePredictions_Error(t *testing.T) {
	svc, _, _, mockPlaces := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	mockPlaces.On("AutocompletePredictions", ctx, "coffee").Return(nil, errors.New("quota exceeded"))

	out := svc.PlacePredictions(ctx, "coffee")

	first := <-out
	assert.True(t, first.IsLoading())

	second := <-out
	require.True(t, second.IsError())
	assert.Equal(t, "Could not search for places", second.Message())
	assert.True(t, errors.Is(second.Cause(), domainerrors.ErrPlacesUnavailable))

	_, open := <-out
	assert.False(t, open)
}

func TestAddressService_PlaceDetails_NotFound(t *testing.T) {
	svc, _, _, mockPlaces := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	mockPlaces.On("PlaceDetails", ctx, "place-404").Return(nil, service.ErrNoResults)

	res := svc.PlaceDetails(ctx, "place-404")
	require.True(t, res.IsError())
	assert.True(t, errors.Is(res.Cause(), domainerrors.ErrGeocodeNoResults))
}

func TestAddressService_NearestSavedAddress(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	near := &entity.Address{ID: 1, UserID: "user-1", Latitude: 40.71, Longitude: -74.0}
	far := &entity.Address{ID: 2, UserID: "user-1", Latitude: 34.05, Longitude: -118.24}
	unresolved := &entity.Address{ID: 3, UserID: "user-1"}

	mockAddressRepo.On("ListByUser", ctx, "user-1").
		Return([]*entity.Address{far, unresolved, near}, nil)

	res := svc.NearestSavedAddress(ctx, "user-1", entity.LatLng{Latitude: 40.7128, Longitude: -74.006})
	require.True(t, res.IsSuccess())
	assert.Equal(t, near, res.Value())
}

func TestAddressService_NearestSavedAddress_NoCoordinates(t *testing.T) {
	svc, mockAddressRepo, _, _ := newAddressTestService(t, &config.Config{})

	ctx := context.Background()
	mockAddressRepo.On("ListByUser", ctx, "user-1").
		Return([]*entity.Address{{ID: 1, UserID: "user-1"}}, nil)

	res := svc.NearestSavedAddress(ctx, "user-1", entity.LatLng{Latitude: 40.7, Longitude: -74.0})
	require.True(t, res.IsError())
	assert.Equal(t, "None of your addresses has a location", res.Message())
}
