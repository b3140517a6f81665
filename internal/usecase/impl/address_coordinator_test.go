package impl

import (
	"context"
	"testing"
	"time"

	"shopfront/config"
	"shopfront/internal/domain/entity"
	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/domain/resource"
	"shopfront/internal/errors"
	mockUsecase "shopfront/internal/mocks/usecase"
	"shopfront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCoordinatorTestConfig() *config.Config {
	return &config.Config{
		Address: &config.AddressConfig{
			SearchDebounce: 10 * time.Millisecond,
			MinQueryLength: 3,
		},
	}
}

// newTestCoordinator builds a coordinator over a mocked address usecase whose
// store watch is fed by the returned channel.
func newTestCoordinator(
	t *testing.T,
	cfg *config.Config,
) (usecase.AddressCoordinator, *mockUsecase.MockAddressUsecase, chan []*entity.Address) {
	mockAddress := mockUsecase.NewMockAddressUsecase(t)
	updates := make(chan []*entity.Address, 1)

	mockAddress.On("WatchAddresses", mock.Anything, "user-1").
		Return((<-chan []*entity.Address)(updates), func() {}, nil)

	factory := NewAddressCoordinatorFactory(mockAddress, cfg, newDiscardLogger())
	coordinator, err := factory(context.Background(), "user-1")
	require.NoError(t, err)
	t.Cleanup(coordinator.Close)

	return coordinator, mockAddress, updates
}

func predictionPipeline(results ...resource.Resource[[]*entity.PlacePrediction]) <-chan resource.Resource[[]*entity.PlacePrediction] {
	ch := make(chan resource.Resource[[]*entity.PlacePrediction], len(results))
	for _, res := range results {
		ch <- res
	}
	close(ch)

	return ch
}

func TestAddressCoordinator_WatchFeedsAddresses(t *testing.T) {
	coordinator, _, updates := newTestCoordinator(t, newCoordinatorTestConfig())

	addresses := []*entity.Address{{ID: 1, UserID: "user-1", Name: "Home", IsDefault: true}}
	updates <- addresses

	assert.Eventually(t, func() bool {
		got, ok := coordinator.Addresses().Get()
		return ok && len(got) == 1 && got[0].ID == 1
	}, time.Second, 5*time.Millisecond)
}

func TestAddressCoordinator_ShortQueryNeverDispatches(t *testing.T) {
	coordinator, _, _ := newTestCoordinator(t, newCoordinatorTestConfig())

	coordinator.SearchPlaces("ab")

	res, ok := coordinator.Predictions().Get()
	require.True(t, ok)
	require.True(t, res.IsSuccess())
	assert.Empty(t, res.Value())

	// The debounce interval passes without any PlacePredictions call; the
	// mock would fail the test on an unexpected invocation.
	time.Sleep(30 * time.Millisecond)
}

func TestAddressCoordinator_DebounceDispatchesLatestQueryOnce(t *testing.T) {
	coordinator, mockAddress, _ := newTestCoordinator(t, newCoordinatorTestConfig())

	predictions := []*entity.PlacePrediction{{PlaceID: "place-1", Description: "Coffee Beans Ltd"}}
	mockAddress.On("PlacePredictions", mock.Anything, "coffee beans").
		Return(predictionPipeline(
			resource.Loading[[]*entity.PlacePrediction](),
			resource.Success(predictions),
		)).
		Once()

	coordinator.SearchPlaces("coffee")
	coordinator.SearchPlaces("coffee b")
	coordinator.SearchPlaces("coffee beans")

	assert.Eventually(t, func() bool {
		res, ok := coordinator.Predictions().Get()
		return ok && res.IsSuccess() && len(res.Value()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestAddressCoordinator_SupersededResultIsDropped(t *testing.T) {
	coordinator, mockAddress, _ := newTestCoordinator(t, newCoordinatorTestConfig())

	stale := make(chan resource.Resource[[]*entity.PlacePrediction], 2)
	dispatched := make(chan struct{})
	mockAddress.On("PlacePredictions", mock.Anything, "coffee").
		Run(func(_ mock.Arguments) { close(dispatched) }).
		Return((<-chan resource.Resource[[]*entity.PlacePrediction])(stale)).
		Once()

	coordinator.SearchPlaces("coffee")
	select {
	case <-dispatched:
	case <-time.After(time.Second):
		t.Fatal("debounced search never dispatched")
	}

	// A newer sample supersedes the in-flight search before its result lands.
	coordinator.SearchPlaces("x")

	stale <- resource.Success([]*entity.PlacePrediction{{PlaceID: "stale"}})
	close(stale)

	time.Sleep(30 * time.Millisecond)
	res, ok := coordinator.Predictions().Get()
	require.True(t, ok)
	require.True(t, res.IsSuccess())
	assert.Empty(t, res.Value(), "stale result must not overwrite the newer empty publication")
}

func TestAddressCoordinator_SelectPrediction(t *testing.T) {
	coordinator, mockAddress, _ := newTestCoordinator(t, newCoordinatorTestConfig())

	location := entity.LatLng{Latitude: 40.7128, Longitude: -74.006}
	details := &entity.PlaceDetails{
		PlaceID:          "place-1",
		Name:             "Coffee Corner",
		FormattedAddress: "123 Main St, New York, NY 10001, USA",
		Location:         location,
	}
	draft := &entity.Address{
		AddressLine1: "123 Main St",
		City:         "New York",
		State:        "NY",
		ZipCode:      "10001",
		Country:      "United States",
		Latitude:     location.Latitude,
		Longitude:    location.Longitude,
	}

	ctx := context.Background()
	mockAddress.On("PlaceDetails", ctx, "place-1").Return(resource.Success(details))
	mockAddress.On("AddressFromLocation", ctx, location).Return(resource.Success(draft))

	coordinator.SelectPrediction(ctx, "place-1")

	selected, ok := coordinator.SelectedAddress().Get()
	require.True(t, ok)
	assert.Equal(t, "place-1", selected.PlaceID)
	assert.Equal(t, details.FormattedAddress, selected.FormattedAddress)
	assert.Equal(t, "123 Main St", selected.AddressLine1)

	loc, ok := coordinator.SelectedLocation().Get()
	require.True(t, ok)
	assert.Equal(t, location, loc)

	first := <-coordinator.Status()
	assert.True(t, first.IsLoading())
	second := <-coordinator.Status()
	require.True(t, second.IsSuccess())
	assert.Equal(t, "prediction_selected", second.Value())
}

func TestAddressCoordinator_SelectPrediction_DetailsErrorStopsChain(t *testing.T) {
	coordinator, mockAddress, _ := newTestCoordinator(t, newCoordinatorTestConfig())

	ctx := context.Background()
	mockAddress.On("PlaceDetails", ctx, "place-404").
		Return(resource.Error[*entity.PlaceDetails]("This place could not be found", domainerrors.ErrGeocodeNoResults))

	coordinator.SelectPrediction(ctx, "place-404")

	_, ok := coordinator.SelectedAddress().Get()
	assert.False(t, ok, "a failing chain must not publish a partial draft")

	first := <-coordinator.Status()
	assert.True(t, first.IsLoading())
	second := <-coordinator.Status()
	require.True(t, second.IsError())
	assert.True(t, errors.Is(second.Cause(), domainerrors.ErrGeocodeNoResults))
}

func TestAddressCoordinator_SelectAddress(t *testing.T) {
	coordinator, _, _ := newTestCoordinator(t, newCoordinatorTestConfig())

	address := &entity.Address{ID: 4, UserID: "user-1", Latitude: 40.7, Longitude: -74.0}
	coordinator.SelectAddress(address)

	selected, ok := coordinator.SelectedAddress().Get()
	require.True(t, ok)
	assert.Equal(t, address, selected)

	loc, ok := coordinator.SelectedLocation().Get()
	require.True(t, ok)
	assert.Equal(t, entity.LatLng{Latitude: 40.7, Longitude: -74.0}, loc)
}

func TestAddressCoordinator_CloseIsIdempotent(t *testing.T) {
	coordinator, _, _ := newTestCoordinator(t, newCoordinatorTestConfig())

	coordinator.Close()
	coordinator.Close()

	_, open := <-coordinator.Status()
	assert.False(t, open)

	// Searching after close is a no-op; an unexpected dispatch would fail
	// the mock's expectations.
	coordinator.SearchPlaces("coffee beans")
	time.Sleep(30 * time.Millisecond)
}
