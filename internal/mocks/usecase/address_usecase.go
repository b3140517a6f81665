// Package usecase contains testify mocks for the use case interfaces.
package usecase

import (
	"context"
	"testing"

	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/resource"

	"github.com/stretchr/testify/mock"
)

// MockAddressUsecase is a mock implementation of usecase.AddressUsecase.
type MockAddressUsecase struct {
	mock.Mock
}

// NewMockAddressUsecase creates a mock whose expectations are asserted on cleanup.
func NewMockAddressUsecase(t *testing.T) *MockAddressUsecase {
	m := &MockAddressUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAddressUsecase) ListAddresses(ctx context.Context, userID string) resource.Resource[[]*entity.Address] {
	args := m.Called(ctx, userID)

	return args.Get(0).(resource.Resource[[]*entity.Address])
}

func (m *MockAddressUsecase) AddAddress(ctx context.Context, address *entity.Address) resource.Resource[int64] {
	args := m.Called(ctx, address)

	return args.Get(0).(resource.Resource[int64])
}

func (m *MockAddressUsecase) UpdateAddress(ctx context.Context, address *entity.Address) resource.Resource[resource.Unit] {
	args := m.Called(ctx, address)

	return args.Get(0).(resource.Resource[resource.Unit])
}

func (m *MockAddressUsecase) DeleteAddress(ctx context.Context, address *entity.Address) resource.Resource[resource.Unit] {
	args := m.Called(ctx, address)

	return args.Get(0).(resource.Resource[resource.Unit])
}

func (m *MockAddressUsecase) ClearAddresses(ctx context.Context, userID string) resource.Resource[resource.Unit] {
	args := m.Called(ctx, userID)

	return args.Get(0).(resource.Resource[resource.Unit])
}

func (m *MockAddressUsecase) AddressByZipCode(ctx context.Context, userID, zipCode string) resource.Resource[*entity.Address] {
	args := m.Called(ctx, userID, zipCode)

	return args.Get(0).(resource.Resource[*entity.Address])
}

func (m *MockAddressUsecase) SetDefaultAddress(ctx context.Context, userID string, addressID int64) resource.Resource[resource.Unit] {
	args := m.Called(ctx, userID, addressID)

	return args.Get(0).(resource.Resource[resource.Unit])
}

func (m *MockAddressUsecase) DefaultAddress(ctx context.Context, userID string) resource.Resource[*entity.Address] {
	args := m.Called(ctx, userID)

	return args.Get(0).(resource.Resource[*entity.Address])
}

func (m *MockAddressUsecase) AddressFromLocation(ctx context.Context, location entity.LatLng) resource.Resource[*entity.Address] {
	args := m.Called(ctx, location)

	return args.Get(0).(resource.Resource[*entity.Address])
}

func (m *MockAddressUsecase) LocationFromAddress(ctx context.Context, text string) resource.Resource[entity.LatLng] {
	args := m.Called(ctx, text)

	return args.Get(0).(resource.Resource[entity.LatLng])
}

func (m *MockAddressUsecase) PlacePredictions(ctx context.Context, query string) <-chan resource.Resource[[]*entity.PlacePrediction] {
	args := m.Called(ctx, query)

	return args.Get(0).(<-chan resource.Resource[[]*entity.PlacePrediction])
}

func (m *MockAddressUsecase) PlaceDetails(ctx context.Context, placeID string) resource.Resource[*entity.PlaceDetails] {
	args := m.Called(ctx, placeID)

	return args.Get(0).(resource.Resource[*entity.PlaceDetails])
}

func (m *MockAddressUsecase) NearestSavedAddress(ctx context.Context, userID string, location entity.LatLng) resource.Resource[*entity.Address] {
	args := m.Called(ctx, userID, location)

	return args.Get(0).(resource.Resource[*entity.Address])
}

func (m *MockAddressUsecase) WatchAddresses(ctx context.Context, userID string) (<-chan []*entity.Address, func(), error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).(<-chan []*entity.Address), args.Get(1).(func()), args.Error(2)
}

func (m *MockAddressUsecase) WatchDefault(ctx context.Context, userID string) (<-chan *entity.Address, func(), error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).(<-chan *entity.Address), args.Get(1).(func()), args.Error(2)
}
