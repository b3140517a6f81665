// Package repository contains testify mocks for the repository interfaces.
package repository

import (
	"context"
	"testing"

	"shopfront/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockAddressRepository is a mock implementation of repository.AddressRepository.
type MockAddressRepository struct {
	mock.Mock
}

// NewMockAddressRepository creates a mock whose expectations are asserted on cleanup.
func NewMockAddressRepository(t *testing.T) *MockAddressRepository {
	m := &MockAddressRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAddressRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id int64) (*entity.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Address), args.Error(1)
}

func (m *MockAddressRepository) FindDefault(ctx context.Context, userID string) (*entity.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Address), args.Error(1)
}

func (m *MockAddressRepository) Count(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAddressRepository) Insert(ctx context.Context, address *entity.Address) (int64, error) {
	args := m.Called(ctx, address)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAddressRepository) Update(ctx context.Context, address *entity.Address) error {
	args := m.Called(ctx, address)

	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, address *entity.Address) error {
	args := m.Called(ctx, address)

	return args.Error(0)
}

func (m *MockAddressRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *MockAddressRepository) FindByZipCode(ctx context.Context, userID, zipCode string) (*entity.Address, error) {
	args := m.Called(ctx, userID, zipCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByPlaceID(ctx context.Context, userID, placeID string) (*entity.Address, error) {
	args := m.Called(ctx, userID, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Address), args.Error(1)
}

func (m *MockAddressRepository) SetAsDefault(ctx context.Context, userID string, addressID int64) error {
	args := m.Called(ctx, userID, addressID)

	return args.Error(0)
}

func (m *MockAddressRepository) WatchAddresses(ctx context.Context, userID string) (<-chan []*entity.Address, func(), error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).(<-chan []*entity.Address), args.Get(1).(func()), args.Error(2)
}

func (m *MockAddressRepository) WatchDefault(ctx context.Context, userID string) (<-chan *entity.Address, func(), error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).(<-chan *entity.Address), args.Get(1).(func()), args.Error(2)
}
