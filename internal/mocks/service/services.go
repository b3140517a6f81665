// Package service contains testify mocks for the domain service interfaces.
package service

import (
	"context"
	"io"
	"testing"

	"shopfront/internal/domain/entity"
	"shopfront/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockGeocodingService is a mock implementation of service.GeocodingService.
type MockGeocodingService struct {
	mock.Mock
}

// NewMockGeocodingService creates a mock whose expectations are asserted on cleanup.
func NewMockGeocodingService(t *testing.T) *MockGeocodingService {
	m := &MockGeocodingService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockGeocodingService) ReverseGeocode(ctx context.Context, location entity.LatLng) (*entity.Address, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Address), args.Error(1)
}

func (m *MockGeocodingService) Geocode(ctx context.Context, address string) (entity.LatLng, error) {
	args := m.Called(ctx, address)

	return args.Get(0).(entity.LatLng), args.Error(1)
}

// MockPlacesService is a mock implementation of service.PlacesService.
type MockPlacesService struct {
	mock.Mock
}

// NewMockPlacesService creates a mock whose expectations are asserted on cleanup.
func NewMockPlacesService(t *testing.T) *MockPlacesService {
	m := &MockPlacesService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPlacesService) AutocompletePredictions(ctx context.Context, query string) ([]*entity.PlacePrediction, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.PlacePrediction), args.Error(1)
}

func (m *MockPlacesService) PlaceDetails(ctx context.Context, placeID string) (*entity.PlaceDetails, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.PlaceDetails), args.Error(1)
}

// MockNotificationService is a mock implementation of service.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

// NewMockNotificationService creates a mock whose expectations are asserted on cleanup.
func NewMockNotificationService(t *testing.T) *MockNotificationService {
	m := &MockNotificationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationService) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	args := m.Called(ctx, token, title, body, data)

	return args.Error(0)
}

// MockEventPublisher is a mock implementation of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock whose expectations are asserted on cleanup.
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockImageStorage is a mock implementation of service.ImageStorage.
type MockImageStorage struct {
	mock.Mock
}

// NewMockImageStorage creates a mock whose expectations are asserted on cleanup.
func NewMockImageStorage(t *testing.T) *MockImageStorage {
	m := &MockImageStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockImageStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)

	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

// MockQRCodeService is a mock implementation of service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

// NewMockQRCodeService creates a mock whose expectations are asserted on cleanup.
func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GeneratePickupQR(orderID string) ([]byte, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}
