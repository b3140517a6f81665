package repository

import (
	"context"
	"testing"

	"shopfront/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock whose expectations are asserted on cleanup.
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) GetUser(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) UpdateFCMToken(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)

	return args.Error(0)
}

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

// NewMockProductRepository creates a mock whose expectations are asserted on cleanup.
func NewMockProductRepository(t *testing.T) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockProductRepository) ListProductsByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockProductRepository) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	args := m.Called(ctx, id, delta)

	return args.Error(0)
}

// MockCartRepository is a mock implementation of repository.CartRepository.
type MockCartRepository struct {
	mock.Mock
}

// NewMockCartRepository creates a mock whose expectations are asserted on cleanup.
func NewMockCartRepository(t *testing.T) *MockCartRepository {
	m := &MockCartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCartRepository) ListItems(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.CartItem), args.Error(1)
}

func (m *MockCartRepository) UpsertItem(ctx context.Context, userID string, item *entity.CartItem) error {
	args := m.Called(ctx, userID, item)

	return args.Error(0)
}

func (m *MockCartRepository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)

	return args.Error(0)
}

func (m *MockCartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	args := m.Called(ctx, userID, productID)

	return args.Error(0)
}

func (m *MockCartRepository) ClearCart(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

// NewMockOrderRepository creates a mock whose expectations are asserted on cleanup.
func NewMockOrderRepository(t *testing.T) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *MockOrderRepository) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

// MockAdminRepository is a mock implementation of repository.AdminRepository.
type MockAdminRepository struct {
	mock.Mock
}

// NewMockAdminRepository creates a mock whose expectations are asserted on cleanup.
func NewMockAdminRepository(t *testing.T) *MockAdminRepository {
	m := &MockAdminRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.AdminAccount), args.Error(1)
}

func (m *MockAdminRepository) Create(ctx context.Context, account *entity.AdminAccount) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}
