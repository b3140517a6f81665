package repository

import (
	"context"

	"shopfront/internal/domain/repository"
)

// StubTransactionManager runs the callback immediately against a fixed
// factory, standing in for a real database transaction in tests.
type StubTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (m *StubTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}

// StubRepositoryFactory hands out the configured repositories.
type StubRepositoryFactory struct {
	AddressRepo repository.AddressRepository
	AdminRepo   repository.AdminRepository
}

func (f *StubRepositoryFactory) NewAddressRepository() repository.AddressRepository {
	return f.AddressRepo
}

func (f *StubRepositoryFactory) NewAdminRepository() repository.AdminRepository {
	return f.AdminRepo
}
