package impl

import (
	"io"
	"log/slog"

	"shopfront/internal/domain/repository"
	mockRepo "shopfront/internal/mocks/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newStubTxManager runs transaction callbacks inline against the given
// address repository.
func newStubTxManager(addressRepo repository.AddressRepository) repository.TransactionManager {
	return &mockRepo.StubTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{AddressRepo: addressRepo},
	}
}
