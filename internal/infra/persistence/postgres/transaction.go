// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"sync"

	"shopfront/internal/domain/repository"
	"shopfront/internal/observe"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db  *gorm.DB
	hub *observe.Hub
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object and uses it to create repository
// instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx       *gorm.DB // In GORM, a transaction object is also a *gorm.DB
	recorder *changeRecorder
}

// changeRecorder collects the user ids whose address rows a transaction
// touched. Watchers are only notified after the transaction commits, so they
// never re-read uncommitted state.
type changeRecorder struct {
	mu      sync.Mutex
	userIDs map[string]struct{}
}

func newChangeRecorder() *changeRecorder {
	return &changeRecorder{userIDs: make(map[string]struct{})}
}

func (r *changeRecorder) record(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userIDs[userID] = struct{}{}
}

func (r *changeRecorder) flush(hub *observe.Hub) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID := range r.userIDs {
		hub.Notify(userID)
	}
	clear(r.userIDs)
}

// NewAddressRepository creates a new address repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewAddressRepository() repository.AddressRepository {
	return newTxAddressRepository(f.tx, f.recorder.record)
}

// NewAdminRepository creates a new admin repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewAdminRepository() repository.AdminRepository {
	return NewAdminRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB, hub *observe.Hub) repository.TransactionManager {
	return &gormTransactionManager{db: db, hub: hub}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	// Begin a new transaction
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// This defer block ensures that if a panic occurs within the callback function,
	// the transaction is always rolled back. This is a critical safety measure.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			// Re-panic to allow Fx or other middleware to handle the panic.
			panic(r)
		}
	}()

	// Create a repository factory that is bound to this specific transaction.
	recorder := newChangeRecorder()
	factory := &gormRepositoryFactory{tx: tx, recorder: recorder}

	// Execute the application logic (the use case's core work)
	err := fn(factory)
	if err != nil {
		// If the business logic returns an error, roll back the transaction.
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Log the rollback error, but return the original, more meaningful business error.
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err // Return the original business error.
	}

	// If the business logic completes without error, commit the transaction.
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Wake watchers only after the commit is durable.
	recorder.flush(tm.hub)

	return nil
}
