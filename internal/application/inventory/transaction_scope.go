package inventory

import (
	"context"

	"github.com/stocktrail/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed
// or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory repositories
// within a transaction. All repositories returned share the same
// underlying database transaction.
//
// Aggregate boundary notes:
//   - ItemRepo: repository for the Item aggregate root, which carries the
//     denormalized total quantity. Every quantity change goes through it.
//   - StockLevelRepo: per-location ledger rows. Rows are child state of
//     the item but have separate storage so per-location balances can be
//     updated with a single conditional statement.
//   - StockTransactionRepo: append-only movement records.
type TransactionalRepositories interface {
	// ItemRepo returns the item repository scoped to the current transaction
	ItemRepo() inventory.ItemRepository
	// StockLevelRepo returns the ledger repository scoped to the current transaction
	StockLevelRepo() inventory.StockLevelRepository
	// StockTransactionRepo returns the movement record repository scoped to the current transaction
	StockTransactionRepo() inventory.StockTransactionRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	itemRepo  inventory.ItemRepository
	levelRepo inventory.StockLevelRepository
	txRepo    inventory.StockTransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	itemRepo inventory.ItemRepository,
	levelRepo inventory.StockLevelRepository,
	txRepo inventory.StockTransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo:  itemRepo,
		levelRepo: levelRepo,
		txRepo:    txRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the item repository.
func (s *NoOpTransactionScope) ItemRepo() inventory.ItemRepository {
	return s.itemRepo
}

// StockLevelRepo returns the ledger repository.
func (s *NoOpTransactionScope) StockLevelRepo() inventory.StockLevelRepository {
	return s.levelRepo
}

// StockTransactionRepo returns the movement record repository.
func (s *NoOpTransactionScope) StockTransactionRepo() inventory.StockTransactionRepository {
	return s.txRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
