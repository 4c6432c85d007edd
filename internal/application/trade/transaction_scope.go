package trade

import (
	"context"

	appinventory "github.com/stocktrail/backend/internal/application/inventory"
	"github.com/stocktrail/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the order
// repositories together with the inventory repositories. Receiving an
// order writes the order row and one stock movement per line; running
// them in one scope keeps the order status and the ledger consistent.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the trade and inventory
// repositories within one transaction. Embedding the inventory set lets
// the stock service apply movements inside an order transaction.
type TransactionalRepositories interface {
	appinventory.TransactionalRepositories

	// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction
	PurchaseOrderRepo() trade.PurchaseOrderRepository
	// SalesOrderRepo returns the sales order repository scoped to the current transaction
	SalesOrderRepo() trade.SalesOrderRepository
	// ReturnRepo returns the return entry repository scoped to the current transaction
	ReturnRepo() trade.ReturnRepository
}
