package persistence

import (
	"context"

	appinventory "github.com/stocktrail/backend/internal/application/inventory"
	apptrade "github.com/stocktrail/backend/internal/application/trade"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements the inventory TransactionScope using
// GORM transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

// gormInventoryRepositories provides inventory repositories bound to one
// transaction
type gormInventoryRepositories struct {
	tx *gorm.DB
}

// ItemRepo returns the item repository scoped to the current transaction
func (r *gormInventoryRepositories) ItemRepo() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

// StockLevelRepo returns the ledger repository scoped to the current transaction
func (r *gormInventoryRepositories) StockLevelRepo() inventory.StockLevelRepository {
	return NewGormStockLevelRepository(r.tx)
}

// StockTransactionRepo returns the movement record repository scoped to the current transaction
func (r *gormInventoryRepositories) StockTransactionRepo() inventory.StockTransactionRepository {
	return NewGormStockTransactionRepository(r.tx)
}

// GormTradeTransactionScope implements the trade TransactionScope using
// GORM transactions. The repositories it hands out include the inventory
// set so order receipt and the matching stock movements commit together.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTradeRepositories{gormInventoryRepositories{tx: tx}})
	})
}

// gormTradeRepositories provides trade and inventory repositories bound
// to one transaction
type gormTradeRepositories struct {
	gormInventoryRepositories
}

// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction
func (r *gormTradeRepositories) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

// SalesOrderRepo returns the sales order repository scoped to the current transaction
func (r *gormTradeRepositories) SalesOrderRepo() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

// ReturnRepo returns the return entry repository scoped to the current transaction
func (r *gormTradeRepositories) ReturnRepo() trade.ReturnRepository {
	return NewGormReturnRepository(r.tx)
}

// Ensure the scopes implement the application interfaces
var _ appinventory.TransactionScope = (*GormTransactionScope)(nil)
var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*gormInventoryRepositories)(nil)
var _ apptrade.TransactionalRepositories = (*gormTradeRepositories)(nil)
