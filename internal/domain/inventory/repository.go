package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// ItemRepository defines the interface for inventory item persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindBySKU finds an item by its SKU
	FindBySKU(ctx context.Context, sku string) (*Item, error)

	// FindAll finds all items matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// FindBelowThreshold finds items under their low-stock threshold
	FindBelowThreshold(ctx context.Context, filter shared.Filter) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, item *Item) error

	// Delete deletes an item
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySKU checks whether a SKU is already taken
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}

// StockLevelRepository defines the interface for ledger row persistence
type StockLevelRepository interface {
	// FindByItemAndLocation finds the ledger row for an (item, location) pair
	FindByItemAndLocation(ctx context.Context, itemID, locationID uuid.UUID) (*StockLevel, error)

	// FindByItem finds all ledger rows for an item
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]StockLevel, error)

	// FindByLocation finds all ledger rows at a location
	FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]StockLevel, error)

	// FindAll finds all ledger rows matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockLevel, error)

	// Create inserts a new ledger row
	Create(ctx context.Context, level *StockLevel) error

	// ApplyDelta applies a signed delta to an existing row with a
	// conditional atomic update; it fails with ErrInsufficientStock when
	// the row would go negative, leaving the row unchanged.
	ApplyDelta(ctx context.Context, itemID, locationID uuid.UUID, delta decimal.Decimal) error

	// SumByItem sums ledger quantities for an item across locations
	SumByItem(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error)

	// Count counts ledger rows matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StockTransactionRepository defines the interface for movement records
type StockTransactionRepository interface {
	// FindByID finds a transaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockTransaction, error)

	// FindByItem finds transactions for an item
	FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]StockTransaction, error)

	// FindByType finds transactions of one movement type
	FindByType(ctx context.Context, txType TransactionType, filter shared.Filter) ([]StockTransaction, error)

	// FindByDateRange finds transactions within a date range
	FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]StockTransaction, error)

	// FindAll finds all transactions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockTransaction, error)

	// Create appends a new transaction record (no update allowed)
	Create(ctx context.Context, tx *StockTransaction) error

	// Count counts transactions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
