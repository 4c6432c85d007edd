package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockTransactionRepository implements StockTransactionRepository
// using GORM. Movement records are append-only; there is no update or
// delete path.
type GormStockTransactionRepository struct {
	db *gorm.DB
}

// NewGormStockTransactionRepository creates a new GormStockTransactionRepository
func NewGormStockTransactionRepository(db *gorm.DB) *GormStockTransactionRepository {
	return &GormStockTransactionRepository{db: db}
}

// FindByID finds a transaction by its ID
func (r *GormStockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockTransaction, error) {
	var tx inventory.StockTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByItem finds transactions for an item
func (r *GormStockTransactionRepository) FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]inventory.StockTransaction, error) {
	var txs []inventory.StockTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
			Where("item_id = ?", itemID),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByType finds transactions of one movement type
func (r *GormStockTransactionRepository) FindByType(ctx context.Context, txType inventory.TransactionType, filter shared.Filter) ([]inventory.StockTransaction, error) {
	var txs []inventory.StockTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
			Where("transaction_type = ?", txType),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByDateRange finds transactions within a date range
func (r *GormStockTransactionRepository) FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]inventory.StockTransaction, error) {
	var txs []inventory.StockTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
			Where("created_at >= ? AND created_at <= ?", start, end),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindAll finds all transactions matching the filter
func (r *GormStockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockTransaction, error) {
	var txs []inventory.StockTransaction
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockTransaction{}), filter)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Create appends a new transaction record
func (r *GormStockTransactionRepository) Create(ctx context.Context, tx *inventory.StockTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// Count counts transactions matching the filter
func (r *GormStockTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.StockTransaction{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormStockTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := validateSortField(filter.OrderBy, stockTransactionSortFields, "created_at")
	query = query.Order(orderBy + " " + validateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("reason ILIKE ? OR reference ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "item_id":
			query = query.Where("item_id = ?", value)
		case "location_id":
			query = query.Where("location_id = ?", value)
		case "type":
			query = query.Where("transaction_type = ?", value)
		case "reference":
			query = query.Where("reference = ?", value)
		case "inbound":
			if value == true {
				query = query.Where("quantity_change > 0")
			}
		case "outbound":
			if value == true {
				query = query.Where("quantity_change < 0")
			}
		}
	}

	return query
}

// Ensure GormStockTransactionRepository implements StockTransactionRepository
var _ inventory.StockTransactionRepository = (*GormStockTransactionRepository)(nil)
