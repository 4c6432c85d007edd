package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockLevelRepository implements StockLevelRepository using GORM
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// FindByItemAndLocation finds the ledger row for an (item, location) pair
func (r *GormStockLevelRepository) FindByItemAndLocation(ctx context.Context, itemID, locationID uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND location_id = ?", itemID, locationID).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindByItem finds all ledger rows for an item
func (r *GormStockLevelRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// FindByLocation finds all ledger rows at a location
func (r *GormStockLevelRepository) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockLevel{}).
			Where("location_id = ?", locationID),
		filter,
	)

	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// FindAll finds all ledger rows matching the filter
func (r *GormStockLevelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockLevel{}), filter)

	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// Create inserts a new ledger row
func (r *GormStockLevelRepository) Create(ctx context.Context, level *inventory.StockLevel) error {
	return r.db.WithContext(ctx).Create(level).Error
}

// ApplyDelta applies a signed delta with a conditional atomic update.
// The non-negativity check lives in the WHERE clause so the row cannot
// go negative even under concurrent writers. A zero-row result means
// either the row does not exist (ErrNotFound) or the delta would drive
// it negative (ErrInsufficientStock); the two are told apart by an
// existence probe.
func (r *GormStockLevelRepository) ApplyDelta(ctx context.Context, itemID, locationID uuid.UUID, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.StockLevel{}).
		Where("item_id = ? AND location_id = ? AND quantity + ? >= 0", itemID, locationID, delta).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&inventory.StockLevel{}).
			Where("item_id = ? AND location_id = ?", itemID, locationID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// SumByItem sums ledger quantities for an item across locations
func (r *GormStockLevelRepository) SumByItem(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockLevel{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("item_id = ?", itemID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Count counts ledger rows matching the filter
func (r *GormStockLevelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.StockLevel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormStockLevelRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query.Order("created_at " + validateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockLevelRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "item_id":
			query = query.Where("item_id = ?", value)
		case "location_id":
			query = query.Where("location_id = ?", value)
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		}
	}

	return query
}

// Ensure GormStockLevelRepository implements StockLevelRepository
var _ inventory.StockLevelRepository = (*GormStockLevelRepository)(nil)
