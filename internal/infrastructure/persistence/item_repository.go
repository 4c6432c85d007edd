package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindBySKU finds an item by its SKU
func (r *GormItemRepository) FindBySKU(ctx context.Context, sku string) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).
		Where("sku = ?", strings.ToUpper(strings.TrimSpace(sku))).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindBelowThreshold finds items under their low-stock threshold
func (r *GormItemRepository) FindBelowThreshold(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Item{}).
			Where("low_stock_threshold > 0 AND quantity < low_stock_threshold"),
		filter,
	)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormItemRepository) SaveWithLock(ctx context.Context, item *inventory.Item) error {
	result := r.db.WithContext(ctx).
		Model(item).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]interface{}{
			"quantity":            item.Quantity,
			"cost":                item.Cost,
			"price":               item.Price,
			"low_stock_threshold": item.LowStockThreshold,
			"name":                item.Name,
			"category":            item.Category,
			"barcode":             item.Barcode,
			"description":         item.Description,
			"version":             item.Version,
			"updated_at":          item.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Item was modified by another transaction")
	}
	return nil
}

// Delete deletes an item
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySKU checks whether a SKU is already taken
func (r *GormItemRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("sku = ?", strings.ToUpper(strings.TrimSpace(sku))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := validateSortField(filter.OrderBy, itemSortFields, "created_at")
	query = query.Order(orderBy + " " + validateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR barcode ILIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "below_threshold":
			if value == true {
				query = query.Where("low_stock_threshold > 0 AND quantity < low_stock_threshold")
			}
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		case "no_stock":
			if value == true {
				query = query.Where("quantity = 0")
			}
		case "min_quantity":
			query = query.Where("quantity >= ?", value)
		case "max_quantity":
			query = query.Where("quantity <= ?", value)
		}
	}

	return query
}

// Ensure GormItemRepository implements ItemRepository
var _ inventory.ItemRepository = (*GormItemRepository)(nil)
