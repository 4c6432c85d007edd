package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stocktrail/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormReturnRepository implements ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// FindByID finds a return entry (with lines) by its ID
func (r *GormReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ReturnEntry, error) {
	var entry trade.ReturnEntry
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll finds return entries matching the filter
func (r *GormReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.ReturnEntry, error) {
	var entries []trade.ReturnEntry
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.ReturnEntry{}), filter)

	if err := query.Preload("Items").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save creates or updates a return entry with its lines
func (r *GormReturnRepository) Save(ctx context.Context, entry *trade.ReturnEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(entry).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(entry.Items))
		for i, item := range entry.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("return_id = ? AND id NOT IN ?", entry.ID, currentItemIDs).
				Delete(&trade.ReturnItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("return_id = ?", entry.ID).
				Delete(&trade.ReturnItem{}).Error; err != nil {
				return err
			}
		}

		for i := range entry.Items {
			entry.Items[i].ReturnID = entry.ID
			if err := tx.Save(&entry.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a return entry and its lines
func (r *GormReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("return_id = ?", id).Delete(&trade.ReturnItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&trade.ReturnEntry{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts return entries matching the filter
func (r *GormReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.ReturnEntry{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateReturnNumber produces the next sequential return number.
// Format: RET-YYYY-NNNNN, numbering restarts yearly.
func (r *GormReturnRepository) GenerateReturnNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("RET-%d-", time.Now().Year())
	return nextOrderNumber(r.db.WithContext(ctx).Model(&trade.ReturnEntry{}), "return_number", prefix)
}

// applyFilter applies filter options to the query
func (r *GormReturnRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := validateSortField(filter.OrderBy, returnSortFields, "created_at")
	query = query.Order(orderBy + " " + validateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReturnRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("return_number ILIKE ? OR notes ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("return_type = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormReturnRepository implements ReturnRepository
var _ trade.ReturnRepository = (*GormReturnRepository)(nil)
