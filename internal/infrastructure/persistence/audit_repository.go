package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/audit"
	"github.com/stocktrail/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAuditRepository implements the audit Repository using GORM.
// Records are append-only.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Create appends a new audit record
func (r *GormAuditRepository) Create(ctx context.Context, log *audit.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByEntity finds audit records for one entity instance
func (r *GormAuditRepository) FindByEntity(ctx context.Context, entity string, entityID uuid.UUID, filter shared.Filter) ([]audit.AuditLog, error) {
	var logs []audit.AuditLog
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&audit.AuditLog{}).
			Where("entity = ? AND entity_id = ?", entity, entityID),
		filter,
	)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindAll finds audit records matching the filter
func (r *GormAuditRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.AuditLog, error) {
	var logs []audit.AuditLog
	query := r.applyFilter(r.db.WithContext(ctx).Model(&audit.AuditLog{}), filter)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Count counts audit records matching the filter
func (r *GormAuditRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&audit.AuditLog{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormAuditRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := validateSortField(filter.OrderBy, auditLogSortFields, "created_at")
	return query.Order(orderBy + " " + validateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAuditRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("message ILIKE ? OR action ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "entity":
			query = query.Where("entity = ?", value)
		case "entity_id":
			query = query.Where("entity_id = ?", value)
		case "action":
			query = query.Where("action = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
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

// Ensure GormAuditRepository implements the audit Repository
var _ audit.Repository = (*GormAuditRepository)(nil)
