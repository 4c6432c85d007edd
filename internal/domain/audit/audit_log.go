package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// AuditLog is an append-only record of one mutating operation.
// Writing it is best-effort: a failed audit write never rolls back or
// surfaces from the operation it accompanies.
type AuditLog struct {
	shared.BaseEntity
	Entity   string     `gorm:"type:varchar(50);not null;index"`
	EntityID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Action   string     `gorm:"type:varchar(50);not null"`
	Message  string     `gorm:"type:varchar(500)"`
	UserID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (AuditLog) TableName() string {
	return "audit_logs"
}

// NewAuditLog creates a new audit log entry
func NewAuditLog(entity string, entityID uuid.UUID, action, message string, userID *uuid.UUID) (*AuditLog, error) {
	if entity == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Audit entity cannot be empty")
	}
	if action == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Audit action cannot be empty")
	}

	return &AuditLog{
		BaseEntity: shared.NewBaseEntity(),
		Entity:     entity,
		EntityID:   entityID,
		Action:     action,
		Message:    message,
		UserID:     userID,
	}, nil
}

// Repository defines the interface for audit log persistence
type Repository interface {
	// Create appends a new audit record (no update allowed)
	Create(ctx context.Context, log *AuditLog) error

	// FindByEntity finds audit records for one entity instance
	FindByEntity(ctx context.Context, entity string, entityID uuid.UUID, filter shared.Filter) ([]AuditLog, error)

	// FindAll finds audit records matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]AuditLog, error)

	// Count counts audit records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
