package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order (with lines) by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds a purchase order by its number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindAll finds purchase orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order with its lines
	Save(ctx context.Context, order *PurchaseOrder) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, order *PurchaseOrder) error

	// Delete deletes a purchase order and its lines
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts purchase orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts purchase orders in one status
	CountByStatus(ctx context.Context, status PurchaseOrderStatus) (int64, error)

	// GenerateOrderNumber produces the next sequential order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// SalesOrderRepository defines the interface for sales order persistence
type SalesOrderRepository interface {
	// FindByID finds a sales order (with lines) by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindByOrderNumber finds a sales order by its number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*SalesOrder, error)

	// FindAll finds sales orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, error)

	// Save creates or updates a sales order with its lines
	Save(ctx context.Context, order *SalesOrder) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, order *SalesOrder) error

	// Delete deletes a sales order and its lines
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts sales orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts sales orders in one status
	CountByStatus(ctx context.Context, status SalesOrderStatus) (int64, error)

	// GenerateOrderNumber produces the next sequential order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// ReturnRepository defines the interface for return entry persistence
type ReturnRepository interface {
	// FindByID finds a return entry (with lines) by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnEntry, error)

	// FindAll finds return entries matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]ReturnEntry, error)

	// Save creates or updates a return entry with its lines
	Save(ctx context.Context, entry *ReturnEntry) error

	// Delete deletes a return entry and its lines
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts return entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateReturnNumber produces the next sequential return number
	GenerateReturnNumber(ctx context.Context) (string, error)
}
