package audit

import (
	"context"
	"fmt"

	"github.com/stocktrail/backend/internal/domain/audit"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stocktrail/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// Recorder subscribes to domain events and writes an audit record for
// each. Writes are best-effort: a failed audit insert is logged and
// swallowed so it can never fail the operation that produced the
// event.
type Recorder struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewRecorder creates a new audit Recorder
func NewRecorder(repo audit.Repository, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// EventTypes returns the event types this handler records
func (r *Recorder) EventTypes() []string {
	return []string{
		inventory.EventTypeStockMovementApplied,
		inventory.EventTypeInventoryItemCreated,
		trade.EventTypePurchaseOrderCreated,
		trade.EventTypePurchaseOrderReceived,
		trade.EventTypeSalesOrderCreated,
		trade.EventTypeSalesOrderApproved,
		trade.EventTypeSalesOrderReceived,
		trade.EventTypeReturnReceived,
	}
}

// Handle writes one audit record for the event
func (r *Recorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	entry, err := audit.NewAuditLog(
		event.AggregateType(),
		event.AggregateID(),
		event.EventType(),
		describe(event),
		nil,
	)
	if err != nil {
		r.logger.Warn("skipping malformed audit event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		return nil
	}

	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Warn("audit write failed",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err),
		)
	}
	return nil
}

// describe renders a short human-readable message for known event types
func describe(event shared.DomainEvent) string {
	switch e := event.(type) {
	case *inventory.StockMovementAppliedEvent:
		return fmt.Sprintf("%s %s on %s (new quantity %s)", e.Type, e.QuantityChange, e.SKU, e.NewQuantity)
	case *inventory.ItemCreatedEvent:
		return fmt.Sprintf("item %s (%s) created", e.SKU, e.Name)
	case *trade.PurchaseOrderCreatedEvent:
		return fmt.Sprintf("purchase order %s created for %s", e.OrderNumber, e.SupplierName)
	case *trade.PurchaseOrderReceivedEvent:
		return fmt.Sprintf("purchase order %s received (%d lines)", e.OrderNumber, e.LineCount)
	case *trade.SalesOrderCreatedEvent:
		return fmt.Sprintf("sales order %s created for %s", e.OrderNumber, e.CustomerName)
	case *trade.SalesOrderApprovedEvent:
		return fmt.Sprintf("sales order %s approved", e.OrderNumber)
	case *trade.SalesOrderReceivedEvent:
		return fmt.Sprintf("sales order %s received", e.OrderNumber)
	case *trade.ReturnReceivedEvent:
		return fmt.Sprintf("return %s received", e.ReturnNumber)
	}
	return event.EventType()
}

var _ shared.EventHandler = (*Recorder)(nil)
