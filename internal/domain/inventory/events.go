package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// Event types for the inventory context
const (
	EventTypeStockMovementApplied  = "inventory.stock_movement_applied"
	EventTypeStockBelowThreshold   = "inventory.stock_below_threshold"
	EventTypeInventoryItemCreated  = "inventory.item_created"
	EventTypeInventoryItemUpdated  = "inventory.item_updated"
	EventTypeInventoryItemArchived = "inventory.item_archived"
)

// StockMovementAppliedEvent is emitted after an adjustment has been
// committed (item mirror, ledger row and transaction record together).
type StockMovementAppliedEvent struct {
	shared.BaseDomainEvent
	SKU            string          `json:"sku"`
	Type           TransactionType `json:"transaction_type"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	NewQuantity    decimal.Decimal `json:"new_quantity"`
	Reason         string          `json:"reason,omitempty"`
}

// NewStockMovementAppliedEvent creates a StockMovementAppliedEvent
func NewStockMovementAppliedEvent(item *Item, txType TransactionType, change decimal.Decimal, reason string) *StockMovementAppliedEvent {
	return &StockMovementAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementApplied, "Item", item.ID),
		SKU:             item.SKU,
		Type:            txType,
		QuantityChange:  change,
		NewQuantity:     item.Quantity,
		Reason:          reason,
	}
}

// StockBelowThresholdEvent is emitted when an issue takes an item's
// quantity under its low-stock threshold.
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Threshold decimal.Decimal `json:"threshold"`
}

// NewStockBelowThresholdEvent creates a StockBelowThresholdEvent
func NewStockBelowThresholdEvent(item *Item) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, "Item", item.ID),
		SKU:             item.SKU,
		Name:            item.Name,
		Quantity:        item.Quantity,
		Threshold:       item.LowStockThreshold,
	}
}

// ItemCreatedEvent is emitted when an item is created
type ItemCreatedEvent struct {
	shared.BaseDomainEvent
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// NewItemCreatedEvent creates an ItemCreatedEvent
func NewItemCreatedEvent(item *Item) *ItemCreatedEvent {
	return &ItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryItemCreated, "Item", item.ID),
		SKU:             item.SKU,
		Name:            item.Name,
	}
}
