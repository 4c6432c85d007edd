package inventory

import (
	"context"

	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockBelowThresholdHandler reacts to items dropping under their
// low-stock threshold. It logs a warning; an optional notifier fans the
// alert out to other channels.
type StockBelowThresholdHandler struct {
	logger   *zap.Logger
	notifier StockAlertNotifier
}

// StockAlertNotifier is the interface for forwarding low-stock alerts.
// Implementations can support different channels (in-app, email, webhooks).
type StockAlertNotifier interface {
	// SendAlert sends a low-stock alert
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert represents one low-stock alert
type StockAlert struct {
	ItemID    string `json:"item_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	Threshold string `json:"threshold"`
}

// NewStockBelowThresholdHandler creates a new handler for low-stock events
func NewStockBelowThresholdHandler(logger *zap.Logger) *StockBelowThresholdHandler {
	return &StockBelowThresholdHandler{logger: logger}
}

// WithNotifier sets the notifier for forwarding alerts
func (h *StockBelowThresholdHandler) WithNotifier(notifier StockAlertNotifier) *StockBelowThresholdHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockBelowThresholdHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThresholdEvent
func (h *StockBelowThresholdHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*inventory.StockBelowThresholdEvent)
	if !ok {
		return nil
	}

	h.logger.Warn("item below low-stock threshold",
		zap.String("item_id", e.AggregateID().String()),
		zap.String("sku", e.SKU),
		zap.String("quantity", e.Quantity.String()),
		zap.String("threshold", e.Threshold.String()),
	)

	if h.notifier == nil {
		return nil
	}
	alert := StockAlert{
		ItemID:    e.AggregateID().String(),
		SKU:       e.SKU,
		Name:      e.Name,
		Quantity:  e.Quantity.String(),
		Threshold: e.Threshold.String(),
	}
	if err := h.notifier.SendAlert(ctx, alert); err != nil {
		h.logger.Error("failed to send low-stock alert",
			zap.String("sku", e.SKU),
			zap.Error(err),
		)
	}
	return nil
}

var _ shared.EventHandler = (*StockBelowThresholdHandler)(nil)
