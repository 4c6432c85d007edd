package trade

import (
	"github.com/stocktrail/backend/internal/domain/shared"
)

// Event types for the trade context
const (
	EventTypePurchaseOrderCreated  = "trade.purchase_order_created"
	EventTypePurchaseOrderReceived = "trade.purchase_order_received"
	EventTypeSalesOrderCreated     = "trade.sales_order_created"
	EventTypeSalesOrderApproved    = "trade.sales_order_approved"
	EventTypeSalesOrderReceived    = "trade.sales_order_received"
	EventTypeReturnReceived        = "trade.return_received"
)

// PurchaseOrderCreatedEvent is emitted when a purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber  string `json:"order_number"`
	SupplierName string `json:"supplier_name"`
}

// NewPurchaseOrderCreatedEvent creates a PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		SupplierName:    order.SupplierName,
	}
}

// PurchaseOrderReceivedEvent is emitted when a purchase order reaches received
type PurchaseOrderReceivedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	LineCount   int    `json:"line_count"`
}

// NewPurchaseOrderReceivedEvent creates a PurchaseOrderReceivedEvent
func NewPurchaseOrderReceivedEvent(order *PurchaseOrder) *PurchaseOrderReceivedEvent {
	return &PurchaseOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderReceived, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		LineCount:       len(order.Items),
	}
}

// SalesOrderCreatedEvent is emitted when a sales order is created
type SalesOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber  string `json:"order_number"`
	CustomerName string `json:"customer_name"`
}

// NewSalesOrderCreatedEvent creates a SalesOrderCreatedEvent
func NewSalesOrderCreatedEvent(order *SalesOrder) *SalesOrderCreatedEvent {
	return &SalesOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCreated, "SalesOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
	}
}

// SalesOrderApprovedEvent is emitted when a sales order is approved
type SalesOrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	LineCount   int    `json:"line_count"`
}

// NewSalesOrderApprovedEvent creates a SalesOrderApprovedEvent
func NewSalesOrderApprovedEvent(order *SalesOrder) *SalesOrderApprovedEvent {
	return &SalesOrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderApproved, "SalesOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		LineCount:       len(order.Items),
	}
}

// SalesOrderReceivedEvent is emitted when a sales order reaches received
type SalesOrderReceivedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
}

// NewSalesOrderReceivedEvent creates a SalesOrderReceivedEvent
func NewSalesOrderReceivedEvent(order *SalesOrder) *SalesOrderReceivedEvent {
	return &SalesOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderReceived, "SalesOrder", order.ID),
		OrderNumber:     order.OrderNumber,
	}
}

// ReturnReceivedEvent is emitted when a return reaches received
type ReturnReceivedEvent struct {
	shared.BaseDomainEvent
	ReturnNumber string     `json:"return_number"`
	ReturnType   ReturnType `json:"return_type"`
	LineCount    int        `json:"line_count"`
}

// NewReturnReceivedEvent creates a ReturnReceivedEvent
func NewReturnReceivedEvent(entry *ReturnEntry) *ReturnReceivedEvent {
	return &ReturnReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnReceived, "ReturnEntry", entry.ID),
		ReturnNumber:    entry.ReturnNumber,
		ReturnType:      entry.Type,
		LineCount:       len(entry.Items),
	}
}
