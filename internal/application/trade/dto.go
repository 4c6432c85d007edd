package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/trade"
)

// OrderLineRequest represents one requested order line
type OrderLineRequest struct {
	ItemID    uuid.UUID       `json:"item_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderLineResponse represents one order line in API responses
type OrderLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ItemID    uuid.UUID       `json:"item_id"`
	ItemName  string          `json:"item_name"`
	SKU       string          `json:"sku"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID      uuid.UUID          `json:"supplier_id" binding:"required"`
	Items           []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
	Status          string             `json:"status"`
	TaxRate         *decimal.Decimal   `json:"tax_rate"`
	ExpectedDate    *time.Time         `json:"expected_date"`
	DeliveryDate    *time.Time         `json:"delivery_date"`
	ReceivedDate    *time.Time         `json:"received_date"`
	PaymentTerms    string             `json:"payment_terms" binding:"max=200"`
	ShippingAddress string             `json:"shipping_address"`
	Notes           string             `json:"notes"`
	LocationID      *uuid.UUID         `json:"location_id"`
}

// UpdatePurchaseOrderRequest represents a request to update a purchase
// order. Which fields are honored depends on the caller's role.
type UpdatePurchaseOrderRequest struct {
	Status          *string            `json:"status"`
	Items           []OrderLineRequest `json:"items" binding:"omitempty,min=1,dive"`
	TaxRate         *decimal.Decimal   `json:"tax_rate"`
	ExpectedDate    *time.Time         `json:"expected_date"`
	DeliveryDate    *time.Time         `json:"delivery_date"`
	ReceivedDate    *time.Time         `json:"received_date"`
	PaymentTerms    *string            `json:"payment_terms" binding:"omitempty,max=200"`
	ShippingAddress *string            `json:"shipping_address"`
	Notes           *string            `json:"notes"`
	LocationID      *uuid.UUID         `json:"location_id"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	SupplierID      uuid.UUID           `json:"supplier_id"`
	SupplierName    string              `json:"supplier_name"`
	Status          string              `json:"status"`
	Items           []OrderLineResponse `json:"items"`
	TaxRate         decimal.Decimal     `json:"tax_rate"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	TaxAmount       decimal.Decimal     `json:"tax_amount"`
	GrandTotal      decimal.Decimal     `json:"grand_total"`
	ExpectedDate    *time.Time          `json:"expected_date,omitempty"`
	DeliveryDate    *time.Time          `json:"delivery_date,omitempty"`
	ReceivedDate    *time.Time          `json:"received_date,omitempty"`
	PaymentTerms    string              `json:"payment_terms,omitempty"`
	ShippingAddress string              `json:"shipping_address,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Version         int                 `json:"version"`
}

// ToPurchaseOrderResponse converts a purchase order to its response representation
func ToPurchaseOrderResponse(order *trade.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, OrderLineResponse{
			ID:        item.ID,
			ItemID:    item.ItemID,
			ItemName:  item.ItemName,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitCost,
			Amount:    item.Amount,
		})
	}
	return PurchaseOrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		SupplierID:      order.SupplierID,
		SupplierName:    order.SupplierName,
		Status:          order.Status.String(),
		Items:           lines,
		TaxRate:         order.TaxRate,
		TotalAmount:     order.TotalAmount,
		TaxAmount:       order.TaxAmount(),
		GrandTotal:      order.GrandTotal(),
		ExpectedDate:    order.ExpectedDate,
		DeliveryDate:    order.DeliveryDate,
		ReceivedDate:    order.ReceivedDate,
		PaymentTerms:    order.PaymentTerms,
		ShippingAddress: order.ShippingAddress,
		Notes:           order.Notes,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Version:         order.Version,
	}
}

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	CustomerID      uuid.UUID          `json:"customer_id" binding:"required"`
	Items           []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
	Status          string             `json:"status"`
	TaxRate         *decimal.Decimal   `json:"tax_rate"`
	DeliveryDate    *time.Time         `json:"delivery_date"`
	ReceivedDate    *time.Time         `json:"received_date"`
	PaymentTerms    string             `json:"payment_terms" binding:"max=200"`
	ShippingAddress string             `json:"shipping_address"`
	Notes           string             `json:"notes"`
	LocationID      *uuid.UUID         `json:"location_id"`
}

// UpdateSalesOrderRequest represents a request to update a sales order.
// Which fields are honored depends on the caller's role.
type UpdateSalesOrderRequest struct {
	Status          *string            `json:"status"`
	Items           []OrderLineRequest `json:"items" binding:"omitempty,min=1,dive"`
	TaxRate         *decimal.Decimal   `json:"tax_rate"`
	DeliveryDate    *time.Time         `json:"delivery_date"`
	ReceivedDate    *time.Time         `json:"received_date"`
	PaymentTerms    *string            `json:"payment_terms" binding:"omitempty,max=200"`
	ShippingAddress *string            `json:"shipping_address"`
	Notes           *string            `json:"notes"`
	LocationID      *uuid.UUID         `json:"location_id"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerID      uuid.UUID           `json:"customer_id"`
	CustomerName    string              `json:"customer_name"`
	Status          string              `json:"status"`
	Items           []OrderLineResponse `json:"items"`
	TaxRate         decimal.Decimal     `json:"tax_rate"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	TaxAmount       decimal.Decimal     `json:"tax_amount"`
	GrandTotal      decimal.Decimal     `json:"grand_total"`
	ApprovedDate    *time.Time          `json:"approved_date,omitempty"`
	ReceivedDate    *time.Time          `json:"received_date,omitempty"`
	DeliveryDate    *time.Time          `json:"delivery_date,omitempty"`
	PaymentTerms    string              `json:"payment_terms,omitempty"`
	ShippingAddress string              `json:"shipping_address,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Version         int                 `json:"version"`
}

// ToSalesOrderResponse converts a sales order to its response representation
func ToSalesOrderResponse(order *trade.SalesOrder) SalesOrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, OrderLineResponse{
			ID:        item.ID,
			ItemID:    item.ItemID,
			ItemName:  item.ItemName,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Amount:    item.Amount,
		})
	}
	return SalesOrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		Status:          order.Status.String(),
		Items:           lines,
		TaxRate:         order.TaxRate,
		TotalAmount:     order.TotalAmount,
		TaxAmount:       order.TaxAmount(),
		GrandTotal:      order.GrandTotal(),
		ApprovedDate:    order.ApprovedDate,
		ReceivedDate:    order.ReceivedDate,
		DeliveryDate:    order.DeliveryDate,
		PaymentTerms:    order.PaymentTerms,
		ShippingAddress: order.ShippingAddress,
		Notes:           order.Notes,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Version:         order.Version,
	}
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ReturnLineRequest represents one requested return line
type ReturnLineRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Reason   string          `json:"reason" binding:"max=500"`
}

// CreateReturnRequest represents a request to create a return entry
type CreateReturnRequest struct {
	Type       string              `json:"type" binding:"required,oneof=customer supplier"`
	Items      []ReturnLineRequest `json:"items" binding:"required,min=1,dive"`
	Notes      string              `json:"notes"`
	LocationID *uuid.UUID          `json:"location_id"`
}

// UpdateReturnRequest represents a request to update a return entry
type UpdateReturnRequest struct {
	Status     *string             `json:"status"`
	Items      []ReturnLineRequest `json:"items" binding:"omitempty,min=1,dive"`
	Notes      *string             `json:"notes"`
	LocationID *uuid.UUID          `json:"location_id"`
}

// ReturnLineResponse represents one return line in API responses
type ReturnLineResponse struct {
	ID       uuid.UUID       `json:"id"`
	ItemID   uuid.UUID       `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason,omitempty"`
}

// ReturnResponse represents a return entry in API responses
type ReturnResponse struct {
	ID           uuid.UUID            `json:"id"`
	ReturnNumber string               `json:"return_number"`
	Type         string               `json:"type"`
	Status       string               `json:"status"`
	Items        []ReturnLineResponse `json:"items"`
	ReceivedDate *time.Time           `json:"received_date,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	Version      int                  `json:"version"`
}

// ToReturnResponse converts a return entry to its response representation
func ToReturnResponse(entry *trade.ReturnEntry) ReturnResponse {
	lines := make([]ReturnLineResponse, 0, len(entry.Items))
	for _, item := range entry.Items {
		lines = append(lines, ReturnLineResponse{
			ID:       item.ID,
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
			Reason:   item.Reason,
		})
	}
	return ReturnResponse{
		ID:           entry.ID,
		ReturnNumber: entry.ReturnNumber,
		Type:         string(entry.Type),
		Status:       entry.Status.String(),
		Items:        lines,
		ReceivedDate: entry.ReceivedDate,
		Notes:        entry.Notes,
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
		Version:      entry.Version,
	}
}
