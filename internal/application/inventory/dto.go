package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/inventory"
)

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Quantity          decimal.Decimal `json:"quantity"`
	Cost              decimal.Decimal `json:"cost"`
	Price             decimal.Decimal `json:"price"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	IsBelowThreshold  bool            `json:"is_below_threshold"`
	Category          string          `json:"category,omitempty"`
	Barcode           string          `json:"barcode,omitempty"`
	Description       string          `json:"description,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// ToItemResponse converts an item to its response representation
func ToItemResponse(item *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:                item.ID,
		SKU:               item.SKU,
		Name:              item.Name,
		Quantity:          item.Quantity,
		Cost:              item.Cost,
		Price:             item.Price,
		LowStockThreshold: item.LowStockThreshold,
		IsBelowThreshold:  item.IsBelowThreshold(),
		Category:          item.Category,
		Barcode:           item.Barcode,
		Description:       item.Description,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
		Version:           item.Version,
	}
}

// CreateItemRequest represents a request to create an inventory item
type CreateItemRequest struct {
	SKU               string          `json:"sku" binding:"required,min=1,max=50"`
	Name              string          `json:"name" binding:"required,min=1,max=200"`
	Cost              decimal.Decimal `json:"cost"`
	Price             decimal.Decimal `json:"price"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	Category          string          `json:"category" binding:"max=100"`
	Barcode           string          `json:"barcode" binding:"max=100"`
	Description       string          `json:"description"`
	OpeningQuantity   decimal.Decimal `json:"opening_quantity"`
	LocationID        *uuid.UUID      `json:"location_id"`
}

// UpdateItemRequest represents a request to update an inventory item.
// Quantity is deliberately absent: stock moves only through adjustments.
type UpdateItemRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Cost              *decimal.Decimal `json:"cost"`
	Price             *decimal.Decimal `json:"price"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold"`
	Category          *string          `json:"category" binding:"omitempty,max=100"`
	Barcode           *string          `json:"barcode" binding:"omitempty,max=100"`
	Description       *string          `json:"description"`
}

// ItemListFilter represents filter options for the item list
type ItemListFilter struct {
	Search         string `form:"search"`
	Category       string `form:"category"`
	BelowThreshold *bool  `form:"below_threshold"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AdjustmentRequest represents a request to apply one stock movement.
// Type decides the sign: receive adds, issue subtracts, adjust applies
// the raw signed quantity. LocationID falls back to the default
// location when omitted.
type AdjustmentRequest struct {
	ItemID     uuid.UUID                 `json:"item_id" binding:"required"`
	LocationID *uuid.UUID                `json:"location_id"`
	Type       inventory.TransactionType `json:"type" binding:"required"`
	Quantity   decimal.Decimal           `json:"quantity" binding:"required"`
	Reason     string                    `json:"reason" binding:"max=500"`
	Reference  string                    `json:"reference" binding:"max=100"`
}

// AdjustmentResult carries the outcome of an applied movement
type AdjustmentResult struct {
	Item        *inventory.Item
	Transaction *inventory.StockTransaction
}

// StockTransactionResponse represents one movement record in API responses
type StockTransactionResponse struct {
	ID             uuid.UUID       `json:"id"`
	ItemID         uuid.UUID       `json:"item_id"`
	LocationID     uuid.UUID       `json:"location_id"`
	Type           string          `json:"type"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	Reason         string          `json:"reason,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToStockTransactionResponse converts a movement record to its response representation
func ToStockTransactionResponse(tx *inventory.StockTransaction) StockTransactionResponse {
	return StockTransactionResponse{
		ID:             tx.ID,
		ItemID:         tx.ItemID,
		LocationID:     tx.LocationID,
		Type:           tx.Type.String(),
		QuantityChange: tx.QuantityChange,
		Reason:         tx.Reason,
		Reference:      tx.Reference,
		CreatedAt:      tx.CreatedAt,
	}
}

// TransactionListFilter represents filter options for the movement list
type TransactionListFilter struct {
	ItemID    *uuid.UUID `form:"item_id"`
	Type      string     `form:"type" binding:"omitempty,oneof=receive issue adjust"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// StockLevelResponse represents one ledger row in API responses
type StockLevelResponse struct {
	ID         uuid.UUID       `json:"id"`
	ItemID     uuid.UUID       `json:"item_id"`
	LocationID uuid.UUID       `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToStockLevelResponse converts a ledger row to its response representation
func ToStockLevelResponse(level *inventory.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ID:         level.ID,
		ItemID:     level.ItemID,
		LocationID: level.LocationID,
		Quantity:   level.Quantity,
		UpdatedAt:  level.UpdatedAt,
	}
}
