package inventory

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// Item represents a stocked product. It is the aggregate root for
// inventory operations.
//
// Quantity is the denormalized total across all locations and is
// expected to equal the sum of the item's StockLevel rows. Every
// adjustment path maintains it; it is never recomputed from the ledger.
type Item struct {
	shared.BaseAggregateRoot
	SKU               string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string          `gorm:"type:varchar(200);not null"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Cost              decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LowStockThreshold decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Category          string          `gorm:"type:varchar(100);index"`
	Barcode           string          `gorm:"type:varchar(100)"`
	Description       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory_items"
}

// NewItem creates a new inventory item
func NewItem(sku, name string, cost, price decimal.Decimal) (*Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		Quantity:          decimal.Zero,
		Cost:              cost,
		Price:             price,
		LowStockThreshold: decimal.Zero,
	}, nil
}

// ApplyDelta applies a signed quantity change to the denormalized total.
// The resulting quantity must stay non-negative.
func (i *Item) ApplyDelta(delta decimal.Decimal) error {
	newQuantity := i.Quantity.Add(delta)
	if newQuantity.IsNegative() {
		return shared.ErrInsufficientStock
	}

	i.Quantity = newQuantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	if delta.IsNegative() && i.IsBelowThreshold() {
		i.AddDomainEvent(NewStockBelowThresholdEvent(i))
	}

	return nil
}

// CanFulfill returns true if the denormalized quantity covers the request
func (i *Item) CanFulfill(quantity decimal.Decimal) bool {
	return i.Quantity.GreaterThanOrEqual(quantity)
}

// IsBelowThreshold returns true if the quantity is under the low-stock threshold
func (i *Item) IsBelowThreshold() bool {
	return i.LowStockThreshold.GreaterThan(decimal.Zero) && i.Quantity.LessThan(i.LowStockThreshold)
}

// SetLowStockThreshold sets the low stock alert threshold
func (i *Item) SetLowStockThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Threshold cannot be negative")
	}
	i.LowStockThreshold = threshold
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// UpdateDetails updates the descriptive fields of the item
func (i *Item) UpdateDetails(name, category, barcode, description string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	i.Name = name
	i.Category = category
	i.Barcode = barcode
	i.Description = description
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// UpdatePricing updates cost and price
func (i *Item) UpdatePricing(cost, price decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	i.Cost = cost
	i.Price = price
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}
