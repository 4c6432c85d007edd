package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// StockLevel is a ledger row recording physical stock of one item at
// one location. The (ItemID, LocationID) pair is unique; quantity never
// goes negative. Rows are created lazily on the first adjustment to a
// location and are never deleted in normal flow.
type StockLevel struct {
	shared.BaseEntity
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_level_item_location,priority:1"`
	LocationID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_level_item_location,priority:2"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates a ledger row for an item at a location.
// The opening quantity must not be negative: a row cannot be born in
// deficit, which is how a decrement against a missing row fails.
func NewStockLevel(itemID, locationID uuid.UUID, quantity decimal.Decimal) (*StockLevel, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.ErrInsufficientStock
	}

	return &StockLevel{
		BaseEntity: shared.NewBaseEntity(),
		ItemID:     itemID,
		LocationID: locationID,
		Quantity:   quantity,
	}, nil
}

// Apply applies a signed delta to the row, rejecting any change that
// would take the quantity negative. On rejection the row is unchanged.
func (s *StockLevel) Apply(delta decimal.Decimal) error {
	newQuantity := s.Quantity.Add(delta)
	if newQuantity.IsNegative() {
		return shared.ErrInsufficientStock
	}
	s.Quantity = newQuantity
	s.UpdatedAt = time.Now()
	return nil
}
