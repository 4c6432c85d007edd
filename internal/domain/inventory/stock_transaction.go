package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// TransactionType classifies a stock movement
type TransactionType string

const (
	TransactionTypeReceive TransactionType = "receive"
	TransactionTypeIssue   TransactionType = "issue"
	TransactionTypeAdjust  TransactionType = "adjust"
)

// IsValid checks if the type is a known TransactionType
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeReceive, TransactionTypeIssue, TransactionTypeAdjust:
		return true
	}
	return false
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// SignedDelta converts a requested quantity into the signed ledger delta
// for this movement type: receive adds, issue subtracts, adjust carries
// the raw signed quantity through.
func (t TransactionType) SignedDelta(quantity decimal.Decimal) (decimal.Decimal, error) {
	switch t {
	case TransactionTypeReceive:
		return quantity.Abs(), nil
	case TransactionTypeIssue:
		return quantity.Abs().Neg(), nil
	case TransactionTypeAdjust:
		return quantity, nil
	}
	return decimal.Zero, shared.NewDomainError("INVALID_ARGUMENT", "Unknown adjustment type: "+string(t))
}

// StockTransaction is the immutable record of one stock movement.
// Rows are append-only; together they form the audit trail of all
// quantity changes.
type StockTransaction struct {
	shared.BaseEntity
	ItemID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type           TransactionType `gorm:"column:transaction_type;type:varchar(20);not null;index"`
	QuantityChange decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason         string          `gorm:"type:varchar(500)"`
	Reference      string          `gorm:"type:varchar(100);index"`
}

// TableName returns the table name for GORM
func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// NewStockTransaction creates a stock movement record
func NewStockTransaction(itemID, locationID uuid.UUID, txType TransactionType, quantityChange decimal.Decimal, reason, reference string) (*StockTransaction, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ARGUMENT", "Unknown transaction type: "+string(txType))
	}
	if quantityChange.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity change cannot be zero")
	}

	return &StockTransaction{
		BaseEntity:     shared.NewBaseEntity(),
		ItemID:         itemID,
		LocationID:     locationID,
		Type:           txType,
		QuantityChange: quantityChange,
		Reason:         reason,
		Reference:      reference,
	}, nil
}

// IsInbound returns true if the movement increased stock
func (t *StockTransaction) IsInbound() bool {
	return t.QuantityChange.GreaterThan(decimal.Zero)
}
