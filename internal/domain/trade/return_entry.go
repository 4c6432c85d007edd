package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// ReturnType distinguishes goods coming back from a customer from
// goods previously sent back to a supplier.
type ReturnType string

const (
	ReturnTypeCustomer ReturnType = "customer"
	ReturnTypeSupplier ReturnType = "supplier"
)

// IsValid checks if the type is a known ReturnType
func (t ReturnType) IsValid() bool {
	return t == ReturnTypeCustomer || t == ReturnTypeSupplier
}

// ReturnStatus represents the status of a return entry
type ReturnStatus string

const (
	ReturnStatusRequested ReturnStatus = "requested"
	ReturnStatusReceived  ReturnStatus = "received"
	ReturnStatusClosed    ReturnStatus = "closed"
)

// IsValid checks if the status is a valid ReturnStatus
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusRequested, ReturnStatusReceived, ReturnStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of ReturnStatus
func (s ReturnStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target.
// Returns may close directly from requested without passing through
// received.
func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	switch s {
	case ReturnStatusRequested:
		return target == ReturnStatusReceived || target == ReturnStatusClosed
	case ReturnStatusReceived:
		return target == ReturnStatusClosed
	case ReturnStatusClosed:
		return false
	}
	return false
}

// ReturnItem represents one returned line
type ReturnItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason    string          `gorm:"type:varchar(500)"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnItem) TableName() string {
	return "return_items"
}

// NewReturnItem creates a new return line
func NewReturnItem(returnID, itemID uuid.UUID, quantity decimal.Decimal, reason string) (*ReturnItem, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now()
	return &ReturnItem{
		ID:        uuid.New(),
		ReturnID:  returnID,
		ItemID:    itemID,
		Quantity:  quantity,
		Reason:    reason,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ReturnEntry represents a customer or supplier return aggregate root
type ReturnEntry struct {
	shared.BaseAggregateRoot
	ReturnNumber string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type         ReturnType   `gorm:"column:return_type;type:varchar(20);not null"`
	Status       ReturnStatus `gorm:"type:varchar(20);not null;default:'requested';index"`
	Items        []ReturnItem `gorm:"foreignKey:ReturnID;references:ID"`
	ReceivedDate *time.Time
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReturnEntry) TableName() string {
	return "return_entries"
}

// NewReturnEntry creates a new return entry in requested status
func NewReturnEntry(returnNumber string, returnType ReturnType) (*ReturnEntry, error) {
	if returnNumber == "" {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number cannot be empty")
	}
	if !returnType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ARGUMENT", fmt.Sprintf("Unknown return type %q", returnType))
	}

	return &ReturnEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReturnNumber:      returnNumber,
		Type:              returnType,
		Status:            ReturnStatusRequested,
		Items:             make([]ReturnItem, 0),
	}, nil
}

// ReplaceItems replaces the return lines. Only allowed while requested.
func (r *ReturnEntry) ReplaceItems(lines []ReturnLineInput) error {
	if r.Status != ReturnStatusRequested {
		return shared.ErrInvalidState
	}

	items := make([]ReturnItem, 0, len(lines))
	for _, line := range lines {
		item, err := NewReturnItem(r.ID, line.ItemID, line.Quantity, line.Reason)
		if err != nil {
			return err
		}
		items = append(items, *item)
	}

	r.Items = items
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// SetNotes updates the free-form notes
func (r *ReturnEntry) SetNotes(notes string) {
	r.Notes = notes
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// TransitionTo moves the return to the target status. A same-status
// request is a no-op, so receipt side effects cannot double-fire.
func (r *ReturnEntry) TransitionTo(target ReturnStatus, now time.Time) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_ARGUMENT", fmt.Sprintf("Unknown return status %q", target))
	}
	if target == r.Status {
		return nil
	}
	if !r.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition return from %s to %s", r.Status, target))
	}

	r.Status = target
	if target == ReturnStatusReceived {
		r.ReceivedDate = &now
		r.AddDomainEvent(NewReturnReceivedEvent(r))
	}
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// ReturnLineInput carries one requested return line into the aggregate
type ReturnLineInput struct {
	ItemID   uuid.UUID
	Quantity decimal.Decimal
	Reason   string
}
