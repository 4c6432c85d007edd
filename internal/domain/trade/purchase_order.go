package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusRequested         PurchaseOrderStatus = "requested"
	PurchaseOrderStatusSupplierSubmitted PurchaseOrderStatus = "supplier_submitted"
	PurchaseOrderStatusApproved          PurchaseOrderStatus = "approved"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "received"
)

// DefaultTaxRate is applied to new purchase orders unless one is given
var DefaultTaxRate = decimal.NewFromFloat(0.18)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusRequested, PurchaseOrderStatusSupplierSubmitted,
		PurchaseOrderStatusApproved, PurchaseOrderStatusReceived:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target.
// The path is strictly linear: requested → supplier_submitted →
// approved → received. Received is terminal.
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusRequested:
		return target == PurchaseOrderStatusSupplierSubmitted
	case PurchaseOrderStatusSupplierSubmitted:
		return target == PurchaseOrderStatusApproved
	case PurchaseOrderStatusApproved:
		return target == PurchaseOrderStatusReceived
	case PurchaseOrderStatusReceived:
		return false
	}
	return false
}

// IsTerminal returns true for the received status
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusReceived
}

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID   uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName string          `gorm:"type:varchar(200);not null"`
	SKU      string          `gorm:"type:varchar(50);not null"`
	Quantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates a new purchase order line
func NewPurchaseOrderItem(orderID, itemID uuid.UUID, itemName, sku string, quantity, unitCost decimal.Decimal) (*PurchaseOrderItem, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		ItemID:    itemID,
		ItemName:  itemName,
		SKU:       sku,
		Quantity:  quantity,
		UnitCost:  unitCost,
		Amount:    quantity.Mul(unitCost),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// PurchaseOrder represents a supplier order aggregate root.
// It moves through a strictly linear status path and, once received,
// is permanently locked against further edits.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber     string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName    string              `gorm:"type:varchar(200);not null"`
	Status          PurchaseOrderStatus `gorm:"type:varchar(30);not null;default:'requested';index"`
	Items           []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	TaxRate         decimal.Decimal     `gorm:"type:decimal(8,4);not null;default:0.18"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	ExpectedDate    *time.Time
	DeliveryDate    *time.Time
	ReceivedDate    *time.Time
	PaymentTerms    string `gorm:"type:varchar(200)"`
	ShippingAddress string `gorm:"type:text"`
	Notes           string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order in requested status
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID, supplierName string) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Status:            PurchaseOrderStatusRequested,
		Items:             make([]PurchaseOrderItem, 0),
		TaxRate:           DefaultTaxRate,
		TotalAmount:       decimal.Zero,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// ReplaceItems replaces the order lines. Not allowed once received.
func (o *PurchaseOrder) ReplaceItems(lines []OrderLineInput) error {
	if o.Status.IsTerminal() {
		return shared.ErrOrderLocked
	}

	items := make([]PurchaseOrderItem, 0, len(lines))
	for _, line := range lines {
		item, err := NewPurchaseOrderItem(o.ID, line.ItemID, line.ItemName, line.SKU, line.Quantity, line.UnitPrice)
		if err != nil {
			return err
		}
		items = append(items, *item)
	}

	o.Items = items
	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// SetTaxRate sets the order tax rate
func (o *PurchaseOrder) SetTaxRate(rate decimal.Decimal) error {
	if o.Status.IsTerminal() {
		return shared.ErrOrderLocked
	}
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	o.TaxRate = rate
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// SetTerms updates the delivery and payment terms of the order
func (o *PurchaseOrder) SetTerms(expectedDate, deliveryDate *time.Time, paymentTerms, shippingAddress, notes string) error {
	if o.Status.IsTerminal() {
		return shared.ErrOrderLocked
	}
	o.ExpectedDate = expectedDate
	o.DeliveryDate = deliveryDate
	o.PaymentTerms = paymentTerms
	o.ShippingAddress = shippingAddress
	o.Notes = notes
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// TransitionTo moves the order to the target status, validating the
// transition table. A same-status request is a no-op.
func (o *PurchaseOrder) TransitionTo(target PurchaseOrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_ARGUMENT", fmt.Sprintf("Unknown purchase order status %q", target))
	}
	if target == o.Status {
		return nil
	}
	if o.Status.IsTerminal() {
		return shared.ErrOrderLocked
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition purchase order from %s to %s", o.Status, target))
	}

	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// MarkReceived transitions the order to received, requiring a receipt
// date. Entering received triggers the per-line stock receipt in the
// application layer; the aggregate only guards the transition.
func (o *PurchaseOrder) MarkReceived(receivedDate *time.Time) error {
	if receivedDate == nil {
		return shared.NewDomainError("MISSING_FIELD", "receivedDate is required to receive a purchase order")
	}
	if err := o.TransitionTo(PurchaseOrderStatusReceived); err != nil {
		return err
	}
	o.ReceivedDate = receivedDate
	o.AddDomainEvent(NewPurchaseOrderReceivedEvent(o))
	return nil
}

// ReceiveAtCreation marks a freshly created order as received without
// walking the intermediate statuses. Only valid before the first save,
// while the order is still in its initial requested status.
func (o *PurchaseOrder) ReceiveAtCreation(receivedDate *time.Time) error {
	if receivedDate == nil {
		return shared.NewDomainError("MISSING_FIELD", "receivedDate is required to receive a purchase order")
	}
	if o.Status != PurchaseOrderStatusRequested {
		return shared.ErrInvalidState
	}
	o.Status = PurchaseOrderStatusReceived
	o.ReceivedDate = receivedDate
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewPurchaseOrderReceivedEvent(o))
	return nil
}

// IsLocked returns true once the order has been received
func (o *PurchaseOrder) IsLocked() bool {
	return o.Status.IsTerminal()
}

// ItemCount returns the number of lines in the order
func (o *PurchaseOrder) ItemCount() int {
	return len(o.Items)
}

// TaxAmount returns the tax portion of the order total
func (o *PurchaseOrder) TaxAmount() decimal.Decimal {
	return o.TotalAmount.Mul(o.TaxRate).Round(4)
}

// GrandTotal returns the order total including tax
func (o *PurchaseOrder) GrandTotal() decimal.Decimal {
	return o.TotalAmount.Add(o.TaxAmount())
}

func (o *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}

// OrderLineInput carries one requested order line into an aggregate
type OrderLineInput struct {
	ItemID    uuid.UUID
	ItemName  string
	SKU       string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}
