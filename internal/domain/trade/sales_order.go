package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// SalesOrderStatus represents the status of a sales order
type SalesOrderStatus string

const (
	SalesOrderStatusRequested SalesOrderStatus = "requested"
	SalesOrderStatusApproved  SalesOrderStatus = "approved"
	SalesOrderStatusReceived  SalesOrderStatus = "received"
)

// IsValid checks if the status is a valid SalesOrderStatus
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesOrderStatusRequested, SalesOrderStatusApproved, SalesOrderStatusReceived:
		return true
	}
	return false
}

// String returns the string representation of SalesOrderStatus
func (s SalesOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target.
// The path is strictly linear: requested → approved → received.
func (s SalesOrderStatus) CanTransitionTo(target SalesOrderStatus) bool {
	switch s {
	case SalesOrderStatusRequested:
		return target == SalesOrderStatusApproved
	case SalesOrderStatusApproved:
		return target == SalesOrderStatusReceived
	case SalesOrderStatusReceived:
		return false
	}
	return false
}

// IsTerminal returns true for the received status
func (s SalesOrderStatus) IsTerminal() bool {
	return s == SalesOrderStatusReceived
}

// SalesOrderItem represents a line item in a sales order
type SalesOrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName  string          `gorm:"type:varchar(200);not null"`
	SKU       string          `gorm:"type:varchar(50);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// NewSalesOrderItem creates a new sales order line
func NewSalesOrderItem(orderID, itemID uuid.UUID, itemName, sku string, quantity, unitPrice decimal.Decimal) (*SalesOrderItem, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &SalesOrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		ItemID:    itemID,
		ItemName:  itemName,
		SKU:       sku,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Amount:    quantity.Mul(unitPrice),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SalesOrder represents a customer order aggregate root
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber     string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerName    string           `gorm:"type:varchar(200);not null"`
	Status          SalesOrderStatus `gorm:"type:varchar(30);not null;default:'requested';index"`
	Items           []SalesOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	TaxRate         decimal.Decimal  `gorm:"type:decimal(8,4);not null;default:0.18"`
	TotalAmount     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ApprovedDate    *time.Time
	ReceivedDate    *time.Time
	DeliveryDate    *time.Time
	PaymentTerms    string `gorm:"type:varchar(200)"`
	ShippingAddress string `gorm:"type:text"`
	Notes           string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new sales order in requested status
func NewSalesOrder(orderNumber string, customerID uuid.UUID, customerName string) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	order := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Status:            SalesOrderStatusRequested,
		Items:             make([]SalesOrderItem, 0),
		TaxRate:           DefaultTaxRate,
		TotalAmount:       decimal.Zero,
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))

	return order, nil
}

// ReplaceItems replaces the order lines. Not allowed once received.
func (o *SalesOrder) ReplaceItems(lines []OrderLineInput) error {
	if o.Status.IsTerminal() {
		return shared.ErrInvalidState
	}

	items := make([]SalesOrderItem, 0, len(lines))
	for _, line := range lines {
		item, err := NewSalesOrderItem(o.ID, line.ItemID, line.ItemName, line.SKU, line.Quantity, line.UnitPrice)
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
func (o *SalesOrder) SetTaxRate(rate decimal.Decimal) error {
	if o.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	o.TaxRate = rate
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// SetTerms updates delivery and payment terms
func (o *SalesOrder) SetTerms(deliveryDate *time.Time, paymentTerms, shippingAddress, notes string) error {
	if o.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
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
func (o *SalesOrder) TransitionTo(target SalesOrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_ARGUMENT", fmt.Sprintf("Unknown sales order status %q", target))
	}
	if target == o.Status {
		return nil
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition sales order from %s to %s", o.Status, target))
	}

	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// MarkApproved transitions the order to approved and stamps the
// approval date. The stock issue happens in the application layer
// within the same unit of work.
func (o *SalesOrder) MarkApproved(now time.Time) error {
	if err := o.TransitionTo(SalesOrderStatusApproved); err != nil {
		return err
	}
	o.ApprovedDate = &now
	o.AddDomainEvent(NewSalesOrderApprovedEvent(o))
	return nil
}

// MarkReceived transitions the order to received, requiring a receipt date
func (o *SalesOrder) MarkReceived(receivedDate *time.Time) error {
	if receivedDate == nil {
		return shared.NewDomainError("MISSING_FIELD", "receivedDate is required to receive a sales order")
	}
	if err := o.TransitionTo(SalesOrderStatusReceived); err != nil {
		return err
	}
	o.ReceivedDate = receivedDate
	o.AddDomainEvent(NewSalesOrderReceivedEvent(o))
	return nil
}

// ReceiveAtCreation marks a freshly created order as received without
// walking the intermediate statuses. Only valid before the first save,
// while the order is still in its initial requested status.
func (o *SalesOrder) ReceiveAtCreation(receivedDate *time.Time) error {
	if receivedDate == nil {
		return shared.NewDomainError("MISSING_FIELD", "receivedDate is required to receive a sales order")
	}
	if o.Status != SalesOrderStatusRequested {
		return shared.ErrInvalidState
	}
	o.Status = SalesOrderStatusReceived
	o.ReceivedDate = receivedDate
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewSalesOrderReceivedEvent(o))
	return nil
}

// ItemCount returns the number of lines in the order
func (o *SalesOrder) ItemCount() int {
	return len(o.Items)
}

// TaxAmount returns the tax portion of the order total
func (o *SalesOrder) TaxAmount() decimal.Decimal {
	return o.TotalAmount.Mul(o.TaxRate).Round(4)
}

// GrandTotal returns the order total including tax
func (o *SalesOrder) GrandTotal() decimal.Decimal {
	return o.TotalAmount.Add(o.TaxAmount())
}

func (o *SalesOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}
