package partner

import (
	"strings"
	"time"

	"github.com/stocktrail/backend/internal/domain/shared"
)

// Customer represents a buyer of goods in the partner context
type Customer struct {
	shared.BaseAggregateRoot
	Code        string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string        `gorm:"type:varchar(200);not null"`
	ContactName string        `gorm:"type:varchar(100)"`
	Phone       string        `gorm:"type:varchar(50)"`
	Email       string        `gorm:"type:varchar(200)"`
	Address     string        `gorm:"type:text"`
	Status      PartnerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string        `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(code, name string) (*Customer, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            PartnerStatusActive,
	}, nil
}

// UpdateContact updates the customer's contact details
func (c *Customer) UpdateContact(contactName, phone, email, address string) {
	c.ContactName = contactName
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Rename changes the customer's display name
func (c *Customer) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Deactivate marks the customer inactive
func (c *Customer) Deactivate() {
	c.Status = PartnerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
