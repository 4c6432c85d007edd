package partner

import (
	"strings"
	"time"

	"github.com/stocktrail/backend/internal/domain/shared"
)

// PartnerStatus represents the status of a supplier or customer record
type PartnerStatus string

const (
	PartnerStatusActive   PartnerStatus = "active"
	PartnerStatusInactive PartnerStatus = "inactive"
)

// Supplier represents a goods supplier in the partner context
type Supplier struct {
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
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(code, name string) (*Supplier, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Supplier code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            PartnerStatusActive,
	}, nil
}

// UpdateContact updates the supplier's contact details
func (s *Supplier) UpdateContact(contactName, phone, email, address string) {
	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.Address = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Rename changes the supplier's display name
func (s *Supplier) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Deactivate marks the supplier inactive
func (s *Supplier) Deactivate() {
	s.Status = PartnerStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
