package partner

import (
	"strings"
	"time"

	"github.com/stocktrail/backend/internal/domain/shared"
)

// LocationStatus represents the status of a stock location
type LocationStatus string

const (
	LocationStatusActive   LocationStatus = "active"
	LocationStatusInactive LocationStatus = "inactive"
)

// Location represents a physical stock location (warehouse, store,
// stockroom). Exactly one location is expected to be flagged as the
// default; stock adjustments without an explicit location land there.
type Location struct {
	shared.BaseAggregateRoot
	Code      string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string         `gorm:"type:varchar(200);not null"`
	Address   string         `gorm:"type:text"`
	City      string         `gorm:"type:varchar(100)"`
	Country   string         `gorm:"type:varchar(100)"`
	IsDefault bool           `gorm:"not null;default:false"`
	Status    LocationStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes     string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new location with required fields
func NewLocation(code, name string) (*Location, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Location code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}

	return &Location{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            LocationStatusActive,
	}, nil
}

// SetDefault marks or unmarks this location as the default
func (l *Location) SetDefault(isDefault bool) {
	l.IsDefault = isDefault
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// Deactivate marks the location inactive. The default location cannot
// be deactivated without first moving the default elsewhere.
func (l *Location) Deactivate() error {
	if l.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "Cannot deactivate the default location")
	}
	l.Status = LocationStatusInactive
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// Activate marks the location active
func (l *Location) Activate() {
	l.Status = LocationStatusActive
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// UpdateDetails updates the descriptive fields of the location
func (l *Location) UpdateDetails(name, address, city, country, notes string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	l.Name = name
	l.Address = address
	l.City = city
	l.Country = country
	l.Notes = notes
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}
