package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/partner"
)

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a supplier to its response representation
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		Status:      string(s.Status),
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a customer to its response representation
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		ContactName: c.ContactName,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		Status:      string(c.Status),
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// LocationResponse represents a stock location in API responses
type LocationResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	IsDefault bool      `json:"is_default"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToLocationResponse converts a location to its response representation
func ToLocationResponse(l *partner.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID,
		Code:      l.Code,
		Name:      l.Name,
		Address:   l.Address,
		City:      l.City,
		Country:   l.Country,
		IsDefault: l.IsDefault,
		Status:    string(l.Status),
		Notes:     l.Notes,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// CreatePartnerRequest represents a request to create a supplier or customer
type CreatePartnerRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// UpdatePartnerRequest represents a request to update a supplier or customer
type UpdatePartnerRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
}

// CreateLocationRequest represents a request to create a stock location
type CreateLocationRequest struct {
	Code      string `json:"code" binding:"required,min=1,max=50"`
	Name      string `json:"name" binding:"required,min=1,max=200"`
	Address   string `json:"address"`
	City      string `json:"city" binding:"max=100"`
	Country   string `json:"country" binding:"max=100"`
	IsDefault bool   `json:"is_default"`
	Notes     string `json:"notes"`
}

// UpdateLocationRequest represents a request to update a stock location
type UpdateLocationRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
	City    *string `json:"city" binding:"omitempty,max=100"`
	Country *string `json:"country" binding:"omitempty,max=100"`
	Notes   *string `json:"notes"`
}

// ListFilter represents filter options for partner lists
type ListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}
