package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/partner"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// SupplierService handles supplier master data
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreatePartnerRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	supplier.UpdateContact(req.ContactName, req.Phone, req.Email, req.Address)
	supplier.Notes = req.Notes

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, filter ListFilter) (shared.Paginated[SupplierResponse], error) {
	f := toSharedFilter(filter)

	suppliers, err := s.supplierRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[SupplierResponse]{}, err
	}
	total, err := s.supplierRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[SupplierResponse]{}, err
	}

	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return shared.NewPaginated(responses, total, f.Page, f.PageSize), nil
}

// Update updates a supplier's details
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdatePartnerRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := supplier.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	contactName := supplier.ContactName
	if req.ContactName != nil {
		contactName = *req.ContactName
	}
	phone := supplier.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	email := supplier.Email
	if req.Email != nil {
		email = *req.Email
	}
	address := supplier.Address
	if req.Address != nil {
		address = *req.Address
	}
	supplier.UpdateContact(contactName, phone, email, address)
	if req.Notes != nil {
		supplier.Notes = *req.Notes
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.supplierRepo.Delete(ctx, id)
}

// toSharedFilter converts a list filter into repository filter options
func toSharedFilter(filter ListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	return f
}
