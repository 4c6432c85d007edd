package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/partner"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// CustomerService handles customer master data
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreatePartnerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	customer.UpdateContact(req.ContactName, req.Phone, req.Email, req.Address)
	customer.Notes = req.Notes

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, filter ListFilter) (shared.Paginated[CustomerResponse], error) {
	f := toSharedFilter(filter)

	customers, err := s.customerRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}
	total, err := s.customerRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	return shared.NewPaginated(responses, total, f.Page, f.PageSize), nil
}

// Update updates a customer's details
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdatePartnerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := customer.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	contactName := customer.ContactName
	if req.ContactName != nil {
		contactName = *req.ContactName
	}
	phone := customer.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	email := customer.Email
	if req.Email != nil {
		email = *req.Email
	}
	address := customer.Address
	if req.Address != nil {
		address = *req.Address
	}
	customer.UpdateContact(contactName, phone, email, address)
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}
