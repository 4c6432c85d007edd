package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/partner"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// LocationService handles stock locations. At most one location is the
// default at any time; moving the flag is delegated to the repository
// so it happens atomically.
type LocationService struct {
	locationRepo partner.LocationRepository
}

// NewLocationService creates a new LocationService
func NewLocationService(locationRepo partner.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

// Create creates a new stock location. The first location created
// becomes the default automatically so adjustments always have
// somewhere to land.
func (s *LocationService) Create(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	location, err := partner.NewLocation(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := location.UpdateDetails(req.Name, req.Address, req.City, req.Country, req.Notes); err != nil {
		return nil, err
	}

	makeDefault := req.IsDefault
	if _, err := s.locationRepo.FindDefault(ctx); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		makeDefault = true
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	if makeDefault {
		if err := s.locationRepo.SetDefault(ctx, location.ID); err != nil {
			return nil, err
		}
		location.SetDefault(true)
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// GetByID retrieves a location by ID
func (s *LocationService) GetByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToLocationResponse(location)
	return &response, nil
}

// List retrieves locations with filtering and pagination
func (s *LocationService) List(ctx context.Context, filter ListFilter) (shared.Paginated[LocationResponse], error) {
	f := toSharedFilter(filter)

	locations, err := s.locationRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[LocationResponse]{}, err
	}
	total, err := s.locationRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[LocationResponse]{}, err
	}

	responses := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		responses = append(responses, ToLocationResponse(&locations[i]))
	}
	return shared.NewPaginated(responses, total, f.Page, f.PageSize), nil
}

// Update updates a location's details
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := location.Name
	if req.Name != nil {
		name = *req.Name
	}
	address := location.Address
	if req.Address != nil {
		address = *req.Address
	}
	city := location.City
	if req.City != nil {
		city = *req.City
	}
	country := location.Country
	if req.Country != nil {
		country = *req.Country
	}
	notes := location.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := location.UpdateDetails(name, address, city, country, notes); err != nil {
		return nil, err
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	response := ToLocationResponse(location)
	return &response, nil
}

// SetDefault moves the default flag to the given location
func (s *LocationService) SetDefault(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	if _, err := s.locationRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.locationRepo.SetDefault(ctx, id); err != nil {
		return nil, err
	}
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToLocationResponse(location)
	return &response, nil
}

// Delete removes a location. The default location cannot be removed;
// the flag has to move first.
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if location.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete the default location")
	}
	return s.locationRepo.Delete(ctx, id)
}
