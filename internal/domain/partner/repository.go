package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByCode(ctx context.Context, code string) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByCode(ctx context.Context, code string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// LocationRepository defines the interface for location persistence
type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	FindByCode(ctx context.Context, code string) (*Location, error)

	// FindDefault returns the location flagged as default, or
	// shared.ErrNotFound when none is configured.
	FindDefault(ctx context.Context) (*Location, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Location, error)
	Save(ctx context.Context, location *Location) error

	// SetDefault atomically moves the default flag to the given location
	SetDefault(ctx context.Context, id uuid.UUID) error

	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
