package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// ItemService handles item catalog operations
type ItemService struct {
	itemRepo       inventory.ItemRepository
	stockService   *StockService
	eventPublisher shared.EventPublisher
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo inventory.ItemRepository, stockService *StockService) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		stockService: stockService,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ItemService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new item. When an opening quantity is given, the
// initial stock goes through the regular adjustment path so the
// opening balance is recorded in the ledger like any other movement.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	exists, err := s.itemRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An item with this SKU already exists")
	}

	item, err := inventory.NewItem(req.SKU, req.Name, req.Cost, req.Price)
	if err != nil {
		return nil, err
	}
	if !req.LowStockThreshold.IsZero() {
		if err := item.SetLowStockThreshold(req.LowStockThreshold); err != nil {
			return nil, err
		}
	}
	if req.Name != "" {
		if err := item.UpdateDetails(req.Name, req.Category, req.Barcode, req.Description); err != nil {
			return nil, err
		}
	}
	item.AddDomainEvent(inventory.NewItemCreatedEvent(item))

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, item)

	if req.OpeningQuantity.GreaterThan(decimal.Zero) {
		result, err := s.stockService.ApplyAdjustment(ctx, AdjustmentRequest{
			ItemID:     item.ID,
			LocationID: req.LocationID,
			Type:       inventory.TransactionTypeReceive,
			Quantity:   req.OpeningQuantity,
			Reason:     "Opening balance",
		})
		if err != nil {
			return nil, err
		}
		item = result.Item
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// GetBySKU retrieves an item by SKU
func (s *ItemService) GetBySKU(ctx context.Context, sku string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves items with filtering and pagination
func (s *ItemService) List(ctx context.Context, filter ItemListFilter) (shared.Paginated[ItemResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	if filter.Category != "" {
		f.Filters["category"] = filter.Category
	}

	var (
		items []inventory.Item
		err   error
	)
	if filter.BelowThreshold != nil && *filter.BelowThreshold {
		items, err = s.itemRepo.FindBelowThreshold(ctx, f)
	} else {
		items, err = s.itemRepo.FindAll(ctx, f)
	}
	if err != nil {
		return shared.Paginated[ItemResponse]{}, err
	}

	total, err := s.itemRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[ItemResponse]{}, err
	}

	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToItemResponse(&items[i]))
	}
	return shared.NewPaginated(responses, total, f.Page, f.PageSize), nil
}

// Update updates item details and pricing. Quantity cannot be set
// here; stock only moves through adjustments.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := item.Name
	if req.Name != nil {
		name = *req.Name
	}
	category := item.Category
	if req.Category != nil {
		category = *req.Category
	}
	barcode := item.Barcode
	if req.Barcode != nil {
		barcode = *req.Barcode
	}
	description := item.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := item.UpdateDetails(name, category, barcode, description); err != nil {
		return nil, err
	}

	if req.Cost != nil || req.Price != nil {
		cost := item.Cost
		if req.Cost != nil {
			cost = *req.Cost
		}
		price := item.Price
		if req.Price != nil {
			price = *req.Price
		}
		if err := item.UpdatePricing(cost, price); err != nil {
			return nil, err
		}
	}

	if req.LowStockThreshold != nil {
		if err := item.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, item)

	response := ToItemResponse(item)
	return &response, nil
}

// Delete removes an item. Items that still hold stock cannot be
// deleted; the quantity has to be adjusted out first.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if item.Quantity.GreaterThan(decimal.Zero) {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete an item that still holds stock")
	}
	return s.itemRepo.Delete(ctx, id)
}

func (s *ItemService) publishEvents(ctx context.Context, item *inventory.Item) {
	if s.eventPublisher == nil {
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	item.ClearDomainEvents()
}
