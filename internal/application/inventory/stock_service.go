package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/partner"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// StockService applies stock movements. Every movement updates three
// records together: the item's denormalized quantity, the per-location
// ledger row, and an append-only StockTransaction. The three writes run
// in one transaction scope so the mirror can never drift from the
// ledger.
type StockService struct {
	scope          TransactionScope
	itemRepo       inventory.ItemRepository
	levelRepo      inventory.StockLevelRepository
	txRepo         inventory.StockTransactionRepository
	locationRepo   partner.LocationRepository
	eventPublisher shared.EventPublisher
}

// NewStockService creates a new StockService
func NewStockService(
	scope TransactionScope,
	itemRepo inventory.ItemRepository,
	levelRepo inventory.StockLevelRepository,
	txRepo inventory.StockTransactionRepository,
	locationRepo partner.LocationRepository,
) *StockService {
	return &StockService{
		scope:        scope,
		itemRepo:     itemRepo,
		levelRepo:    levelRepo,
		txRepo:       txRepo,
		locationRepo: locationRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ResolveLocation returns the explicit location when given, otherwise
// the configured default location. A missing default is a deployment
// problem, not a caller mistake, so it maps to a configuration error.
func (s *StockService) ResolveLocation(ctx context.Context, locationID *uuid.UUID) (uuid.UUID, error) {
	if locationID != nil && *locationID != uuid.Nil {
		loc, err := s.locationRepo.FindByID(ctx, *locationID)
		if err != nil {
			return uuid.Nil, err
		}
		return loc.ID, nil
	}

	loc, err := s.locationRepo.FindDefault(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.NewDomainError("CONFIGURATION_ERROR", "No default location is configured")
		}
		return uuid.Nil, err
	}
	return loc.ID, nil
}

// ApplyAdjustment resolves the location, applies the movement in one
// transaction, and publishes the resulting domain events after commit.
func (s *StockService) ApplyAdjustment(ctx context.Context, req AdjustmentRequest) (*AdjustmentResult, error) {
	locationID, err := s.ResolveLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	req.LocationID = &locationID

	var result *AdjustmentResult
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var innerErr error
		result, innerErr = s.ApplyAdjustmentIn(ctx, repos, req)
		return innerErr
	})
	if err != nil {
		return nil, err
	}

	s.publishMovementEvents(ctx, result, req)
	return result, nil
}

// ApplyAdjustmentIn applies one movement using repositories that are
// already bound to an open transaction. Callers composing a movement
// with other writes (order receipt, return receipt) use this so the
// whole unit commits or rolls back together. LocationID must already
// be resolved. Domain events stay pending on the returned item; the
// caller publishes them after its own commit.
func (s *StockService) ApplyAdjustmentIn(ctx context.Context, repos TransactionalRepositories, req AdjustmentRequest) (*AdjustmentResult, error) {
	if req.LocationID == nil || *req.LocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	locationID := *req.LocationID

	delta, err := req.Type.SignedDelta(req.Quantity)
	if err != nil {
		return nil, err
	}
	if delta.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity change cannot be zero")
	}

	item, err := repos.ItemRepo().FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	// Mirror first: the cheap in-memory check rejects most overdraws
	// before any row is touched.
	if err := item.ApplyDelta(delta); err != nil {
		return nil, err
	}
	if err := repos.ItemRepo().SaveWithLock(ctx, item); err != nil {
		return nil, err
	}

	if err := s.applyToLedger(ctx, repos.StockLevelRepo(), item.ID, locationID, delta); err != nil {
		return nil, err
	}

	record, err := inventory.NewStockTransaction(item.ID, locationID, req.Type, delta, req.Reason, req.Reference)
	if err != nil {
		return nil, err
	}
	if err := repos.StockTransactionRepo().Create(ctx, record); err != nil {
		return nil, err
	}

	return &AdjustmentResult{Item: item, Transaction: record}, nil
}

// applyToLedger adjusts the per-location row, creating it on first
// receipt. The decrement path relies on the repository's conditional
// update so a concurrent movement cannot drive the row negative.
func (s *StockService) applyToLedger(ctx context.Context, levels inventory.StockLevelRepository, itemID, locationID uuid.UUID, delta decimal.Decimal) error {
	err := levels.ApplyDelta(ctx, itemID, locationID, delta)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	// No row yet for this (item, location) pair.
	if delta.IsNegative() {
		return shared.ErrInsufficientStock
	}
	level, err := inventory.NewStockLevel(itemID, locationID, delta)
	if err != nil {
		return err
	}
	return levels.Create(ctx, level)
}

func (s *StockService) publishMovementEvents(ctx context.Context, result *AdjustmentResult, req AdjustmentRequest) {
	if s.eventPublisher == nil || result == nil {
		return
	}
	events := result.Item.GetDomainEvents()
	events = append(events, inventory.NewStockMovementAppliedEvent(result.Item, req.Type, result.Transaction.QuantityChange, req.Reason))
	_ = s.eventPublisher.Publish(ctx, events...)
	result.Item.ClearDomainEvents()
}

// GetTransactions lists movement records with filtering and pagination
func (s *StockService) GetTransactions(ctx context.Context, filter TransactionListFilter) (shared.Paginated[StockTransactionResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.ItemID != nil {
		f.Filters["item_id"] = *filter.ItemID
	}
	if filter.Type != "" {
		f.Filters["type"] = filter.Type
	}

	var (
		records []inventory.StockTransaction
		err     error
	)
	switch {
	case filter.StartDate != nil && filter.EndDate != nil:
		records, err = s.txRepo.FindByDateRange(ctx, *filter.StartDate, *filter.EndDate, f)
	default:
		records, err = s.txRepo.FindAll(ctx, f)
	}
	if err != nil {
		return shared.Paginated[StockTransactionResponse]{}, err
	}

	total, err := s.txRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[StockTransactionResponse]{}, err
	}

	responses := make([]StockTransactionResponse, 0, len(records))
	for i := range records {
		responses = append(responses, ToStockTransactionResponse(&records[i]))
	}
	return shared.NewPaginated(responses, total, f.Page, f.PageSize), nil
}

// GetStockLevels lists per-location ledger rows for an item
func (s *StockService) GetStockLevels(ctx context.Context, itemID uuid.UUID) ([]StockLevelResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return nil, err
	}
	levels, err := s.levelRepo.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	responses := make([]StockLevelResponse, 0, len(levels))
	for i := range levels {
		responses = append(responses, ToStockLevelResponse(&levels[i]))
	}
	return responses, nil
}

// GetStockByLocation lists ledger rows at one location
func (s *StockService) GetStockByLocation(ctx context.Context, locationID uuid.UUID, page, pageSize int) (shared.Paginated[StockLevelResponse], error) {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}
	f.Filters["location_id"] = locationID

	levels, err := s.levelRepo.FindByLocation(ctx, locationID, f)
	if err != nil {
		return shared.Paginated[StockLevelResponse]{}, err
	}
	total, err := s.levelRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[StockLevelResponse]{}, err
	}

	responses := make([]StockLevelResponse, 0, len(levels))
	for i := range levels {
		responses = append(responses, ToStockLevelResponse(&levels[i]))
	}
	return shared.NewPaginated(responses, total, f.Page, f.PageSize), nil
}
