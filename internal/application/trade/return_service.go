package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	appinventory "github.com/stocktrail/backend/internal/application/inventory"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stocktrail/backend/internal/domain/trade"
)

// ReturnService handles customer and supplier returns. Receiving a
// customer return restocks every line; supplier returns restock only
// when the deployment is configured to take returned goods back into
// sellable stock.
type ReturnService struct {
	scope                  TransactionScope
	returnRepo             trade.ReturnRepository
	itemRepo               inventory.ItemRepository
	stockService           *appinventory.StockService
	supplierReturnRestocks bool
	eventPublisher         shared.EventPublisher
}

// NewReturnService creates a new ReturnService
func NewReturnService(
	scope TransactionScope,
	returnRepo trade.ReturnRepository,
	itemRepo inventory.ItemRepository,
	stockService *appinventory.StockService,
	supplierReturnRestocks bool,
) *ReturnService {
	return &ReturnService{
		scope:                  scope,
		returnRepo:             returnRepo,
		itemRepo:               itemRepo,
		stockService:           stockService,
		supplierReturnRestocks: supplierReturnRestocks,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ReturnService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a return entry in requested status
func (s *ReturnService) Create(ctx context.Context, req CreateReturnRequest) (*ReturnResponse, error) {
	returnNumber, err := s.returnRepo.GenerateReturnNumber(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := trade.NewReturnEntry(returnNumber, trade.ReturnType(req.Type))
	if err != nil {
		return nil, err
	}

	lines, err := s.buildLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	if err := entry.ReplaceItems(lines); err != nil {
		return nil, err
	}
	entry.SetNotes(req.Notes)

	if err := s.returnRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToReturnResponse(entry)
	return &response, nil
}

// GetByID retrieves a return entry by ID
func (s *ReturnService) GetByID(ctx context.Context, id uuid.UUID) (*ReturnResponse, error) {
	entry, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToReturnResponse(entry)
	return &response, nil
}

// List retrieves return entries with filtering and pagination
func (s *ReturnService) List(ctx context.Context, filter OrderListFilter) (shared.Paginated[ReturnResponse], error) {
	f := toSharedFilter(filter)

	entries, err := s.returnRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[ReturnResponse]{}, err
	}
	total, err := s.returnRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[ReturnResponse]{}, err
	}

	responses := make([]ReturnResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToReturnResponse(&entries[i]))
	}
	return shared.NewPaginated(responses, total, f.Page, f.PageSize), nil
}

// Update applies field edits and an optional status transition.
// Entering received books the restock movements atomically with the
// status change; the same-status no-op in the aggregate guarantees the
// restock cannot double-fire.
func (s *ReturnService) Update(ctx context.Context, id uuid.UUID, req UpdateReturnRequest) (*ReturnResponse, error) {
	entry, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Items != nil {
		lines, err := s.buildLines(ctx, req.Items)
		if err != nil {
			return nil, err
		}
		if err := entry.ReplaceItems(lines); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		entry.SetNotes(*req.Notes)
	}

	if req.Status == nil {
		if err := s.returnRepo.Save(ctx, entry); err != nil {
			return nil, err
		}
		response := ToReturnResponse(entry)
		return &response, nil
	}

	wasReceived := entry.Status == trade.ReturnStatusReceived
	if err := entry.TransitionTo(trade.ReturnStatus(*req.Status), time.Now()); err != nil {
		return nil, err
	}
	enteredReceived := !wasReceived && entry.Status == trade.ReturnStatusReceived

	if !enteredReceived || !s.restocks(entry.Type) {
		if err := s.returnRepo.Save(ctx, entry); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, entry)
		response := ToReturnResponse(entry)
		return &response, nil
	}

	locationID, err := s.stockService.ResolveLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ReturnRepo().Save(ctx, entry); err != nil {
			return err
		}
		for _, line := range entry.Items {
			_, err := s.stockService.ApplyAdjustmentIn(ctx, repos, appinventory.AdjustmentRequest{
				ItemID:     line.ItemID,
				LocationID: &locationID,
				Type:       inventory.TransactionTypeReceive,
				Quantity:   line.Quantity,
				Reason:     "Return received",
				Reference:  entry.ReturnNumber,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, entry)

	response := ToReturnResponse(entry)
	return &response, nil
}

// Delete removes a return entry. Only entries still in requested can
// be deleted; received entries already moved stock.
func (s *ReturnService) Delete(ctx context.Context, id uuid.UUID) error {
	entry, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.Status != trade.ReturnStatusRequested {
		return shared.NewDomainError("INVALID_STATE", "Only requested returns can be deleted")
	}
	return s.returnRepo.Delete(ctx, id)
}

// restocks reports whether receiving this return type puts the goods
// back into sellable stock.
func (s *ReturnService) restocks(returnType trade.ReturnType) bool {
	if returnType == trade.ReturnTypeSupplier {
		return s.supplierReturnRestocks
	}
	return true
}

func (s *ReturnService) buildLines(ctx context.Context, requests []ReturnLineRequest) ([]trade.ReturnLineInput, error) {
	lines := make([]trade.ReturnLineInput, 0, len(requests))
	for _, req := range requests {
		if _, err := s.itemRepo.FindByID(ctx, req.ItemID); err != nil {
			return nil, err
		}
		lines = append(lines, trade.ReturnLineInput{
			ItemID:   req.ItemID,
			Quantity: req.Quantity,
			Reason:   req.Reason,
		})
	}
	return lines, nil
}

func (s *ReturnService) publishEvents(ctx context.Context, entry *trade.ReturnEntry) {
	if s.eventPublisher == nil {
		return
	}
	events := entry.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	entry.ClearDomainEvents()
}
