package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	appinventory "github.com/stocktrail/backend/internal/application/inventory"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/partner"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stocktrail/backend/internal/domain/trade"
)

// SalesOrderService handles customer order operations. Approval is the
// moment stock leaves the building: every line is checked against
// available stock and issued atomically with the status change. Buyers
// may only confirm receipt of an approved order.
type SalesOrderService struct {
	scope          TransactionScope
	orderRepo      trade.SalesOrderRepository
	itemRepo       inventory.ItemRepository
	customerRepo   partner.CustomerRepository
	stockService   *appinventory.StockService
	eventPublisher shared.EventPublisher
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	scope TransactionScope,
	orderRepo trade.SalesOrderRepository,
	itemRepo inventory.ItemRepository,
	customerRepo partner.CustomerRepository,
	stockService *appinventory.StockService,
) *SalesOrderService {
	return &SalesOrderService{
		scope:        scope,
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		stockService: stockService,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a sales order in requested status. A buyer supplying
// any other status is rejected outright. An admin may create an order
// directly in received, which issues the stock immediately after an
// availability check.
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest, role shared.Role) (*SalesOrderResponse, error) {
	if role.IsBuyer() && req.Status != "" && trade.SalesOrderStatus(req.Status) != trade.SalesOrderStatusRequested {
		return nil, shared.NewDomainError("INVALID_ARGUMENT", "Buyers can only create orders in requested status")
	}

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewSalesOrder(orderNumber, customer.ID, customer.Name)
	if err != nil {
		return nil, err
	}

	lines, err := s.buildLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	if err := order.ReplaceItems(lines); err != nil {
		return nil, err
	}
	if req.TaxRate != nil {
		if err := order.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}
	if err := order.SetTerms(req.DeliveryDate, req.PaymentTerms, req.ShippingAddress, req.Notes); err != nil {
		return nil, err
	}

	if role.IsAdmin() && trade.SalesOrderStatus(req.Status) == trade.SalesOrderStatusReceived {
		return s.createReceived(ctx, order, req)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// createReceived persists a new order directly in received, issuing
// the stock for every line in the same transaction.
func (s *SalesOrderService) createReceived(ctx context.Context, order *trade.SalesOrder, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	if err := order.ReceiveAtCreation(req.ReceivedDate); err != nil {
		return nil, err
	}

	locationID, err := s.stockService.ResolveLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := s.checkAvailability(ctx, repos, order); err != nil {
			return err
		}
		if err := repos.SalesOrderRepo().Save(ctx, order); err != nil {
			return err
		}
		return s.issueLines(ctx, repos, order, locationID, "SO received")
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, filter OrderListFilter) (shared.Paginated[SalesOrderResponse], error) {
	f := toSharedFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[SalesOrderResponse]{}, err
	}
	total, err := s.orderRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[SalesOrderResponse]{}, err
	}

	responses := make([]SalesOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToSalesOrderResponse(&orders[i]))
	}
	return shared.NewPaginated(responses, total, f.Page, f.PageSize), nil
}

// Update applies a role-gated update. Buyers may edit their requested
// orders and confirm receipt of approved ones; admins approve and
// receive. Received orders reject every change.
func (s *SalesOrderService) Update(ctx context.Context, id uuid.UUID, req UpdateSalesOrderRequest, role shared.Role) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, shared.ErrInvalidState
	}

	switch {
	case role.IsBuyer():
		return s.buyerUpdate(ctx, order, req)
	case role.IsAdmin():
		return s.adminUpdate(ctx, order, req)
	default:
		return nil, shared.ErrForbidden
	}
}

// buyerUpdate restricts the customer side to two moves: editing an
// order that is still requested, and confirming receipt of an approved
// order. Approval itself is an admin decision.
func (s *SalesOrderService) buyerUpdate(ctx context.Context, order *trade.SalesOrder, req UpdateSalesOrderRequest) (*SalesOrderResponse, error) {
	if req.Status != nil && trade.SalesOrderStatus(*req.Status) != order.Status {
		target := trade.SalesOrderStatus(*req.Status)
		if target != trade.SalesOrderStatusReceived || order.Status != trade.SalesOrderStatusApproved {
			return nil, shared.NewDomainError("INVALID_TRANSITION",
				"Buyers may only confirm receipt of an approved order")
		}
		// Receipt confirmation carries only the date; other fields in
		// the payload are ignored.
		if err := order.MarkReceived(req.ReceivedDate); err != nil {
			return nil, err
		}
		if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, order)
		response := ToSalesOrderResponse(order)
		return &response, nil
	}

	if order.Status != trade.SalesOrderStatusRequested {
		return nil, shared.ErrInvalidState
	}
	if err := s.applyFieldEdits(ctx, order, req); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// adminUpdate applies field edits and an optional status transition.
// Approval issues stock; receipt only stamps the date since the stock
// already left at approval.
func (s *SalesOrderService) adminUpdate(ctx context.Context, order *trade.SalesOrder, req UpdateSalesOrderRequest) (*SalesOrderResponse, error) {
	if err := s.applyFieldEdits(ctx, order, req); err != nil {
		return nil, err
	}

	if req.Status == nil || trade.SalesOrderStatus(*req.Status) == order.Status {
		if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, order)
		response := ToSalesOrderResponse(order)
		return &response, nil
	}

	switch target := trade.SalesOrderStatus(*req.Status); target {
	case trade.SalesOrderStatusApproved:
		return s.approve(ctx, order, req)
	case trade.SalesOrderStatusReceived:
		if err := order.MarkReceived(req.ReceivedDate); err != nil {
			return nil, err
		}
	default:
		if err := order.TransitionTo(target); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// approve moves the order to approved and issues one stock movement
// per line. All lines are checked against available stock before any
// is issued, so a short line fails the whole approval and nothing
// moves.
func (s *SalesOrderService) approve(ctx context.Context, order *trade.SalesOrder, req UpdateSalesOrderRequest) (*SalesOrderResponse, error) {
	if err := order.MarkApproved(time.Now()); err != nil {
		return nil, err
	}

	locationID, err := s.stockService.ResolveLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := s.checkAvailability(ctx, repos, order); err != nil {
			return err
		}
		if err := repos.SalesOrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}
		return s.issueLines(ctx, repos, order, locationID, "SO approved")
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// checkAvailability verifies every line against the item's current
// quantity before anything is issued.
func (s *SalesOrderService) checkAvailability(ctx context.Context, repos TransactionalRepositories, order *trade.SalesOrder) error {
	for _, line := range order.Items {
		item, err := repos.ItemRepo().FindByID(ctx, line.ItemID)
		if err != nil {
			return err
		}
		if !item.CanFulfill(line.Quantity) {
			return shared.ErrOutOfStock
		}
	}
	return nil
}

func (s *SalesOrderService) issueLines(ctx context.Context, repos TransactionalRepositories, order *trade.SalesOrder, locationID uuid.UUID, reason string) error {
	for _, line := range order.Items {
		_, err := s.stockService.ApplyAdjustmentIn(ctx, repos, appinventory.AdjustmentRequest{
			ItemID:     line.ItemID,
			LocationID: &locationID,
			Type:       inventory.TransactionTypeIssue,
			Quantity:   line.Quantity,
			Reason:     reason,
			Reference:  order.OrderNumber,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a sales order. Only orders still in requested can be
// deleted; approved orders already moved stock.
func (s *SalesOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status != trade.SalesOrderStatusRequested {
		return shared.NewDomainError("INVALID_STATE", "Only requested sales orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, id)
}

// applyFieldEdits applies the optional field updates shared by buyer
// and admin edits.
func (s *SalesOrderService) applyFieldEdits(ctx context.Context, order *trade.SalesOrder, req UpdateSalesOrderRequest) error {
	if req.Items != nil {
		lines, err := s.buildLines(ctx, req.Items)
		if err != nil {
			return err
		}
		if err := order.ReplaceItems(lines); err != nil {
			return err
		}
	}
	if req.TaxRate != nil {
		if err := order.SetTaxRate(*req.TaxRate); err != nil {
			return err
		}
	}

	deliveryDate := order.DeliveryDate
	if req.DeliveryDate != nil {
		deliveryDate = req.DeliveryDate
	}
	paymentTerms := order.PaymentTerms
	if req.PaymentTerms != nil {
		paymentTerms = *req.PaymentTerms
	}
	shippingAddress := order.ShippingAddress
	if req.ShippingAddress != nil {
		shippingAddress = *req.ShippingAddress
	}
	notes := order.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	return order.SetTerms(deliveryDate, paymentTerms, shippingAddress, notes)
}

// buildLines resolves each requested line against the item catalog,
// snapshotting name and SKU. A zero unit price falls back to the
// item's current selling price.
func (s *SalesOrderService) buildLines(ctx context.Context, requests []OrderLineRequest) ([]trade.OrderLineInput, error) {
	lines := make([]trade.OrderLineInput, 0, len(requests))
	for _, req := range requests {
		item, err := s.itemRepo.FindByID(ctx, req.ItemID)
		if err != nil {
			return nil, err
		}
		unitPrice := req.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = item.Price
		}
		lines = append(lines, trade.OrderLineInput{
			ItemID:    item.ID,
			ItemName:  item.Name,
			SKU:       item.SKU,
			Quantity:  req.Quantity,
			UnitPrice: unitPrice,
		})
	}
	return lines, nil
}

func (s *SalesOrderService) publishEvents(ctx context.Context, order *trade.SalesOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}
