package trade

import (
	"context"

	"github.com/google/uuid"
	appinventory "github.com/stocktrail/backend/internal/application/inventory"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/partner"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stocktrail/backend/internal/domain/trade"
)

// PurchaseOrderService handles supplier order operations. Status
// transitions are role-gated: sellers may only push their own orders
// from requested to supplier_submitted, while admins walk the rest of
// the path. Receiving an order books one stock receipt per line in the
// same transaction as the status change.
type PurchaseOrderService struct {
	scope          TransactionScope
	orderRepo      trade.PurchaseOrderRepository
	itemRepo       inventory.ItemRepository
	supplierRepo   partner.SupplierRepository
	stockService   *appinventory.StockService
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	scope TransactionScope,
	orderRepo trade.PurchaseOrderRepository,
	itemRepo inventory.ItemRepository,
	supplierRepo partner.SupplierRepository,
	stockService *appinventory.StockService,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		scope:        scope,
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		supplierRepo: supplierRepo,
		stockService: stockService,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a purchase order. The initial status is always
// requested no matter what the caller supplies, with one exception: an
// admin may create an order directly in received, which books the
// stock receipt immediately.
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest, role shared.Role) (*PurchaseOrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewPurchaseOrder(orderNumber, supplier.ID, supplier.Name)
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
	if err := order.SetTerms(req.ExpectedDate, req.DeliveryDate, req.PaymentTerms, req.ShippingAddress, req.Notes); err != nil {
		return nil, err
	}

	if role.IsAdmin() && trade.PurchaseOrderStatus(req.Status) == trade.PurchaseOrderStatusReceived {
		return s.createReceived(ctx, order, req)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// createReceived persists a new order directly in received together
// with its per-line stock receipts.
func (s *PurchaseOrderService) createReceived(ctx context.Context, order *trade.PurchaseOrder, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if err := order.ReceiveAtCreation(req.ReceivedDate); err != nil {
		return nil, err
	}

	locationID, err := s.stockService.ResolveLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.PurchaseOrderRepo().Save(ctx, order); err != nil {
			return err
		}
		return s.receiveLines(ctx, repos, order, locationID)
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List retrieves purchase orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter OrderListFilter) (shared.Paginated[PurchaseOrderResponse], error) {
	f := toSharedFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[PurchaseOrderResponse]{}, err
	}
	total, err := s.orderRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[PurchaseOrderResponse]{}, err
	}

	responses := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToPurchaseOrderResponse(&orders[i]))
	}
	return shared.NewPaginated(responses, total, f.Page, f.PageSize), nil
}

// Update applies a role-gated update. Sellers may edit and submit
// orders still in requested; admins walk the status path, including
// the receipt. Received orders reject every change.
func (s *PurchaseOrderService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseOrderRequest, role shared.Role) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsLocked() {
		return nil, shared.ErrOrderLocked
	}

	switch {
	case role.IsSeller():
		return s.sellerUpdate(ctx, order, req)
	case role.IsAdmin():
		return s.adminUpdate(ctx, order, req)
	default:
		return nil, shared.ErrForbidden
	}
}

// sellerUpdate lets the supplier side fill in terms and lines while
// the order is still in requested, then force-moves it to
// supplier_submitted. Sellers cannot pick a status themselves.
func (s *PurchaseOrderService) sellerUpdate(ctx context.Context, order *trade.PurchaseOrder, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if order.Status != trade.PurchaseOrderStatusRequested {
		return nil, shared.ErrInvalidState
	}

	if err := s.applyFieldEdits(ctx, order, req); err != nil {
		return nil, err
	}
	if err := order.TransitionTo(trade.PurchaseOrderStatusSupplierSubmitted); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// adminUpdate applies field edits and an optional status transition.
// Entering received requires a receipt date and books the stock
// receipt atomically with the order save.
func (s *PurchaseOrderService) adminUpdate(ctx context.Context, order *trade.PurchaseOrder, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if err := s.applyFieldEdits(ctx, order, req); err != nil {
		return nil, err
	}

	if req.Status == nil || trade.PurchaseOrderStatus(*req.Status) == order.Status {
		if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, order)
		response := ToPurchaseOrderResponse(order)
		return &response, nil
	}

	target := trade.PurchaseOrderStatus(*req.Status)
	if target == trade.PurchaseOrderStatusReceived {
		return s.receive(ctx, order, req)
	}

	if err := order.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// receive moves the order to received and books one stock receipt per
// line. The order save and all movements share one transaction; any
// failure rolls back the whole receipt.
func (s *PurchaseOrderService) receive(ctx context.Context, order *trade.PurchaseOrder, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if err := order.MarkReceived(req.ReceivedDate); err != nil {
		return nil, err
	}

	locationID, err := s.stockService.ResolveLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.PurchaseOrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}
		return s.receiveLines(ctx, repos, order, locationID)
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

func (s *PurchaseOrderService) receiveLines(ctx context.Context, repos TransactionalRepositories, order *trade.PurchaseOrder, locationID uuid.UUID) error {
	for _, line := range order.Items {
		_, err := s.stockService.ApplyAdjustmentIn(ctx, repos, appinventory.AdjustmentRequest{
			ItemID:     line.ItemID,
			LocationID: &locationID,
			Type:       inventory.TransactionTypeReceive,
			Quantity:   line.Quantity,
			Reason:     "PO received",
			Reference:  order.OrderNumber,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a purchase order. Only orders still in requested can
// be deleted; anything later is part of the supplier's record.
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status != trade.PurchaseOrderStatusRequested {
		return shared.NewDomainError("INVALID_STATE", "Only requested purchase orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, id)
}

// applyFieldEdits applies the optional field updates shared by seller
// and admin edits.
func (s *PurchaseOrderService) applyFieldEdits(ctx context.Context, order *trade.PurchaseOrder, req UpdatePurchaseOrderRequest) error {
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

	expectedDate := order.ExpectedDate
	if req.ExpectedDate != nil {
		expectedDate = req.ExpectedDate
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
	return order.SetTerms(expectedDate, deliveryDate, paymentTerms, shippingAddress, notes)
}

// buildLines resolves each requested line against the item catalog,
// snapshotting name and SKU. A zero unit price falls back to the
// item's current cost.
func (s *PurchaseOrderService) buildLines(ctx context.Context, requests []OrderLineRequest) ([]trade.OrderLineInput, error) {
	lines := make([]trade.OrderLineInput, 0, len(requests))
	for _, req := range requests {
		item, err := s.itemRepo.FindByID(ctx, req.ItemID)
		if err != nil {
			return nil, err
		}
		unitPrice := req.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = item.Cost
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

func (s *PurchaseOrderService) publishEvents(ctx context.Context, order *trade.PurchaseOrder) {
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

// toSharedFilter converts a list filter into repository filter options
func toSharedFilter(filter OrderListFilter) shared.Filter {
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
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	return f
}
