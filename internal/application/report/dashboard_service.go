package report

import (
	"context"

	"github.com/stocktrail/backend/internal/application/inventory"
	domaininventory "github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stocktrail/backend/internal/domain/trade"
)

// DashboardResponse aggregates order pipeline and stock health counts
type DashboardResponse struct {
	PurchaseOrders OrderStatusCounts       `json:"purchase_orders"`
	SalesOrders    OrderStatusCounts       `json:"sales_orders"`
	TotalItems     int64                   `json:"total_items"`
	LowStockItems  []inventory.ItemResponse `json:"low_stock_items"`
}

// OrderStatusCounts holds per-status order counts
type OrderStatusCounts struct {
	Requested         int64 `json:"requested"`
	SupplierSubmitted int64 `json:"supplier_submitted,omitempty"`
	Approved          int64 `json:"approved"`
	Received          int64 `json:"received"`
}

// DashboardService assembles the overview numbers shown on the
// landing screen.
type DashboardService struct {
	itemRepo          domaininventory.ItemRepository
	purchaseOrderRepo trade.PurchaseOrderRepository
	salesOrderRepo    trade.SalesOrderRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	itemRepo domaininventory.ItemRepository,
	purchaseOrderRepo trade.PurchaseOrderRepository,
	salesOrderRepo trade.SalesOrderRepository,
) *DashboardService {
	return &DashboardService{
		itemRepo:          itemRepo,
		purchaseOrderRepo: purchaseOrderRepo,
		salesOrderRepo:    salesOrderRepo,
	}
}

// GetDashboard assembles the dashboard counts
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardResponse, error) {
	response := &DashboardResponse{}

	poStatuses := []trade.PurchaseOrderStatus{
		trade.PurchaseOrderStatusRequested,
		trade.PurchaseOrderStatusSupplierSubmitted,
		trade.PurchaseOrderStatusApproved,
		trade.PurchaseOrderStatusReceived,
	}
	for _, status := range poStatuses {
		count, err := s.purchaseOrderRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		switch status {
		case trade.PurchaseOrderStatusRequested:
			response.PurchaseOrders.Requested = count
		case trade.PurchaseOrderStatusSupplierSubmitted:
			response.PurchaseOrders.SupplierSubmitted = count
		case trade.PurchaseOrderStatusApproved:
			response.PurchaseOrders.Approved = count
		case trade.PurchaseOrderStatusReceived:
			response.PurchaseOrders.Received = count
		}
	}

	soStatuses := []trade.SalesOrderStatus{
		trade.SalesOrderStatusRequested,
		trade.SalesOrderStatusApproved,
		trade.SalesOrderStatusReceived,
	}
	for _, status := range soStatuses {
		count, err := s.salesOrderRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		switch status {
		case trade.SalesOrderStatusRequested:
			response.SalesOrders.Requested = count
		case trade.SalesOrderStatusApproved:
			response.SalesOrders.Approved = count
		case trade.SalesOrderStatusReceived:
			response.SalesOrders.Received = count
		}
	}

	totalItems, err := s.itemRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	response.TotalItems = totalItems

	lowFilter := shared.DefaultFilter()
	lowFilter.PageSize = 10
	lowItems, err := s.itemRepo.FindBelowThreshold(ctx, lowFilter)
	if err != nil {
		return nil, err
	}
	response.LowStockItems = make([]inventory.ItemResponse, 0, len(lowItems))
	for i := range lowItems {
		response.LowStockItems = append(response.LowStockItems, inventory.ToItemResponse(&lowItems[i]))
	}

	return response, nil
}
