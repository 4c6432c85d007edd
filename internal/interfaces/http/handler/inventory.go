package handler

import (
	"github.com/gin-gonic/gin"
	appinventory "github.com/stocktrail/backend/internal/application/inventory"
)

// InventoryHandler handles item and stock endpoints
type InventoryHandler struct {
	BaseHandler
	itemService  *appinventory.ItemService
	stockService *appinventory.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(itemService *appinventory.ItemService, stockService *appinventory.StockService) *InventoryHandler {
	return &InventoryHandler{
		itemService:  itemService,
		stockService: stockService,
	}
}

// CreateItem creates a new inventory item
// POST /api/v1/items
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req appinventory.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid item payload: "+err.Error())
		return
	}

	resp, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetItem returns one item by ID
// GET /api/v1/items/:id
func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	resp, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListItems returns items matching the query filter
// GET /api/v1/items
func (h *InventoryHandler) ListItems(c *gin.Context) {
	var filter appinventory.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	result, err := h.itemService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// UpdateItem updates item details
// PUT /api/v1/items/:id
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req appinventory.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid item payload: "+err.Error())
		return
	}

	resp, err := h.itemService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteItem deletes an item
// DELETE /api/v1/items/:id
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AdjustStock applies a manual stock adjustment
// POST /api/v1/stock/adjustments
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req appinventory.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid adjustment payload: "+err.Error())
		return
	}

	result, err := h.stockService.ApplyAdjustment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListTransactions returns stock movement records
// GET /api/v1/stock/transactions
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	var filter appinventory.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	result, err := h.stockService.GetTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// GetItemStockLevels returns per-location balances for one item
// GET /api/v1/items/:id/stock-levels
func (h *InventoryHandler) GetItemStockLevels(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	levels, err := h.stockService.GetStockLevels(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, levels)
}
