package handler

import (
	"github.com/gin-gonic/gin"
	apptrade "github.com/stocktrail/backend/internal/application/trade"
	"github.com/stocktrail/backend/internal/interfaces/http/middleware"
)

// PurchaseOrderHandler handles purchase order endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	service *apptrade.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(service *apptrade.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{service: service}
}

// Create creates a purchase order
// POST /api/v1/purchase-orders
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req apptrade.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid purchase order payload: "+err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req, middleware.GetRole(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one purchase order by ID
// GET /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns purchase orders matching the query filter
// GET /api/v1/purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var filter apptrade.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// Update edits a purchase order or moves it along its status path.
// What the caller may change depends on their role.
// PUT /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req apptrade.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid purchase order payload: "+err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req, middleware.GetRole(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete deletes a purchase order still in requested status
// DELETE /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
