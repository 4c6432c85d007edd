package handler

import (
	"github.com/gin-gonic/gin"
	apptrade "github.com/stocktrail/backend/internal/application/trade"
	"github.com/stocktrail/backend/internal/interfaces/http/middleware"
)

// SalesOrderHandler handles sales order endpoints
type SalesOrderHandler struct {
	BaseHandler
	service *apptrade.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(service *apptrade.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{service: service}
}

// Create creates a sales order
// POST /api/v1/sales-orders
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req apptrade.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid sales order payload: "+err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req, middleware.GetRole(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one sales order by ID
// GET /api/v1/sales-orders/:id
func (h *SalesOrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid sales order ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns sales orders matching the query filter
// GET /api/v1/sales-orders
func (h *SalesOrderHandler) List(c *gin.Context) {
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

// Update edits a sales order or moves it along its status path.
// Buyers may edit requested orders and confirm receipt of approved
// ones; approval itself is an admin action.
// PUT /api/v1/sales-orders/:id
func (h *SalesOrderHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid sales order ID")
		return
	}

	var req apptrade.UpdateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid sales order payload: "+err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req, middleware.GetRole(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete deletes a sales order still in requested status
// DELETE /api/v1/sales-orders/:id
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid sales order ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
