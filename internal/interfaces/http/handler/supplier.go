package handler

import (
	"github.com/gin-gonic/gin"
	apppartner "github.com/stocktrail/backend/internal/application/partner"
)

// SupplierHandler handles supplier endpoints
type SupplierHandler struct {
	BaseHandler
	service *apppartner.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(service *apppartner.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// Create creates a supplier
// POST /api/v1/suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req apppartner.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid supplier payload: "+err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one supplier by ID
// GET /api/v1/suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns suppliers matching the query filter
// GET /api/v1/suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	var filter apppartner.ListFilter
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

// Update updates supplier details
// PUT /api/v1/suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req apppartner.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid supplier payload: "+err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete deletes a supplier
// DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
