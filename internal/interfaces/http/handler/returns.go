package handler

import (
	"github.com/gin-gonic/gin"
	apptrade "github.com/stocktrail/backend/internal/application/trade"
)

// ReturnHandler handles return entry endpoints
type ReturnHandler struct {
	BaseHandler
	service *apptrade.ReturnService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(service *apptrade.ReturnService) *ReturnHandler {
	return &ReturnHandler{service: service}
}

// Create creates a return entry
// POST /api/v1/returns
func (h *ReturnHandler) Create(c *gin.Context) {
	var req apptrade.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid return payload: "+err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one return entry by ID
// GET /api/v1/returns/:id
func (h *ReturnHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns return entries matching the query filter
// GET /api/v1/returns
func (h *ReturnHandler) List(c *gin.Context) {
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

// Update edits a return entry or moves it along its status path
// PUT /api/v1/returns/:id
func (h *ReturnHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	var req apptrade.UpdateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid return payload: "+err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete deletes a return entry still in requested status
// DELETE /api/v1/returns/:id
func (h *ReturnHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
