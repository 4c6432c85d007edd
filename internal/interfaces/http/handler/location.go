package handler

import (
	"github.com/gin-gonic/gin"
	apppartner "github.com/stocktrail/backend/internal/application/partner"
)

// LocationHandler handles stock location endpoints
type LocationHandler struct {
	BaseHandler
	service *apppartner.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(service *apppartner.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// Create creates a location
// POST /api/v1/locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req apppartner.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid location payload: "+err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one location by ID
// GET /api/v1/locations/:id
func (h *LocationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns locations matching the query filter
// GET /api/v1/locations
func (h *LocationHandler) List(c *gin.Context) {
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

// Update updates location details
// PUT /api/v1/locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	var req apppartner.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid location payload: "+err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetDefault makes the location the default for stock movements
// POST /api/v1/locations/:id/default
func (h *LocationHandler) SetDefault(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	resp, err := h.service.SetDefault(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete deletes a location
// DELETE /api/v1/locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
