package handler

import (
	"github.com/gin-gonic/gin"
	appaudit "github.com/stocktrail/backend/internal/application/audit"
)

// AuditHandler handles audit log endpoints
type AuditHandler struct {
	BaseHandler
	service *appaudit.QueryService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(service *appaudit.QueryService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List returns audit records matching the query filter
// GET /api/v1/audit-logs
func (h *AuditHandler) List(c *gin.Context) {
	var filter appaudit.ListFilter
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
