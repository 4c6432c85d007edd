package handler

import (
	"github.com/gin-gonic/gin"
	appreport "github.com/stocktrail/backend/internal/application/report"
)

// ReportHandler handles dashboard and reporting endpoints
type ReportHandler struct {
	BaseHandler
	service *appreport.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *appreport.DashboardService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Dashboard returns order counts per status and low-stock items
// GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	resp, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
