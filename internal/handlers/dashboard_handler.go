package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventops/staffing-backend/internal/services"
)

// DashboardHandler handles the aggregate dashboard endpoint
type DashboardHandler struct {
	dashboard *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Metrics handles GET /api/v1/dashboard/metrics
func (h *DashboardHandler) Metrics(c *gin.Context) {
	metrics, err := h.dashboard.Metrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to compute dashboard metrics",
		})
		return
	}

	c.JSON(http.StatusOK, metrics)
}
