package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealbook/backend/internal/service"
)

// DashboardHandler handles dashboard-related requests
type DashboardHandler struct {
	statsService service.IStatsService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(statsService service.IStatsService) *DashboardHandler {
	return &DashboardHandler{statsService: statsService}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stats", h.GetStats)
}

// GetStats returns the dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.Summary(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
