package handler

import (
	"github.com/gin-gonic/gin"

	"rfpflow/internal/service"
)

// StatsHandler handles stats endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles GET /api/v1/admin/stats
// @Summary Get dashboard statistics
// @Description Run counts by review status plus the five most recent runs.
// @Tags admin
// @Produce json
// @Success 200 {object} APIResponse{data=domain.DashboardStats} "Dashboard statistics"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetDashboardStats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
