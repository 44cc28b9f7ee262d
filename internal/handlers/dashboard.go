package handlers

import (
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/services"
	"github.com/OmondiJoshua/GLOBAL-GTM/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	statsService *services.StatsService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{statsService: services.NewStatsService(db)}
}

// GetStats returns the manager dashboard statistics
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.ManagerStatistics()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
