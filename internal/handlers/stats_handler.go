package handlers

import (
	"net/http"

	"insider-watch/internal/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	monitor *services.MonitorService
}

func NewStatsHandler(monitor *services.MonitorService) *StatsHandler {
	return &StatsHandler{monitor: monitor}
}

// GetStats returns the aggregate dashboard view
func (h *StatsHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.monitor.GetDashboardStats()})
}
