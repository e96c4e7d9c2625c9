package handlers

import (
	"net/http"

	"insider-watch/internal/services"

	"github.com/gin-gonic/gin"
)

type EarningsHandler struct {
	earnings *services.EarningsService
}

func NewEarningsHandler(earnings *services.EarningsService) *EarningsHandler {
	return &EarningsHandler{earnings: earnings}
}

// GetAlerts returns the current earnings insider alerts, highest score first
func (h *EarningsHandler) GetAlerts(c *gin.Context) {
	limit, offset := parsePagination(c)
	c.JSON(http.StatusOK, paginate(h.earnings.GetAlerts(), limit, offset))
}

// GetStats returns the aggregate earnings alert view
func (h *EarningsHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.earnings.GetStats()})
}
