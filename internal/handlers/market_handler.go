package handlers

import (
	"net/http"

	"insider-watch/internal/services"

	"github.com/gin-gonic/gin"
)

type MarketHandler struct {
	monitor *services.MonitorService
}

func NewMarketHandler(monitor *services.MonitorService) *MarketHandler {
	return &MarketHandler{monitor: monitor}
}

// GetMarkets returns all monitored markets, largest volume first
func (h *MarketHandler) GetMarkets(c *gin.Context) {
	limit, offset := parsePagination(c)
	c.JSON(http.StatusOK, paginate(h.monitor.GetMarkets(), limit, offset))
}

// GetMarketByID returns a single market by its condition id
func (h *MarketHandler) GetMarketByID(c *gin.Context) {
	market, ok := h.monitor.GetMarketByCondition(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Market not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": market})
}

// GetTransactions returns the observed trades, newest first
func (h *MarketHandler) GetTransactions(c *gin.Context) {
	limit, offset := parsePagination(c)
	c.JSON(http.StatusOK, paginate(h.monitor.GetTransactions(), limit, offset))
}
