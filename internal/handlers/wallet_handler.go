package handlers

import (
	"net/http"

	"insider-watch/internal/services"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	monitor *services.MonitorService
}

func NewWalletHandler(monitor *services.MonitorService) *WalletHandler {
	return &WalletHandler{monitor: monitor}
}

// GetWallets returns all monitored wallets, riskiest first
func (h *WalletHandler) GetWallets(c *gin.Context) {
	limit, offset := parsePagination(c)
	c.JSON(http.StatusOK, paginate(h.monitor.GetWallets(), limit, offset))
}

// GetFlaggedWallets returns wallets at or above the medium risk threshold
func (h *WalletHandler) GetFlaggedWallets(c *gin.Context) {
	limit, offset := parsePagination(c)
	c.JSON(http.StatusOK, paginate(h.monitor.GetFlaggedWallets(), limit, offset))
}

// GetHistoricalWallets returns wallets from the persistence layer
func (h *WalletHandler) GetHistoricalWallets(c *gin.Context) {
	wallets, err := h.monitor.HistoricalWallets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch historical wallets"})
		return
	}

	limit, offset := parsePagination(c)
	c.JSON(http.StatusOK, paginate(wallets, limit, offset))
}

// GetWalletByAddress returns a single wallet
func (h *WalletHandler) GetWalletByAddress(c *gin.Context) {
	wallet, ok := h.monitor.GetWalletByAddress(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": wallet})
}

// GetRiskFactors returns the factor breakdown behind a wallet's score
func (h *WalletHandler) GetRiskFactors(c *gin.Context) {
	report, ok := h.monitor.GetRiskFactors(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
