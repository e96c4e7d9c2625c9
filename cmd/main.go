package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"insider-watch/internal/config"
	"insider-watch/internal/database"
	"insider-watch/internal/earnings"
	"insider-watch/internal/handlers"
	"insider-watch/internal/jobs"
	"insider-watch/internal/polymarket"
	"insider-watch/internal/services"
	"insider-watch/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Select the storage strategy
	var store storage.Store
	if cfg.App.StorageMode == config.StorageModeDatabase {
		db, err := database.Connect(cfg.GetDSN())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		store = storage.NewGormStore(db)
		log.Println("Using relational storage")
	} else {
		store = storage.NewInMemoryStore()
		log.Println("Using in-memory storage")
	}

	// Upstream clients
	mockMode := cfg.App.DataMode == config.DataModeMock
	if mockMode {
		log.Println("DATA_MODE=mock: serving the fixed mock dataset")
	}
	pmClient := polymarket.NewClient(cfg.Polymarket.GammaURL, cfg.Polymarket.DataURL, mockMode)
	calendarClient := earnings.NewClient(cfg.Earnings.BaseURL, cfg.Earnings.APIKey)
	if cfg.Earnings.APIKey == "" {
		log.Println("No EARNINGS_API_KEY set, earnings calendar runs on mock data")
	}

	// Initialize services
	monitorService := services.NewMonitorService(pmClient, store, 0)
	earningsService := services.NewEarningsService(calendarClient, monitorService, store, 0)

	// Initialize handlers
	statsHandler := handlers.NewStatsHandler(monitorService)
	walletHandler := handlers.NewWalletHandler(monitorService)
	marketHandler := handlers.NewMarketHandler(monitorService)
	earningsHandler := handlers.NewEarningsHandler(earningsService)

	// Background refresh job keeps the caches warm
	if interval := cfg.RefreshJobInterval(); interval > 0 {
		jobs.NewRefreshJob(monitorService, earningsService).Start(interval)
	}

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// API routes (public, read-only)
	api := router.Group("/api")
	{
		api.GET("/stats", statsHandler.GetStats)

		api.GET("/wallets", walletHandler.GetWallets)
		api.GET("/wallets/flagged", walletHandler.GetFlaggedWallets)
		api.GET("/wallets/historical", walletHandler.GetHistoricalWallets)
		api.GET("/wallets/:id", walletHandler.GetWalletByAddress)
		api.GET("/wallets/:id/risk-factors", walletHandler.GetRiskFactors)

		api.GET("/markets", marketHandler.GetMarkets)
		api.GET("/markets/:id", marketHandler.GetMarketByID)
		api.GET("/transactions", marketHandler.GetTransactions)

		api.GET("/earnings", earningsHandler.GetAlerts)
		api.GET("/earnings/stats", earningsHandler.GetStats)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
