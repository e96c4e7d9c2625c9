package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Data and storage mode switches
const (
	DataModeMock = "mock"
	DataModeLive = "live"

	StorageModeMemory   = "memory"
	StorageModeDatabase = "database"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Polymarket PolymarketConfig
	Earnings   EarningsConfig
	App        AppConfig
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// PolymarketConfig holds upstream Polymarket API settings
type PolymarketConfig struct {
	GammaURL string
	DataURL  string
}

// EarningsConfig holds the external earnings-calendar settings.
// An empty APIKey switches the calendar client to a fixed mock dataset.
type EarningsConfig struct {
	APIKey  string
	BaseURL string
}

// AppConfig holds application-specific settings
type AppConfig struct {
	DataMode          string // mock or live
	StorageMode       string // memory or database
	RefreshJobMinutes int    // 0 disables the background refresh job
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "insider_watch"),
		},
		Polymarket: PolymarketConfig{
			GammaURL: getEnv("POLYMARKET_GAMMA_URL", "https://gamma-api.polymarket.com"),
			DataURL:  getEnv("POLYMARKET_DATA_URL", "https://data-api.polymarket.com"),
		},
		Earnings: EarningsConfig{
			APIKey:  getEnv("EARNINGS_API_KEY", ""),
			BaseURL: getEnv("EARNINGS_API_URL", "https://api.earningscalendar.net"),
		},
		App: AppConfig{
			DataMode:          getEnv("DATA_MODE", DataModeMock),
			StorageMode:       getEnv("STORAGE_MODE", StorageModeMemory),
			RefreshJobMinutes: getEnvInt("REFRESH_JOB_MINUTES", 5),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks that configuration values are consistent
func (c *Config) Validate() error {
	if c.App.DataMode != DataModeMock && c.App.DataMode != DataModeLive {
		return fmt.Errorf("DATA_MODE must be %q or %q", DataModeMock, DataModeLive)
	}

	if c.App.StorageMode != StorageModeMemory && c.App.StorageMode != StorageModeDatabase {
		return fmt.Errorf("STORAGE_MODE must be %q or %q", StorageModeMemory, StorageModeDatabase)
	}

	if c.App.StorageMode == StorageModeDatabase && c.Database.DBName == "" {
		return fmt.Errorf("DB_NAME is required when STORAGE_MODE=database")
	}

	if c.App.RefreshJobMinutes < 0 {
		return fmt.Errorf("REFRESH_JOB_MINUTES must not be negative")
	}

	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// RefreshJobInterval returns the background refresh interval, zero when disabled
func (c *Config) RefreshJobInterval() time.Duration {
	return time.Duration(c.App.RefreshJobMinutes) * time.Minute
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an environment variable as an integer with a fallback default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
