package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Standalone schema bootstrap for the relational storage variant.
// Creates the tables directly so the server can start with automigrate
// disabled in locked-down environments.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Build connection string
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	// Connect to database
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database successfully")

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS markets (
			id SERIAL PRIMARY KEY,
			condition_id VARCHAR(100) UNIQUE NOT NULL,
			question VARCHAR(500) NOT NULL,
			category VARCHAR(50),
			end_date TIMESTAMPTZ,
			volume DECIMAL(20,2) DEFAULT 0,
			suspicious_wallet_count INTEGER DEFAULT 0,
			avg_risk_score DOUBLE PRECISION DEFAULT 0,
			last_updated TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS wallets (
			id SERIAL PRIMARY KEY,
			address VARCHAR(100) UNIQUE NOT NULL,
			risk_score INTEGER DEFAULT 0,
			win_rate DOUBLE PRECISION DEFAULT 0,
			total_bets INTEGER DEFAULT 0,
			total_volume DECIMAL(20,2) DEFAULT 0,
			current_position_value DECIMAL(20,2) DEFAULT 0,
			account_age_days INTEGER DEFAULT 0,
			portfolio_concentration DOUBLE PRECISION DEFAULT 0,
			avg_timing_proximity DOUBLE PRECISION DEFAULT 0,
			is_flagged BOOLEAN DEFAULT FALSE,
			notes TEXT,
			first_seen TIMESTAMPTZ,
			last_updated TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id SERIAL PRIMARY KEY,
			trade_id VARCHAR(100) UNIQUE NOT NULL,
			wallet_address VARCHAR(100) NOT NULL,
			condition_id VARCHAR(100) NOT NULL,
			amount DECIMAL(15,2) NOT NULL,
			direction VARCHAR(10) NOT NULL,
			outcome VARCHAR(20),
			timestamp TIMESTAMPTZ,
			hours_before_resolution DOUBLE PRECISION,
			won BOOLEAN,
			price_impact DOUBLE PRECISION
		)`,
		`CREATE TABLE IF NOT EXISTS earnings_insider_alerts (
			id UUID PRIMARY KEY,
			ticker VARCHAR(20) NOT NULL,
			company_name VARCHAR(200),
			event_date TIMESTAMPTZ,
			condition_id VARCHAR(100) NOT NULL,
			market_question VARCHAR(500),
			implied_probability DOUBLE PRECISION,
			consensus_estimate DOUBLE PRECISION,
			insider_score INTEGER,
			divergence_score INTEGER,
			fresh_wallet_score INTEGER,
			urgency_score INTEGER,
			volume_anomaly_score INTEGER,
			created_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wallets_risk_score ON wallets(risk_score)`,
		`CREATE INDEX IF NOT EXISTS idx_wallets_is_flagged ON wallets(is_flagged)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_wallet ON transactions(wallet_address)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_condition ON transactions(condition_id)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ticker ON earnings_insider_alerts(ticker)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	}

	log.Println("Migrations completed successfully")
}
