package storage

import (
	"fmt"

	"insider-watch/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists snapshots into a relational database with
// natural-key upserts, so re-fetching the same upstream record twice
// yields one row. Markets are written before transactions; the ordering
// is maintained in application code, not a database transaction.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a relational store on top of an open connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// SaveSnapshot upserts the refreshed entities by their natural keys
func (s *GormStore) SaveSnapshot(wallets []models.Wallet, markets []models.Market, transactions []models.Transaction) error {
	if len(markets) > 0 {
		err := s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "condition_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"question", "category", "end_date", "volume",
				"suspicious_wallet_count", "avg_risk_score", "last_updated",
			}),
		}).Create(&markets).Error
		if err != nil {
			return fmt.Errorf("failed to upsert markets: %w", err)
		}
	}

	if len(wallets) > 0 {
		err := s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "address"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"risk_score", "win_rate", "total_bets", "total_volume",
				"current_position_value", "account_age_days",
				"portfolio_concentration", "avg_timing_proximity",
				"is_flagged", "last_updated",
			}),
		}).Create(&wallets).Error
		if err != nil {
			return fmt.Errorf("failed to upsert wallets: %w", err)
		}
	}

	if len(transactions) > 0 {
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trade_id"}},
			DoNothing: true,
		}).Create(&transactions).Error
		if err != nil {
			return fmt.Errorf("failed to upsert transactions: %w", err)
		}
	}

	return nil
}

// SaveAlerts inserts freshly generated alerts
func (s *GormStore) SaveAlerts(alerts []models.EarningsInsiderAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&alerts).Error
	if err != nil {
		return fmt.Errorf("failed to save alerts: %w", err)
	}
	return nil
}

// HistoricalWallets returns every wallet ever observed, riskiest first
func (s *GormStore) HistoricalWallets() ([]models.Wallet, error) {
	var wallets []models.Wallet
	if err := s.db.Order("risk_score DESC").Find(&wallets).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch historical wallets: %w", err)
	}
	return wallets, nil
}
