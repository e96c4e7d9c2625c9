package models

import (
	"time"
)

// Wallet represents a trading account under monitoring.
// RiskScore, IsFlagged and the heuristic fields are derived on every
// refresh cycle and never mutated independently.
type Wallet struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	Address                string    `gorm:"size:100;uniqueIndex;not null" json:"address"`
	RiskScore              int       `gorm:"default:0;index" json:"risk_score"`
	WinRate                float64   `gorm:"default:0" json:"win_rate"` // heuristic estimate, not ground truth
	TotalBets              int       `gorm:"default:0" json:"total_bets"`
	TotalVolume            float64   `gorm:"type:decimal(20,2);default:0" json:"total_volume"`
	CurrentPositionValue   float64   `gorm:"type:decimal(20,2);default:0" json:"current_position_value"`
	AccountAgeDays         int       `gorm:"default:0" json:"account_age_days"` // estimated from earliest observed trade
	PortfolioConcentration float64   `gorm:"default:0" json:"portfolio_concentration"`
	AvgTimingProximity     float64   `gorm:"default:0" json:"avg_timing_proximity"` // hours, heuristic
	IsFlagged              bool      `gorm:"default:false;index" json:"is_flagged"`
	Notes                  string    `gorm:"type:text" json:"notes"`
	FirstSeen              time.Time `json:"first_seen"`
	LastUpdated            time.Time `json:"last_updated"`
}

// TableName specifies the table name for Wallet model
func (Wallet) TableName() string {
	return "wallets"
}
