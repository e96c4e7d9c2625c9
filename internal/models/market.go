package models

import (
	"time"
)

// Market represents a prediction market being monitored
type Market struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	ConditionID           string     `gorm:"size:100;uniqueIndex;not null" json:"condition_id"`
	Question              string     `gorm:"size:500;not null" json:"question"`
	Category              string     `gorm:"size:50;index" json:"category"` // politics, sports, crypto, earnings, other
	EndDate               *time.Time `json:"end_date,omitempty"`
	Volume                float64    `gorm:"type:decimal(20,2)" json:"volume"`
	SuspiciousWalletCount int        `gorm:"default:0" json:"suspicious_wallet_count"`
	AvgRiskScore          float64    `gorm:"default:0" json:"avg_risk_score"`
	LastUpdated           time.Time  `json:"last_updated"`
}

// TableName specifies the table name for Market model
func (Market) TableName() string {
	return "markets"
}
