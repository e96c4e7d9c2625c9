package models

import (
	"time"
)

// Transaction represents one observed trade linking a wallet and a market
type Transaction struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	TradeID               string    `gorm:"size:100;uniqueIndex;not null" json:"trade_id"`
	WalletAddress         string    `gorm:"size:100;not null;index" json:"wallet_address"`
	ConditionID           string    `gorm:"size:100;not null;index" json:"condition_id"`
	Amount                float64   `gorm:"type:decimal(15,2);not null" json:"amount"` // USD-equivalent
	Direction             string    `gorm:"size:10;not null" json:"direction"`         // BUY or SELL
	Outcome               string    `gorm:"size:20" json:"outcome"`
	Timestamp             time.Time `gorm:"index" json:"timestamp"`
	HoursBeforeResolution float64   `json:"hours_before_resolution"` // heuristic, capped at 168
	Won                   *bool     `json:"won"`                     // nil when indeterminate
	PriceImpact           float64   `json:"price_impact"`            // heuristic
}

// TableName specifies the table name for Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
