package models

import (
	"time"

	"github.com/google/uuid"
)

// EarningsInsiderAlert joins an earnings-calendar event to a matched
// prediction market, with its own four-factor 0-100 score. Rebuilt
// wholesale on every earnings refresh cycle.
type EarningsInsiderAlert struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Ticker             string    `gorm:"size:20;not null;index" json:"ticker"`
	CompanyName        string    `gorm:"size:200" json:"company_name"`
	EventDate          time.Time `json:"event_date"`
	ConditionID        string    `gorm:"size:100;not null" json:"condition_id"`
	MarketQuestion     string    `gorm:"size:500" json:"market_question"`
	ImpliedProbability float64   `json:"implied_probability"`
	ConsensusEstimate  float64   `json:"consensus_estimate"`
	InsiderScore       int       `gorm:"index" json:"insider_score"`
	DivergenceScore    int       `json:"divergence_score"`
	FreshWalletScore   int       `json:"fresh_wallet_score"`
	UrgencyScore       int       `json:"urgency_score"`
	VolumeAnomalyScore int       `json:"volume_anomaly_score"`
	CreatedAt          time.Time `json:"created_at"`
}

// TableName specifies the table name for EarningsInsiderAlert model
func (EarningsInsiderAlert) TableName() string {
	return "earnings_insider_alerts"
}
