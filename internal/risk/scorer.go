// Package risk maps derived wallet metrics to a bounded suspicion score.
package risk

import (
	"insider-watch/internal/analyzer"
)

// Score thresholds
const (
	MaxScore          = 100
	MediumThreshold   = 40
	HighThreshold     = 60
	CriticalThreshold = 80
)

// Risk levels
const (
	LevelLow      = "low"
	LevelMedium   = "medium"
	LevelHigh     = "high"
	LevelCritical = "critical"
)

// FactorScores is the per-factor breakdown of a wallet's risk score.
// Each factor contributes at most 20 points.
type FactorScores struct {
	AccountAge    int `json:"account_age"`
	WinRate       int `json:"win_rate"`
	Concentration int `json:"concentration"`
	Timing        int `json:"timing"`
	PositionSize  int `json:"position_size"`
}

// Total sums the factor scores, capped at MaxScore
func (f FactorScores) Total() int {
	total := f.AccountAge + f.WinRate + f.Concentration + f.Timing + f.PositionSize
	if total > MaxScore {
		return MaxScore
	}
	return total
}

// Score computes the 0-100 risk score for the given metrics. It is pure:
// identical metrics always produce an identical score.
func Score(m analyzer.WalletMetrics) int {
	return Breakdown(m).Total()
}

// Breakdown computes the five independent factor scores
func Breakdown(m analyzer.WalletMetrics) FactorScores {
	return FactorScores{
		AccountAge:    accountAgeScore(m.AccountAgeDays),
		WinRate:       winRateScore(m.WinRate),
		Concentration: concentrationScore(m.MarketConcentration),
		Timing:        timingScore(m.AvgTimingHours),
		PositionSize:  positionSizeScore(m.TotalVolume),
	}
}

// ShouldFlag reports whether a score puts a wallet at or above the
// medium threshold
func ShouldFlag(score int) bool {
	return score >= MediumThreshold
}

// Level buckets a score into a coarse risk level
func Level(score int) string {
	switch {
	case score >= CriticalThreshold:
		return LevelCritical
	case score >= HighThreshold:
		return LevelHigh
	case score >= MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Younger accounts are riskier
func accountAgeScore(days int) int {
	switch {
	case days < 7:
		return 20
	case days < 14:
		return 15
	case days < 30:
		return 8
	default:
		return 0
	}
}

// Implausibly high win rates are riskier
func winRateScore(rate float64) int {
	switch {
	case rate > 0.85:
		return 20
	case rate > 0.70:
		return 15
	case rate > 0.60:
		return 8
	default:
		return 0
	}
}

// Volume concentrated in a single market is riskier
func concentrationScore(concentration float64) int {
	switch {
	case concentration > 0.80:
		return 20
	case concentration > 0.60:
		return 15
	case concentration > 0.40:
		return 8
	default:
		return 0
	}
}

// Trades close to resolution are riskier
func timingScore(hours float64) int {
	switch {
	case hours < 24:
		return 20
	case hours < 48:
		return 15
	case hours < 72:
		return 8
	default:
		return 0
	}
}

// Larger positions are riskier
func positionSizeScore(volumeUSD float64) int {
	switch {
	case volumeUSD >= 10000:
		return 20
	case volumeUSD >= 2500:
		return 15
	case volumeUSD >= 500:
		return 8
	default:
		return 0
	}
}
