package earnings

import "math"

// MaxAlertScore caps the four-factor alert score
const MaxAlertScore = 100

// AlertInput carries the signals feeding an earnings insider score
type AlertInput struct {
	ImpliedProbability float64 // market-implied probability of a beat
	ConsensusBeatProb  float64 // analyst consensus
	FreshWalletCount   int     // new-account + large-bet wallets on the market
	DaysUntilEvent     float64
	VolumeAnomalyRatio float64 // current volume vs 30-day baseline
}

// AlertFactors is the per-factor breakdown of an alert score.
// Each factor contributes at most 25 points.
type AlertFactors struct {
	Divergence    int `json:"divergence"`
	FreshWallets  int `json:"fresh_wallets"`
	Urgency       int `json:"urgency"`
	VolumeAnomaly int `json:"volume_anomaly"`
}

// Total sums the factor scores, capped at MaxAlertScore
func (f AlertFactors) Total() int {
	total := f.Divergence + f.FreshWallets + f.Urgency + f.VolumeAnomaly
	if total > MaxAlertScore {
		return MaxAlertScore
	}
	return total
}

// ScoreAlert computes the factor breakdown for an alert. Pure and
// deterministic, same structure as the wallet risk scorer.
func ScoreAlert(in AlertInput) AlertFactors {
	return AlertFactors{
		Divergence:    divergenceScore(math.Abs(in.ImpliedProbability - in.ConsensusBeatProb)),
		FreshWallets:  freshWalletScore(in.FreshWalletCount),
		Urgency:       urgencyScore(in.DaysUntilEvent),
		VolumeAnomaly: volumeAnomalyScore(in.VolumeAnomalyRatio),
	}
}

// Wide gaps between market-implied odds and analyst consensus are riskier
func divergenceScore(divergence float64) int {
	switch {
	case divergence > 0.30:
		return 25
	case divergence > 0.20:
		return 18
	case divergence > 0.10:
		return 10
	default:
		return 0
	}
}

// Clusters of fresh high-stake wallets are riskier
func freshWalletScore(count int) int {
	switch {
	case count >= 5:
		return 25
	case count >= 3:
		return 18
	case count >= 1:
		return 10
	default:
		return 0
	}
}

// Bets placed right before the announcement are riskier
func urgencyScore(days float64) int {
	switch {
	case days < 2:
		return 25
	case days < 5:
		return 18
	case days < 10:
		return 10
	default:
		return 0
	}
}

// Volume spiking above the 30-day baseline is riskier
func volumeAnomalyScore(ratio float64) int {
	switch {
	case ratio > 3.0:
		return 25
	case ratio > 2.0:
		return 18
	case ratio > 1.5:
		return 10
	default:
		return 0
	}
}
