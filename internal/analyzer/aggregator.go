// Package analyzer derives per-wallet statistics from raw trade records.
package analyzer

import (
	"time"

	"insider-watch/internal/polymarket"
)

const (
	// MaxTimingHours caps the timing heuristic at one week
	MaxTimingHours = 168.0
	// DefaultTimingHours is the neutral timing value for wallets with no trades
	DefaultTimingHours = 72.0
)

// WalletMetrics holds the derived statistics for one wallet. All fields
// are heuristic estimates from the observed trade window, not ground truth.
type WalletMetrics struct {
	WinRate             float64
	TotalBets           int
	TotalVolume         float64
	MarketConcentration float64
	AvgTimingHours      float64
	AccountAgeDays      int
	PositionValue       float64 // best-effort net open exposure
}

// Analyze computes wallet metrics from the wallet's trades.
// A zero-trade input yields the neutral default record.
func Analyze(trades []polymarket.TradeRecord) WalletMetrics {
	return AnalyzeAt(trades, time.Now())
}

// AnalyzeAt is Analyze with an explicit reference time for the
// recency-based heuristics.
func AnalyzeAt(trades []polymarket.TradeRecord, now time.Time) WalletMetrics {
	if len(trades) == 0 {
		return WalletMetrics{
			WinRate:             0,
			TotalBets:           0,
			TotalVolume:         0,
			MarketConcentration: 0,
			AvgTimingHours:      DefaultTimingHours,
			AccountAgeDays:      0,
		}
	}

	perMarketVolume := make(map[string]float64)
	var totalVolume, positionValue, timingSum float64
	var wins int
	earliest := trades[0].Time()

	for _, t := range trades {
		value := t.ValueUSD()
		totalVolume += value
		perMarketVolume[t.ConditionID] += value

		// Win heuristic: sold above 0.5 or bought below 0.5
		// approximates "bought low / sold high"; actual market
		// resolutions are not available in the trade feed.
		price := t.PriceFloat()
		if (t.Side == "SELL" && price > 0.5) || (t.Side == "BUY" && price < 0.5) {
			wins++
		}

		if t.Side == "BUY" {
			positionValue += value
		} else {
			positionValue -= value
		}

		// Trade recency stands in for proximity to resolution; true
		// proximity would need the market end date.
		hours := now.Sub(t.Time()).Hours()
		if hours < 0 {
			hours = 0
		}
		if hours > MaxTimingHours {
			hours = MaxTimingHours
		}
		timingSum += hours

		if ts := t.Time(); ts.Before(earliest) {
			earliest = ts
		}
	}

	concentration := 0.0
	if totalVolume > 0 {
		var maxVolume float64
		for _, v := range perMarketVolume {
			if v > maxVolume {
				maxVolume = v
			}
		}
		concentration = maxVolume / totalVolume
	}

	if positionValue < 0 {
		positionValue = 0
	}

	return WalletMetrics{
		WinRate:             float64(wins) / float64(len(trades)),
		TotalBets:           len(trades),
		TotalVolume:         totalVolume,
		MarketConcentration: concentration,
		AvgTimingHours:      timingSum / float64(len(trades)),
		AccountAgeDays:      int(now.Sub(earliest).Hours() / 24),
		PositionValue:       positionValue,
	}
}

// GroupByWallet buckets trades by their wallet address, dropping records
// with no address.
func GroupByWallet(trades []polymarket.TradeRecord) map[string][]polymarket.TradeRecord {
	grouped := make(map[string][]polymarket.TradeRecord)
	for _, t := range trades {
		if t.ProxyWallet == "" {
			continue
		}
		grouped[t.ProxyWallet] = append(grouped[t.ProxyWallet], t)
	}
	return grouped
}
