package polymarket

import (
	"fmt"
	"time"
)

// Mock dataset used when DATA_MODE=mock. Condition ids and wallet
// addresses are stable so the scoring pipeline behaves deterministically
// across refreshes; timestamps are relative to now so the recency
// heuristics stay meaningful.

const (
	mockConditionNvidia   = "0xcond-nvda-earnings"
	mockConditionElection = "0xcond-election-2026"
	mockConditionBitcoin  = "0xcond-btc-150k"
	mockConditionNBA      = "0xcond-nba-finals"

	mockWalletFresh    = "0xa1f3e9b20c44d5aa8f19e2d7c3b68e01a9f4c2d7"
	mockWalletVeteran  = "0xb28c4d1e99a03f76cd52b8e14f07a3c6d9e58b12"
	mockWalletModerate = "0xc39d5e2fa8b14c87de63c9f25018b4d7eaf69c23"
)

func mockMarkets() []GammaMarket {
	endSoon := time.Now().Add(36 * time.Hour).Format(time.RFC3339)
	endLater := time.Now().Add(45 * 24 * time.Hour).Format(time.RFC3339)

	return []GammaMarket{
		{
			ID:          "mock-1",
			ConditionID: mockConditionNvidia,
			Question:    "Will Nvidia beat Q3 earnings estimates?",
			Slug:        "nvidia-q3-earnings-beat",
			Volume:      "1850000.50",
			Liquidity:   "240000",
			Active:      true,
			EndDate:     endSoon,
		},
		{
			ID:          "mock-2",
			ConditionID: mockConditionElection,
			Question:    "Will the incumbent win the 2026 senate election?",
			Slug:        "senate-election-2026",
			Volume:      "9200000",
			Liquidity:   "1100000",
			Active:      true,
			EndDate:     endLater,
		},
		{
			ID:          "mock-3",
			ConditionID: mockConditionBitcoin,
			Question:    "Will Bitcoin reach $150k before year end?",
			Slug:        "bitcoin-150k",
			Volume:      "4700000",
			Liquidity:   "620000",
			Active:      true,
			EndDate:     endLater,
		},
		{
			ID:          "mock-4",
			ConditionID: mockConditionNBA,
			Question:    "Will the Celtics win the NBA finals?",
			Slug:        "celtics-nba-finals",
			Volume:      "3100000",
			Liquidity:   "450000",
			Active:      true,
			EndDate:     endLater,
		},
	}
}

func mockTrades() []TradeRecord {
	now := time.Now()
	var trades []TradeRecord
	id := 0

	add := func(wallet, condition, side, outcome, size, price string, age time.Duration) {
		id++
		trades = append(trades, TradeRecord{
			TradeID:         fmt.Sprintf("mock-trade-%03d", id),
			ProxyWallet:     wallet,
			ConditionID:     condition,
			Side:            side,
			Outcome:         outcome,
			Size:            size,
			Price:           price,
			Timestamp:       now.Add(-age).Unix(),
			TransactionHash: fmt.Sprintf("0xmocktx%03d", id),
		})
	}

	// Fresh wallet: days old, everything in one market, large buys at
	// low prices hours before the market closes
	add(mockWalletFresh, mockConditionNvidia, "BUY", "Yes", "25000", "0.18", 5*time.Hour)
	add(mockWalletFresh, mockConditionNvidia, "BUY", "Yes", "18000", "0.21", 8*time.Hour)
	add(mockWalletFresh, mockConditionNvidia, "BUY", "Yes", "30000", "0.24", 14*time.Hour)
	add(mockWalletFresh, mockConditionNvidia, "BUY", "Yes", "12000", "0.27", 20*time.Hour)

	// Veteran wallet: first seen months ago, spread across markets,
	// unremarkable entries
	add(mockWalletVeteran, mockConditionElection, "BUY", "Yes", "500", "0.62", 90*24*time.Hour)
	add(mockWalletVeteran, mockConditionBitcoin, "SELL", "No", "800", "0.41", 30*24*time.Hour)
	add(mockWalletVeteran, mockConditionNBA, "BUY", "No", "350", "0.55", 12*24*time.Hour)
	add(mockWalletVeteran, mockConditionElection, "SELL", "Yes", "400", "0.66", 6*24*time.Hour)

	// Moderate wallet: recent, somewhat concentrated, mid-sized bets
	add(mockWalletModerate, mockConditionBitcoin, "BUY", "Yes", "4000", "0.35", 40*time.Hour)
	add(mockWalletModerate, mockConditionBitcoin, "BUY", "Yes", "3000", "0.38", 52*time.Hour)
	add(mockWalletModerate, mockConditionNBA, "SELL", "Yes", "1500", "0.58", 70*time.Hour)

	return trades
}
