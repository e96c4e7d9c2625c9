package services

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"insider-watch/internal/analyzer"
	"insider-watch/internal/models"
	"insider-watch/internal/polymarket"
	"insider-watch/internal/risk"
	"insider-watch/internal/storage"
)

const (
	// RefreshTTL is how long a refreshed snapshot stays fresh
	RefreshTTL = 5 * time.Minute

	marketFetchLimit = 100
	tradeFetchLimit  = 500
)

// MarketFetcher is the upstream data source for markets and trades
type MarketFetcher interface {
	GetMarkets(limit int) ([]polymarket.GammaMarket, error)
	GetRecentTrades(limit int) ([]polymarket.TradeRecord, error)
}

// Snapshot is one fully rebuilt view of the monitored data. Snapshots
// are swapped wholesale; readers never see a partial rebuild.
type Snapshot struct {
	Wallets        []models.Wallet
	Markets        []models.Market
	Transactions   []models.Transaction
	tradesByMarket map[string][]polymarket.TradeRecord
	walletIndex    map[string]int
	marketIndex    map[string]int
	RefreshedAt    time.Time
}

// DashboardStats is the aggregate view served by /api/stats
type DashboardStats struct {
	TotalWallets    int       `json:"total_wallets"`
	FlaggedWallets  int       `json:"flagged_wallets"`
	HighRiskWallets int       `json:"high_risk_wallets"`
	TotalMarkets    int       `json:"total_markets"`
	TotalVolume     float64   `json:"total_volume"`
	AvgRiskScore    float64   `json:"avg_risk_score"`
	LastRefresh     time.Time `json:"last_refresh"`
}

// RiskFactorReport is the per-wallet factor breakdown served by
// /api/wallets/:id/risk-factors
type RiskFactorReport struct {
	Address   string            `json:"address"`
	RiskScore int               `json:"risk_score"`
	RiskLevel string            `json:"risk_level"`
	IsFlagged bool              `json:"is_flagged"`
	Factors   risk.FactorScores `json:"factors"`
}

// MonitorService owns the refresh-and-score pipeline: it polls the
// upstream APIs, rebuilds the derived wallet/market/transaction records
// and serves every read from the latest complete snapshot.
//
// Refresh policy is latest-wins with no backlog: a refresh starts only
// when the snapshot is stale and no refresh is in flight; concurrent
// requests during a refresh are dropped and served from the last-good
// snapshot.
type MonitorService struct {
	client MarketFetcher
	store  storage.Store
	ttl    time.Duration

	refreshing  atomic.Bool
	mu          sync.RWMutex
	snapshot    *Snapshot
	lastRefresh time.Time
}

// NewMonitorService creates the monitor. A zero ttl falls back to
// RefreshTTL.
func NewMonitorService(client MarketFetcher, store storage.Store, ttl time.Duration) *MonitorService {
	if ttl == 0 {
		ttl = RefreshTTL
	}
	return &MonitorService{
		client:   client,
		store:    store,
		ttl:      ttl,
		snapshot: emptySnapshot(),
	}
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		tradesByMarket: make(map[string][]polymarket.TradeRecord),
		walletIndex:    make(map[string]int),
		marketIndex:    make(map[string]int),
	}
}

// RefreshIfStale triggers a refresh when the snapshot has expired and no
// refresh is already running. Every public read path calls this first.
func (s *MonitorService) RefreshIfStale() {
	s.mu.RLock()
	stale := time.Since(s.lastRefresh) >= s.ttl
	s.mu.RUnlock()
	if !stale {
		return
	}

	// Single-writer guard: losers of the race serve the last-good snapshot
	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}
	defer s.refreshing.Store(false)

	if err := s.refresh(); err != nil {
		// lastRefresh stays untouched so the next read retries immediately
		log.Printf("[Monitor] refresh failed: %v", err)
	}
}

// refresh fetches upstream data and swaps in a fully rebuilt snapshot
func (s *MonitorService) refresh() error {
	markets, err := s.client.GetMarkets(marketFetchLimit)
	if err != nil {
		return fmt.Errorf("market fetch failed: %w", err)
	}

	trades, err := s.client.GetRecentTrades(tradeFetchLimit)
	if err != nil {
		return fmt.Errorf("trade fetch failed: %w", err)
	}

	snapshot := buildSnapshot(markets, trades, time.Now())

	s.mu.Lock()
	s.snapshot = snapshot
	s.lastRefresh = snapshot.RefreshedAt
	s.mu.Unlock()

	if err := s.store.SaveSnapshot(snapshot.Wallets, snapshot.Markets, snapshot.Transactions); err != nil {
		// Persistence is a pass-through; the in-memory snapshot already serves reads
		log.Printf("[Monitor] snapshot persistence failed: %v", err)
	}

	log.Printf("[Monitor] refresh complete: %d wallets, %d markets, %d transactions",
		len(snapshot.Wallets), len(snapshot.Markets), len(snapshot.Transactions))
	return nil
}

// buildSnapshot recomputes all derived records from raw upstream data
func buildSnapshot(markets []polymarket.GammaMarket, trades []polymarket.TradeRecord, now time.Time) *Snapshot {
	snapshot := emptySnapshot()
	snapshot.RefreshedAt = now

	grouped := analyzer.GroupByWallet(trades)

	walletRisk := make(map[string]int)
	for address, walletTrades := range grouped {
		metrics := analyzer.AnalyzeAt(walletTrades, now)
		factors := risk.Breakdown(metrics)
		score := factors.Total()
		walletRisk[address] = score

		earliest := walletTrades[0].Time()
		for _, t := range walletTrades {
			if ts := t.Time(); ts.Before(earliest) {
				earliest = ts
			}
		}

		snapshot.Wallets = append(snapshot.Wallets, models.Wallet{
			Address:                address,
			RiskScore:              score,
			WinRate:                metrics.WinRate,
			TotalBets:              metrics.TotalBets,
			TotalVolume:            metrics.TotalVolume,
			CurrentPositionValue:   metrics.PositionValue,
			AccountAgeDays:         metrics.AccountAgeDays,
			PortfolioConcentration: metrics.MarketConcentration,
			AvgTimingProximity:     metrics.AvgTimingHours,
			IsFlagged:              risk.ShouldFlag(score),
			FirstSeen:              earliest,
			LastUpdated:            now,
		})
	}

	sort.Slice(snapshot.Wallets, func(i, j int) bool {
		return snapshot.Wallets[i].RiskScore > snapshot.Wallets[j].RiskScore
	})
	for i, w := range snapshot.Wallets {
		snapshot.walletIndex[w.Address] = i
	}

	// Per-market aggregates over the wallets that traded each market
	marketWallets := make(map[string]map[string]bool)
	for _, t := range trades {
		if t.ConditionID == "" || t.ProxyWallet == "" {
			continue
		}
		if marketWallets[t.ConditionID] == nil {
			marketWallets[t.ConditionID] = make(map[string]bool)
		}
		marketWallets[t.ConditionID][t.ProxyWallet] = true
		snapshot.tradesByMarket[t.ConditionID] = append(snapshot.tradesByMarket[t.ConditionID], t)
	}

	for _, m := range markets {
		suspicious := 0
		var riskSum, riskCount float64
		for address := range marketWallets[m.ConditionID] {
			score := walletRisk[address]
			riskSum += float64(score)
			riskCount++
			if risk.ShouldFlag(score) {
				suspicious++
			}
		}
		avgRisk := 0.0
		if riskCount > 0 {
			avgRisk = riskSum / riskCount
		}

		snapshot.Markets = append(snapshot.Markets, models.Market{
			ConditionID:           m.ConditionID,
			Question:              m.Question,
			Category:              CategorizeMarket(m.Question),
			EndDate:               m.ParseEndDate(),
			Volume:                m.VolumeFloat(),
			SuspiciousWalletCount: suspicious,
			AvgRiskScore:          avgRisk,
			LastUpdated:           now,
		})
	}

	sort.Slice(snapshot.Markets, func(i, j int) bool {
		return snapshot.Markets[i].Volume > snapshot.Markets[j].Volume
	})
	for i, m := range snapshot.Markets {
		snapshot.marketIndex[m.ConditionID] = i
	}

	for _, t := range trades {
		snapshot.Transactions = append(snapshot.Transactions, buildTransaction(t, now))
	}
	sort.Slice(snapshot.Transactions, func(i, j int) bool {
		return snapshot.Transactions[i].Timestamp.After(snapshot.Transactions[j].Timestamp)
	})

	return snapshot
}

// buildTransaction converts a raw trade into the served record
func buildTransaction(t polymarket.TradeRecord, now time.Time) models.Transaction {
	amount := t.ValueUSD()
	price := t.PriceFloat()

	hours := now.Sub(t.Time()).Hours()
	if hours < 0 {
		hours = 0
	}
	if hours > analyzer.MaxTimingHours {
		hours = analyzer.MaxTimingHours
	}

	// Resolution data is unavailable, so won carries the same
	// bought-low/sold-high heuristic as the win rate; trades at exactly
	// 0.5 stay unknown.
	var won *bool
	if price != 0.5 {
		w := (t.Side == "SELL" && price > 0.5) || (t.Side == "BUY" && price < 0.5)
		won = &w
	}

	impact := amount / 100000
	if impact > 0.1 {
		impact = 0.1
	}

	return models.Transaction{
		TradeID:               t.TradeID,
		WalletAddress:         t.ProxyWallet,
		ConditionID:           t.ConditionID,
		Amount:                amount,
		Direction:             t.Side,
		Outcome:               t.Outcome,
		Timestamp:             t.Time(),
		HoursBeforeResolution: hours,
		Won:                   won,
		PriceImpact:           impact,
	}
}

// currentSnapshot refreshes when stale and returns the snapshot to serve
func (s *MonitorService) currentSnapshot() *Snapshot {
	s.RefreshIfStale()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// GetWallets returns all monitored wallets, riskiest first
func (s *MonitorService) GetWallets() []models.Wallet {
	return s.currentSnapshot().Wallets
}

// GetFlaggedWallets returns wallets at or above the medium risk threshold
func (s *MonitorService) GetFlaggedWallets() []models.Wallet {
	var flagged []models.Wallet
	for _, w := range s.currentSnapshot().Wallets {
		if w.IsFlagged {
			flagged = append(flagged, w)
		}
	}
	return flagged
}

// GetWalletByAddress looks up a wallet in the current snapshot
func (s *MonitorService) GetWalletByAddress(address string) (models.Wallet, bool) {
	snapshot := s.currentSnapshot()
	i, ok := snapshot.walletIndex[address]
	if !ok {
		return models.Wallet{}, false
	}
	return snapshot.Wallets[i], true
}

// GetRiskFactors returns the factor breakdown behind a wallet's score
func (s *MonitorService) GetRiskFactors(address string) (RiskFactorReport, bool) {
	wallet, ok := s.GetWalletByAddress(address)
	if !ok {
		return RiskFactorReport{}, false
	}

	factors := risk.Breakdown(analyzer.WalletMetrics{
		WinRate:             wallet.WinRate,
		TotalBets:           wallet.TotalBets,
		TotalVolume:         wallet.TotalVolume,
		MarketConcentration: wallet.PortfolioConcentration,
		AvgTimingHours:      wallet.AvgTimingProximity,
		AccountAgeDays:      wallet.AccountAgeDays,
	})

	return RiskFactorReport{
		Address:   wallet.Address,
		RiskScore: wallet.RiskScore,
		RiskLevel: risk.Level(wallet.RiskScore),
		IsFlagged: wallet.IsFlagged,
		Factors:   factors,
	}, true
}

// GetMarkets returns all monitored markets, largest volume first
func (s *MonitorService) GetMarkets() []models.Market {
	return s.currentSnapshot().Markets
}

// GetMarketByCondition looks up a market by its condition id
func (s *MonitorService) GetMarketByCondition(conditionID string) (models.Market, bool) {
	snapshot := s.currentSnapshot()
	i, ok := snapshot.marketIndex[conditionID]
	if !ok {
		return models.Market{}, false
	}
	return snapshot.Markets[i], true
}

// GetTransactions returns the observed trades, newest first
func (s *MonitorService) GetTransactions() []models.Transaction {
	return s.currentSnapshot().Transactions
}

// GetDashboardStats returns the aggregate dashboard view
func (s *MonitorService) GetDashboardStats() DashboardStats {
	snapshot := s.currentSnapshot()

	stats := DashboardStats{
		TotalWallets: len(snapshot.Wallets),
		TotalMarkets: len(snapshot.Markets),
		LastRefresh:  snapshot.RefreshedAt,
	}

	var riskSum float64
	for _, w := range snapshot.Wallets {
		stats.TotalVolume += w.TotalVolume
		riskSum += float64(w.RiskScore)
		if w.IsFlagged {
			stats.FlaggedWallets++
		}
		if w.RiskScore >= risk.HighThreshold {
			stats.HighRiskWallets++
		}
	}
	if len(snapshot.Wallets) > 0 {
		stats.AvgRiskScore = riskSum / float64(len(snapshot.Wallets))
	}

	return stats
}

// HistoricalWallets returns wallets from the storage layer. The
// relational variant keeps rows across refreshes; the in-memory variant
// degrades to the latest snapshot.
func (s *MonitorService) HistoricalWallets() ([]models.Wallet, error) {
	s.RefreshIfStale()
	return s.store.HistoricalWallets()
}

// MarketTrades returns the raw trades observed for one market in the
// current snapshot. Used by the earnings matcher.
func (s *MonitorService) MarketTrades(conditionID string) []polymarket.TradeRecord {
	return s.currentSnapshot().tradesByMarket[conditionID]
}
