package services

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"insider-watch/internal/earnings"
	"insider-watch/internal/models"
	"insider-watch/internal/storage"

	"github.com/google/uuid"
)

// EarningsRefreshTTL is how long a generated alert set stays fresh
const EarningsRefreshTTL = 30 * time.Minute

// freshWalletMaxAgeDays and freshWalletMinBetUSD define the
// "new-account + large-bet" wallet signal on a matched market
const (
	freshWalletMaxAgeDays = 7
	freshWalletMinBetUSD  = 2500.0
)

// CalendarFetcher is the upstream earnings-calendar source
type CalendarFetcher interface {
	GetUpcomingEvents() ([]earnings.Event, error)
}

// EarningsStats is the aggregate view served by /api/earnings/stats
type EarningsStats struct {
	TotalAlerts     int       `json:"total_alerts"`
	HighScoreAlerts int       `json:"high_score_alerts"`
	AvgScore        float64   `json:"avg_score"`
	UpcomingEvents  int       `json:"upcoming_events"`
	LastRefresh     time.Time `json:"last_refresh"`
}

// EarningsService matches monitored markets against the earnings
// calendar and maintains its own alert cache, structurally the same
// refresh-and-replace pattern as the monitor.
type EarningsService struct {
	calendar CalendarFetcher
	monitor  *MonitorService
	store    storage.Store
	ttl      time.Duration

	refreshing  atomic.Bool
	mu          sync.RWMutex
	alerts      []models.EarningsInsiderAlert
	eventCount  int
	lastRefresh time.Time
}

// NewEarningsService creates the earnings matcher service. A zero ttl
// falls back to EarningsRefreshTTL.
func NewEarningsService(calendar CalendarFetcher, monitor *MonitorService, store storage.Store, ttl time.Duration) *EarningsService {
	if ttl == 0 {
		ttl = EarningsRefreshTTL
	}
	return &EarningsService{
		calendar: calendar,
		monitor:  monitor,
		store:    store,
		ttl:      ttl,
	}
}

// RefreshIfStale rebuilds the alert set when it has expired; concurrent
// requests during a rebuild are dropped, same policy as the monitor.
func (s *EarningsService) RefreshIfStale() {
	s.mu.RLock()
	stale := time.Since(s.lastRefresh) >= s.ttl
	s.mu.RUnlock()
	if !stale {
		return
	}

	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}
	defer s.refreshing.Store(false)

	if err := s.refresh(); err != nil {
		log.Printf("[Earnings] refresh failed: %v", err)
	}
}

func (s *EarningsService) refresh() error {
	events, err := s.calendar.GetUpcomingEvents()
	if err != nil {
		return fmt.Errorf("calendar fetch failed: %w", err)
	}

	now := time.Now()
	var alerts []models.EarningsInsiderAlert

	for _, market := range s.monitor.GetMarkets() {
		event, ok := earnings.MatchMarket(market.Question, events)
		if !ok {
			continue
		}

		input := s.buildAlertInput(market, event, now)
		factors := earnings.ScoreAlert(input)

		alerts = append(alerts, models.EarningsInsiderAlert{
			ID:                 uuid.New(),
			Ticker:             event.Ticker,
			CompanyName:        event.CompanyName,
			EventDate:          event.EventDate,
			ConditionID:        market.ConditionID,
			MarketQuestion:     market.Question,
			ImpliedProbability: input.ImpliedProbability,
			ConsensusEstimate:  event.ConsensusBeatProb,
			InsiderScore:       factors.Total(),
			DivergenceScore:    factors.Divergence,
			FreshWalletScore:   factors.FreshWallets,
			UrgencyScore:       factors.Urgency,
			VolumeAnomalyScore: factors.VolumeAnomaly,
			CreatedAt:          now,
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].InsiderScore > alerts[j].InsiderScore
	})

	s.mu.Lock()
	s.alerts = alerts
	s.eventCount = len(events)
	s.lastRefresh = now
	s.mu.Unlock()

	if err := s.store.SaveAlerts(alerts); err != nil {
		log.Printf("[Earnings] alert persistence failed: %v", err)
	}

	log.Printf("[Earnings] refresh complete: %d alerts from %d calendar events", len(alerts), len(events))
	return nil
}

// buildAlertInput derives the four scoring signals for a matched market
func (s *EarningsService) buildAlertInput(market models.Market, event earnings.Event, now time.Time) earnings.AlertInput {
	trades := s.monitor.MarketTrades(market.ConditionID)

	// Mean execution price stands in for the market-implied probability
	var priceSum, windowVolume float64
	volumeByWallet := make(map[string]float64)
	for _, t := range trades {
		priceSum += t.PriceFloat()
		value := t.ValueUSD()
		windowVolume += value
		volumeByWallet[t.ProxyWallet] += value
	}
	implied := 0.0
	if len(trades) > 0 {
		implied = priceSum / float64(len(trades))
	}

	freshWallets := 0
	for address, volume := range volumeByWallet {
		if volume < freshWalletMinBetUSD {
			continue
		}
		wallet, ok := s.monitor.GetWalletByAddress(address)
		if ok && wallet.AccountAgeDays < freshWalletMaxAgeDays {
			freshWallets++
		}
	}

	// Observed window volume extrapolated to a daily rate against a
	// 30-day baseline from the market's lifetime volume
	anomalyRatio := 0.0
	if market.Volume > 0 {
		baselineDaily := market.Volume / 30
		observedDaily := windowVolume / 7
		if baselineDaily > 0 {
			anomalyRatio = observedDaily / baselineDaily
		}
	}

	return earnings.AlertInput{
		ImpliedProbability: implied,
		ConsensusBeatProb:  event.ConsensusBeatProb,
		FreshWalletCount:   freshWallets,
		DaysUntilEvent:     event.EventDate.Sub(now).Hours() / 24,
		VolumeAnomalyRatio: anomalyRatio,
	}
}

// GetAlerts returns the current alert set, highest score first
func (s *EarningsService) GetAlerts() []models.EarningsInsiderAlert {
	s.RefreshIfStale()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts
}

// GetStats returns the aggregate earnings alert view
func (s *EarningsService) GetStats() EarningsStats {
	s.RefreshIfStale()
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := EarningsStats{
		TotalAlerts:    len(s.alerts),
		UpcomingEvents: s.eventCount,
		LastRefresh:    s.lastRefresh,
	}

	var scoreSum float64
	for _, a := range s.alerts {
		scoreSum += float64(a.InsiderScore)
		if a.InsiderScore >= 60 {
			stats.HighScoreAlerts++
		}
	}
	if len(s.alerts) > 0 {
		stats.AvgScore = scoreSum / float64(len(s.alerts))
	}

	return stats
}
