// Package storage provides the persistence strategies behind the
// monitoring services: an in-memory variant and a relational variant.
// The variant is chosen at startup and injected, never selected through
// a package-level singleton.
package storage

import (
	"sync"

	"insider-watch/internal/models"
)

// Store persists refresh snapshots and earnings alerts
type Store interface {
	SaveSnapshot(wallets []models.Wallet, markets []models.Market, transactions []models.Transaction) error
	SaveAlerts(alerts []models.EarningsInsiderAlert) error
	HistoricalWallets() ([]models.Wallet, error)
}

// InMemoryStore keeps only the latest snapshot. Historical reads degrade
// to the current snapshot since nothing survives a refresh.
type InMemoryStore struct {
	mu      sync.RWMutex
	wallets []models.Wallet
	alerts  []models.EarningsInsiderAlert
}

// NewInMemoryStore creates an in-memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// SaveSnapshot replaces the stored snapshot wholesale
func (s *InMemoryStore) SaveSnapshot(wallets []models.Wallet, markets []models.Market, transactions []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets = wallets
	return nil
}

// SaveAlerts replaces the stored alerts
func (s *InMemoryStore) SaveAlerts(alerts []models.EarningsInsiderAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = alerts
	return nil
}

// HistoricalWallets returns the wallets from the latest snapshot
func (s *InMemoryStore) HistoricalWallets() ([]models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Wallet, len(s.wallets))
	copy(out, s.wallets)
	return out, nil
}
