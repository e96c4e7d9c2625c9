package polymarket

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const (
	GammaAPIURL = "https://gamma-api.polymarket.com"
	DataAPIURL  = "https://data-api.polymarket.com"

	// CacheTTL is how long fetched market/trade data stays fresh
	CacheTTL = 5 * time.Minute
)

// GammaMarket represents a market from the Gamma API
type GammaMarket struct {
	ID          string `json:"id"`
	ConditionID string `json:"conditionId"`
	Question    string `json:"question"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Volume      string `json:"volume"` // string-encoded number
	Liquidity   string `json:"liquidity"`
	Active      bool   `json:"active"`
	Closed      bool   `json:"closed"`
	EndDate     string `json:"endDate"` // RFC3339, may be empty
}

// VolumeFloat parses the string-encoded volume, returning 0 on bad input
func (m *GammaMarket) VolumeFloat() float64 {
	d, err := decimal.NewFromString(m.Volume)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// ParseEndDate parses the market end date, nil when unknown
func (m *GammaMarket) ParseEndDate() *time.Time {
	if m.EndDate == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, m.EndDate)
	if err != nil {
		return nil
	}
	return &t
}

// TradeRecord represents a trade from the Data API
type TradeRecord struct {
	TradeID         string `json:"id"`
	ProxyWallet     string `json:"proxyWallet"`
	ConditionID     string `json:"conditionId"`
	Side            string `json:"side"` // BUY or SELL
	Outcome         string `json:"outcome"`
	Size            string `json:"size"`  // string-encoded number
	Price           string `json:"price"` // string-encoded, 0-1 range
	Timestamp       int64  `json:"timestamp"` // unix seconds
	TransactionHash string `json:"transactionHash"`
}

// PriceFloat parses the execution price, returning 0 on bad input
func (t *TradeRecord) PriceFloat() float64 {
	d, err := decimal.NewFromString(t.Price)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// SizeFloat parses the trade size, returning 0 on bad input
func (t *TradeRecord) SizeFloat() float64 {
	d, err := decimal.NewFromString(t.Size)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// ValueUSD returns the USD-equivalent value of the trade (size * price)
func (t *TradeRecord) ValueUSD() float64 {
	size, err := decimal.NewFromString(t.Size)
	if err != nil {
		return 0
	}
	price, err := decimal.NewFromString(t.Price)
	if err != nil {
		return 0
	}
	return size.Mul(price).InexactFloat64()
}

// Time returns the trade timestamp as time.Time
func (t *TradeRecord) Time() time.Time {
	return time.Unix(t.Timestamp, 0)
}

type marketsCacheEntry struct {
	markets   []GammaMarket
	fetchedAt time.Time
}

type tradesCacheEntry struct {
	trades    []TradeRecord
	fetchedAt time.Time
}

// Client fetches markets and trades from the Polymarket public APIs.
// Each entity keeps an independent cache entry with a fixed TTL; on a
// fetch failure the last cached value is served even when stale.
type Client struct {
	httpClient *http.Client
	gammaURL   string
	dataURL    string
	mockMode   bool

	cacheMux     sync.RWMutex
	marketsCache *marketsCacheEntry
	tradesCache  *tradesCacheEntry
}

// NewClient creates a Polymarket API client. Empty URLs fall back to the
// public endpoints. In mock mode a fixed dataset is served without any
// network calls.
func NewClient(gammaURL, dataURL string, mockMode bool) *Client {
	if gammaURL == "" {
		gammaURL = GammaAPIURL
	}
	if dataURL == "" {
		dataURL = DataAPIURL
	}

	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		gammaURL:   gammaURL,
		dataURL:    dataURL,
		mockMode:   mockMode,
	}
}

// GetMarkets fetches active markets ordered by volume
func (c *Client) GetMarkets(limit int) ([]GammaMarket, error) {
	if c.mockMode {
		return mockMarkets(), nil
	}

	c.cacheMux.RLock()
	cached := c.marketsCache
	c.cacheMux.RUnlock()

	if cached != nil && time.Since(cached.fetchedAt) < CacheTTL {
		return cached.markets, nil
	}

	url := fmt.Sprintf("%s/markets?limit=%d&closed=false&active=true&order=volume&ascending=false", c.gammaURL, limit)
	var markets []GammaMarket
	if err := c.getJSON(url, &markets); err != nil {
		if cached != nil {
			log.Printf("[Polymarket] markets fetch failed, serving stale cache: %v", err)
			return cached.markets, nil
		}
		return nil, fmt.Errorf("failed to fetch markets: %w", err)
	}

	c.cacheMux.Lock()
	c.marketsCache = &marketsCacheEntry{markets: markets, fetchedAt: time.Now()}
	c.cacheMux.Unlock()

	return markets, nil
}

// GetRecentTrades fetches the most recent trades across all markets
func (c *Client) GetRecentTrades(limit int) ([]TradeRecord, error) {
	if c.mockMode {
		return mockTrades(), nil
	}

	c.cacheMux.RLock()
	cached := c.tradesCache
	c.cacheMux.RUnlock()

	if cached != nil && time.Since(cached.fetchedAt) < CacheTTL {
		return cached.trades, nil
	}

	url := fmt.Sprintf("%s/trades?limit=%d&takerOnly=true", c.dataURL, limit)
	var trades []TradeRecord
	if err := c.getJSON(url, &trades); err != nil {
		if cached != nil {
			log.Printf("[Polymarket] trades fetch failed, serving stale cache: %v", err)
			return cached.trades, nil
		}
		return nil, fmt.Errorf("failed to fetch trades: %w", err)
	}

	c.cacheMux.Lock()
	c.tradesCache = &tradesCacheEntry{trades: trades, fetchedAt: time.Now()}
	c.cacheMux.Unlock()

	return trades, nil
}

// getJSON performs a GET request and decodes the JSON response
func (c *Client) getJSON(url string, out interface{}) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("polymarket API error: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
