// Package earnings matches prediction markets to calendar earnings
// events and scores the resulting alerts.
package earnings

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// CalendarTTL is how long a fetched earnings calendar stays fresh
const CalendarTTL = 30 * time.Minute

// Event is one scheduled earnings announcement
type Event struct {
	Ticker            string    `json:"ticker"`
	CompanyName       string    `json:"company_name"`
	EventDate         time.Time `json:"event_date"`
	ConsensusBeatProb float64   `json:"consensus_beat_prob"` // analyst consensus probability of a beat
}

type calendarCacheEntry struct {
	events    []Event
	fetchedAt time.Time
}

// Client fetches the upcoming earnings calendar. Without an API key it
// serves a fixed mock dataset instead of failing.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	cacheMux sync.RWMutex
	cache    *calendarCacheEntry
}

// NewClient creates an earnings-calendar client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// GetUpcomingEvents returns the upcoming earnings events, cached for
// CalendarTTL. A fetch failure falls back to the last cached calendar.
func (c *Client) GetUpcomingEvents() ([]Event, error) {
	if c.apiKey == "" {
		return mockEvents(), nil
	}

	c.cacheMux.RLock()
	cached := c.cache
	c.cacheMux.RUnlock()

	if cached != nil && time.Since(cached.fetchedAt) < CalendarTTL {
		return cached.events, nil
	}

	url := fmt.Sprintf("%s/v1/calendar?apikey=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fallback(cached, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return c.fallback(cached, fmt.Errorf("earnings API error: %d - %s", resp.StatusCode, string(body)))
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return c.fallback(cached, fmt.Errorf("failed to decode response: %w", err))
	}

	c.cacheMux.Lock()
	c.cache = &calendarCacheEntry{events: events, fetchedAt: time.Now()}
	c.cacheMux.Unlock()

	return events, nil
}

func (c *Client) fallback(cached *calendarCacheEntry, err error) ([]Event, error) {
	if cached != nil {
		log.Printf("[Earnings] calendar fetch failed, serving stale cache: %v", err)
		return cached.events, nil
	}
	return nil, err
}

// mockEvents is the fixed dataset used when no API credential is configured
func mockEvents() []Event {
	now := time.Now()
	return []Event{
		{Ticker: "NVDA", CompanyName: "Nvidia", EventDate: now.Add(36 * time.Hour), ConsensusBeatProb: 0.55},
		{Ticker: "AAPL", CompanyName: "Apple", EventDate: now.Add(8 * 24 * time.Hour), ConsensusBeatProb: 0.62},
		{Ticker: "META", CompanyName: "Meta Platforms", EventDate: now.Add(12 * 24 * time.Hour), ConsensusBeatProb: 0.48},
		{Ticker: "GOOGL", CompanyName: "Alphabet", EventDate: now.Add(20 * 24 * time.Hour), ConsensusBeatProb: 0.58},
		{Ticker: "TSLA", CompanyName: "Tesla", EventDate: now.Add(4 * 24 * time.Hour), ConsensusBeatProb: 0.41},
	}
}
