package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"insider-watch/internal/earnings"
	"insider-watch/internal/polymarket"
	"insider-watch/internal/services"
	"insider-watch/internal/storage"

	"github.com/gin-gonic/gin"
)

const fixtureTradeCount = 7

type staticFetcher struct {
	markets []polymarket.GammaMarket
	trades  []polymarket.TradeRecord
}

func (f *staticFetcher) GetMarkets(limit int) ([]polymarket.GammaMarket, error) {
	return f.markets, nil
}

func (f *staticFetcher) GetRecentTrades(limit int) ([]polymarket.TradeRecord, error) {
	return f.trades, nil
}

// newFixtureRouter serves a small snapshot: one market, seven wallets
// with one trade each, the first wallet suspicious.
func newFixtureRouter() *gin.Engine {
	now := time.Now()
	fetcher := &staticFetcher{
		markets: []polymarket.GammaMarket{
			{ID: "1", ConditionID: "0xm1", Question: "Will Nvidia beat Q3 earnings estimates?", Volume: "50000"},
		},
	}
	for i := 0; i < fixtureTradeCount; i++ {
		// Wallet 0 is the suspicious one: a huge fresh buy at long odds.
		// The rest are old small losing buys that score low.
		size, price := "100", "0.70"
		age := time.Duration(40+i) * 24 * time.Hour
		if i == 0 {
			size, price = "60000", "0.30"
			age = time.Hour
		}
		fetcher.trades = append(fetcher.trades, polymarket.TradeRecord{
			TradeID:     fmt.Sprintf("t%d", i),
			ProxyWallet: fmt.Sprintf("0xwallet%d", i),
			ConditionID: "0xm1",
			Side:        "BUY",
			Outcome:     "Yes",
			Size:        size,
			Price:       price,
			Timestamp:   now.Add(-age).Unix(),
		})
	}

	store := storage.NewInMemoryStore()
	monitor := services.NewMonitorService(fetcher, store, time.Minute)
	earningsService := services.NewEarningsService(&staticCalendar{}, monitor, store, time.Minute)

	walletHandler := NewWalletHandler(monitor)
	marketHandler := NewMarketHandler(monitor)
	statsHandler := NewStatsHandler(monitor)
	earningsHandler := NewEarningsHandler(earningsService)

	router := gin.New()
	api := router.Group("/api")
	{
		api.GET("/stats", statsHandler.GetStats)
		api.GET("/wallets", walletHandler.GetWallets)
		api.GET("/wallets/flagged", walletHandler.GetFlaggedWallets)
		api.GET("/wallets/historical", walletHandler.GetHistoricalWallets)
		api.GET("/wallets/:id", walletHandler.GetWalletByAddress)
		api.GET("/wallets/:id/risk-factors", walletHandler.GetRiskFactors)
		api.GET("/markets", marketHandler.GetMarkets)
		api.GET("/markets/:id", marketHandler.GetMarketByID)
		api.GET("/transactions", marketHandler.GetTransactions)
		api.GET("/earnings", earningsHandler.GetAlerts)
		api.GET("/earnings/stats", earningsHandler.GetStats)
	}
	return router
}

type staticCalendar struct{}

func (staticCalendar) GetUpcomingEvents() ([]earnings.Event, error) {
	return []earnings.Event{
		{Ticker: "NVDA", CompanyName: "Nvidia", EventDate: time.Now().Add(48 * time.Hour), ConsensusBeatProb: 0.55},
	}, nil
}

type pageEnvelope struct {
	Data    []json.RawMessage `json:"data"`
	Total   int               `json:"total"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
	HasMore bool              `json:"hasMore"`
}

func get(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func getPage(t *testing.T, router *gin.Engine, path string) pageEnvelope {
	t.Helper()
	w := get(t, router, path)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s returned %d: %s", path, w.Code, w.Body.String())
	}
	var env pageEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode %s response: %v", path, err)
	}
	return env
}

func TestPaginationInvariant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newFixtureRouter()

	limits := []int{1, 3, 7, 50, 500}
	offsets := []int{0, 2, 7, 10}

	for _, limit := range limits {
		for _, offset := range offsets {
			path := fmt.Sprintf("/api/transactions?limit=%d&offset=%d", limit, offset)
			env := getPage(t, router, path)

			wantLimit := limit
			if wantLimit > 200 {
				wantLimit = 200
			}
			remaining := fixtureTradeCount - offset
			if remaining < 0 {
				remaining = 0
			}
			wantLen := wantLimit
			if wantLen > remaining {
				wantLen = remaining
			}

			if env.Total != fixtureTradeCount {
				t.Errorf("%s: total = %d, want %d", path, env.Total, fixtureTradeCount)
			}
			if env.Limit != wantLimit {
				t.Errorf("%s: limit = %d, want %d", path, env.Limit, wantLimit)
			}
			if len(env.Data) != wantLen {
				t.Errorf("%s: len(data) = %d, want %d", path, len(env.Data), wantLen)
			}
			if wantHasMore := offset+wantLen < fixtureTradeCount; env.HasMore != wantHasMore {
				t.Errorf("%s: hasMore = %v, want %v", path, env.HasMore, wantHasMore)
			}
		}
	}
}

func TestPaginationDefaultsOnInvalidInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newFixtureRouter()

	env := getPage(t, router, "/api/transactions?limit=abc&offset=-5")
	if env.Limit != 50 {
		t.Errorf("expected default limit 50 on invalid input, got %d", env.Limit)
	}
	if env.Offset != 0 {
		t.Errorf("expected offset 0 on negative input, got %d", env.Offset)
	}
	if len(env.Data) != fixtureTradeCount {
		t.Errorf("expected all %d rows, got %d", fixtureTradeCount, len(env.Data))
	}
}

func TestWalletEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newFixtureRouter()

	env := getPage(t, router, "/api/wallets")
	if env.Total != fixtureTradeCount {
		t.Errorf("expected %d wallets, got %d", fixtureTradeCount, env.Total)
	}

	flagged := getPage(t, router, "/api/wallets/flagged")
	if flagged.Total != 1 {
		t.Errorf("expected 1 flagged wallet, got %d", flagged.Total)
	}

	historical := getPage(t, router, "/api/wallets/historical")
	if historical.Total != fixtureTradeCount {
		t.Errorf("expected %d historical wallets, got %d", fixtureTradeCount, historical.Total)
	}

	if w := get(t, router, "/api/wallets/0xwallet0"); w.Code != http.StatusOK {
		t.Errorf("expected 200 for known wallet, got %d", w.Code)
	}
	if w := get(t, router, "/api/wallets/0xnobody"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown wallet, got %d", w.Code)
	}
}

func TestRiskFactorsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newFixtureRouter()

	w := get(t, router, "/api/wallets/0xwallet0/risk-factors")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Address   string `json:"address"`
			RiskScore int    `json:"risk_score"`
			RiskLevel string `json:"risk_level"`
			IsFlagged bool   `json:"is_flagged"`
			Factors   struct {
				AccountAge   int `json:"account_age"`
				WinRate      int `json:"win_rate"`
				PositionSize int `json:"position_size"`
			} `json:"factors"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Address != "0xwallet0" {
		t.Errorf("expected address 0xwallet0, got %s", resp.Data.Address)
	}
	if !resp.Data.IsFlagged {
		t.Error("expected the large fresh wallet to be flagged")
	}
	if resp.Data.Factors.PositionSize != 20 {
		t.Errorf("expected max position size factor, got %d", resp.Data.Factors.PositionSize)
	}

	if w := get(t, router, "/api/wallets/0xnobody/risk-factors"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown wallet, got %d", w.Code)
	}
}

func TestMarketEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newFixtureRouter()

	env := getPage(t, router, "/api/markets")
	if env.Total != 1 {
		t.Errorf("expected 1 market, got %d", env.Total)
	}

	if w := get(t, router, "/api/markets/0xm1"); w.Code != http.StatusOK {
		t.Errorf("expected 200 for known market, got %d", w.Code)
	}
	if w := get(t, router, "/api/markets/0xmissing"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown market, got %d", w.Code)
	}
}

func TestEarningsEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newFixtureRouter()

	env := getPage(t, router, "/api/earnings")
	if env.Total != 1 {
		t.Errorf("expected 1 earnings alert, got %d", env.Total)
	}

	w := get(t, router, "/api/earnings/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Data struct {
			TotalAlerts    int `json:"total_alerts"`
			UpcomingEvents int `json:"upcoming_events"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.TotalAlerts != 1 {
		t.Errorf("expected 1 alert, got %d", resp.Data.TotalAlerts)
	}
	if resp.Data.UpcomingEvents != 1 {
		t.Errorf("expected 1 calendar event, got %d", resp.Data.UpcomingEvents)
	}
}

func TestStatsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newFixtureRouter()

	w := get(t, router, "/api/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data struct {
			TotalWallets   int `json:"total_wallets"`
			FlaggedWallets int `json:"flagged_wallets"`
			TotalMarkets   int `json:"total_markets"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.TotalWallets != fixtureTradeCount {
		t.Errorf("expected %d wallets, got %d", fixtureTradeCount, resp.Data.TotalWallets)
	}
	if resp.Data.FlaggedWallets != 1 {
		t.Errorf("expected 1 flagged wallet, got %d", resp.Data.FlaggedWallets)
	}
	if resp.Data.TotalMarkets != 1 {
		t.Errorf("expected 1 market, got %d", resp.Data.TotalMarkets)
	}
}
