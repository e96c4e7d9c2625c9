package earnings

import (
	"strings"
)

// requiredKeywords gates matching: a market must mention at least one
// earnings-related term before any ticker matching is attempted.
var requiredKeywords = []string{
	"earnings", "eps", "revenue", "quarterly", "guidance",
	"q1", "q2", "q3", "q4", "report", "beat", "miss",
}

// tickerAliases maps common company spellings to tickers for markets
// that never mention the ticker itself. Hand curated, checked in order
// after the direct ticker/company match.
var tickerAliases = map[string]string{
	"alphabet":  "GOOGL",
	"google":    "GOOGL",
	"facebook":  "META",
	"meta":      "META",
	"nvidia":    "NVDA",
	"apple":     "AAPL",
	"tesla":     "TSLA",
	"microsoft": "MSFT",
	"amazon":    "AMZN",
}

// MatchMarket finds the first calendar event matching a market question.
// Case-insensitive substring search, no ranking: the first event that
// matches wins.
func MatchMarket(question string, events []Event) (Event, bool) {
	q := strings.ToLower(question)

	if !containsEarningsKeyword(q) {
		return Event{}, false
	}

	for _, ev := range events {
		if strings.Contains(q, strings.ToLower(ev.Ticker)) {
			return ev, true
		}
		if ev.CompanyName != "" && strings.Contains(q, strings.ToLower(ev.CompanyName)) {
			return ev, true
		}
		for alias, ticker := range tickerAliases {
			if ticker == ev.Ticker && strings.Contains(q, alias) {
				return ev, true
			}
		}
	}

	return Event{}, false
}

func containsEarningsKeyword(question string) bool {
	for _, kw := range requiredKeywords {
		if strings.Contains(question, kw) {
			return true
		}
	}
	return false
}
