package services

import "strings"

// Market categories
const (
	CategoryPolitics = "politics"
	CategorySports   = "sports"
	CategoryCrypto   = "crypto"
	CategoryEarnings = "earnings"
	CategoryOther    = "other"
)

var categoryKeywords = map[string][]string{
	CategoryEarnings: {"earnings", "eps", "revenue", "quarterly", "guidance", "q1", "q2", "q3", "q4"},
	CategoryPolitics: {"trump", "biden", "election", "president", "congress", "senate", "democrat", "republican", "vote", "governor", "government", "policy"},
	CategorySports:   {"nba", "nfl", "mlb", "nhl", "soccer", "football", "basketball", "baseball", "hockey", "tennis", "golf", "championship", "super bowl", "world cup", "finals"},
	CategoryCrypto:   {"bitcoin", "btc", "ethereum", "eth", "crypto", "blockchain", "token", "defi", "solana", "sol"},
}

// categoryOrder fixes the match order so categorisation is deterministic
var categoryOrder = []string{CategoryEarnings, CategoryPolitics, CategorySports, CategoryCrypto}

// CategorizeMarket derives a coarse category from the market question by
// keyword matching. Not a hard classification; the first category with a
// matching keyword wins.
func CategorizeMarket(question string) string {
	q := strings.ToLower(question)
	for _, category := range categoryOrder {
		for _, kw := range categoryKeywords[category] {
			if strings.Contains(q, kw) {
				return category
			}
		}
	}
	return CategoryOther
}
