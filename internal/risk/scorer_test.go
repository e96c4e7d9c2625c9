package risk

import (
	"testing"

	"insider-watch/internal/analyzer"
)

func TestScoreDeterminism(t *testing.T) {
	m := analyzer.WalletMetrics{
		WinRate:             0.72,
		TotalVolume:         5400,
		MarketConcentration: 0.65,
		AvgTimingHours:      30,
		AccountAgeDays:      10,
	}

	first := Score(m)
	for i := 0; i < 100; i++ {
		if got := Score(m); got != first {
			t.Fatalf("Score is not deterministic: got %d, want %d", got, first)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	cases := []analyzer.WalletMetrics{
		{},
		{WinRate: 1.0, TotalVolume: 1e9, MarketConcentration: 1.0, AvgTimingHours: 0, AccountAgeDays: 0},
		{WinRate: -1, TotalVolume: -100, MarketConcentration: -0.5, AvgTimingHours: -5, AccountAgeDays: -3},
		{WinRate: 0.5, TotalVolume: 100, MarketConcentration: 0.3, AvgTimingHours: 168, AccountAgeDays: 365},
	}

	for _, m := range cases {
		score := Score(m)
		if score < 0 || score > MaxScore {
			t.Errorf("Score(%+v) = %d, outside [0, %d]", m, score, MaxScore)
		}
	}
}

func TestAccountAgeBoundaries(t *testing.T) {
	cases := []struct {
		days int
		want int
	}{
		{0, 20}, {6, 20}, {7, 15}, {13, 15}, {14, 8}, {29, 8}, {30, 0}, {365, 0},
	}
	for _, tc := range cases {
		if got := accountAgeScore(tc.days); got != tc.want {
			t.Errorf("accountAgeScore(%d) = %d, want %d", tc.days, got, tc.want)
		}
	}
}

func TestWinRateBoundaries(t *testing.T) {
	cases := []struct {
		rate float64
		want int
	}{
		{0.97, 20}, {0.86, 20}, {0.85, 15}, {0.71, 15}, {0.70, 8}, {0.61, 8}, {0.60, 0}, {0.5, 0},
	}
	for _, tc := range cases {
		if got := winRateScore(tc.rate); got != tc.want {
			t.Errorf("winRateScore(%v) = %d, want %d", tc.rate, got, tc.want)
		}
	}
}

func TestConcentrationBoundaries(t *testing.T) {
	cases := []struct {
		concentration float64
		want          int
	}{
		{0.95, 20}, {0.81, 20}, {0.80, 15}, {0.61, 15}, {0.60, 8}, {0.41, 8}, {0.40, 0}, {0.3, 0},
	}
	for _, tc := range cases {
		if got := concentrationScore(tc.concentration); got != tc.want {
			t.Errorf("concentrationScore(%v) = %d, want %d", tc.concentration, got, tc.want)
		}
	}
}

func TestTimingBoundaries(t *testing.T) {
	cases := []struct {
		hours float64
		want  int
	}{
		{8, 20}, {23.9, 20}, {24, 15}, {47.9, 15}, {48, 8}, {71.9, 8}, {72, 0}, {168, 0},
	}
	for _, tc := range cases {
		if got := timingScore(tc.hours); got != tc.want {
			t.Errorf("timingScore(%v) = %d, want %d", tc.hours, got, tc.want)
		}
	}
}

func TestPositionSizeBoundaries(t *testing.T) {
	cases := []struct {
		volume float64
		want   int
	}{
		{320000, 20}, {10000, 20}, {9999.99, 15}, {2500, 15}, {2499.99, 8}, {500, 8}, {499.99, 0}, {100, 0},
	}
	for _, tc := range cases {
		if got := positionSizeScore(tc.volume); got != tc.want {
			t.Errorf("positionSizeScore(%v) = %d, want %d", tc.volume, got, tc.want)
		}
	}
}

// Each factor must move monotonically in its risk direction: a riskier
// input never yields a lower sub-score.
func TestFactorMonotonicity(t *testing.T) {
	for days := 60; days > 0; days-- {
		if accountAgeScore(days-1) < accountAgeScore(days) {
			t.Fatalf("account age score decreased when age dropped from %d to %d", days, days-1)
		}
	}
	for r := 0.0; r < 1.0; r += 0.01 {
		if winRateScore(r+0.01) < winRateScore(r) {
			t.Fatalf("win rate score decreased when rate rose from %v", r)
		}
	}
	for c := 0.0; c < 1.0; c += 0.01 {
		if concentrationScore(c+0.01) < concentrationScore(c) {
			t.Fatalf("concentration score decreased when concentration rose from %v", c)
		}
	}
	for h := 168.0; h > 0; h -= 1.0 {
		if timingScore(h-1) < timingScore(h) {
			t.Fatalf("timing score decreased when hours dropped from %v", h)
		}
	}
	for v := 0.0; v < 20000; v += 250 {
		if positionSizeScore(v+250) < positionSizeScore(v) {
			t.Fatalf("position size score decreased when volume rose from %v", v)
		}
	}
}

func TestShouldFlag(t *testing.T) {
	for s := 0; s <= 100; s++ {
		want := s >= MediumThreshold
		if got := ShouldFlag(s); got != want {
			t.Errorf("ShouldFlag(%d) = %v, want %v", s, got, want)
		}
	}
}

func TestLevels(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, LevelLow}, {39, LevelLow},
		{40, LevelMedium}, {59, LevelMedium},
		{60, LevelHigh}, {79, LevelHigh},
		{80, LevelCritical}, {100, LevelCritical},
	}
	for _, tc := range cases {
		if got := Level(tc.score); got != tc.want {
			t.Errorf("Level(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestCriticalWalletScenario(t *testing.T) {
	m := analyzer.WalletMetrics{
		AccountAgeDays:      1,
		WinRate:             0.97,
		MarketConcentration: 0.95,
		AvgTimingHours:      8,
		TotalVolume:         320000,
	}

	score := Score(m)
	if score != 100 {
		t.Errorf("expected score 100, got %d", score)
	}
	if !ShouldFlag(score) {
		t.Error("expected wallet to be flagged")
	}
	if Level(score) != LevelCritical {
		t.Errorf("expected level critical, got %s", Level(score))
	}
}

func TestBenignWalletScenario(t *testing.T) {
	m := analyzer.WalletMetrics{
		AccountAgeDays:      365,
		WinRate:             0.5,
		MarketConcentration: 0.3,
		AvgTimingHours:      168,
		TotalVolume:         100,
	}

	score := Score(m)
	if score != 0 {
		t.Errorf("expected score 0, got %d", score)
	}
	if ShouldFlag(score) {
		t.Error("expected wallet not to be flagged")
	}
	if Level(score) != LevelLow {
		t.Errorf("expected level low, got %s", Level(score))
	}
}
