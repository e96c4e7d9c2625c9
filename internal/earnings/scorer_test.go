package earnings

import "testing"

func TestScoreAlertDeterminism(t *testing.T) {
	in := AlertInput{
		ImpliedProbability: 0.80,
		ConsensusBeatProb:  0.55,
		FreshWalletCount:   3,
		DaysUntilEvent:     1.5,
		VolumeAnomalyRatio: 2.4,
	}

	first := ScoreAlert(in).Total()
	for i := 0; i < 50; i++ {
		if got := ScoreAlert(in).Total(); got != first {
			t.Fatalf("ScoreAlert is not deterministic: got %d, want %d", got, first)
		}
	}
}

func TestDivergenceBoundaries(t *testing.T) {
	cases := []struct {
		divergence float64
		want       int
	}{
		{0.35, 25}, {0.31, 25}, {0.30, 18}, {0.21, 18}, {0.20, 10}, {0.11, 10}, {0.10, 0}, {0.05, 0},
	}
	for _, tc := range cases {
		if got := divergenceScore(tc.divergence); got != tc.want {
			t.Errorf("divergenceScore(%v) = %d, want %d", tc.divergence, got, tc.want)
		}
	}
}

func TestFreshWalletBoundaries(t *testing.T) {
	cases := []struct {
		count int
		want  int
	}{
		{7, 25}, {5, 25}, {4, 18}, {3, 18}, {2, 10}, {1, 10}, {0, 0},
	}
	for _, tc := range cases {
		if got := freshWalletScore(tc.count); got != tc.want {
			t.Errorf("freshWalletScore(%d) = %d, want %d", tc.count, got, tc.want)
		}
	}
}

func TestUrgencyBoundaries(t *testing.T) {
	cases := []struct {
		days float64
		want int
	}{
		{0.5, 25}, {1.9, 25}, {2, 18}, {4.9, 18}, {5, 10}, {9.9, 10}, {10, 0}, {30, 0},
	}
	for _, tc := range cases {
		if got := urgencyScore(tc.days); got != tc.want {
			t.Errorf("urgencyScore(%v) = %d, want %d", tc.days, got, tc.want)
		}
	}
}

func TestVolumeAnomalyBoundaries(t *testing.T) {
	cases := []struct {
		ratio float64
		want  int
	}{
		{4.0, 25}, {3.1, 25}, {3.0, 18}, {2.1, 18}, {2.0, 10}, {1.6, 10}, {1.5, 0}, {0.8, 0},
	}
	for _, tc := range cases {
		if got := volumeAnomalyScore(tc.ratio); got != tc.want {
			t.Errorf("volumeAnomalyScore(%v) = %d, want %d", tc.ratio, got, tc.want)
		}
	}
}

func TestScoreAlertBounds(t *testing.T) {
	extreme := AlertInput{
		ImpliedProbability: 1.0,
		ConsensusBeatProb:  0.0,
		FreshWalletCount:   50,
		DaysUntilEvent:     0,
		VolumeAnomalyRatio: 100,
	}

	total := ScoreAlert(extreme).Total()
	if total != MaxAlertScore {
		t.Errorf("expected max score %d, got %d", MaxAlertScore, total)
	}

	quiet := AlertInput{
		ImpliedProbability: 0.5,
		ConsensusBeatProb:  0.5,
		DaysUntilEvent:     30,
		VolumeAnomalyRatio: 1.0,
	}
	if got := ScoreAlert(quiet).Total(); got != 0 {
		t.Errorf("expected score 0 for quiet input, got %d", got)
	}
}
