package scoring

import (
	"testing"

	"github.com/AuriPersonalAssist/auri-flow/internal/calibration"
	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

func TestApplyGUT(t *testing.T) {
	t.Parallel()

	weights := calibration.GUTWeights{BetaG: 0.2, BetaU: 0.35}

	tests := []struct {
		name string
		s0   float64
		gut  models.GUT
		want float64
	}{
		{"neutral gravity is identity", 50, models.GUT{Gravity: 3, Urgency: 5}, 50},
		{"max gravity boosts", 50, models.GUT{Gravity: 5, Urgency: 3}, 50 * 1.4},
		{"min gravity dampens", 50, models.GUT{Gravity: 1, Urgency: 3}, 50 * 0.6},
		{"one step up is one beta", 100, models.GUT{Gravity: 4, Urgency: 1}, 120},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ApplyGUT(tt.s0, tt.gut, weights)
			if !almostEqual(got, tt.want) {
				t.Errorf("Expected ApplyGUT to be %v, got %v", tt.want, got)
			}
		})
	}
}

func TestApplyGUT_AboveNeutralStrictlyIncreases(t *testing.T) {
	t.Parallel()

	weights := calibration.GUTWeights{BetaG: 0.2, BetaU: 0.35}
	s0 := 42.0
	for _, urgency := range []int{1, 3, 5} {
		got := ApplyGUT(s0, models.GUT{Gravity: 5, Urgency: urgency}, weights)
		if got <= s0 {
			t.Errorf("Expected gravity 5 to strictly increase benefit regardless of urgency %d, got %v <= %v", urgency, got, s0)
		}
	}
}

func TestAdjustedHours(t *testing.T) {
	t.Parallel()

	weights := calibration.GUTWeights{BetaG: 0.2, BetaU: 0.35}

	tests := []struct {
		name  string
		hours float64
		gut   models.GUT
		want  float64
	}{
		{"neutral urgency is identity", 2, models.GUT{Gravity: 5, Urgency: 3}, 2},
		{"high urgency extends", 2, models.GUT{Gravity: 3, Urgency: 5}, 2 + 0.7},
		{"low urgency shortens", 2, models.GUT{Gravity: 3, Urgency: 1}, 2 - 0.7},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := AdjustedHours(tt.hours, tt.gut, weights)
			if !almostEqual(got, tt.want) {
				t.Errorf("Expected AdjustedHours to be %v, got %v", tt.want, got)
			}
		})
	}
}

func TestApplyDecay(t *testing.T) {
	t.Parallel()

	const lambda0 = 0.25

	tests := []struct {
		name      string
		s0g       float64
		deltaDays float64
		rigidity  int
		want      float64
	}{
		{"zero days is identity", 80, 0, 5, 80},
		{"flexible deadline never decays", 80, 30, 1, 80},
		{"negative delta floored to zero", 80, -3, 5, 80},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ApplyDecay(tt.s0g, tt.deltaDays, tt.rigidity, lambda0)
			if !almostEqual(got, tt.want) {
				t.Errorf("Expected ApplyDecay to be %v, got %v", tt.want, got)
			}
		})
	}
}

// The decay direction is fixed by contract: score shrinks as the days
// remaining until the deadline grow, and more rigid deadlines shrink faster.
func TestApplyDecay_Direction(t *testing.T) {
	t.Parallel()

	const lambda0 = 0.25
	s0g := 100.0

	prev := ApplyDecay(s0g, 0, 4, lambda0)
	for days := 1.0; days <= 14; days++ {
		cur := ApplyDecay(s0g, days, 4, lambda0)
		if cur >= prev {
			t.Fatalf("Expected decay output to strictly decrease as deltaDays grows, got %v then %v at day %v", prev, cur, days)
		}
		prev = cur
	}

	rigid := ApplyDecay(s0g, 5, 5, lambda0)
	loose := ApplyDecay(s0g, 5, 2, lambda0)
	if rigid >= loose {
		t.Errorf("Expected higher rigidity to decay faster, got rigid=%v loose=%v", rigid, loose)
	}
}
