package scoring

import (
	"testing"

	"github.com/AuriPersonalAssist/auri-flow/internal/calibration"
)

func TestCost(t *testing.T) {
	t.Parallel()

	rates := calibration.CostRates{PerHour: 1.0, PerEffort: 0.5, MoneyFactor: 0.01}

	tests := []struct {
		name string
		in   CostInput
		want float64
	}{
		{
			name: "linear combination",
			in:   CostInput{Rates: rates, Setup: 1.5, Hours: 2, Effort: 4, Money: 100},
			want: 2 + 2 + 1 + 1.5,
		},
		{
			name: "zero usage is just setup",
			in:   CostInput{Rates: rates, Setup: 0.5},
			want: 0.5,
		},
		{
			name: "negative sum floored at zero",
			in:   CostInput{Rates: rates, Setup: 0, Hours: -10, Effort: -5, Money: -1000},
			want: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Cost(tt.in)
			if !almostEqual(got, tt.want) {
				t.Errorf("Expected Cost to be %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCost_MonotonicInEachInput(t *testing.T) {
	t.Parallel()

	rates := calibration.CostRates{PerHour: 1.0, PerEffort: 0.5, MoneyFactor: 0.01}
	base := CostInput{Rates: rates, Setup: 1, Hours: 2, Effort: 3, Money: 50}
	baseCost := Cost(base)

	bumps := []struct {
		name string
		in   CostInput
	}{
		{"hours", CostInput{Rates: rates, Setup: 1, Hours: 3, Effort: 3, Money: 50}},
		{"effort", CostInput{Rates: rates, Setup: 1, Hours: 2, Effort: 4, Money: 50}},
		{"money", CostInput{Rates: rates, Setup: 1, Hours: 2, Effort: 3, Money: 60}},
	}

	for _, tt := range bumps {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Cost(tt.in); got < baseCost {
				t.Errorf("Expected cost to be non-decreasing in %s, got %v < %v", tt.name, got, baseCost)
			}
		})
	}
}

func TestCost_NeverNegative(t *testing.T) {
	t.Parallel()

	rates := calibration.CostRates{PerHour: 1.0, PerEffort: 0.5, MoneyFactor: 0.01}
	for _, in := range []CostInput{
		{Rates: rates, Setup: -5},
		{Rates: rates, Hours: -1, Effort: -1, Money: -1},
		{Rates: rates, Setup: -100, Hours: 1},
	} {
		if got := Cost(in); got < 0 {
			t.Errorf("Expected Cost to be >= 0 for %+v, got %v", in, got)
		}
	}
}
