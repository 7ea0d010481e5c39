package scoring

import "github.com/AuriPersonalAssist/auri-flow/internal/calibration"

// CostInput carries everything the linear cost model consumes: the global
// rate coefficients, the category's fixed setup cost and the task's actual
// resource usage.
type CostInput struct {
	Rates  calibration.CostRates
	Setup  float64
	Hours  float64
	Effort float64
	Money  float64
}

// Cost computes the task's resource cost:
// K = max(0, ct*hours + ce*effort + c$*money + setup).
// The zero floor guards against pathological negative inputs; valid data
// never produces a negative sum.
func Cost(in CostInput) float64 {
	k := in.Rates.PerHour*in.Hours + in.Rates.PerEffort*in.Effort + in.Rates.MoneyFactor*in.Money + in.Setup
	if k < 0 {
		return 0
	}
	return k
}
