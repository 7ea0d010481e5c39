// Package scoring implements the priority scoring engine: pure formulas that
// turn a task's attributes into a single comparable score. Every function
// here is a deterministic, side-effect-free transform of its inputs; the
// only shared state is the read-only calibration table.
package scoring

import (
	"math"

	"github.com/AuriPersonalAssist/auri-flow/internal/calibration"
	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// weightedBenefit is the linear pillar combination wd*bd + wf*bf + wm*bm.
func weightedBenefit(w models.PillarWeights, b models.PillarBenefits) float64 {
	return w.Development*b.Development + w.Physical*b.Physical + w.Mental*b.Mental
}

// BaseBenefit computes the pointed-task benefit score:
// S0 = scale * (wd*bd + wf*bf + wm*bm).
func BaseBenefit(scale float64, w models.PillarWeights, b models.PillarBenefits) float64 {
	return scale * weightedBenefit(w, b)
}

// ContinuousBenefit computes the saturating benefit-per-hour factor for a
// continuous activity: B(H) = (b0/k) * (1 - e^(-k*H)). Zero or negative
// durations yield 0; as H grows the factor approaches b0/k, so additional
// time always helps but with diminishing returns.
func ContinuousBenefit(hours, b0, k float64) float64 {
	if hours <= 0 {
		return 0
	}
	return (b0 / k) * (1 - math.Exp(-k*hours))
}

// ContinuousBenefitScore computes the full continuous-task benefit:
// S0 = scale * B(H) * (wd*bd + wf*bf + wm*bm).
func ContinuousBenefitScore(scale, hours float64, cp calibration.ContinuousParams, w models.PillarWeights, b models.PillarBenefits) float64 {
	return scale * ContinuousBenefit(hours, cp.B0, cp.K) * weightedBenefit(w, b)
}
