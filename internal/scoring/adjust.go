package scoring

import (
	"math"

	"github.com/AuriPersonalAssist/auri-flow/internal/calibration"
	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// gutNeutral is the rating at which gravity and urgency have no effect.
const gutNeutral = 3

// ApplyGUT scales the raw benefit by the task's gravity around the neutral
// point: S0G = S0 * (1 + betaG*(G-3)). Each gravity step above or below
// neutral moves the benefit by betaG.
func ApplyGUT(s0 float64, g models.GUT, w calibration.GUTWeights) float64 {
	return s0 * (1 + w.BetaG*float64(g.Gravity-gutNeutral))
}

// AdjustedHours shifts a duration estimate by the task's urgency:
// tAdj(h) = h + betaU*(U-3). This is a side artifact of the GUT stage for
// scheduling consumers that want an urgency-shifted estimate; it does not
// feed back into the score.
func AdjustedHours(hours float64, g models.GUT, w calibration.GUTWeights) float64 {
	return hours + w.BetaU*float64(g.Urgency-gutNeutral)
}

// ApplyDecay applies exponential deadline decay:
// lambda = lambda0*(Rd-1); S0D = S0G * e^(-lambda*deltaDays).
// Rigidity 1 means a fully flexible deadline and zero decay. Note the
// direction: the score decays as deltaDays (days remaining until the
// deadline) grows, so distant deadlines are worth less than imminent ones.
// Existing consumers depend on exactly this direction; do not invert it.
func ApplyDecay(s0g, deltaDays float64, rigidity int, lambda0 float64) float64 {
	if deltaDays < 0 {
		deltaDays = 0
	}
	lambda := lambda0 * float64(rigidity-1)
	return s0g * math.Exp(-lambda*deltaDays)
}
