package models

import (
	"time"

	"github.com/google/uuid"
)

// PillarWeights is the user's relative valuation of the three life pillars.
// Weights arrive already normalized (each in [0,1], summing to 1); the
// scoring engine consumes them as-is and never re-normalizes.
type PillarWeights struct {
	Development float64 `json:"development" yaml:"development" validate:"min=0,max=1"`
	Physical    float64 `json:"physical" yaml:"physical" validate:"min=0,max=1"`
	Mental      float64 `json:"mental" yaml:"mental" validate:"min=0,max=1"`
}

// Sum returns the total of the three weights. Producers are expected to keep
// this at 1; the handler layer validates it on write.
func (w PillarWeights) Sum() float64 {
	return w.Development + w.Physical + w.Mental
}

// DefaultPillarWeights is the even split used before a user completes
// onboarding.
func DefaultPillarWeights() PillarWeights {
	third := 1.0 / 3.0
	return PillarWeights{Development: third, Physical: third, Mental: third}
}

// UserPreferences holds the per-user settings the scoring engine reads.
// Voice/UI settings live alongside the weights in storage but are opaque to
// the engine.
type UserPreferences struct {
	UserID    uuid.UUID     `json:"user_id"`
	Weights   PillarWeights `json:"weights"`
	UpdatedAt time.Time     `json:"updated_at"`
}
