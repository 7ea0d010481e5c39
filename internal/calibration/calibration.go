// Package calibration holds the read-only parameter tables that drive the
// scoring engine: per-category defaults, cost coefficients, GUT weights and
// the decay base rate. A Calibration is built once (defaults, optionally
// merged with a YAML override file) and then shared; it is never mutated
// after Load.
package calibration

import (
	"fmt"

	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// DefaultScale is the global factor applied to every benefit score.
const DefaultScale = 10.0

// ContinuousParams describes the saturating benefit curve of a continuous
// category over duration in hours: B(H) = (B0/K) * (1 - e^(-K*H)).
type ContinuousParams struct {
	HoursMin float64 `json:"hours_min" yaml:"hours_min"`
	HoursMax float64 `json:"hours_max" yaml:"hours_max"`
	B0       float64 `json:"b0" yaml:"b0"`
	K        float64 `json:"k" yaml:"k"`
}

// IntRange is an inclusive [Min, Max] constraint.
type IntRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether v lies inside the range.
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// HourWindow is an allowed hour-of-day interval [From, To) for a category.
// Windows are scheduling context for downstream consumers; the scorer's
// practical gate only looks at a task's own start/end.
type HourWindow struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Category bundles every per-category parameter: default pillar benefits,
// the saturation curve (nil for pointed categories), fixed setup cost and
// the allowed duration/effort ranges.
type Category struct {
	Benefits   models.PillarBenefits `json:"benefits" yaml:"benefits"`
	Continuous *ContinuousParams     `json:"continuous,omitempty" yaml:"continuous,omitempty"`
	SetupCost  float64               `json:"setup_cost" yaml:"setup_cost"`
	Duration   *IntRange             `json:"duration,omitempty" yaml:"duration,omitempty"` // minutes
	Effort     *IntRange             `json:"effort,omitempty" yaml:"effort,omitempty"`     // 1-10
	Windows    []HourWindow          `json:"windows,omitempty" yaml:"windows,omitempty"`
}

// CostRates are the coefficients of the linear cost model.
type CostRates struct {
	PerHour     float64 `json:"per_hour" yaml:"per_hour"`
	PerEffort   float64 `json:"per_effort" yaml:"per_effort"`
	MoneyFactor float64 `json:"money_factor" yaml:"money_factor"`
}

// GUTWeights tune the gravity multiplier and the urgency hour shift.
type GUTWeights struct {
	BetaG float64 `json:"beta_g" yaml:"beta_g"`
	BetaU float64 `json:"beta_u" yaml:"beta_u"`
}

// Calibration is the full parameter set consumed by the scorer.
type Calibration struct {
	Scale      float64                      `json:"scale" yaml:"scale"`
	Costs      CostRates                    `json:"costs" yaml:"costs"`
	GUT        GUTWeights                   `json:"gut" yaml:"gut"`
	Lambda0    float64                      `json:"lambda0" yaml:"lambda0"`
	Categories map[models.TaskType]Category `json:"categories" yaml:"categories"`
}

// Category resolves the table entry for a task type. Any unknown or missing
// category falls back to the "outro" entry, so lookups never fail.
func (c *Calibration) Category(t models.TaskType) Category {
	switch t {
	case models.TaskTypePontual, models.TaskTypeEstudo, models.TaskTypeTreino,
		models.TaskTypeSono, models.TaskTypeLeitura:
		if entry, ok := c.Categories[t]; ok {
			return entry
		}
	}
	return c.Categories[models.TaskTypeOutro]
}

// Validate checks that the table is internally consistent. Load calls this
// after merging overrides so a bad deployment file fails at startup, not at
// scoring time.
func (c *Calibration) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", c.Scale)
	}
	if c.Lambda0 < 0 {
		return fmt.Errorf("lambda0 must be non-negative, got %v", c.Lambda0)
	}
	if _, ok := c.Categories[models.TaskTypeOutro]; !ok {
		return fmt.Errorf("missing fallback category %q", models.TaskTypeOutro)
	}
	for t, entry := range c.Categories {
		if !t.Valid() {
			return fmt.Errorf("unknown category %q", t)
		}
		if cp := entry.Continuous; cp != nil {
			if cp.K <= 0 {
				return fmt.Errorf("category %q: saturation constant k must be positive, got %v", t, cp.K)
			}
			if cp.B0 < 0 {
				return fmt.Errorf("category %q: base benefit rate b0 must be non-negative, got %v", t, cp.B0)
			}
			if cp.HoursMin > cp.HoursMax {
				return fmt.Errorf("category %q: hours_min %v exceeds hours_max %v", t, cp.HoursMin, cp.HoursMax)
			}
		}
		if r := entry.Duration; r != nil && r.Min > r.Max {
			return fmt.Errorf("category %q: duration min %d exceeds max %d", t, r.Min, r.Max)
		}
		if r := entry.Effort; r != nil && r.Min > r.Max {
			return fmt.Errorf("category %q: effort min %d exceeds max %d", t, r.Min, r.Max)
		}
		for _, w := range entry.Windows {
			if w.From < 0 || w.From > 23 || w.To < 0 || w.To > 24 {
				return fmt.Errorf("category %q: hour window %d-%d out of range", t, w.From, w.To)
			}
		}
	}
	return nil
}

// Default returns the compiled-in calibration table.
func Default() *Calibration {
	return &Calibration{
		Scale:   DefaultScale,
		Costs:   CostRates{PerHour: 1.0, PerEffort: 0.5, MoneyFactor: 0.01},
		GUT:     GUTWeights{BetaG: 0.2, BetaU: 0.35},
		Lambda0: 0.25,
		Categories: map[models.TaskType]Category{
			models.TaskTypePontual: {
				Benefits:  models.PillarBenefits{Development: 3, Physical: 1, Mental: 2},
				SetupCost: 0.5,
				Effort:    &IntRange{Min: 1, Max: 10},
			},
			models.TaskTypeEstudo: {
				Benefits:   models.PillarBenefits{Development: 8, Physical: 0, Mental: 4},
				Continuous: &ContinuousParams{HoursMin: 0.75, HoursMax: 4, B0: 6, K: 0.9},
				SetupCost:  1.0,
				Duration:   &IntRange{Min: 45, Max: 240},
				Effort:     &IntRange{Min: 2, Max: 9},
				Windows:    []HourWindow{{From: 8, To: 12}, {From: 14, To: 22}},
			},
			models.TaskTypeTreino: {
				Benefits:   models.PillarBenefits{Development: 1, Physical: 9, Mental: 3},
				Continuous: &ContinuousParams{HoursMin: 0.5, HoursMax: 2, B0: 8, K: 1.4},
				SetupCost:  1.5,
				Duration:   &IntRange{Min: 30, Max: 120},
				Effort:     &IntRange{Min: 3, Max: 10},
				Windows:    []HourWindow{{From: 6, To: 11}, {From: 16, To: 21}},
			},
			models.TaskTypeSono: {
				Benefits:   models.PillarBenefits{Development: 0, Physical: 7, Mental: 8},
				Continuous: &ContinuousParams{HoursMin: 6, HoursMax: 9, B0: 4, K: 0.35},
				SetupCost:  0,
				Duration:   &IntRange{Min: 360, Max: 600},
				Windows:    []HourWindow{{From: 21, To: 24}, {From: 0, To: 9}},
			},
			models.TaskTypeLeitura: {
				Benefits:   models.PillarBenefits{Development: 6, Physical: 0, Mental: 6},
				Continuous: &ContinuousParams{HoursMin: 0.25, HoursMax: 3, B0: 5, K: 1.1},
				SetupCost:  0.25,
				Duration:   &IntRange{Min: 15, Max: 180},
				Effort:     &IntRange{Min: 1, Max: 7},
			},
			models.TaskTypeOutro: {
				Benefits:  models.PillarBenefits{Development: 2, Physical: 2, Mental: 2},
				SetupCost: 0.5,
			},
		},
	}
}
