package validation

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// WeightSumTolerance is how far the three pillar weights may drift from 1
// before a preferences write is rejected. The scoring engine never
// re-normalizes, so drift is caught here at the boundary.
const WeightSumTolerance = 0.01

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("task_type", validateTaskType); err != nil {
		panic(fmt.Sprintf("failed to register task_type validator: %v", err))
	}
	if err := Validate.RegisterValidation("gut_rating", validateGUTRating); err != nil {
		panic(fmt.Sprintf("failed to register gut_rating validator: %v", err))
	}
}

// validateTaskType validates that a string is a valid TaskType enum value
func validateTaskType(fl validator.FieldLevel) bool {
	return models.TaskType(fl.Field().String()).Valid()
}

// validateGUTRating validates a gravity/urgency/rigidity rating (1-5)
func validateGUTRating(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 1 && v <= 5
}

// ValidateTaskType validates a TaskType string value
func ValidateTaskType(value string) error {
	if !models.TaskType(value).Valid() {
		return fmt.Errorf("invalid category: %s (must be one of 'pontual', 'estudo', 'treino', 'sono', 'leitura', 'outro')", value)
	}
	return nil
}

// ValidateWeights checks that pillar weights arrive normalized: each within
// [0,1] and summing to 1 within tolerance.
func ValidateWeights(w models.PillarWeights) error {
	for name, v := range map[string]float64{
		"development": w.Development,
		"physical":    w.Physical,
		"mental":      w.Mental,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("weight %s must be in [0,1], got %v", name, v)
		}
	}
	if diff := math.Abs(w.Sum() - 1); diff > WeightSumTolerance {
		return fmt.Errorf("weights must sum to 1 (got %v); normalize before submitting", w.Sum())
	}
	return nil
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}
