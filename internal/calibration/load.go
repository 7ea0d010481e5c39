package calibration

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// overrideFile mirrors Calibration but with optional scalar fields, so a
// deployment file only has to mention what it changes.
type overrideFile struct {
	Scale      *float64                     `yaml:"scale"`
	Costs      *CostRates                   `yaml:"costs"`
	GUT        *GUTWeights                  `yaml:"gut"`
	Lambda0    *float64                     `yaml:"lambda0"`
	Categories map[models.TaskType]Category `yaml:"categories"`
}

// Load builds the active calibration: compiled defaults merged with the YAML
// override file at path. An empty path returns the defaults unchanged. The
// merged result is validated before it is returned.
func Load(path string) (*Calibration, error) {
	cal := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read calibration file: %w", err)
		}
		if err := Merge(cal, data); err != nil {
			return nil, fmt.Errorf("failed to apply calibration file %s: %w", path, err)
		}
	}
	if err := cal.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calibration: %w", err)
	}
	return cal, nil
}

// Merge applies a YAML override document on top of cal. Scalar sections
// replace wholesale when present; category entries replace the matching
// default entry wholesale (per-field category merging is deliberately not
// supported, a file that touches a category owns it).
func Merge(cal *Calibration, data []byte) error {
	var ov overrideFile
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return fmt.Errorf("failed to parse calibration YAML: %w", err)
	}
	if ov.Scale != nil {
		cal.Scale = *ov.Scale
	}
	if ov.Costs != nil {
		cal.Costs = *ov.Costs
	}
	if ov.GUT != nil {
		cal.GUT = *ov.GUT
	}
	if ov.Lambda0 != nil {
		cal.Lambda0 = *ov.Lambda0
	}
	for t, entry := range ov.Categories {
		cal.Categories[t] = entry
	}
	return nil
}

// Dump renders the calibration as YAML, used by the configure CLI.
func Dump(cal *Calibration) ([]byte, error) {
	out, err := yaml.Marshal(cal)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal calibration: %w", err)
	}
	return out, nil
}
