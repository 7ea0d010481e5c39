package scoring

import (
	"github.com/AuriPersonalAssist/auri-flow/internal/calibration"
	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// ValidDuration reports whether a duration in minutes is acceptable for the
// category. Categories with no registered duration range accept anything.
func ValidDuration(cal *calibration.Calibration, t models.TaskType, minutes int) bool {
	r := cal.Category(t).Duration
	return r == nil || r.Contains(minutes)
}

// ValidEffort reports whether an effort rating is acceptable for the
// category. Categories with no registered effort range accept anything.
func ValidEffort(cal *calibration.Calibration, t models.TaskType, effort int) bool {
	r := cal.Category(t).Effort
	return r == nil || r.Contains(effort)
}
