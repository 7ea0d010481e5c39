package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskType is the category of a task. Categories decide which calibration
// entry applies and whether the task's benefit saturates with duration.
type TaskType string

const (
	TaskTypePontual TaskType = "pontual"
	TaskTypeEstudo  TaskType = "estudo"
	TaskTypeTreino  TaskType = "treino"
	TaskTypeSono    TaskType = "sono"
	TaskTypeLeitura TaskType = "leitura"
	TaskTypeOutro   TaskType = "outro"
)

// AllTaskTypes lists every valid TaskType value.
var AllTaskTypes = []TaskType{
	TaskTypePontual,
	TaskTypeEstudo,
	TaskTypeTreino,
	TaskTypeSono,
	TaskTypeLeitura,
	TaskTypeOutro,
}

// Valid reports whether t is one of the known categories.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypePontual, TaskTypeEstudo, TaskTypeTreino, TaskTypeSono, TaskTypeLeitura, TaskTypeOutro:
		return true
	default:
		return false
	}
}

// PillarBenefits holds how much a task advances each life pillar
// (development, physical, mental), each on a 0-10 scale.
type PillarBenefits struct {
	Development float64 `json:"development" yaml:"development"`
	Physical    float64 `json:"physical" yaml:"physical"`
	Mental      float64 `json:"mental" yaml:"mental"`
}

// GUT carries a task's gravity and urgency ratings, each 1-5 with 3 as the
// neutral point.
type GUT struct {
	Gravity int `json:"gravity" validate:"min=1,max=5"`
	Urgency int `json:"urgency" validate:"min=1,max=5"`
}

// Deadline pairs a due timestamp with a rigidity rating 1-5. Rigidity 1 is a
// fully flexible deadline and produces no decay at all.
type Deadline struct {
	Due      time.Time `json:"due"`
	Rigidity int       `json:"rigidity" validate:"min=1,max=5"`
}

// Task is the scored entity. Every field except PriorityScore is supplied by
// the caller (parsed input or a manual form); PriorityScore is the single
// field the scoring engine writes.
type Task struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	Title         string         `json:"title"`
	Category      TaskType       `json:"category"`
	StartAt       *time.Time     `json:"start_at,omitempty"`
	EndAt         *time.Time     `json:"end_at,omitempty"`
	DurationMin   *int           `json:"duration_min,omitempty"`
	Effort        *int           `json:"effort,omitempty"` // 1-10
	Money         *float64       `json:"money,omitempty"`
	Benefits      PillarBenefits `json:"benefits"`
	GUT           *GUT           `json:"gut,omitempty"`
	Deadline      *Deadline      `json:"deadline,omitempty"`
	Dependencies  []uuid.UUID    `json:"dependencies,omitempty"`
	Completed     bool           `json:"completed"`
	PriorityScore float64        `json:"priority_score"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// DurationOrDefault returns the task's duration in minutes, falling back to
// 60 when none was supplied.
func (t *Task) DurationOrDefault() int {
	if t.DurationMin != nil {
		return *t.DurationMin
	}
	return 60
}

// EffortOrDefault returns the task's effort rating, falling back to 3.
func (t *Task) EffortOrDefault() int {
	if t.Effort != nil {
		return *t.Effort
	}
	return 3
}

// MoneyOrDefault returns the task's monetary cost, falling back to 0.
func (t *Task) MoneyOrDefault() float64 {
	if t.Money != nil {
		return *t.Money
	}
	return 0
}
