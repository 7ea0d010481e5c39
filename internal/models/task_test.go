package models

import (
	"math"
	"testing"
)

func TestTaskType_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value TaskType
		valid bool
	}{
		{"pontual", TaskTypePontual, true},
		{"estudo", TaskTypeEstudo, true},
		{"treino", TaskTypeTreino, true},
		{"sono", TaskTypeSono, true},
		{"leitura", TaskTypeLeitura, true},
		{"outro", TaskTypeOutro, true},
		{"unknown", TaskType("projeto"), false},
		{"empty", TaskType(""), false},
		{"case sensitive", TaskType("Estudo"), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.value.Valid(); got != tt.valid {
				t.Errorf("Expected Valid() to be %v for %q, got %v", tt.valid, tt.value, got)
			}
		})
	}
}

func TestTask_Fallbacks(t *testing.T) {
	t.Parallel()

	minutes := 90
	effort := 7
	money := 25.5

	tests := []struct {
		name         string
		task         Task
		wantDuration int
		wantEffort   int
		wantMoney    float64
	}{
		{"all fields absent", Task{}, 60, 3, 0},
		{
			"all fields present",
			Task{DurationMin: &minutes, Effort: &effort, Money: &money},
			90, 7, 25.5,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.task.DurationOrDefault(); got != tt.wantDuration {
				t.Errorf("Expected duration %d, got %d", tt.wantDuration, got)
			}
			if got := tt.task.EffortOrDefault(); got != tt.wantEffort {
				t.Errorf("Expected effort %d, got %d", tt.wantEffort, got)
			}
			if got := tt.task.MoneyOrDefault(); got != tt.wantMoney {
				t.Errorf("Expected money %v, got %v", tt.wantMoney, got)
			}
		})
	}
}

func TestDefaultPillarWeights(t *testing.T) {
	t.Parallel()

	w := DefaultPillarWeights()
	if math.Abs(w.Sum()-1) > 1e-9 {
		t.Errorf("Expected default weights to sum to 1, got %v", w.Sum())
	}
	if w.Development != w.Physical || w.Physical != w.Mental {
		t.Errorf("Expected an even default split, got %+v", w)
	}
}
