package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestWindowOpen(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{"no explicit time", models.Task{}, true},
		{"only start in the past", models.Task{StartAt: timePtr(now.Add(-2 * time.Hour))}, true},
		{"window fully elapsed", models.Task{
			StartAt: timePtr(now.Add(-3 * time.Hour)),
			EndAt:   timePtr(now.Add(-1 * time.Hour)),
		}, false},
		{"window currently open", models.Task{
			StartAt: timePtr(now.Add(-1 * time.Hour)),
			EndAt:   timePtr(now.Add(1 * time.Hour)),
		}, true},
		{"future window", models.Task{
			StartAt: timePtr(now.Add(2 * time.Hour)),
			EndAt:   timePtr(now.Add(4 * time.Hour)),
		}, true},
		{"ends exactly now", models.Task{EndAt: timePtr(now)}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := WindowOpen(&tt.task, now); got != tt.want {
				t.Errorf("Expected WindowOpen to be %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDependenciesDone(t *testing.T) {
	t.Parallel()

	done := &models.Task{ID: uuid.New(), Completed: true}
	pending := &models.Task{ID: uuid.New(), Completed: false}
	idx := BuildIndex([]*models.Task{done, pending})

	tests := []struct {
		name string
		task models.Task
		idx  Index
		want bool
	}{
		{"no dependencies", models.Task{}, idx, true},
		{"no dependencies and no index", models.Task{}, nil, true},
		{"all dependencies completed", models.Task{Dependencies: []uuid.UUID{done.ID}}, idx, true},
		{"pending dependency", models.Task{Dependencies: []uuid.UUID{pending.ID}}, idx, false},
		{"mixed dependencies", models.Task{Dependencies: []uuid.UUID{done.ID, pending.ID}}, idx, false},
		{"unknown dependency id", models.Task{Dependencies: []uuid.UUID{uuid.New()}}, idx, false},
		{"declared dependency without index", models.Task{Dependencies: []uuid.UUID{done.ID}}, nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DependenciesDone(&tt.task, tt.idx); got != tt.want {
				t.Errorf("Expected DependenciesDone to be %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBuildIndex(t *testing.T) {
	t.Parallel()

	a := &models.Task{ID: uuid.New()}
	b := &models.Task{ID: uuid.New()}
	idx := BuildIndex([]*models.Task{a, b})

	if len(idx) != 2 {
		t.Fatalf("Expected index of 2 tasks, got %d", len(idx))
	}
	if idx[a.ID] != a || idx[b.ID] != b {
		t.Error("Expected index to map each task ID to its task")
	}
}
