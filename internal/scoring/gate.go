package scoring

import (
	"time"

	"github.com/google/uuid"

	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// Index maps task IDs to tasks for dependency resolution.
type Index map[uuid.UUID]*models.Task

// BuildIndex indexes a batch of tasks by ID so dependency checks are O(1)
// per lookup instead of a linear scan of the batch.
func BuildIndex(tasks []*models.Task) Index {
	idx := make(Index, len(tasks))
	for _, t := range tasks {
		idx[t.ID] = t
	}
	return idx
}

// WindowOpen reports whether the task's stated time window has not already
// fully elapsed. Tasks with no end time are always schedulable: a missing
// window means "anytime", and a started-but-open-ended window is current.
func WindowOpen(task *models.Task, now time.Time) bool {
	if task.EndAt == nil {
		return true
	}
	return !now.After(*task.EndAt)
}

// DependenciesDone reports whether every declared dependency resolves to an
// existing, completed task. A task with no dependencies passes; a declared
// dependency that cannot be resolved (missing from the index, or no index
// supplied at all) blocks.
func DependenciesDone(task *models.Task, idx Index) bool {
	for _, depID := range task.Dependencies {
		dep, ok := idx[depID]
		if !ok || !dep.Completed {
			return false
		}
	}
	return true
}
