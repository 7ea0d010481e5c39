package scoring

import (
	"testing"

	"github.com/google/uuid"

	"github.com/AuriPersonalAssist/auri-flow/internal/calibration"
	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

func TestRank_OrdersByDescendingScore(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(calibration.Default())
	weights := testWeights()

	low := studyTask()
	low.Benefits = models.PillarBenefits{Development: 2}

	high := studyTask()
	high.Benefits = models.PillarBenefits{Development: 10, Mental: 8}

	done := studyTask()
	done.Completed = true

	ranked := scorer.Rank([]*models.Task{low, done, high}, weights, testNow)

	if len(ranked) != 3 {
		t.Fatalf("Expected 3 ranked tasks, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].PriorityScore > ranked[i-1].PriorityScore {
			t.Errorf("Expected non-increasing scores, got %v after %v", ranked[i].PriorityScore, ranked[i-1].PriorityScore)
		}
	}
	if ranked[0] != high {
		t.Errorf("Expected the high-benefit task first, got %q", ranked[0].Title)
	}
	if ranked[2] != done {
		t.Errorf("Expected the completed task last with score 0, got %q at %v", ranked[2].Title, ranked[2].PriorityScore)
	}
}

func TestRank_PreservesTaskSet(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(calibration.Default())
	tasks := []*models.Task{studyTask(), studyTask(), studyTask()}

	want := make(map[uuid.UUID]bool, len(tasks))
	for _, task := range tasks {
		want[task.ID] = true
	}

	ranked := scorer.Rank(tasks, testWeights(), testNow)
	if len(ranked) != len(tasks) {
		t.Fatalf("Expected %d tasks back, got %d", len(tasks), len(ranked))
	}
	for _, task := range ranked {
		if !want[task.ID] {
			t.Errorf("Expected ranked output to contain only input IDs, got unknown %s", task.ID)
		}
		delete(want, task.ID)
	}
	if len(want) != 0 {
		t.Errorf("Expected every input task in the output, missing %d", len(want))
	}
}

func TestRank_Idempotent(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(calibration.Default())
	weights := testWeights()

	tasks := []*models.Task{studyTask(), studyTask(), studyTask(), studyTask()}
	tasks[1].GUT = &models.GUT{Gravity: 5, Urgency: 4}
	tasks[2].Benefits = models.PillarBenefits{Development: 1}

	first := scorer.Rank(tasks, weights, testNow)
	firstScores := make([]float64, len(first))
	firstIDs := make([]uuid.UUID, len(first))
	for i, task := range first {
		firstScores[i] = task.PriorityScore
		firstIDs[i] = task.ID
	}

	second := scorer.Rank(tasks, weights, testNow)
	for i, task := range second {
		if task.ID != firstIDs[i] {
			t.Errorf("Expected identical ordering on repeat ranking, position %d changed", i)
		}
		if task.PriorityScore != firstScores[i] {
			t.Errorf("Expected identical scores on repeat ranking, got %v then %v", firstScores[i], task.PriorityScore)
		}
	}
}

func TestRank_TieBreakByTaskID(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(calibration.Default())
	weights := testWeights()

	// Identical tasks score identically; order must fall back to ID.
	a := studyTask()
	b := studyTask()
	c := studyTask()

	ranked := scorer.Rank([]*models.Task{c, a, b}, weights, testNow)
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].ID.String() > ranked[i].ID.String() {
			t.Errorf("Expected equal scores ordered by ascending task ID, got %s before %s",
				ranked[i-1].ID, ranked[i].ID)
		}
	}
}

func TestRank_WritesPriorityScore(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(calibration.Default())
	task := studyTask()
	task.PriorityScore = -1 // stale value must be overwritten

	scorer.Rank([]*models.Task{task}, testWeights(), testNow)
	if task.PriorityScore < 0 {
		t.Errorf("Expected Rank to overwrite PriorityScore, still %v", task.PriorityScore)
	}
}

func TestRank_EmptyBatch(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(calibration.Default())
	ranked := scorer.Rank(nil, testWeights(), testNow)
	if len(ranked) != 0 {
		t.Errorf("Expected empty ranking for empty batch, got %d", len(ranked))
	}
}
