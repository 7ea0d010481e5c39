package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// Rank scores every task in the batch and returns a new slice ordered by
// descending priority score. Each task's PriorityScore field is overwritten
// with its fresh score. The full batch is indexed once so dependency checks
// resolve against it.
//
// Equal scores are ordered by ascending task ID, which keeps the ranking
// deterministic: ranking the same batch twice at the same instant yields the
// same scores in the same order.
func (s *Scorer) Rank(tasks []*models.Task, weights models.PillarWeights, now time.Time) []*models.Task {
	idx := BuildIndex(tasks)
	ranked := make([]*models.Task, len(tasks))
	for i, task := range tasks {
		task.PriorityScore = s.Score(task, weights, now, idx)
		ranked[i] = task
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].PriorityScore != ranked[j].PriorityScore {
			return ranked[i].PriorityScore > ranked[j].PriorityScore
		}
		return strings.Compare(ranked[i].ID.String(), ranked[j].ID.String()) < 0
	})
	return ranked
}
