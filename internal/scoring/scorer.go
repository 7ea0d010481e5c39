package scoring

import (
	"time"

	"go.uber.org/zap"

	"github.com/AuriPersonalAssist/auri-flow/internal/calibration"
	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// Scorer runs the full scoring pipeline for single tasks and batches. It is
// stateless apart from the read-only calibration table, so a single Scorer
// is safe for concurrent use.
type Scorer struct {
	cal    *calibration.Calibration
	logger *zap.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithLogger attaches a logger used for fail-soft warnings and debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) {
		s.logger = logger
	}
}

// NewScorer creates a scorer bound to a calibration table.
func NewScorer(cal *calibration.Calibration, opts ...Option) *Scorer {
	s := &Scorer{cal: cal, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the priority score of one task at the given instant. The
// index resolves dependency IDs; pass nil when the batch context is not
// available (declared dependencies then gate the task to zero). Weights are
// assumed normalized by the producer.
func (s *Scorer) Score(task *models.Task, weights models.PillarWeights, now time.Time, idx Index) float64 {
	return s.score(task, weights, now, idx, nil)
}

// ScoreTraced is Score plus the ordered diagnostic trace of every pipeline
// stage.
func (s *Scorer) ScoreTraced(task *models.Task, weights models.PillarWeights, now time.Time, idx Index) (float64, Trace) {
	var trace Trace
	score := s.score(task, weights, now, idx, &trace)
	return score, trace
}

// score is the pipeline. Scoring is fail-soft per task: any panic in a
// stage is caught here and degrades that task to score 0 rather than
// aborting the caller's batch.
func (s *Scorer) score(task *models.Task, weights models.PillarWeights, now time.Time, idx Index, trace *Trace) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("task_scoring_failed",
				zap.String("task_id", task.ID.String()),
				zap.Any("error", r),
			)
			score = 0
		}
	}()

	if task.Completed {
		trace.add("completed_gate", 0)
		return 0
	}

	minutes := task.DurationOrDefault()
	if !ValidDuration(s.cal, task.Category, minutes) {
		trace.add("duration_gate", 0)
		return 0
	}
	effort := task.EffortOrDefault()
	if !ValidEffort(s.cal, task.Category, effort) {
		trace.add("effort_gate", 0)
		return 0
	}

	cat := s.cal.Category(task.Category)
	hours := float64(minutes) / 60

	var s0 float64
	if cat.Continuous != nil && task.DurationMin != nil {
		s0 = ContinuousBenefitScore(s.cal.Scale, hours, *cat.Continuous, weights, task.Benefits)
	} else {
		s0 = BaseBenefit(s.cal.Scale, weights, task.Benefits)
	}
	trace.add("s0", s0)

	cost := Cost(CostInput{
		Rates:  s.cal.Costs,
		Setup:  cat.SetupCost,
		Hours:  hours,
		Effort: float64(effort),
		Money:  task.MoneyOrDefault(),
	})
	trace.add("cost", cost)

	adjusted := s0
	if task.GUT != nil {
		adjusted = ApplyGUT(adjusted, *task.GUT, s.cal.GUT)
		trace.add("s0_gut", adjusted)
		// Side artifact for scheduling consumers; never feeds back into
		// the score.
		trace.add("t_adj", AdjustedHours(hours, *task.GUT, s.cal.GUT))
	}
	if task.Deadline != nil {
		deltaDays := task.Deadline.Due.Sub(now).Hours() / 24
		adjusted = ApplyDecay(adjusted, deltaDays, task.Deadline.Rigidity, s.cal.Lambda0)
		trace.add("s0_decay", adjusted)
	}

	base := adjusted - cost
	if base < 0 {
		base = 0
	}
	trace.add("priority_base", base)

	windowOpen := WindowOpen(task, now)
	depsDone := DependenciesDone(task, idx)
	trace.addBool("window_open", windowOpen)
	trace.addBool("deps_done", depsDone)
	if !windowOpen || !depsDone {
		return 0
	}
	return base
}
