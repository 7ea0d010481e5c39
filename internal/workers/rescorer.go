// Package workers contains the background job processors consumed from the
// job queue by cmd/worker.
package workers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AuriPersonalAssist/auri-flow/internal/database"
	"github.com/AuriPersonalAssist/auri-flow/internal/queue"
	"github.com/AuriPersonalAssist/auri-flow/internal/scoring"
)

// Rescorer recomputes persisted priority scores in response to rescore jobs
type Rescorer struct {
	tasks    database.TaskRepositoryInterface
	prefs    database.PreferencesRepositoryInterface
	scorer   *scoring.Scorer
	jobQueue queue.JobQueue
	logger   *zap.Logger
}

// NewRescorer creates a new rescorer. The job queue is used to republish
// failed jobs for retry.
func NewRescorer(
	tasks database.TaskRepositoryInterface,
	prefs database.PreferencesRepositoryInterface,
	scorer *scoring.Scorer,
	jobQueue queue.JobQueue,
	logger *zap.Logger,
) *Rescorer {
	return &Rescorer{
		tasks:    tasks,
		prefs:    prefs,
		scorer:   scorer,
		jobQueue: jobQueue,
		logger:   logger,
	}
}

// ProcessRescoreUserJob rescores every task owned by the job's user and
// persists the results
func (r *Rescorer) ProcessRescoreUserJob(ctx context.Context, job *queue.Job) error {
	tasks, err := r.tasks.GetByUserID(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil
	}

	prefs, err := r.prefs.GetByUserID(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	now := time.Now()
	ranked := r.scorer.Rank(tasks, prefs.Weights, now)

	persisted := 0
	for _, task := range ranked {
		if err := r.tasks.UpdateScore(ctx, task.ID, task.PriorityScore); err != nil {
			r.logger.Error("failed_to_persist_score",
				zap.String("task_id", task.ID.String()),
				zap.Error(err),
			)
			continue
		}
		persisted++
	}
	if persisted < len(ranked) {
		return fmt.Errorf("persisted %d of %d scores", persisted, len(ranked))
	}

	r.logger.Info("user_rescored",
		zap.String("user_id", job.UserID.String()),
		zap.Int("task_count", persisted),
	)
	return nil
}

// ProcessRescoreTaskJob rescores a single task. The full batch is still
// loaded because dependency gating reads sibling tasks.
func (r *Rescorer) ProcessRescoreTaskJob(ctx context.Context, job *queue.Job) error {
	if job.TaskID == nil {
		return fmt.Errorf("task_id is required for rescore task job")
	}

	task, err := r.tasks.GetByID(ctx, *job.TaskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task.UserID != job.UserID {
		return fmt.Errorf("task does not belong to user")
	}

	siblings, err := r.tasks.GetByUserID(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	prefs, err := r.prefs.GetByUserID(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	idx := scoring.BuildIndex(siblings)
	score := r.scorer.Score(task, prefs.Weights, time.Now(), idx)
	if err := r.tasks.UpdateScore(ctx, task.ID, score); err != nil {
		return fmt.Errorf("failed to persist score: %w", err)
	}

	r.logger.Info("task_rescored",
		zap.String("task_id", task.ID.String()),
		zap.Float64("score", score),
	)
	return nil
}

// ProcessJob dispatches a message by job type and handles ack, nack and
// retry accounting
func (r *Rescorer) ProcessJob(ctx context.Context, msg *queue.Message) error {
	job := msg.Job

	if job.IsExpired() {
		r.logger.Warn("job_expired",
			zap.String("job_id", job.ID.String()),
			zap.Timep("not_after", job.NotAfter),
		)
		if nackErr := msg.Nack(false); nackErr != nil {
			r.logger.Error("failed_to_nack_expired_job", zap.Error(nackErr))
		}
		return nil
	}

	var err error
	switch job.Type {
	case queue.JobTypeRescoreUser:
		err = r.ProcessRescoreUserJob(ctx, job)
	case queue.JobTypeRescoreTask:
		err = r.ProcessRescoreTaskJob(ctx, job)
	default:
		if nackErr := msg.Nack(false); nackErr != nil {
			r.logger.Error("failed_to_nack_unknown_job", zap.Error(nackErr))
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}

	if err != nil {
		return r.handleJobError(ctx, msg, job, err)
	}

	if ackErr := msg.Ack(); ackErr != nil {
		return fmt.Errorf("failed to ack job: %w", ackErr)
	}
	return nil
}

// handleJobError republishes failed jobs until the retry budget is spent,
// then lets the broker dead-letter them. Requeueing the delivery would
// replay the original payload with retry_count unchanged, so the retry is
// published as a fresh message carrying the incremented count and the
// original is acked.
func (r *Rescorer) handleJobError(ctx context.Context, msg *queue.Message, job *queue.Job, err error) error {
	if job.CanRetry() && r.jobQueue != nil {
		retry := *job
		retry.IncrementRetry()
		if enqueueErr := r.jobQueue.Enqueue(ctx, &retry); enqueueErr != nil {
			r.logger.Error("failed_to_reenqueue_job",
				zap.String("job_id", job.ID.String()),
				zap.Error(enqueueErr),
			)
			if nackErr := msg.Nack(false); nackErr != nil {
				r.logger.Error("failed_to_nack_job_to_dlq", zap.Error(nackErr))
			}
			return fmt.Errorf("job failed, re-enqueue failed: %w", err)
		}
		r.logger.Warn("job_failed_will_retry",
			zap.String("job_id", job.ID.String()),
			zap.Int("retry_count", retry.RetryCount),
			zap.Int("max_retries", retry.MaxRetries),
			zap.Error(err),
		)
		if ackErr := msg.Ack(); ackErr != nil {
			r.logger.Error("failed_to_ack_retried_job", zap.Error(ackErr))
		}
		return fmt.Errorf("job failed (will retry): %w", err)
	}

	r.logger.Error("job_failed_max_retries",
		zap.String("job_id", job.ID.String()),
		zap.Int("max_retries", job.MaxRetries),
		zap.Error(err),
	)
	if nackErr := msg.Nack(false); nackErr != nil {
		r.logger.Error("failed_to_nack_job_to_dlq", zap.Error(nackErr))
	}
	return fmt.Errorf("job failed (max retries): %w", err)
}
