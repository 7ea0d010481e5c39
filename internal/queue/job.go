package queue

import (
	"time"

	"github.com/google/uuid"
)

// JobType represents the type of job
type JobType string

const (
	// JobTypeRescoreUser recomputes priority scores for every task of a user
	JobTypeRescoreUser JobType = "rescore_user"
	// JobTypeRescoreTask recomputes the priority score of a single task
	JobTypeRescoreTask JobType = "rescore_task"
)

// Job is a rescoring request travelling through the queue
type Job struct {
	ID         uuid.UUID  `json:"id"`
	Type       JobType    `json:"type"`
	UserID     uuid.UUID  `json:"user_id"`
	TaskID     *uuid.UUID `json:"task_id,omitempty"`   // set for rescore_task jobs
	NotAfter   *time.Time `json:"not_after,omitempty"` // latest useful processing time
	CreatedAt  time.Time  `json:"created_at"`
	RetryCount int        `json:"retry_count"`
	MaxRetries int        `json:"max_retries"`
}

// NewRescoreUserJob creates a job that rescores all tasks of a user
func NewRescoreUserJob(userID uuid.UUID) *Job {
	return &Job{
		ID:         uuid.New(),
		Type:       JobTypeRescoreUser,
		UserID:     userID,
		CreatedAt:  time.Now(),
		MaxRetries: 3,
	}
}

// NewRescoreTaskJob creates a job for a single task
func NewRescoreTaskJob(userID, taskID uuid.UUID) *Job {
	return &Job{
		ID:         uuid.New(),
		Type:       JobTypeRescoreTask,
		UserID:     userID,
		TaskID:     &taskID,
		CreatedAt:  time.Now(),
		MaxRetries: 3,
	}
}

// IsExpired checks if the job has outlived its usefulness
func (j *Job) IsExpired() bool {
	return j.NotAfter != nil && time.Now().After(*j.NotAfter)
}

// CanRetry checks if the job can be retried
func (j *Job) CanRetry() bool {
	return j.RetryCount < j.MaxRetries
}

// IncrementRetry increments the retry count
func (j *Job) IncrementRetry() {
	j.RetryCount++
}
