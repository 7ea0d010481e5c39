package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// TaskRepository handles task database operations
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `
	id, user_id, title, category, start_at, end_at, duration_min, effort,
	money, benefit_dev, benefit_fit, benefit_mind, gravity, urgency, due_at,
	rigidity, deps, completed, priority_score, created_at, updated_at
`

// Create inserts a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING created_at, updated_at
	`

	now := time.Now()
	gravity, urgency := gutColumns(task.GUT)
	dueAt, rigidity := deadlineColumns(task.Deadline)

	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Category,
		task.StartAt,
		task.EndAt,
		task.DurationMin,
		task.Effort,
		task.Money,
		task.Benefits.Development,
		task.Benefits.Physical,
		task.Benefits.Mental,
		gravity,
		urgency,
		dueAt,
		rigidity,
		pq.Array(uuidStrings(task.Dependencies)),
		task.Completed,
		task.PriorityScore,
		now,
		now,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// GetByUserID retrieves all tasks for a user
func (r *TaskRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// Update persists every caller-supplied field of a task
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, category = $3, start_at = $4, end_at = $5,
		    duration_min = $6, effort = $7, money = $8, benefit_dev = $9,
		    benefit_fit = $10, benefit_mind = $11, gravity = $12,
		    urgency = $13, due_at = $14, rigidity = $15, deps = $16,
		    completed = $17, updated_at = $18
		WHERE id = $1
		RETURNING updated_at
	`

	gravity, urgency := gutColumns(task.GUT)
	dueAt, rigidity := deadlineColumns(task.Deadline)

	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.Title,
		task.Category,
		task.StartAt,
		task.EndAt,
		task.DurationMin,
		task.Effort,
		task.Money,
		task.Benefits.Development,
		task.Benefits.Physical,
		task.Benefits.Mental,
		gravity,
		urgency,
		dueAt,
		rigidity,
		pq.Array(uuidStrings(task.Dependencies)),
		task.Completed,
		time.Now(),
	).Scan(&task.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("task not found: %w", err)
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// UpdateScore persists a freshly computed priority score
func (r *TaskRepository) UpdateScore(ctx context.Context, id uuid.UUID, score float64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET priority_score = $2, updated_at = $3 WHERE id = $1`,
		id, score, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update priority score: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

// Complete marks a task completed
func (r *TaskRepository) Complete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET completed = TRUE, updated_at = $2 WHERE id = $1`,
		id, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

// Delete removes a task
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var (
		startAt, endAt, dueAt sql.NullTime
		durationMin, effort   sql.NullInt64
		money                 sql.NullFloat64
		gravity, urgency      sql.NullInt64
		rigidity              sql.NullInt64
		deps                  pq.StringArray
	)

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Category,
		&startAt,
		&endAt,
		&durationMin,
		&effort,
		&money,
		&task.Benefits.Development,
		&task.Benefits.Physical,
		&task.Benefits.Mental,
		&gravity,
		&urgency,
		&dueAt,
		&rigidity,
		&deps,
		&task.Completed,
		&task.PriorityScore,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startAt.Valid {
		task.StartAt = &startAt.Time
	}
	if endAt.Valid {
		task.EndAt = &endAt.Time
	}
	if durationMin.Valid {
		v := int(durationMin.Int64)
		task.DurationMin = &v
	}
	if effort.Valid {
		v := int(effort.Int64)
		task.Effort = &v
	}
	if money.Valid {
		v := money.Float64
		task.Money = &v
	}
	if gravity.Valid && urgency.Valid {
		task.GUT = &models.GUT{Gravity: int(gravity.Int64), Urgency: int(urgency.Int64)}
	}
	if dueAt.Valid && rigidity.Valid {
		task.Deadline = &models.Deadline{Due: dueAt.Time, Rigidity: int(rigidity.Int64)}
	}
	for _, raw := range deps {
		depID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid dependency id %q: %w", raw, err)
		}
		task.Dependencies = append(task.Dependencies, depID)
	}

	return task, nil
}

func gutColumns(g *models.GUT) (gravity, urgency *int) {
	if g == nil {
		return nil, nil
	}
	return &g.Gravity, &g.Urgency
}

func deadlineColumns(d *models.Deadline) (due *time.Time, rigidity *int) {
	if d == nil {
		return nil, nil
	}
	return &d.Due, &d.Rigidity
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
