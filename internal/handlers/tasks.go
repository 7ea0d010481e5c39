package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/AuriPersonalAssist/auri-flow/internal/calibration"
	"github.com/AuriPersonalAssist/auri-flow/internal/database"
	"github.com/AuriPersonalAssist/auri-flow/internal/middleware"
	"github.com/AuriPersonalAssist/auri-flow/internal/models"
	"github.com/AuriPersonalAssist/auri-flow/internal/queue"
	"github.com/AuriPersonalAssist/auri-flow/internal/scoring"
	"github.com/AuriPersonalAssist/auri-flow/internal/validation"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	tasks    database.TaskRepositoryInterface
	prefs    database.PreferencesRepositoryInterface
	cal      *calibration.Calibration
	scorer   *scoring.Scorer
	jobQueue queue.JobQueue
	logger   *zap.Logger
}

// TaskHandlerOption configures a TaskHandler
type TaskHandlerOption func(*TaskHandler)

// WithTaskJobQueue wires the rescore job queue; without it mutations simply
// skip enqueueing.
func WithTaskJobQueue(q queue.JobQueue) TaskHandlerOption {
	return func(h *TaskHandler) {
		h.jobQueue = q
	}
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(
	tasks database.TaskRepositoryInterface,
	prefs database.PreferencesRepositoryInterface,
	cal *calibration.Calibration,
	scorer *scoring.Scorer,
	logger *zap.Logger,
	opts ...TaskHandlerOption,
) *TaskHandler {
	h := &TaskHandler{
		tasks:  tasks,
		prefs:  prefs,
		cal:    cal,
		scorer: scorer,
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers task routes on the given router. The router
// should already carry the /tasks prefix.
func (h *TaskHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTasks).Methods("GET")
	r.HandleFunc("", h.CreateTask).Methods("POST")
	r.HandleFunc("/{id}", h.GetTask).Methods("GET")
	r.HandleFunc("/{id}", h.UpdateTask).Methods("PATCH")
	r.HandleFunc("/{id}", h.DeleteTask).Methods("DELETE")
	r.HandleFunc("/{id}/complete", h.CompleteTask).Methods("POST")
}

// deadlinePayload is the wire form of a deadline
type deadlinePayload struct {
	Due      time.Time `json:"due" validate:"required"`
	Rigidity int       `json:"rigidity" validate:"gut_rating"`
}

// CreateTaskRequest represents a create task request. Benefits default from
// the category's calibration entry when omitted; priority_score is never
// accepted from clients.
type CreateTaskRequest struct {
	Title        string                 `json:"title" validate:"required,min=1,max=500"`
	Category     string                 `json:"category" validate:"required,task_type"`
	StartAt      *time.Time             `json:"start_at,omitempty"`
	EndAt        *time.Time             `json:"end_at,omitempty"`
	DurationMin  *int                   `json:"duration_min,omitempty" validate:"omitempty,min=1,max=1440"`
	Effort       *int                   `json:"effort,omitempty" validate:"omitempty,min=1,max=10"`
	Money        *float64               `json:"money,omitempty" validate:"omitempty,min=0"`
	Benefits     *models.PillarBenefits `json:"benefits,omitempty"`
	GUT          *models.GUT            `json:"gut,omitempty"`
	Deadline     *deadlinePayload       `json:"deadline,omitempty"`
	Dependencies []uuid.UUID            `json:"dependencies,omitempty"`
}

// UpdateTaskRequest represents a partial task update
type UpdateTaskRequest struct {
	Title        *string                `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Category     *string                `json:"category,omitempty" validate:"omitempty,task_type"`
	StartAt      *time.Time             `json:"start_at,omitempty"`
	EndAt        *time.Time             `json:"end_at,omitempty"`
	DurationMin  *int                   `json:"duration_min,omitempty" validate:"omitempty,min=1,max=1440"`
	Effort       *int                   `json:"effort,omitempty" validate:"omitempty,min=1,max=10"`
	Money        *float64               `json:"money,omitempty" validate:"omitempty,min=0"`
	Benefits     *models.PillarBenefits `json:"benefits,omitempty"`
	GUT          *models.GUT            `json:"gut,omitempty"`
	Deadline     *deadlinePayload       `json:"deadline,omitempty"`
	Dependencies *[]uuid.UUID           `json:"dependencies,omitempty"`
	Completed    *bool                  `json:"completed,omitempty"`
}

// TaskWithTrace pairs a scored task with its diagnostic trace
type TaskWithTrace struct {
	*models.Task
	Trace scoring.Trace `json:"trace"`
}

// ListTasks lists the user's tasks. With ?ranked=true the batch is scored
// and ordered by descending priority; ?at=RFC3339 overrides "now" for
// deterministic reads and ?trace=true embeds per-task stage traces.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	ctx := r.Context()
	tasks, err := h.tasks.GetByUserID(ctx, user.ID)
	if err != nil {
		h.logger.Error("failed_to_list_tasks", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to list tasks")
		return
	}

	if r.URL.Query().Get("ranked") != "true" {
		respondJSON(w, http.StatusOK, tasks)
		return
	}

	now := time.Now()
	if at := r.URL.Query().Get("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "at must be RFC3339")
			return
		}
		now = parsed
	}

	prefs, err := h.prefs.GetByUserID(ctx, user.ID)
	if err != nil {
		h.logger.Error("failed_to_load_preferences", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load preferences")
		return
	}

	ranked := h.scorer.Rank(tasks, prefs.Weights, now)

	if r.URL.Query().Get("trace") != "true" {
		respondJSON(w, http.StatusOK, ranked)
		return
	}

	idx := scoring.BuildIndex(ranked)
	traced := make([]TaskWithTrace, len(ranked))
	for i, task := range ranked {
		_, trace := h.scorer.ScoreTraced(task, prefs.Weights, now, idx)
		traced[i] = TaskWithTrace{Task: task, Trace: trace}
	}
	respondJSON(w, http.StatusOK, traced)
}

// CreateTask creates a task for the authenticated user
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	req.Title = validation.SanitizeText(req.Title)
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	category := models.TaskType(req.Category)
	benefits := h.cal.Category(category).Benefits
	if req.Benefits != nil {
		benefits = *req.Benefits
	}

	task := &models.Task{
		ID:           uuid.New(),
		UserID:       user.ID,
		Title:        req.Title,
		Category:     category,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		DurationMin:  req.DurationMin,
		Effort:       req.Effort,
		Money:        req.Money,
		Benefits:     benefits,
		GUT:          req.GUT,
		Dependencies: req.Dependencies,
	}
	if req.Deadline != nil {
		task.Deadline = &models.Deadline{Due: req.Deadline.Due, Rigidity: req.Deadline.Rigidity}
	}

	if err := h.tasks.Create(r.Context(), task); err != nil {
		h.logger.Error("failed_to_create_task", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create task")
		return
	}

	h.enqueueRescore(r, user.ID)
	respondJSON(w, http.StatusCreated, task)
}

// GetTask retrieves a single task
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task, ok := h.loadOwnedTask(w, r, user)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// UpdateTask partially updates a task
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task, ok := h.loadOwnedTask(w, r, user)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	if req.Title != nil {
		task.Title = validation.SanitizeText(*req.Title)
	}
	if req.Category != nil {
		task.Category = models.TaskType(*req.Category)
	}
	if req.StartAt != nil {
		task.StartAt = req.StartAt
	}
	if req.EndAt != nil {
		task.EndAt = req.EndAt
	}
	if req.DurationMin != nil {
		task.DurationMin = req.DurationMin
	}
	if req.Effort != nil {
		task.Effort = req.Effort
	}
	if req.Money != nil {
		task.Money = req.Money
	}
	if req.Benefits != nil {
		task.Benefits = *req.Benefits
	}
	if req.GUT != nil {
		task.GUT = req.GUT
	}
	if req.Deadline != nil {
		task.Deadline = &models.Deadline{Due: req.Deadline.Due, Rigidity: req.Deadline.Rigidity}
	}
	if req.Dependencies != nil {
		task.Dependencies = *req.Dependencies
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := h.tasks.Update(r.Context(), task); err != nil {
		h.logger.Error("failed_to_update_task", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update task")
		return
	}

	h.enqueueRescore(r, user.ID)
	respondJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task, ok := h.loadOwnedTask(w, r, user)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), task.ID); err != nil {
		h.logger.Error("failed_to_delete_task", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to delete task")
		return
	}

	h.enqueueRescore(r, user.ID)
	respondJSON(w, http.StatusOK, map[string]string{"id": task.ID.String()})
}

// CompleteTask marks a task completed. Completion can un-gate tasks that
// depend on this one, so a user-wide rescore is enqueued.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	task, ok := h.loadOwnedTask(w, r, user)
	if !ok {
		return
	}

	if err := h.tasks.Complete(r.Context(), task.ID); err != nil {
		h.logger.Error("failed_to_complete_task", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to complete task")
		return
	}
	task.Completed = true

	h.enqueueRescore(r, user.ID)
	respondJSON(w, http.StatusOK, task)
}

// loadOwnedTask parses the route ID and loads the task, enforcing ownership
func (h *TaskHandler) loadOwnedTask(w http.ResponseWriter, r *http.Request, user *models.User) (*models.Task, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid task ID")
		return nil, false
	}

	task, err := h.tasks.GetByID(r.Context(), id)
	if err != nil {
		respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
		return nil, false
	}
	if task.UserID != user.ID {
		// Do not leak existence of other users' tasks.
		respondJSONError(w, http.StatusNotFound, "Not Found", "Task not found")
		return nil, false
	}
	return task, true
}

func (h *TaskHandler) enqueueRescore(r *http.Request, userID uuid.UUID) {
	if h.jobQueue == nil {
		return
	}
	job := queue.NewRescoreUserJob(userID)
	if err := h.jobQueue.Enqueue(r.Context(), job); err != nil {
		// Persisted scores go stale until the next mutation; reads that ask
		// for ?ranked=true are unaffected since they recompute.
		h.logger.Warn("failed_to_enqueue_rescore_job",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}
