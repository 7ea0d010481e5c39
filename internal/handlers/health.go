package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AuriPersonalAssist/auri-flow/internal/database"
	"github.com/AuriPersonalAssist/auri-flow/internal/queue"
)

// HealthChecker handles health check requests
type HealthChecker struct {
	db       *database.DB
	redis    *redis.Client
	jobQueue queue.JobQueue
}

// HealthCheckerOption configures a HealthChecker
type HealthCheckerOption func(*HealthChecker)

// WithRedisCheck adds a redis probe to extended health checks
func WithRedisCheck(client *redis.Client) HealthCheckerOption {
	return func(h *HealthChecker) {
		h.redis = client
	}
}

// WithQueueCheck adds a job queue probe to extended health checks
func WithQueueCheck(q queue.JobQueue) HealthCheckerOption {
	return func(h *HealthChecker) {
		h.jobQueue = q
	}
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(db *database.DB, opts ...HealthCheckerOption) *HealthChecker {
	h := &HealthChecker{db: db}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint. Basic mode only reports that
// the process is up; ?mode=extended probes the database, redis and the
// job queue.
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if r.URL.Query().Get("mode") == "extended" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := make(map[string]string)

		if err := h.db.PingContext(ctx); err != nil {
			response.Status = "unhealthy"
			checks["database"] = "unhealthy: " + err.Error()
		} else {
			checks["database"] = "healthy"
		}

		if h.redis != nil {
			if err := h.redis.Ping(ctx).Err(); err != nil {
				response.Status = "unhealthy"
				checks["redis"] = "unhealthy: " + err.Error()
			} else {
				checks["redis"] = "healthy"
			}
		}

		if h.jobQueue != nil {
			if err := h.jobQueue.HealthCheck(ctx); err != nil {
				response.Status = "unhealthy"
				checks["queue"] = "unhealthy: " + err.Error()
			} else {
				checks["queue"] = "healthy"
			}
		}

		response.Checks = checks
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
