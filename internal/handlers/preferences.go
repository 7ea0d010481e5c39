package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/AuriPersonalAssist/auri-flow/internal/database"
	"github.com/AuriPersonalAssist/auri-flow/internal/middleware"
	"github.com/AuriPersonalAssist/auri-flow/internal/models"
	"github.com/AuriPersonalAssist/auri-flow/internal/queue"
	"github.com/AuriPersonalAssist/auri-flow/internal/validation"
)

// PreferencesHandler handles pillar weight preferences
type PreferencesHandler struct {
	prefs    database.PreferencesRepositoryInterface
	jobQueue queue.JobQueue
	logger   *zap.Logger
}

// PreferencesHandlerOption configures a PreferencesHandler
type PreferencesHandlerOption func(*PreferencesHandler)

// WithPreferencesJobQueue wires the rescore job queue
func WithPreferencesJobQueue(q queue.JobQueue) PreferencesHandlerOption {
	return func(h *PreferencesHandler) {
		h.jobQueue = q
	}
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(prefs database.PreferencesRepositoryInterface, logger *zap.Logger, opts ...PreferencesHandlerOption) *PreferencesHandler {
	h := &PreferencesHandler{prefs: prefs, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers preference routes on the given router
func (h *PreferencesHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetPreferences).Methods("GET")
	r.HandleFunc("", h.PutPreferences).Methods("PUT")
}

// UpdatePreferencesRequest carries replacement pillar weights
type UpdatePreferencesRequest struct {
	Weights models.PillarWeights `json:"weights"`
}

// GetPreferences returns the user's pillar weights, falling back to the
// defaults when none were ever saved
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	prefs, err := h.prefs.GetByUserID(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed_to_load_preferences", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load preferences")
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

// PutPreferences replaces the user's pillar weights. Weights must each be
// in [0,1] and sum to 1 within tolerance; a user-wide rescore is enqueued
// since every stored score depends on them.
func (h *PreferencesHandler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req UpdatePreferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}
	if err := validation.ValidateWeights(req.Weights); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	prefs := &models.UserPreferences{UserID: user.ID, Weights: req.Weights}
	if err := h.prefs.Upsert(r.Context(), prefs); err != nil {
		h.logger.Error("failed_to_save_preferences", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to save preferences")
		return
	}

	if h.jobQueue != nil {
		job := queue.NewRescoreUserJob(user.ID)
		if err := h.jobQueue.Enqueue(r.Context(), job); err != nil {
			h.logger.Warn("failed_to_enqueue_rescore_job",
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
		}
	}

	respondJSON(w, http.StatusOK, prefs)
}
