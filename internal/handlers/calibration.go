package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AuriPersonalAssist/auri-flow/internal/calibration"
)

// CalibrationHandler exposes a read-only view of the active calibration
// tables. Changing calibration is an operator action done through the
// configure CLI and a process restart, not through the API.
type CalibrationHandler struct {
	cal *calibration.Calibration
}

// NewCalibrationHandler creates a new calibration handler
func NewCalibrationHandler(cal *calibration.Calibration) *CalibrationHandler {
	return &CalibrationHandler{cal: cal}
}

// RegisterRoutes registers calibration routes on the given router
func (h *CalibrationHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetCalibration).Methods("GET")
}

// GetCalibration returns the active calibration
func (h *CalibrationHandler) GetCalibration(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cal)
}
