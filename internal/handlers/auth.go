package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AuriPersonalAssist/auri-flow/internal/auth"
	"github.com/AuriPersonalAssist/auri-flow/internal/middleware"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	flow *auth.Flow
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(flow *auth.Flow) *AuthHandler {
	return &AuthHandler{flow: flow}
}

// RegisterRoutes registers auth routes on the given router.
// The router should already carry the /auth prefix.
func (h *AuthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/oidc/login", h.GetOIDCLogin).Methods("GET")
	r.HandleFunc("/me", h.GetMe).Methods("GET")
}

// GetOIDCLogin returns the OIDC login configuration for the frontend
func (h *AuthHandler) GetOIDCLogin(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	respondJSON(w, http.StatusOK, h.flow.LoginConfig(state))
}

// GetMe returns the current user
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
