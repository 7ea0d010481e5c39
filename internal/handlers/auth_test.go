package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/AuriPersonalAssist/auri-flow/internal/auth"
	"github.com/AuriPersonalAssist/auri-flow/internal/middleware"
	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

func newAuthRouter() *mux.Router {
	flow := auth.NewFlow("https://auth.example.com", "client-id", "http://localhost:3000/callback")
	handler := NewAuthHandler(flow)

	router := mux.NewRouter()
	handler.RegisterRoutes(router.PathPrefix("/auth").Subrouter())
	return router
}

func TestGetOIDCLogin(t *testing.T) {
	t.Parallel()
	router := newAuthRouter()

	req := httptest.NewRequest("GET", "/auth/oidc/login?state=abc123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	config := decodeData[auth.LoginConfig](t, rec)
	if config.ClientID != "client-id" {
		t.Errorf("Expected client-id, got %q", config.ClientID)
	}
	if !strings.HasPrefix(config.AuthorizationURL, "https://auth.example.com/oauth2/authorize") {
		t.Errorf("Expected issuer authorize URL, got %q", config.AuthorizationURL)
	}
	if !strings.Contains(config.AuthorizationURL, "state=abc123") {
		t.Errorf("Expected state carried through, got %q", config.AuthorizationURL)
	}
}

func TestGetMe(t *testing.T) {
	t.Parallel()
	router := newAuthRouter()

	t.Run("returns the authenticated user", func(t *testing.T) {
		t.Parallel()
		user := &models.User{ID: uuid.New(), Subject: "me-subject", Email: "me@example.com"}
		req := middleware.WithUser(httptest.NewRequest("GET", "/auth/me", nil), user)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}
		got := decodeData[models.User](t, rec)
		if got.ID != user.ID {
			t.Errorf("Expected user %s, got %s", user.ID, got.ID)
		}
	})

	t.Run("rejects anonymous requests", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("GET", "/auth/me", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rec.Code)
		}
	})
}
