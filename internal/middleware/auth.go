package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/AuriPersonalAssist/auri-flow/internal/auth"
	"github.com/AuriPersonalAssist/auri-flow/internal/database"
	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext extracts the authenticated user from the request context
func UserFromContext(r *http.Request) *models.User {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// Auth creates authentication middleware: it verifies the bearer token and
// provisions/loads the matching user row.
func Auth(verifier *auth.Verifier, users *database.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondError(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			ctx := r.Context()
			claims, err := verifier.Verify(ctx, token)
			if err != nil {
				logger.Debug("token_verification_failed", zap.Error(err))
				respondError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			user, err := users.GetOrCreateBySubject(ctx, claims.Subject, claims.Email)
			if err != nil {
				logger.Error("failed_to_resolve_user", zap.Error(err))
				respondError(w, http.StatusInternalServerError, "Failed to resolve user")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userContextKey, user)))
		})
	}
}

// WithUser places a user in the request context; test helper and handler glue.
func WithUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey, user))
}
