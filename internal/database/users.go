package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreateBySubject finds the user for an OIDC subject, provisioning a
// row on first sight.
func (r *UserRepository) GetOrCreateBySubject(ctx context.Context, subject, email string) (*models.User, error) {
	user := &models.User{}

	query := `SELECT id, subject, email, created_at FROM users WHERE subject = $1`
	err := r.db.QueryRowContext(ctx, query, subject).Scan(
		&user.ID, &user.Subject, &user.Email, &user.CreatedAt,
	)
	if err == nil {
		return user, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	insert := `
		INSERT INTO users (id, subject, email, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (subject) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, subject, email, created_at
	`
	err = r.db.QueryRowContext(ctx, insert, uuid.New(), subject, email, time.Now()).Scan(
		&user.ID, &user.Subject, &user.Email, &user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, subject, email, created_at FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Subject, &user.Email, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
