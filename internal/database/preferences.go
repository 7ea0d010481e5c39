package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// PreferencesRepository handles user preference database operations
type PreferencesRepository struct {
	db *DB
}

// NewPreferencesRepository creates a new preferences repository
func NewPreferencesRepository(db *DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// GetByUserID retrieves a user's pillar weights. Users who have not finished
// onboarding get the even default split.
func (r *PreferencesRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	prefs := &models.UserPreferences{UserID: userID}

	query := `
		SELECT weight_dev, weight_fit, weight_mind, updated_at
		FROM preferences
		WHERE user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.Weights.Development,
		&prefs.Weights.Physical,
		&prefs.Weights.Mental,
		&prefs.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		prefs.Weights = models.DefaultPillarWeights()
		return prefs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	return prefs, nil
}

// Upsert stores a user's pillar weights
func (r *PreferencesRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	query := `
		INSERT INTO preferences (user_id, weight_dev, weight_fit, weight_mind, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET weight_dev = EXCLUDED.weight_dev,
		    weight_fit = EXCLUDED.weight_fit,
		    weight_mind = EXCLUDED.weight_mind,
		    updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		prefs.UserID,
		prefs.Weights.Development,
		prefs.Weights.Physical,
		prefs.Weights.Mental,
		time.Now(),
	).Scan(&prefs.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}
	return nil
}
