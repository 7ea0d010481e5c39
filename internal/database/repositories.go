package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

// TaskRepositoryInterface defines the interface for task repository operations
// This interface enables better testability by allowing mock implementations
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	UpdateScore(ctx context.Context, id uuid.UUID, score float64) error
	Complete(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PreferencesRepositoryInterface defines the interface for preferences repository operations
type PreferencesRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)
	Upsert(ctx context.Context, prefs *models.UserPreferences) error
}

// Ensure concrete types implement the interfaces
var (
	_ TaskRepositoryInterface        = (*TaskRepository)(nil)
	_ PreferencesRepositoryInterface = (*PreferencesRepository)(nil)
)
