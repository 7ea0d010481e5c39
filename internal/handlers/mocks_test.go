package handlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/AuriPersonalAssist/auri-flow/internal/models"
	"github.com/AuriPersonalAssist/auri-flow/internal/queue"
)

// mockTaskRepo is an in-memory TaskRepositoryInterface
type mockTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*models.Task
	err   error
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[uuid.UUID]*models.Task)}
}

func (m *mockTaskRepo) Create(ctx context.Context, task *models.Task) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	return task, nil
}

func (m *mockTaskRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Task
	for _, task := range m.tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) UpdateScore(ctx context.Context, id uuid.UUID, score float64) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, ok := m.tasks[id]; ok {
		task.PriorityScore = score
	}
	return nil
}

func (m *mockTaskRepo) Complete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return fmt.Errorf("task not found: %s", id)
	}
	task.Completed = true
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, id)
	return nil
}

// mockPrefsRepo is an in-memory PreferencesRepositoryInterface
type mockPrefsRepo struct {
	mu    sync.Mutex
	prefs map[uuid.UUID]*models.UserPreferences
	err   error
}

func newMockPrefsRepo() *mockPrefsRepo {
	return &mockPrefsRepo{prefs: make(map[uuid.UUID]*models.UserPreferences)}
}

func (m *mockPrefsRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if prefs, ok := m.prefs[userID]; ok {
		return prefs, nil
	}
	return &models.UserPreferences{UserID: userID, Weights: models.DefaultPillarWeights()}, nil
}

func (m *mockPrefsRepo) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[prefs.UserID] = prefs
	return nil
}

// mockJobQueue records enqueued jobs
type mockJobQueue struct {
	mu   sync.Mutex
	jobs []*queue.Job
	err  error
}

func (m *mockJobQueue) Enqueue(ctx context.Context, job *queue.Job) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
	return nil
}

func (m *mockJobQueue) Consume(ctx context.Context, prefetchCount int) (<-chan *queue.Message, <-chan error, error) {
	return nil, nil, fmt.Errorf("not implemented")
}

func (m *mockJobQueue) Close() error { return nil }

func (m *mockJobQueue) HealthCheck(ctx context.Context) error { return m.err }

func (m *mockJobQueue) enqueued() []*queue.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*queue.Job, len(m.jobs))
	copy(out, m.jobs)
	return out
}
