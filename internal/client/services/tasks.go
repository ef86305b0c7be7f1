package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"taskapp/internal/client/api"
	"taskapp/internal/client/models"
	"taskapp/internal/logging"
)

// TaskService keeps an authoritative view of the user's tasks. Every mutation
// is round-tripped through the server and followed by a full refresh, so the
// held collection is always the last server-confirmed snapshot. On any
// failure the previously held collection is left untouched.
//
// All operations require an authenticated session; anonymous calls are
// rejected with api.ErrUnauthorized before any request is issued.
type TaskService interface {
	Refresh(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, title string, description string) error
	ToggleDone(ctx context.Context, taskID int64) (string, error)
	Delete(ctx context.Context, taskID int64) (string, error)
	Tasks() []models.Task
}

type taskService struct {
	client api.Client
	auth   AuthService
	log    logging.Logger

	mu    sync.RWMutex
	tasks []models.Task
}

// NewTaskService constructs a TaskService gated by the given AuthService.
func NewTaskService(client api.Client, auth AuthService, log logging.Logger) TaskService {
	return &taskService{client: client, auth: auth, log: log.With("component", "tasks")}
}

func (s *taskService) requireSession() error {
	if !s.auth.IsAuthenticated() {
		return api.ErrUnauthorized
	}
	return nil
}

// Refresh replaces the held collection with the server's current list,
// preserving server order. On failure the old collection survives.
func (s *taskService) Refresh(ctx context.Context) ([]models.Task, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()

	return s.Tasks(), nil
}

// Create submits a new task and refreshes, so the caller sees the task with
// its server-assigned id. The task is never inserted locally first.
func (s *taskService) Create(ctx context.Context, title string, description string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", api.ErrValidation)
	}

	if err := s.client.CreateTask(ctx, title, description); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	s.log.Info(ctx, "task created", "title", title)

	if _, err := s.Refresh(ctx); err != nil {
		return err
	}
	return nil
}

// ToggleDone flips the completion state of a task on the server and
// refreshes. The server's confirmation message is returned for display.
func (s *taskService) ToggleDone(ctx context.Context, taskID int64) (string, error) {
	if err := s.requireSession(); err != nil {
		return "", err
	}

	msg, err := s.client.ToggleTask(ctx, taskID)
	if err != nil {
		return "", fmt.Errorf("toggle task %d: %w", taskID, err)
	}
	s.log.Info(ctx, "task state changed", "task_id", taskID)

	if _, err := s.Refresh(ctx); err != nil {
		return "", err
	}
	return msg, nil
}

// Delete removes a task on the server and refreshes.
func (s *taskService) Delete(ctx context.Context, taskID int64) (string, error) {
	if err := s.requireSession(); err != nil {
		return "", err
	}

	msg, err := s.client.DeleteTask(ctx, taskID)
	if err != nil {
		return "", fmt.Errorf("delete task %d: %w", taskID, err)
	}
	s.log.Info(ctx, "task deleted", "task_id", taskID)

	if _, err := s.Refresh(ctx); err != nil {
		return "", err
	}
	return msg, nil
}

// Tasks returns a copy of the last server-confirmed snapshot.
func (s *taskService) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}
