package store

import (
	"context"
	"errors"

	"taskmanager/internal/models"
)

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = errors.New("task not found")

// Store defines the interface for task persistence operations.
type Store interface {
	// ListTasks returns every task in insertion order.
	ListTasks(ctx context.Context) ([]models.Task, error)

	// CreateTask persists a new task and fills in its ID and timestamps.
	CreateTask(ctx context.Context, task *models.Task) error

	// GetTask returns ErrNotFound if the id does not exist.
	GetTask(ctx context.Context, id string) (*models.Task, error)

	// UpdateTask applies patch and returns the post-update task, or
	// ErrNotFound if the id does not exist.
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)

	// DeleteTask removes the task. Deleting a missing id is not an error.
	DeleteTask(ctx context.Context, id string) error

	// Lifecycle
	Close() error
}
