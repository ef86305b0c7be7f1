// Package api implements the HTTP transport to the remote task service.
package api

import (
	"context"

	"taskapp/internal/client/models"
)

// Client is the transport surface consumed by the services layer.
// Commands and services never build HTTP requests directly.
type Client interface {
	Close() error

	// Register creates an account. It does not establish a session.
	Register(ctx context.Context, username string, email string, password string) error

	// Login exchanges credentials for an access token. On success the token
	// is installed on the client and returned to the caller.
	Login(ctx context.Context, username string, password string) (string, error)

	// ListTasks returns the user's tasks in server order.
	ListTasks(ctx context.Context) ([]models.Task, error)

	// CreateTask creates a new task. The server assigns the id.
	CreateTask(ctx context.Context, title string, description string) error

	// ToggleTask flips the completion state of a task and returns the
	// server's confirmation message.
	ToggleTask(ctx context.Context, taskID int64) (string, error)

	// DeleteTask removes a task and returns the server's confirmation message.
	DeleteTask(ctx context.Context, taskID int64) (string, error)
}
