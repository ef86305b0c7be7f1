// Package models defines the data types exchanged with the task service.
package models

// Task is a single task as returned by the server. Fields are never mutated
// locally; the client always displays the last server-confirmed state.
type Task struct {
	ID          int64  `json:"task_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        bool   `json:"is_done"`
}
