// Package service defines the backend-agnostic interface for TaskMaster operations.
package service

import "time"

// Status is a task lifecycle state. Values are server-defined.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Statuses lists all valid statuses in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Priority is a task priority level. Values are server-defined.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a single task as returned by the server.
// Version is server-assigned and must be echoed back on update; the client
// never computes or guesses it.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskFields are the client-writable task fields used by create and update.
type TaskFields struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
}

// ListFilter selects and orders a page of tasks.
// Zero-valued fields are omitted from the request.
type ListFilter struct {
	// Statuses filters by status. Two or more values require the
	// multi-status API revision.
	Statuses []Status

	// Search is a free-text search term.
	Search string

	// SortBy and SortOrder control ordering ("asc" or "desc").
	SortBy    string
	SortOrder string

	// Skip and Limit control pagination.
	Skip  int
	Limit int
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Items []Task `json:"items"`
	Pages int    `json:"pages"`
}

// Stats is the aggregate task count snapshot.
type Stats struct {
	Total      int `json:"total"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Todo       int `json:"todo"`
}

// User is the authenticated user's profile.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// Session is the credential triple returned by login and register.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}
