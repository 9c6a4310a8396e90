// Package service defines the backend-agnostic interface for TaskMaster operations.
package service

import (
	"context"
	"errors"
)

// ErrResetTokenInvalid is returned by VerifyResetToken when the server
// reports the token as invalid or expired.
var ErrResetTokenInvalid = errors.New("reset token is invalid or expired")

// Service defines the interface for TaskMaster backend operations.
// All REST calls go through this interface. Commands never import the
// HTTP layer directly.
type Service interface {
	// Login authenticates with email and password.
	Login(ctx context.Context, email, password string) (Session, error)

	// Register creates an account and returns its session.
	Register(ctx context.Context, fullName, email, password string) (Session, error)

	// Logout notifies the server that the session is ending.
	Logout(ctx context.Context) error

	// RequestPasswordReset asks the server to email a reset OTP.
	RequestPasswordReset(ctx context.Context, email string) error

	// VerifyResetToken checks a reset-link token and returns the
	// associated email when the token is valid.
	VerifyResetToken(ctx context.Context, token string) (email string, err error)

	// ResetPassword sets a new password using an emailed OTP.
	ResetPassword(ctx context.Context, email, otp, newPassword string) error

	// ResetPasswordWithToken sets a new password using a reset-link token.
	ResetPasswordWithToken(ctx context.Context, token, newPassword string) error

	// ListTasks returns one page of tasks matching the filter.
	ListTasks(ctx context.Context, filter ListFilter) (TaskPage, error)

	// GetTask fetches a single task by id.
	GetTask(ctx context.Context, id string) (Task, error)

	// CreateTask creates a task and returns the server copy.
	CreateTask(ctx context.Context, fields TaskFields) (Task, error)

	// UpdateTask updates a task. expectedVersion is the version last
	// observed by the caller and is always sent; the server is the sole
	// arbiter of the optimistic-concurrency check.
	UpdateTask(ctx context.Context, id string, fields TaskFields, expectedVersion int) (Task, error)

	// DeleteTask deletes a task by id.
	DeleteTask(ctx context.Context, id string) error

	// Stats fetches the aggregate count snapshot.
	Stats(ctx context.Context) (Stats, error)
}
