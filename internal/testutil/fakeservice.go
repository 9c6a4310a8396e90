// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"taskmaster/internal/api"
	"taskmaster/internal/service"
)

// FakeService is an in-memory implementation of service.Service for
// testing. It records call counts and the last list filter so tests can
// assert on refresh policy and on the absence of network calls.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int

	// Accounts maps email to password for Login.
	Accounts map[string]string

	// ResetTokens maps valid reset-link tokens to emails.
	ResetTokens map[string]string

	// Call counters.
	LoginCalls        int
	LogoutCalls       int
	RequestResetCalls int
	VerifyCalls       int
	ResetCalls        int
	ListCalls         int
	StatsCalls        int
	CreateCalls       int
	UpdateCalls       int
	DeleteCalls       int

	// LastFilter is the filter of the most recent ListTasks call.
	LastFilter service.ListFilter

	// LastReset records the arguments of the most recent reset call.
	LastReset struct {
		Email, OTP, Token, NewPassword string
	}

	// Error injection.
	LoginErr        error
	RegisterErr     error
	LogoutErr       error
	RequestResetErr error
	VerifyErr       error
	ResetErr        error
	ListErr         error
	GetErr          error
	CreateErr       error
	UpdateErr       error
	DeleteErr       error
	StatsErr        error
}

// NewFakeService creates an empty fake service.
func NewFakeService() *FakeService {
	return &FakeService{
		Accounts:    make(map[string]string),
		ResetTokens: make(map[string]string),
	}
}

// AddTask seeds a task and returns it. IDs and creation times are
// deterministic.
func (f *FakeService) AddTask(title string, status service.Status, priority service.Priority) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	task := service.Task{
		ID:        fmt.Sprintf("task-%04d", f.nextID),
		Title:     title,
		Status:    status,
		Priority:  priority,
		Version:   1,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.nextID) * time.Minute),
	}
	f.tasks = append(f.tasks, task)
	return task
}

// SetVersion overwrites a seeded task's version, simulating a concurrent
// server-side modification.
func (f *FakeService) SetVersion(id string, version int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Version = version
		}
	}
}

// Task returns the current server copy of a task.
func (f *FakeService) Task(id string) (service.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (service.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	if f.LoginErr != nil {
		return service.Session{}, f.LoginErr
	}
	if pw, ok := f.Accounts[email]; !ok || pw != password {
		return service.Session{}, &api.Error{Status: http.StatusUnauthorized, Detail: "invalid credentials"}
	}
	return f.sessionFor(email), nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, fullName, email, password string) (service.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RegisterErr != nil {
		return service.Session{}, f.RegisterErr
	}
	if _, exists := f.Accounts[email]; exists {
		return service.Session{}, &api.Error{Status: http.StatusBadRequest, Detail: "email already registered"}
	}
	f.Accounts[email] = password
	session := f.sessionFor(email)
	session.User.FullName = fullName
	return session, nil
}

func (f *FakeService) sessionFor(email string) service.Session {
	return service.Session{
		AccessToken:  "access-" + email,
		RefreshToken: "refresh-" + email,
		User:         service.User{ID: "user-" + email, Email: email},
	}
}

// Logout implements service.Service.
func (f *FakeService) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LogoutCalls++
	return f.LogoutErr
}

// RequestPasswordReset implements service.Service.
func (f *FakeService) RequestPasswordReset(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RequestResetCalls++
	return f.RequestResetErr
}

// VerifyResetToken implements service.Service.
func (f *FakeService) VerifyResetToken(ctx context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.VerifyCalls++
	if f.VerifyErr != nil {
		return "", f.VerifyErr
	}
	email, ok := f.ResetTokens[token]
	if !ok {
		return "", service.ErrResetTokenInvalid
	}
	return email, nil
}

// ResetPassword implements service.Service.
func (f *FakeService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ResetCalls++
	f.LastReset.Email = email
	f.LastReset.OTP = otp
	f.LastReset.NewPassword = newPassword
	return f.ResetErr
}

// ResetPasswordWithToken implements service.Service.
func (f *FakeService) ResetPasswordWithToken(ctx context.Context, token, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ResetCalls++
	f.LastReset.Token = token
	f.LastReset.NewPassword = newPassword
	return f.ResetErr
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, filter service.ListFilter) (service.TaskPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	f.LastFilter = filter
	if f.ListErr != nil {
		return service.TaskPage{}, f.ListErr
	}

	var matched []service.Task
	for _, t := range f.tasks {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, t.Status) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, t)
	}

	if filter.SortBy == "created_at" && filter.SortOrder == "desc" {
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}

	limit := filter.Limit
	if limit < 1 {
		limit = len(matched)
	}
	if limit < 1 {
		// Nothing matched and no limit given; any positive value keeps the
		// page arithmetic sound.
		limit = 1
	}
	pages := (len(matched) + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}

	start := filter.Skip
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]service.Task, end-start)
	copy(items, matched[start:end])
	return service.TaskPage{Items: items, Pages: pages}, nil
}

func containsStatus(statuses []service.Status, s service.Status) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (service.Task, error) {
	if f.GetErr != nil {
		return service.Task{}, f.GetErr
	}
	task, ok := f.Task(id)
	if !ok {
		return service.Task{}, &api.Error{Status: http.StatusNotFound, Detail: "task not found"}
	}
	return task, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, fields service.TaskFields) (service.Task, error) {
	f.mu.Lock()
	f.CreateCalls++
	if f.CreateErr != nil {
		f.mu.Unlock()
		return service.Task{}, f.CreateErr
	}
	f.mu.Unlock()

	status := fields.Status
	if status == "" {
		status = service.StatusTodo
	}
	priority := fields.Priority
	if priority == "" {
		priority = service.PriorityMedium
	}
	task := f.AddTask(fields.Title, status, priority)
	task.Description = fields.Description

	f.mu.Lock()
	for i := range f.tasks {
		if f.tasks[i].ID == task.ID {
			f.tasks[i].Description = fields.Description
		}
	}
	f.mu.Unlock()
	return task, nil
}

// UpdateTask implements service.Service. A stale expectedVersion is
// rejected with a 409, leaving the task unmodified.
func (f *FakeService) UpdateTask(ctx context.Context, id string, fields service.TaskFields, expectedVersion int) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}

	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if f.tasks[i].Version != expectedVersion {
			return service.Task{}, &api.Error{Status: http.StatusConflict, Detail: "task was modified by another request"}
		}
		if fields.Title != "" {
			f.tasks[i].Title = fields.Title
		}
		if fields.Description != "" {
			f.tasks[i].Description = fields.Description
		}
		if fields.Status != "" {
			f.tasks[i].Status = fields.Status
		}
		if fields.Priority != "" {
			f.tasks[i].Priority = fields.Priority
		}
		f.tasks[i].Version++
		return f.tasks[i], nil
	}
	return service.Task{}, &api.Error{Status: http.StatusNotFound, Detail: "task not found"}
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &api.Error{Status: http.StatusNotFound, Detail: "task not found"}
}

// Stats implements service.Service, computing counts from current tasks.
func (f *FakeService) Stats(ctx context.Context) (service.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StatsCalls++
	if f.StatsErr != nil {
		return service.Stats{}, f.StatsErr
	}
	stats := service.Stats{Total: len(f.tasks)}
	for _, t := range f.tasks {
		switch t.Status {
		case service.StatusInProgress:
			stats.InProgress++
		case service.StatusCompleted:
			stats.Completed++
		case service.StatusTodo:
			stats.Todo++
		}
	}
	return stats, nil
}
