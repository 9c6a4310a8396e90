package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskmaster/internal/api"
	"taskmaster/internal/backend/rest"
	"taskmaster/internal/config"
	"taskmaster/internal/service"
	"taskmaster/internal/testutil"
)

// newClient starts a test server and returns a client pointed at it.
func newClient(t *testing.T, handler http.Handler) *rest.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return rest.New(&config.Config{APIURL: srv.URL}, nil, nil)
}

func TestListTasksUsesV1ForSingleStatus(t *testing.T) {
	var gotPath, gotQuery string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(service.TaskPage{Pages: 1})
	}))

	_, err := client.ListTasks(context.Background(), service.ListFilter{
		Statuses: []service.Status{service.StatusTodo},
	})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if gotPath != "/v1/tasks" {
		t.Errorf("path = %q, want /v1/tasks", gotPath)
	}
	if gotQuery != "status=TODO" {
		t.Errorf("query = %q, want status=TODO", gotQuery)
	}
}

func TestListTasksUsesV2ForMultipleStatuses(t *testing.T) {
	var gotPath string
	var gotStatuses []string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStatuses = r.URL.Query()["status"]
		json.NewEncoder(w).Encode(service.TaskPage{Pages: 1})
	}))

	_, err := client.ListTasks(context.Background(), service.ListFilter{
		Statuses: []service.Status{service.StatusTodo, service.StatusInProgress},
	})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if gotPath != "/v2/tasks" {
		t.Errorf("path = %q, want /v2/tasks", gotPath)
	}
	if len(gotStatuses) != 2 || gotStatuses[0] != "TODO" || gotStatuses[1] != "IN_PROGRESS" {
		t.Errorf("status params = %v", gotStatuses)
	}
}

func TestListTasksOmitsEmptyParams(t *testing.T) {
	var gotQuery string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(service.TaskPage{Pages: 1})
	}))

	_, err := client.ListTasks(context.Background(), service.ListFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want empty for an empty filter", gotQuery)
	}
}

func TestListTasksEncodesFilter(t *testing.T) {
	var got map[string]string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(service.TaskPage{Pages: 2})
	}))

	_, err := client.ListTasks(context.Background(), service.ListFilter{
		Search:    "report",
		SortBy:    "created_at",
		SortOrder: "desc",
		Skip:      20,
		Limit:     20,
	})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}

	want := map[string]string{
		"search":     "report",
		"sort_by":    "created_at",
		"sort_order": "desc",
		"skip":       "20",
		"limit":      "20",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("param %s = %q, want %q", k, got[k], v)
		}
	}
	if _, ok := got["status"]; ok {
		t.Error("status param present without a status filter")
	}
}

func TestUpdateTaskEchoesVersion(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(service.Task{ID: "task-1", Version: 4})
	}))

	task, err := client.UpdateTask(context.Background(), "task-1", service.TaskFields{Status: service.StatusCompleted}, 3)
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/v1/tasks/task-1" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotBody["version"] != float64(3) {
		t.Errorf("body version = %v, want 3", gotBody["version"])
	}
	if gotBody["status"] != "COMPLETED" {
		t.Errorf("body status = %v", gotBody["status"])
	}
	if task.Version != 4 {
		t.Errorf("returned version = %d, want server value 4", task.Version)
	}
}

func TestUpdateTaskConflict(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"detail": "task was modified"})
	}))

	_, err := client.UpdateTask(context.Background(), "task-1", service.TaskFields{}, 1)
	if !api.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Detail != "task was modified" {
		t.Errorf("detail not preserved: %v", err)
	}
}

func TestErrorEnvelope(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "could not validate credentials"})
	}))

	_, err := client.ListTasks(context.Background(), service.ListFilter{})
	if !api.IsAuth(err) {
		t.Fatalf("err = %v, want auth error", err)
	}
	if got := api.Detail(err, "fallback"); got != "could not validate credentials" {
		t.Errorf("Detail = %q", got)
	}
}

func TestLogin(t *testing.T) {
	var gotBody map[string]string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(service.Session{
			AccessToken:  "at",
			RefreshToken: "rt",
			User:         service.User{ID: "u1", Email: "ana@example.com"},
		})
	}))

	session, err := client.Login(context.Background(), "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotBody["email"] != "ana@example.com" || gotBody["password"] != "secret" {
		t.Errorf("body = %v", gotBody)
	}
	if session.AccessToken != "at" || session.User.Email != "ana@example.com" {
		t.Errorf("session = %+v", session)
	}
}

func TestVerifyResetToken(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		valid := body["token"] == "tok-good"
		json.NewEncoder(w).Encode(map[string]any{"valid": valid, "email": "ana@example.com"})
	}))

	email, err := client.VerifyResetToken(context.Background(), "tok-good")
	if err != nil {
		t.Fatalf("VerifyResetToken: %v", err)
	}
	if email != "ana@example.com" {
		t.Errorf("email = %q", email)
	}

	_, err = client.VerifyResetToken(context.Background(), "tok-bad")
	if !errors.Is(err, service.ErrResetTokenInvalid) {
		t.Errorf("err = %v, want ErrResetTokenInvalid", err)
	}
}

func TestResetPasswordWithToken(t *testing.T) {
	var gotBody map[string]string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/reset-password" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.ResetPasswordWithToken(context.Background(), "tok-1", "P@ssw0rd1"); err != nil {
		t.Fatalf("ResetPasswordWithToken: %v", err)
	}
	if gotBody["token"] != "tok-1" || gotBody["new_password"] != "P@ssw0rd1" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestDeleteTask(t *testing.T) {
	var gotMethod, gotPath string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeleteTask(context.Background(), "task-1"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/v1/tasks/task-1" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
}

func TestStats(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tasks/stats" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(service.Stats{Total: 7, InProgress: 2, Completed: 3, Todo: 2})
	}))

	stats, err := client.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 7 || stats.Completed != 3 {
		t.Errorf("stats = %+v", stats)
	}
}

var _ service.Service = (*rest.Client)(nil)
var _ service.Service = (*testutil.FakeService)(nil)
