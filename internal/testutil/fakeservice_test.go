package testutil

import (
	"context"
	"testing"

	"taskmaster/internal/service"
)

func TestListTasksZeroValueFilter(t *testing.T) {
	svc := NewFakeService()

	// An empty filter against an empty store is valid input.
	page, err := svc.ListTasks(context.Background(), service.ListFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("got %d items, want 0", len(page.Items))
	}
	if page.Pages != 1 {
		t.Errorf("Pages = %d, want 1", page.Pages)
	}
}

func TestListTasksZeroLimitReturnsAll(t *testing.T) {
	svc := NewFakeService()
	svc.AddTask("a", service.StatusTodo, service.PriorityMedium)
	svc.AddTask("b", service.StatusTodo, service.PriorityMedium)

	page, err := svc.ListTasks(context.Background(), service.ListFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("got %d items, want 2", len(page.Items))
	}
	if page.Pages != 1 {
		t.Errorf("Pages = %d, want 1", page.Pages)
	}
}

func TestListTasksSearchMissesEverything(t *testing.T) {
	svc := NewFakeService()
	svc.AddTask("write report", service.StatusTodo, service.PriorityMedium)

	page, err := svc.ListTasks(context.Background(), service.ListFilter{Search: "nomatch"})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(page.Items) != 0 || page.Pages != 1 {
		t.Errorf("page = %+v, want empty with one page", page)
	}
}
