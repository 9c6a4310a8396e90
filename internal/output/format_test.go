package output

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"taskmaster/internal/service"
)

func init() {
	color.NoColor = true
}

func TestFormatTask(t *testing.T) {
	var sb strings.Builder
	FormatTask(&sb, service.Task{
		ID:       "a1b2c3d4e5f6",
		Title:    "write report",
		Status:   service.StatusInProgress,
		Priority: service.PriorityHigh,
	})
	want := "a1b2c3d4  IN_PROGRESS  HIGH    write report\n"
	if sb.String() != want {
		t.Errorf("FormatTask\n got %q\nwant %q", sb.String(), want)
	}
}

func TestFormatTaskNormalizesTitle(t *testing.T) {
	var sb strings.Builder
	FormatTask(&sb, service.Task{
		ID:       "a1b2c3d4",
		Title:    "line one\nline two",
		Status:   service.StatusTodo,
		Priority: service.PriorityLow,
	})
	if !strings.Contains(sb.String(), "line one line two") {
		t.Errorf("newline not flattened: %q", sb.String())
	}

	sb.Reset()
	FormatTask(&sb, service.Task{ID: "a1b2c3d4", Status: service.StatusTodo, Priority: service.PriorityLow})
	if !strings.Contains(sb.String(), "(untitled)") {
		t.Errorf("empty title not replaced: %q", sb.String())
	}
}

func TestFormatTaskDetail(t *testing.T) {
	var sb strings.Builder
	FormatTaskDetail(&sb, service.Task{
		ID:          "a1b2c3d4e5f6",
		Title:       "write report",
		Description: "quarterly numbers",
		Status:      service.StatusTodo,
		Priority:    service.PriorityMedium,
		Version:     3,
		CreatedAt:   time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
	})
	want := "id           a1b2c3d4e5f6\n" +
		"title        write report\n" +
		"description  quarterly numbers\n" +
		"status       TODO\n" +
		"priority     MEDIUM\n" +
		"version      3\n" +
		"created      2024-01-02 09:30\n"
	if sb.String() != want {
		t.Errorf("FormatTaskDetail\n got %q\nwant %q", sb.String(), want)
	}
}

func TestFormatTaskDetailOmitsEmptyDescription(t *testing.T) {
	var sb strings.Builder
	FormatTaskDetail(&sb, service.Task{ID: "x", Title: "t", Status: service.StatusTodo, Priority: service.PriorityLow, Version: 1})
	if strings.Contains(sb.String(), "description") {
		t.Errorf("empty description printed: %q", sb.String())
	}
}

func TestFormatStats(t *testing.T) {
	var sb strings.Builder
	FormatStats(&sb, service.Stats{Total: 10, InProgress: 3, Completed: 5, Todo: 2})
	want := "total        10\n" +
		"in progress  3\n" +
		"completed    5\n" +
		"todo         2\n"
	if sb.String() != want {
		t.Errorf("FormatStats\n got %q\nwant %q", sb.String(), want)
	}
}

func TestFormatPageFooter(t *testing.T) {
	var sb strings.Builder
	FormatPageFooter(&sb, 1, 1)
	if sb.String() != "" {
		t.Errorf("footer printed for a single page: %q", sb.String())
	}

	FormatPageFooter(&sb, 2, 5)
	if sb.String() != "page 2 of 5\n" {
		t.Errorf("footer = %q", sb.String())
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("a1b2c3d4e5f6"); got != "a1b2c3d4" {
		t.Errorf("ShortID long = %q", got)
	}
	if got := ShortID("ab"); got != "ab      " {
		t.Errorf("ShortID short = %q", got)
	}
}
