// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"taskmaster/internal/service"
)

// ShortIDLen is the number of id characters shown in listings.
const ShortIDLen = 8

var statusColors = map[service.Status]*color.Color{
	service.StatusTodo:       color.New(color.FgMagenta),
	service.StatusInProgress: color.New(color.FgYellow),
	service.StatusCompleted:  color.New(color.FgGreen),
	service.StatusCancelled:  color.New(color.FgHiBlack),
}

var priorityColors = map[service.Priority]*color.Color{
	service.PriorityLow:    color.New(color.FgHiBlack),
	service.PriorityMedium: color.New(color.FgBlue),
	service.PriorityHigh:   color.New(color.FgYellow),
	service.PriorityUrgent: color.New(color.FgRed),
}

// FormatTask formats one task line for a listing.
// Format: "{ID:8}  {STATUS:<11}  {PRIORITY:<6}  {TITLE}\n"
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		ShortID(task.ID),
		colorize(statusColors[task.Status], fmt.Sprintf("%-11s", task.Status)),
		colorize(priorityColors[task.Priority], fmt.Sprintf("%-6s", task.Priority)),
		normalizeTitle(task.Title),
	)
}

// FormatTaskDetail formats the full view of a single task.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id           %s\n", task.ID)
	fmt.Fprintf(w, "title        %s\n", normalizeTitle(task.Title))
	if task.Description != "" {
		fmt.Fprintf(w, "description  %s\n", task.Description)
	}
	fmt.Fprintf(w, "status       %s\n", colorize(statusColors[task.Status], string(task.Status)))
	fmt.Fprintf(w, "priority     %s\n", colorize(priorityColors[task.Priority], string(task.Priority)))
	fmt.Fprintf(w, "version      %d\n", task.Version)
	if !task.CreatedAt.IsZero() {
		fmt.Fprintf(w, "created      %s\n", task.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// FormatStats formats the aggregate count snapshot.
func FormatStats(w io.Writer, stats service.Stats) {
	fmt.Fprintf(w, "total        %d\n", stats.Total)
	fmt.Fprintf(w, "in progress  %d\n", stats.InProgress)
	fmt.Fprintf(w, "completed    %d\n", stats.Completed)
	fmt.Fprintf(w, "todo         %d\n", stats.Todo)
}

// FormatPageFooter prints the pagination footer when there is more than
// one page.
func FormatPageFooter(w io.Writer, page, totalPages int) {
	if totalPages > 1 {
		fmt.Fprintf(w, "page %d of %d\n", page, totalPages)
	}
}

// ShortID truncates a server id for display.
func ShortID(id string) string {
	if len(id) > ShortIDLen {
		return id[:ShortIDLen]
	}
	return fmt.Sprintf("%-*s", ShortIDLen, id)
}

func colorize(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
