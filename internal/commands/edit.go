package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskmaster/internal/api"
	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/output"
	"taskmaster/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. It fetches the task first so the
// update carries the version it observed; the server decides whether that
// version is still current.
type EditCmd struct {
	title       *string
	description *string
	status      *string
	priority    *string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskmaster edit [--title <t>] [--desc <text>] [--status <s>] [--priority <p>] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("title", "", func(s string) error { c.title = &s; return nil })
	fs.Func("desc", "", func(s string) error { c.description = &s; return nil })
	fs.Func("status", "", func(s string) error { c.status = &s; return nil })
	fs.Func("priority", "", func(s string) error { c.priority = &s; return nil })
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}
	if c.title == nil && c.description == nil && c.status == nil && c.priority == nil {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	task, err := resolveTask(ctx, svc, strings.Join(args, " "))
	if err != nil {
		if isTaskRefErr(err) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return fail(errOut, err)
	}

	fields := service.TaskFields{
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
	}
	if c.title != nil {
		if strings.TrimSpace(*c.title) == "" {
			fmt.Fprintln(errOut, "error: title required")
			return exitcode.UserError
		}
		fields.Title = *c.title
	}
	if c.description != nil {
		fields.Description = *c.description
	}
	if c.status != nil {
		fields.Status = service.Status(strings.ToUpper(*c.status))
		if !fields.Status.Valid() {
			fmt.Fprintf(errOut, "error: invalid status: %s\n", *c.status)
			return exitcode.UserError
		}
	}
	if c.priority != nil {
		fields.Priority = service.Priority(strings.ToUpper(*c.priority))
		if !fields.Priority.Valid() {
			fmt.Fprintf(errOut, "error: invalid priority: %s\n", *c.priority)
			return exitcode.UserError
		}
	}

	updated, err := svc.UpdateTask(ctx, task.ID, fields, task.Version)
	if err != nil {
		if api.IsConflict(err) {
			return showConflict(ctx, svc, task.ID, out, errOut)
		}
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTaskDetail(out, updated)
	}
	return exitcode.Success
}

// showConflict reports a concurrent modification and shows the current
// server state instead of retrying the write.
func showConflict(ctx context.Context, svc service.Service, id string, out, errOut io.Writer) int {
	fmt.Fprintln(errOut, "error: task was modified by someone else; showing the current version")
	if fresh, err := svc.GetTask(ctx, id); err == nil {
		output.FormatTaskDetail(out, fresh)
	}
	return exitcode.UserError
}
