package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskmaster/internal/api"
	"taskmaster/internal/config"
	"taskmaster/internal/dashboard"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/output"
	"taskmaster/internal/service"
)

func init() {
	Register(&DashCmd{})
}

// DashCmd runs the interactive dashboard: a line-based loop over the
// filter/paginate/mutate state of the dashboard package.
type DashCmd struct{}

func (c *DashCmd) Name() string      { return "dash" }
func (c *DashCmd) Aliases() []string { return []string{"dashboard"} }
func (c *DashCmd) Synopsis() string  { return "Interactive task dashboard" }
func (c *DashCmd) Usage() string     { return "taskmaster dash" }
func (c *DashCmd) NeedsAuth() bool   { return true }

func (c *DashCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DashCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	d := dashboard.New(svc, cfg.PageSize, cfg.Debounce, func(snap dashboard.Snapshot) {
		renderDash(out, snap)
	})
	defer d.Close()

	if err := d.Refresh(ctx); err != nil {
		return fail(errOut, err)
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return exitcode.Success
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, rest := fields[0], fields[1:]

		switch cmd {
		case "q", "quit", "exit":
			return exitcode.Success

		case "help", "?":
			fmt.Fprint(out, dashHelpText)

		case "r", "refresh":
			if err := d.Refresh(ctx); err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
			}

		case "search":
			// Applied after the debounce delay; the view re-renders then.
			d.SetSearch(ctx, strings.Join(rest, " "))

		case "status":
			statuses, err := parseStatuses(strings.Join(rest, ","))
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				continue
			}
			d.SetStatuses(ctx, statuses...)

		case "page":
			if len(rest) != 1 {
				fmt.Fprintln(errOut, "error: usage: page <n>")
				continue
			}
			n, err := strconv.Atoi(rest[0])
			if err != nil || n < 1 {
				fmt.Fprintf(errOut, "error: invalid page number: %s\n", rest[0])
				continue
			}
			if err := d.SetPage(ctx, n); err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
			}

		case "next":
			snap := d.Snapshot()
			if snap.Page < snap.TotalPages {
				if err := d.SetPage(ctx, snap.Page+1); err != nil {
					fmt.Fprintf(errOut, "error: %v\n", err)
				}
			}

		case "prev":
			snap := d.Snapshot()
			if snap.Page > 1 {
				if err := d.SetPage(ctx, snap.Page-1); err != nil {
					fmt.Fprintf(errOut, "error: %v\n", err)
				}
			}

		case "sort":
			if len(rest) != 2 {
				fmt.Fprintln(errOut, "error: usage: sort <field> <asc|desc>")
				continue
			}
			if err := d.SetSort(ctx, rest[0], rest[1]); err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
			}

		case "add":
			_, err := d.Create(ctx, service.TaskFields{Title: strings.Join(rest, " ")})
			if errors.Is(err, dashboard.ErrTitleRequired) {
				fmt.Fprintln(errOut, "error: title required")
			} else if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
			}

		case "done":
			task, ok := findInSnapshot(d.Snapshot(), strings.Join(rest, " "))
			if !ok {
				fmt.Fprintln(errOut, "error: no matching task on this page")
				continue
			}
			taskFields := service.TaskFields{
				Title:       task.Title,
				Description: task.Description,
				Status:      service.StatusCompleted,
				Priority:    task.Priority,
			}
			if _, err := d.Update(ctx, task.ID, taskFields, task.Version); err != nil {
				if api.IsConflict(err) {
					fmt.Fprintln(errOut, "task was modified by someone else, refreshing")
				} else {
					fmt.Fprintf(errOut, "error: %v\n", err)
				}
			}

		case "rm":
			task, ok := findInSnapshot(d.Snapshot(), strings.Join(rest, " "))
			if !ok {
				fmt.Fprintln(errOut, "error: no matching task on this page")
				continue
			}
			question := fmt.Sprintf("delete task %s (%s)?", output.ShortID(task.ID), task.Title)
			if !confirm(sc, out, question) {
				continue
			}
			if err := d.Delete(ctx, task.ID); err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
			}

		default:
			fmt.Fprintf(errOut, "error: unknown dashboard command: %s\n", cmd)
		}
	}
}

// findInSnapshot matches a task on the loaded page by id prefix.
func findInSnapshot(snap dashboard.Snapshot, ref string) (service.Task, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return service.Task{}, false
	}
	for _, t := range snap.Tasks {
		if strings.HasPrefix(t.ID, ref) {
			return t, true
		}
	}
	return service.Task{}, false
}

func renderDash(w io.Writer, snap dashboard.Snapshot) {
	fmt.Fprintf(w, "\ntotal %d  in progress %d  completed %d  todo %d\n",
		snap.Stats.Total, snap.Stats.InProgress, snap.Stats.Completed, snap.Stats.Todo)

	var filters []string
	if snap.Search != "" {
		filters = append(filters, "search="+snap.Search)
	}
	for _, s := range snap.Statuses {
		filters = append(filters, "status="+string(s))
	}
	if len(filters) > 0 {
		fmt.Fprintf(w, "filters: %s\n", strings.Join(filters, " "))
	}

	if len(snap.Tasks) == 0 {
		fmt.Fprintln(w, "no tasks found")
	}
	for _, task := range snap.Tasks {
		output.FormatTask(w, task)
	}
	output.FormatPageFooter(w, snap.Page, snap.TotalPages)
}

const dashHelpText = `Dashboard commands:
  search <text>          Filter by free text (debounced, resets to page 1)
  status <s[,s...]>      Filter by status (debounced, resets to page 1)
  sort <field> <order>   Sort by field asc|desc
  page <n> | next | prev Change page
  add <title...>         Create a task
  done <id-prefix>       Mark a task on this page completed
  rm <id-prefix>         Delete a task on this page (asks for confirmation)
  r                      Refresh now
  q                      Quit
`
