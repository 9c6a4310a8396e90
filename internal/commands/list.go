package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskmaster/internal/config"
	"taskmaster/internal/dashboard"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/output"
	"taskmaster/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	status string
	search string
	sortBy string
	order  string
	page   int
	size   int
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskmaster list [--status <s[,s...]>] [--search <text>] [--sort <field>] [--order asc|desc] [--page <n>] [--size <n>]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.sortBy, "sort", dashboard.DefaultSortBy, "")
	fs.StringVar(&c.order, "order", dashboard.DefaultSortOrder, "")
	fs.IntVar(&c.page, "page", 1, "")
	fs.IntVar(&c.size, "size", 0, "")
}

// parseStatuses parses a comma-separated status list, normalizing case.
func parseStatuses(s string) ([]service.Status, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var statuses []service.Status
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		status := service.Status(strings.ToUpper(part))
		if !status.Valid() {
			return nil, fmt.Errorf("invalid status: %s", part)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if c.page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}

	statuses, err := parseStatuses(c.status)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	order := strings.ToLower(c.order)
	if order != "asc" && order != "desc" {
		fmt.Fprintf(errOut, "error: invalid sort order: %s\n", c.order)
		return exitcode.UserError
	}

	size := c.size
	if size < 1 {
		size = cfg.PageSize
	}

	result, err := svc.ListTasks(ctx, service.ListFilter{
		Statuses:  statuses,
		Search:    c.search,
		SortBy:    c.sortBy,
		SortOrder: order,
		Skip:      (c.page - 1) * size,
		Limit:     size,
	})
	if err != nil {
		return fail(errOut, err)
	}

	if len(result.Items) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for _, task := range result.Items {
		output.FormatTask(out, task)
	}
	output.FormatPageFooter(out, c.page, result.Pages)

	return exitcode.Success
}
