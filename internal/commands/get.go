package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/output"
	"taskmaster/internal/service"
)

func init() {
	Register(&GetCmd{})
}

// GetCmd implements the get command.
type GetCmd struct{}

func (c *GetCmd) Name() string      { return "get" }
func (c *GetCmd) Aliases() []string { return []string{"show"} }
func (c *GetCmd) Synopsis() string  { return "Show a single task" }
func (c *GetCmd) Usage() string     { return "taskmaster get <id>" }
func (c *GetCmd) NeedsAuth() bool   { return true }

func (c *GetCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *GetCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
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

	output.FormatTaskDetail(out, task)
	return exitcode.Success
}
