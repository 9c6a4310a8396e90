package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskmaster help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskmaster                                        List tasks
  taskmaster list [--status <s[,s...]>] [--search <text>] [--sort <field>]
                  [--order asc|desc] [--page <n>] [--size <n>]
  taskmaster get <id>
  taskmaster add [--desc <text>] [--priority <p>] [--status <s>] <title...>
  taskmaster edit [--title <t>] [--desc <text>] [--status <s>] [--priority <p>] <id>
  taskmaster done <id>
  taskmaster rm [--yes] <id>
  taskmaster stats
  taskmaster dash                                   Interactive dashboard
  taskmaster login [--email <email>] [--password <password>]
  taskmaster register [--name <full-name>] [--email <email>] [--password <password>]
  taskmaster logout
  taskmaster whoami
  taskmaster forgot-password [--email <email>]      Reset via emailed OTP
  taskmaster reset-password --token <token>         Reset via emailed link token
  taskmaster help
  taskmaster version

Statuses:   TODO, IN_PROGRESS, COMPLETED, CANCELLED
Priorities: LOW, MEDIUM, HIGH, URGENT

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
