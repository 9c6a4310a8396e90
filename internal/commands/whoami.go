package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/service"
	"taskmaster/internal/session"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the locally persisted session identity. It never calls
// the API; a stale token still reads as logged in.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show the current session" }
func (c *WhoamiCmd) Usage() string     { return "taskmaster whoami" }
func (c *WhoamiCmd) NeedsAuth() bool   { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	store := session.NewStore(cfg, svc, newLogger(cfg, errOut))

	if !store.IsAuthenticated() {
		fmt.Fprintln(out, "not logged in")
		return exitcode.Success
	}

	user, ok := store.CurrentUser()
	if !ok {
		fmt.Fprintln(out, "logged in (no stored profile)")
		return exitcode.Success
	}

	if user.FullName != "" {
		fmt.Fprintf(out, "%s <%s>\n", user.FullName, user.Email)
	} else {
		fmt.Fprintln(out, user.Email)
	}
	return exitcode.Success
}
