package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskmaster/internal/api"
	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/reset"
	"taskmaster/internal/service"
)

func init() {
	Register(&ResetPasswordCmd{})
}

// ResetPasswordCmd implements the reset-link flow. The token comes from the
// URL in the reset email; without one the user is pointed at login, and an
// invalid or expired one at requesting a new link. No verification request
// is made for a missing token.
type ResetPasswordCmd struct {
	token string
}

func (c *ResetPasswordCmd) Name() string      { return "reset-password" }
func (c *ResetPasswordCmd) Aliases() []string { return nil }
func (c *ResetPasswordCmd) Synopsis() string  { return "Reset a password with a reset-link token" }
func (c *ResetPasswordCmd) Usage() string     { return "taskmaster reset-password --token <token>" }
func (c *ResetPasswordCmd) NeedsAuth() bool   { return false }

func (c *ResetPasswordCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.token, "token", "", "")
}

func (c *ResetPasswordCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	token := c.token
	if token == "" && len(args) > 0 {
		token = strings.TrimSpace(args[0])
	}

	flow := reset.NewTokenFlow(svc)
	if err := flow.Verify(ctx, token); err != nil {
		if err == reset.ErrTokenMissing {
			fmt.Fprintln(errOut, "error: missing reset token (use the link from your email, or run: taskmaster login)")
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %s\n", api.Detail(err, "this reset link is invalid or has expired"))
		fmt.Fprintln(errOut, "request a new link: taskmaster forgot-password")
		return exitcode.UserError
	}

	fmt.Fprintf(out, "resetting password for %s\n", flow.Email())

	sc := bufio.NewScanner(in)
	for {
		newPassword, ok := promptLine(sc, out, "New password")
		if !ok {
			return exitcode.UserError
		}
		if _, label := reset.Strength(newPassword); label != "" {
			fmt.Fprintf(out, "password strength: %s\n", label)
		}
		confirmPW, ok := promptLine(sc, out, "Confirm password")
		if !ok {
			return exitcode.UserError
		}

		err := flow.Submit(ctx, newPassword, confirmPW)
		if err == nil {
			break
		}
		fmt.Fprintf(errOut, "error: %s\n", api.Detail(err, err.Error()))
	}

	fmt.Fprintln(out, "password reset, log in with your new password")
	return exitcode.Success
}
