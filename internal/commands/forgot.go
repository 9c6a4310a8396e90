package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskmaster/internal/api"
	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/reset"
	"taskmaster/internal/service"
)

func init() {
	Register(&ForgotPasswordCmd{})
}

// ForgotPasswordCmd implements the OTP password-reset flow: request a code
// for an email address, then set a new password with it.
type ForgotPasswordCmd struct {
	email string
}

func (c *ForgotPasswordCmd) Name() string      { return "forgot-password" }
func (c *ForgotPasswordCmd) Aliases() []string { return []string{"forgot"} }
func (c *ForgotPasswordCmd) Synopsis() string  { return "Reset a password with an emailed OTP" }
func (c *ForgotPasswordCmd) Usage() string     { return "taskmaster forgot-password [--email <email>]" }
func (c *ForgotPasswordCmd) NeedsAuth() bool   { return false }

func (c *ForgotPasswordCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
}

func (c *ForgotPasswordCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	sc := bufio.NewScanner(in)
	flow := reset.NewOTPFlow(svc)

	email := c.email
	if email == "" {
		var ok bool
		if email, ok = promptLine(sc, out, "Email"); !ok {
			return exitcode.UserError
		}
	}

	if err := flow.SubmitEmail(ctx, email); err != nil {
		if errors.Is(err, reset.ErrEmailRequired) {
			fmt.Fprintln(errOut, "error: email address required")
			return exitcode.UserError
		}
		return fail(errOut, err)
	}

	fmt.Fprintln(out, "OTP sent, check your inbox")

	// Remain on this step until the reset succeeds or input ends.
	for {
		otp, ok := promptLine(sc, out, "OTP")
		if !ok {
			return exitcode.UserError
		}
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

		err := flow.Submit(ctx, otp, newPassword, confirmPW)
		if err == nil {
			break
		}
		if isLocalResetErr(err) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(errOut, "error: %s\n", api.Detail(err, "failed to reset password"))
		continue
	}

	fmt.Fprintln(out, "password reset, log in with your new password")
	return exitcode.Success
}

// isLocalResetErr reports whether err is a local validation rejection that
// never reached the server.
func isLocalResetErr(err error) bool {
	return errors.Is(err, reset.ErrOTPRequired) ||
		errors.Is(err, reset.ErrOTPLength) ||
		errors.Is(err, reset.ErrPasswordMismatch) ||
		errors.Is(err, reset.ErrPasswordTooShort) ||
		errors.Is(err, reset.ErrPasswordUppercase) ||
		errors.Is(err, reset.ErrPasswordLowercase) ||
		errors.Is(err, reset.ErrPasswordDigit)
}
