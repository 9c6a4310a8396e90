package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-hclog"

	"taskmaster/internal/api"
	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
)

var validate = validator.New()

// newLogger returns a debug logger writing to errOut, or a null logger when
// debug is off.
func newLogger(cfg *config.Config, errOut io.Writer) hclog.Logger {
	if !cfg.Debug {
		return hclog.NewNullLogger()
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   config.AppName,
		Level:  hclog.Debug,
		Output: errOut,
	})
}

// fail prints err with the server-provided detail when present and maps it
// to an exit code.
func fail(errOut io.Writer, err error) int {
	switch {
	case api.IsAuth(err):
		fmt.Fprintf(errOut, "error: %s\n", api.Detail(err, "authentication failed (run: taskmaster login)"))
		return exitcode.AuthError
	case api.IsNotFound(err):
		fmt.Fprintf(errOut, "error: %s\n", api.Detail(err, "not found"))
		return exitcode.UserError
	case api.IsValidation(err):
		fmt.Fprintf(errOut, "error: %s\n", api.Detail(err, "invalid request"))
		return exitcode.UserError
	case api.IsConflict(err):
		fmt.Fprintf(errOut, "error: %s\n", api.Detail(err, "conflict"))
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// promptLine prints a label and reads one input line. ok is false on EOF or
// read failure.
func promptLine(sc *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprintf(out, "%s: ", label)
	if !sc.Scan() {
		fmt.Fprintln(out)
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

// confirm asks a yes/no question and accepts only "y" or "yes".
func confirm(sc *bufio.Scanner, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	if !sc.Scan() {
		fmt.Fprintln(out)
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes"
}
