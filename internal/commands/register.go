package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/service"
	"taskmaster/internal/session"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	fullName string
	email    string
	password string
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create a TaskMaster account" }
func (c *RegisterCmd) Usage() string {
	return "taskmaster register [--name <full-name>] [--email <email>] [--password <password>]"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.fullName, "name", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

// registerInput is validated locally before the request is sent.
type registerInput struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	sc := bufio.NewScanner(in)

	input := registerInput{FullName: c.fullName, Email: c.email, Password: c.password}
	if input.FullName == "" {
		input.FullName, _ = promptLine(sc, out, "Full name")
	}
	if input.Email == "" {
		input.Email, _ = promptLine(sc, out, "Email")
	}
	if input.Password == "" {
		input.Password, _ = promptLine(sc, out, "Password")
		confirmPW, _ := promptLine(sc, out, "Confirm password")
		if input.Password != confirmPW {
			fmt.Fprintln(errOut, "error: passwords do not match")
			return exitcode.UserError
		}
	}

	if err := validate.Struct(input); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			switch fieldErr.Field() {
			case "FullName":
				fmt.Fprintln(errOut, "error: full name required")
			case "Email":
				fmt.Fprintln(errOut, "error: a valid email address is required")
			case "Password":
				fmt.Fprintln(errOut, "error: password must be at least 8 characters long")
			}
		}
		return exitcode.UserError
	}

	store := session.NewStore(cfg, svc, newLogger(cfg, errOut))
	user, err := store.Register(ctx, input.FullName, input.Email, input.Password)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "registered and logged in as %s\n", user.Email)
	}
	return exitcode.Success
}
