// Package main is the entry point for the taskmaster CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"taskmaster/internal/backend/rest"
	"taskmaster/internal/cli"
	"taskmaster/internal/commands"
	"taskmaster/internal/config"
	"taskmaster/internal/service"
	"taskmaster/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config, authed bool) (service.Service, error) {
		log := hclog.NewNullLogger()
		if cfg.Debug {
			log = hclog.New(&hclog.LoggerOptions{
				Name:   config.AppName,
				Level:  hclog.Debug,
				Output: os.Stderr,
			})
		}

		var token *oauth2.Token
		tok, err := session.LoadToken(cfg)
		switch {
		case err == nil:
			token = tok
		case authed:
			return nil, err
		default:
			// Unauthenticated command and no stored session; proceed
			// without credentials.
		}

		return rest.New(cfg, token, log), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(code)
}
