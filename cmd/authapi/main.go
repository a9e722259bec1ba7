package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/target/mmk-auth-api/config"
	"github.com/target/mmk-auth-api/internal/bootstrap"
	"github.com/urfave/cli/v2"
)

// appState is filled by the app's Before hook and shared with every command.
type appState struct {
	cfg    config.AppConfig
	logger *slog.Logger
	flush  func()
}

func main() {
	app := newApp(&appState{})
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Default().ErrorContext(ctx, "command failed", "error", err)
		cancel()
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func newApp(st *appState) *cli.App {
	return &cli.App{
		Name:  "authapi",
		Usage: "Account authentication API and background task worker",
		Before: func(c *cli.Context) error {
			return st.load()
		},
		After: func(c *cli.Context) error {
			if st.flush != nil {
				st.flush()
			}
			return nil
		},
		Commands: []*cli.Command{
			serveCmd(st),
			workerCmd(st),
			migrateCmd(st),
			enqueueCmd(st),
		},
	}
}

func (st *appState) load() error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	st.cfg = cfg
	st.logger = bootstrap.InitLogger(cfg.Logging.Level.SlogLevel())
	bootstrap.LogConfigWarnings(st.logger, &st.cfg)

	flush, err := bootstrap.InitSentry(&st.cfg, st.logger)
	if err != nil {
		// Error reporting is optional; the service still runs without it.
		st.logger.Warn("sentry init failed", "error", err)
	}
	st.flush = flush
	return nil
}
