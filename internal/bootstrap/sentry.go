package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/target/mmk-auth-api/config"
)

const sentryFlushTimeout = 2 * time.Second

// InitSentry configures the global Sentry client when reporting is enabled.
// The returned func flushes buffered events and is safe to call either way.
func InitSentry(cfg *config.AppConfig, logger *slog.Logger) (func(), error) {
	noop := func() {}
	if cfg == nil || !cfg.Sentry.IsEnabled() {
		return noop, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		ServerName:       cfg.AppName,
		EnableTracing:    cfg.Sentry.TracesSampleRate > 0,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
	})
	if err != nil {
		return noop, fmt.Errorf("init sentry: %w", err)
	}

	if logger != nil {
		logger.Info("sentry error reporting enabled", "environment", cfg.Sentry.Environment)
	}
	return func() { sentry.Flush(sentryFlushTimeout) }, nil
}
