package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// LogLevel accepts the level names used by the deployment tooling.
type LogLevel string

// UnmarshalText implements encoding.TextUnmarshaler for LogLevel.
func (l *LogLevel) UnmarshalText(text []byte) error {
	v := strings.ToUpper(strings.TrimSpace(string(text)))
	switch v {
	case "DEBUG", "INFO", "WARNING", "WARN", "ERROR", "CRITICAL":
		*l = LogLevel(v)
		return nil
	default:
		return fmt.Errorf("invalid LogLevel: %q (valid options: DEBUG, INFO, WARNING, ERROR, CRITICAL)", v)
	}
}

// SlogLevel maps the configured level onto slog. CRITICAL has no slog
// equivalent and is treated as ERROR.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING", "WARN":
		return slog.LevelWarn
	case "ERROR", "CRITICAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level LogLevel `env:"LOG_LEVEL" envDefault:"INFO"`
}

// SentryConfig controls error reporting.
type SentryConfig struct {
	Enabled          bool    `env:"ENABLED"            envDefault:"false"`
	DSN              string  `env:"DSN"`
	Environment      string  `env:"ENVIRONMENT"        envDefault:"production"`
	TracesSampleRate float64 `env:"TRACES_SAMPLE_RATE" envDefault:"1.0"`
}

// Sanitize disables reporting when no DSN is configured.
func (s *SentryConfig) Sanitize() {
	s.DSN = strings.TrimSpace(s.DSN)
	if s.DSN == "" {
		s.Enabled = false
	}
	if s.TracesSampleRate < 0 {
		s.TracesSampleRate = 0
	}
	if s.TracesSampleRate > 1 {
		s.TracesSampleRate = 1
	}
}

// IsEnabled returns true when reporting is active after sanitisation.
func (s SentryConfig) IsEnabled() bool {
	return s.Enabled && s.DSN != ""
}
