package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Token signing and password hashing
//   - database.go: Postgres and Redis
//   - http.go: HTTP server and cookies
//   - services.go: Service mode, task worker and progress tracking
//   - observability.go: Logging and error reporting
type AppConfig struct {
	// AppName is reported in logs and error-reporting events.
	AppName string `env:"APP_NAME" envDefault:"Backend"`

	// Description is shown in startup logs.
	Description string `env:"APP_DESCRIPTION" envDefault:"Backend"`

	// IsDev controls development mode behavior (relaxed secret checks).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	JWT          JWTConfig          `envPrefix:"JWT_"`
	PasswordHash PasswordHashConfig `envPrefix:"PASSWORD_HASH_"`

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	HTTP HTTPConfig

	// Services is a comma-delimited list of services started by the serve command.
	Services string `env:"SERVICES" envDefault:"http"`

	Worker   WorkerConfig   `envPrefix:"WORKER_"`
	Progress ProgressConfig `envPrefix:"PROGRESS_"`

	Logging LoggingConfig
	Sentry  SentryConfig `envPrefix:"SENTRY_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.detectDevMode()

	c.JWT.Sanitize()
	c.PasswordHash.Sanitize()
	c.Postgres.Sanitize()
	c.Redis.Sanitize()
	c.HTTP.Sanitize()
	c.Worker.Sanitize()
	c.Sentry.Sanitize()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// Warnings returns configuration problems that do not prevent startup but
// should be surfaced in logs.
func (c *AppConfig) Warnings() []string {
	var out []string
	if !c.IsDev && c.JWT.UsesDefaultSecret() {
		out = append(out, "JWT_SECRET_KEY is the built-in default; set a strong secret outside development")
	}
	if c.Redis.QueueName == PlaceholderQueueName {
		out = append(out, "REDIS_QUEUE_NAME is still the placeholder value")
	}
	if !c.HTTP.HTTPSEnabled && !c.IsDev {
		out = append(out, "HTTPS_ENABLED=false: session cookies will be sent without the Secure flag")
	}
	return out
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsWorkerEnabled returns true if the task worker service is enabled.
func (c *AppConfig) IsWorkerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeWorker]
}
