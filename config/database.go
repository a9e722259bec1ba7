package config

import (
	"strings"
	"time"
)

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"app"`
	Password string `env:"PASSWORD" envDefault:"passwd"`
	Name     string `env:"NAME"     envDefault:"postgres"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`

	MaxOpenConns    int           `env:"MAX_OPEN_CONNS"    envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS"    envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
}

// Sanitize applies guardrails to pool settings.
func (d *DBConfig) Sanitize() {
	if d.MaxOpenConns < 1 {
		d.MaxOpenConns = 1
	}
	if d.MaxIdleConns < 0 {
		d.MaxIdleConns = 0
	}
	if d.MaxIdleConns > d.MaxOpenConns {
		d.MaxIdleConns = d.MaxOpenConns
	}
}

// PlaceholderQueueName is the value shipped in sample env files; it must be replaced.
const PlaceholderQueueName = "CHANGE_ME"

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	// URI is a host:port or a redis:// / rediss:// URL.
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`

	// QueueName is the Redis list that carries task messages.
	QueueName string `env:"QUEUE_NAME" envDefault:"taskiq"`
	// ResultTTL is how long task results are kept.
	ResultTTL time.Duration `env:"RESULT_TTL" envDefault:"1h"`
}

// Sanitize applies guardrails to Redis configuration values.
func (r *RedisConfig) Sanitize() {
	r.QueueName = strings.TrimSpace(r.QueueName)
	if r.QueueName == "" {
		r.QueueName = "taskiq"
	}
	if r.ResultTTL <= 0 {
		r.ResultTTL = time.Hour
	}
}
