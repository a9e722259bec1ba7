package config

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeWorker runs the background task worker.
	ServiceModeWorker ServiceMode = "worker"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{ServiceModeHTTP, ServiceModeWorker}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	for _, part := range strings.Split(servicesStr, ",") {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeWorker:
			services[mode] = true
		default:
			return nil, fmt.Errorf("invalid service name: %q (valid options: http, worker)", serviceName)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// WorkerConfig contains task worker configuration.
type WorkerConfig struct {
	// Concurrency is the number of tasks processed in parallel.
	Concurrency int `env:"CONCURRENCY" envDefault:"1"`

	// PollTimeout bounds each blocking pop on the queue so shutdown is noticed promptly.
	PollTimeout time.Duration `env:"POLL_TIMEOUT" envDefault:"5s"`

	// TaskTimeout is the hard limit for a single task execution.
	TaskTimeout time.Duration `env:"TASK_TIMEOUT" envDefault:"30m"`
}

// Sanitize applies guardrails to worker configuration values.
func (w *WorkerConfig) Sanitize() {
	if w.Concurrency < 1 {
		w.Concurrency = 1
	}
	if w.PollTimeout < time.Second {
		w.PollTimeout = time.Second
	}
	if w.TaskTimeout <= 0 {
		w.TaskTimeout = 30 * time.Minute
	}
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ProgressConfig declares which entity types have progress flags and the table backing each.
// PROGRESS_ENTITIES=chapter:chapters,course:courses
type ProgressConfig struct {
	Entities map[string]string `env:"ENTITIES" envKeyValSeparator:":"`
}

// Validate rejects entity tables that are not plain SQL identifiers.
func (p ProgressConfig) Validate() error {
	for _, entityType := range p.EntityTypes() {
		table := p.Entities[entityType]
		if !identRe.MatchString(table) {
			return fmt.Errorf("progress entity %q: invalid table name %q", entityType, table)
		}
	}
	return nil
}

// EntityTypes returns the configured entity types in sorted order.
func (p ProgressConfig) EntityTypes() []string {
	out := make([]string, 0, len(p.Entities))
	for k := range p.Entities {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
