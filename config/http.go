package config

import (
	"strings"
	"time"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8000"`

	// RootPath mounts every route under a prefix (e.g. "/api") when the
	// service sits behind a path-routing proxy. Empty serves from "/".
	RootPath string `env:"HTTP_ROOT_PATH" envDefault:""`

	// HTTPSEnabled sets the Secure flag on the session cookie.
	HTTPSEnabled bool `env:"HTTPS_ENABLED" envDefault:"true"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT"  envDefault:"30s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT"  envDefault:"120s"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.RootPath = strings.TrimRight(strings.TrimSpace(h.RootPath), "/")
	if h.RootPath != "" && !strings.HasPrefix(h.RootPath, "/") {
		h.RootPath = "/" + h.RootPath
	}
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 30 * time.Second
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 30 * time.Second
	}
	if h.IdleTimeout <= 0 {
		h.IdleTimeout = 120 * time.Second
	}
}
