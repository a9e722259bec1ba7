//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed globally via `go install` and are not tracked in go.mod
// since they are development tools, not runtime dependencies.
package tools

// Development tools (install via `go install`):
//
// mockgen - Regenerates internal/mocks from the ports interfaces
//   Install: go install go.uber.org/mock/mockgen@v0.6.0
//   Usage: go generate ./internal/mocks
//
// goose - Creates new SQL migrations under internal/migrate/migrations
//   Install: go install github.com/pressly/goose/v3/cmd/goose@v3.25.0
//   Usage: goose -dir internal/migrate/migrations create add_users_column sql
//   Applying migrations is done by `authapi migrate up`.
