package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/target/mmk-auth-api/internal/domain/model"
	"github.com/target/mmk-auth-api/internal/ports"
)

var _ ports.TaskMiddleware = (*ProgressMiddleware)(nil)

// progressResetTimeout bounds the final flag reset, which runs even after the task context ends.
const progressResetTimeout = 10 * time.Second

// ProgressMiddlewareOptions groups dependencies for ProgressMiddleware.
type ProgressMiddlewareOptions struct {
	// Registry maps an entity_type label to the updater for that entity's table.
	// An empty registry turns progress tracking into a no-op.
	Registry map[string]ports.ProgressUpdater
	Logger   *slog.Logger // Optional
}

// ProgressMiddleware sets an entity's in-progress flag while a task runs on it.
// Flag updates are best effort: failures are logged and never change the task outcome.
type ProgressMiddleware struct {
	registry map[string]ports.ProgressUpdater
	logger   *slog.Logger
}

// NewProgressMiddleware constructs a new ProgressMiddleware.
func NewProgressMiddleware(opts ProgressMiddlewareOptions) *ProgressMiddleware {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := make(map[string]ports.ProgressUpdater, len(opts.Registry))
	for k, v := range opts.Registry {
		registry[k] = v
	}
	return &ProgressMiddleware{
		registry: registry,
		logger:   logger.With("component", "progress_middleware"),
	}
}

// PreExecute marks the entity in progress.
func (m *ProgressMiddleware) PreExecute(ctx context.Context, msg *model.TaskMessage) {
	m.setFlag(ctx, msg, true)
}

// PostExecute clears the flag after a successful run.
func (m *ProgressMiddleware) PostExecute(ctx context.Context, msg *model.TaskMessage, _ *model.TaskResult) {
	m.reset(ctx, msg)
}

// OnError clears the flag after a failed run, including timeouts.
func (m *ProgressMiddleware) OnError(ctx context.Context, msg *model.TaskMessage, _ *model.TaskResult, _ error) {
	m.reset(ctx, msg)
}

func (m *ProgressMiddleware) reset(ctx context.Context, msg *model.TaskMessage) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), progressResetTimeout)
	defer cancel()
	m.setFlag(ctx, msg, false)
}

func (m *ProgressMiddleware) setFlag(ctx context.Context, msg *model.TaskMessage, value bool) {
	logger := m.logger.With("task_id", msg.TaskID, "task_name", msg.TaskName)

	target, err := msg.ProgressTarget()
	if errors.Is(err, model.ErrNoProgressLabels) {
		logger.InfoContext(ctx, "task has no progress labels, skipping")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "cannot resolve progress target", "error", err)
		return
	}

	logger = logger.With(
		"entity_type", target.EntityType,
		"entity_id", target.EntityID.String(),
		"progress_field", target.Field,
	)

	updater, ok := m.registry[target.EntityType]
	if !ok {
		logger.ErrorContext(ctx, "unknown entity type, skipping progress update")
		return
	}

	if err := updater.SetFlag(ctx, target.EntityID, target.Field, value); err != nil {
		logger.ErrorContext(ctx, "progress update failed", "value", value, "error", err)
		return
	}
	logger.DebugContext(ctx, "progress updated", "value", value)
}
