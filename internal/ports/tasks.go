package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/target/mmk-auth-api/internal/domain/model"
)

var (
	// ErrNoTask is returned by Dequeue when the wait elapses with an empty queue.
	ErrNoTask = errors.New("no task available")
	// ErrResultNotFound is returned when a result has expired or was never stored.
	ErrResultNotFound = errors.New("task result not found")
)

// TaskBroker moves task messages between producers and workers.
type TaskBroker interface {
	Enqueue(ctx context.Context, msg *model.TaskMessage) error
	Dequeue(ctx context.Context, wait time.Duration) (*model.TaskMessage, error)
}

// ResultBackend stores the outcome of finished tasks.
type ResultBackend interface {
	SetResult(ctx context.Context, res *model.TaskResult) error
	GetResult(ctx context.Context, taskID string) (*model.TaskResult, error)
}

// ProgressUpdater sets a boolean progress field on one kind of entity.
type ProgressUpdater interface {
	SetFlag(ctx context.Context, id uuid.UUID, field string, value bool) error
}

// TaskMiddleware observes task execution. PreExecute runs before the handler;
// exactly one of PostExecute (success) or OnError (failure) runs after it.
// Implementations must not fail the task: errors are theirs to log.
type TaskMiddleware interface {
	PreExecute(ctx context.Context, msg *model.TaskMessage)
	PostExecute(ctx context.Context, msg *model.TaskMessage, res *model.TaskResult)
	OnError(ctx context.Context, msg *model.TaskMessage, res *model.TaskResult, err error)
}
