// Package taskrunner consumes task messages from a broker and executes registered handlers.
package taskrunner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/target/mmk-auth-api/internal/domain/model"
	obserrors "github.com/target/mmk-auth-api/internal/observability/errors"
	"github.com/target/mmk-auth-api/internal/ports"
	"golang.org/x/sync/errgroup"
)

// HandlerFunc executes a task and returns a JSON-encodable value.
type HandlerFunc func(ctx context.Context, msg *model.TaskMessage) (any, error)

// ErrUnknownTask is recorded for messages whose name has no registered handler.
var ErrUnknownTask = errors.New("no handler registered for task")

const (
	defaultPollTimeout = 5 * time.Second
	defaultTaskTimeout = 30 * time.Minute
	// brokerErrorBackoff bounds the retry rate while the broker is unreachable.
	brokerErrorBackoff = time.Second
)

// RunnerOptions configures the task runner.
type RunnerOptions struct {
	Broker  ports.TaskBroker
	Results ports.ResultBackend // optional
	Logger  *slog.Logger

	Concurrency int           // number of worker goroutines; defaults to 1
	PollTimeout time.Duration // per-dequeue wait; defaults to 5s
	TaskTimeout time.Duration // per-task deadline; defaults to 30m

	Middlewares []ports.TaskMiddleware

	// CaptureErrors reports task failures to Sentry. Requires sentry.Init.
	CaptureErrors bool
}

// Runner pulls task messages and executes them using registered handlers.
type Runner struct {
	broker      ports.TaskBroker
	results     ports.ResultBackend
	logger      *slog.Logger
	workers     int
	pollTimeout time.Duration
	taskTimeout time.Duration
	middlewares []ports.TaskMiddleware
	capture     bool

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRunner constructs a runner with the built-in handlers registered.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Broker == nil {
		return nil, errors.New("task broker is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Concurrency
	if workers <= 0 {
		workers = 1
	}
	poll := opts.PollTimeout
	if poll <= 0 {
		poll = defaultPollTimeout
	}
	timeout := opts.TaskTimeout
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}

	r := &Runner{
		broker:      opts.Broker,
		results:     opts.Results,
		logger:      logger.With("component", "task_runner"),
		workers:     workers,
		pollTimeout: poll,
		taskTimeout: timeout,
		middlewares: opts.Middlewares,
		capture:     opts.CaptureErrors,
		handlers:    make(map[string]HandlerFunc),
	}
	r.Register(TestTaskName, r.handleTestTask)
	return r, nil
}

// Register adds or replaces the handler for name.
func (r *Runner) Register(name string, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

func (r *Runner) handler(name string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Run starts worker goroutines and processes tasks until the context is cancelled.
// A cancelled context is a clean shutdown and returns nil.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting task runner", "workers", r.workers, "task_timeout", r.taskTimeout)

	g, gctx := errgroup.WithContext(ctx)
	for i := range r.workers {
		g.Go(func() error { return r.workerLoop(gctx, i) })
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	r.logger.InfoContext(ctx, "task runner stopped")
	return nil
}

func (r *Runner) workerLoop(ctx context.Context, worker int) error {
	for ctx.Err() == nil {
		msg, err := r.broker.Dequeue(ctx, r.pollTimeout)
		switch {
		case err == nil:
			r.Process(ctx, msg)
		case errors.Is(err, ports.ErrNoTask):
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			r.logger.ErrorContext(ctx, "dequeue failed", "worker", worker, "error", err)
			if !sleepCtx(ctx, brokerErrorBackoff) {
				return ctx.Err()
			}
		}
	}
	return ctx.Err()
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Process runs a single message through the middleware chain and its handler,
// then stores the result. It never returns an error: failures become results.
func (r *Runner) Process(ctx context.Context, msg *model.TaskMessage) *model.TaskResult {
	logger := r.logger.With("task_id", msg.TaskID, "task_name", msg.TaskName)

	for _, m := range r.middlewares {
		m.PreExecute(ctx, msg)
	}

	start := time.Now()
	value, err := r.execute(ctx, msg)
	res := &model.TaskResult{
		TaskID:        msg.TaskID,
		TaskName:      msg.TaskName,
		ExecutionTime: time.Since(start).Seconds(),
		FinishedAt:    time.Now().UTC(),
	}

	if err == nil {
		raw, encErr := encodeReturn(value)
		if encErr != nil {
			err = encErr
		} else {
			res.ReturnValue = raw
		}
	}

	if err != nil {
		res.IsErr = true
		res.Error = err.Error()
		logger.ErrorContext(ctx, "task failed", "error", err, "error_type", obserrors.Classify(err), "duration", res.ExecutionTime)
		r.captureError(msg, err)
		for _, m := range r.middlewares {
			m.OnError(ctx, msg, res, err)
		}
	} else {
		logger.InfoContext(ctx, "task completed", "duration", res.ExecutionTime)
		for _, m := range r.middlewares {
			m.PostExecute(ctx, msg, res)
		}
	}

	if r.results != nil {
		// The task context may already be done; results are stored regardless.
		storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if serr := r.results.SetResult(storeCtx, res); serr != nil {
			logger.ErrorContext(ctx, "store task result", "error", serr)
		}
	}
	return res
}

func (r *Runner) execute(ctx context.Context, msg *model.TaskMessage) (value any, err error) {
	h, ok := r.handler(msg.TaskName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, msg.TaskName)
	}

	ctx, cancel := context.WithTimeout(ctx, r.taskTimeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			r.logger.ErrorContext(ctx, "task panicked", "task_id", msg.TaskID, "panic", p, "stack", string(debug.Stack()))
			err = fmt.Errorf("task panicked: %v", p)
		}
	}()

	value, err = h(ctx, msg)
	if err == nil && ctx.Err() != nil {
		err = fmt.Errorf("task exceeded %s: %w", r.taskTimeout, ctx.Err())
	}
	return value, err
}

func encodeReturn(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode return value: %w", err)
	}
	return raw, nil
}

func (r *Runner) captureError(msg *model.TaskMessage, err error) {
	if !r.capture {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("task_name", msg.TaskName)
		scope.SetTag("task_id", msg.TaskID)
		scope.SetTag("error_type", obserrors.Classify(err))
		sentry.CaptureException(err)
	})
}
