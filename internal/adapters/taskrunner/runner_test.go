package taskrunner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-auth-api/internal/domain/model"
	"github.com/target/mmk-auth-api/internal/mocks"
	"github.com/target/mmk-auth-api/internal/ports"
	"go.uber.org/mock/gomock"
)

func newTestRunner(t *testing.T, opts RunnerOptions) *Runner {
	t.Helper()
	if opts.Broker == nil {
		opts.Broker = mocks.NewMockTaskBroker(gomock.NewController(t))
	}
	r, err := NewRunner(opts)
	require.NoError(t, err)
	return r
}

func TestNewRunner_RequiresBroker(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	assert.Error(t, err)
}

func TestProcess_SuccessRunsPreThenPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	mw := mocks.NewMockTaskMiddleware(ctrl)
	results := mocks.NewMockResultBackend(ctrl)

	r := newTestRunner(t, RunnerOptions{Results: results, Middlewares: []ports.TaskMiddleware{mw}})
	r.Register("add", func(_ context.Context, msg *model.TaskMessage) (any, error) {
		return map[string]int{"sum": 3}, nil
	})
	msg := model.NewTaskMessage("add", []any{1, 2}, nil, nil)

	gomock.InOrder(
		mw.EXPECT().PreExecute(gomock.Any(), msg),
		mw.EXPECT().PostExecute(gomock.Any(), msg, gomock.Any()),
		results.EXPECT().SetResult(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, res *model.TaskResult) error {
				assert.Equal(t, msg.TaskID, res.TaskID)
				assert.False(t, res.IsErr)
				assert.JSONEq(t, `{"sum":3}`, string(res.ReturnValue))
				return nil
			}),
	)

	res := r.Process(context.Background(), msg)
	assert.False(t, res.IsErr)
}

func TestProcess_FailureRunsOnErrorOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	mw := mocks.NewMockTaskMiddleware(ctrl)
	boom := errors.New("boom")

	r := newTestRunner(t, RunnerOptions{Middlewares: []ports.TaskMiddleware{mw}})
	r.Register("fail", func(context.Context, *model.TaskMessage) (any, error) { return nil, boom })
	msg := model.NewTaskMessage("fail", nil, nil, nil)

	gomock.InOrder(
		mw.EXPECT().PreExecute(gomock.Any(), msg),
		mw.EXPECT().OnError(gomock.Any(), msg, gomock.Any(), boom),
	)

	res := r.Process(context.Background(), msg)
	assert.True(t, res.IsErr)
	assert.Equal(t, "boom", res.Error)
}

func TestProcess_MiddlewareOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockTaskMiddleware(ctrl)
	second := mocks.NewMockTaskMiddleware(ctrl)

	r := newTestRunner(t, RunnerOptions{Middlewares: []ports.TaskMiddleware{first, second}})
	msg := model.NewTaskMessage(TestTaskName, nil, nil, nil)

	gomock.InOrder(
		first.EXPECT().PreExecute(gomock.Any(), msg),
		second.EXPECT().PreExecute(gomock.Any(), msg),
		first.EXPECT().PostExecute(gomock.Any(), msg, gomock.Any()),
		second.EXPECT().PostExecute(gomock.Any(), msg, gomock.Any()),
	)

	r.Process(context.Background(), msg)
}

func TestProcess_UnknownTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	mw := mocks.NewMockTaskMiddleware(ctrl)

	r := newTestRunner(t, RunnerOptions{Middlewares: []ports.TaskMiddleware{mw}})
	msg := model.NewTaskMessage("nope", nil, nil, nil)

	mw.EXPECT().PreExecute(gomock.Any(), msg)
	mw.EXPECT().OnError(gomock.Any(), msg, gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, _ *model.TaskMessage, _ *model.TaskResult, err error) {
			assert.ErrorIs(t, err, ErrUnknownTask)
		})

	res := r.Process(context.Background(), msg)
	assert.True(t, res.IsErr)
}

func TestProcess_Timeout(t *testing.T) {
	r := newTestRunner(t, RunnerOptions{TaskTimeout: 20 * time.Millisecond})
	r.Register("slow", func(ctx context.Context, _ *model.TaskMessage) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	res := r.Process(context.Background(), model.NewTaskMessage("slow", nil, nil, nil))
	assert.True(t, res.IsErr)
	assert.Contains(t, res.Error, "deadline exceeded")
}

func TestProcess_PanicBecomesFailure(t *testing.T) {
	r := newTestRunner(t, RunnerOptions{})
	r.Register("panics", func(context.Context, *model.TaskMessage) (any, error) { panic("kaboom") })

	res := r.Process(context.Background(), model.NewTaskMessage("panics", nil, nil, nil))
	assert.True(t, res.IsErr)
	assert.Contains(t, res.Error, "kaboom")
}

func TestProcess_ResultStoreErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	results := mocks.NewMockResultBackend(ctrl)
	results.EXPECT().SetResult(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	r := newTestRunner(t, RunnerOptions{Results: results})
	res := r.Process(context.Background(), model.NewTaskMessage(TestTaskName, nil, nil, nil))
	assert.False(t, res.IsErr)
}

func TestRun_ConsumesUntilCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	broker := mocks.NewMockTaskBroker(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := model.NewTaskMessage("count", nil, nil, nil)
	done := make(chan struct{})

	broker.EXPECT().Dequeue(gomock.Any(), gomock.Any()).Return(msg, nil)
	broker.EXPECT().Dequeue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ time.Duration) (*model.TaskMessage, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).AnyTimes()

	r := newTestRunner(t, RunnerOptions{Broker: broker, PollTimeout: 10 * time.Millisecond})
	r.Register("count", func(context.Context, *model.TaskMessage) (any, error) {
		close(done)
		return nil, nil
	})

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not processed")
	}
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRun_EmptyQueueKeepsPolling(t *testing.T) {
	ctrl := gomock.NewController(t)
	broker := mocks.NewMockTaskBroker(ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	broker.EXPECT().Dequeue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, time.Duration) (*model.TaskMessage, error) {
			calls++
			if calls == 3 {
				cancel()
			}
			return nil, ports.ErrNoTask
		}).MinTimes(3)

	r := newTestRunner(t, RunnerOptions{Broker: broker})
	require.NoError(t, r.Run(ctx))
	assert.GreaterOrEqual(t, calls, 3)
}
