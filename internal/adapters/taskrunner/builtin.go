package taskrunner

import (
	"context"

	"github.com/target/mmk-auth-api/internal/domain/model"
)

// TestTaskName is a no-op task used to check the worker end to end.
const TestTaskName = "test_task"

func (r *Runner) handleTestTask(ctx context.Context, msg *model.TaskMessage) (any, error) {
	r.logger.InfoContext(ctx, "test task", "task_id", msg.TaskID)
	return nil, nil
}
