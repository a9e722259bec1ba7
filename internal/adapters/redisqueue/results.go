package redisqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/mmk-auth-api/internal/domain/model"
	"github.com/target/mmk-auth-api/internal/ports"
)

var _ ports.ResultBackend = (*ResultStore)(nil)

// ResultStore keeps task results under "<prefix>:result:<task_id>" with a TTL.
type ResultStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewResultStore returns a ResultStore. A non-positive ttl keeps results forever.
func NewResultStore(client redis.UniversalClient, prefix string, ttl time.Duration) *ResultStore {
	if ttl < 0 {
		ttl = 0
	}
	return &ResultStore{client: client, prefix: prefix, ttl: ttl}
}

// ResultKey returns the key a task result is stored under.
func (s *ResultStore) ResultKey(taskID string) string {
	return s.prefix + ":result:" + taskID
}

// SetResult stores res, replacing any previous result for the task.
func (s *ResultStore) SetResult(ctx context.Context, res *model.TaskResult) error {
	if res == nil || res.TaskID == "" {
		return errors.New("task result with task id is required")
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result %s: %w", res.TaskID, err)
	}
	if err := s.client.Set(ctx, s.ResultKey(res.TaskID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set result %s: %w", res.TaskID, err)
	}
	return nil
}

// GetResult returns the stored result or ports.ErrResultNotFound.
func (s *ResultStore) GetResult(ctx context.Context, taskID string) (*model.TaskResult, error) {
	raw, err := s.client.Get(ctx, s.ResultKey(taskID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrResultNotFound
		}
		return nil, fmt.Errorf("redis get result %s: %w", taskID, err)
	}
	var res model.TaskResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", taskID, err)
	}
	return &res, nil
}
