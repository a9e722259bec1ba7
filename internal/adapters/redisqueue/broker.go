// Package redisqueue implements the task broker and result backend on Redis lists and keys.
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

var _ ports.TaskBroker = (*Broker)(nil)

// Broker pushes task messages onto the head of a Redis list and pops them from the tail.
type Broker struct {
	client redis.UniversalClient
	queue  string
}

// NewBroker returns a Broker bound to the named list.
func NewBroker(client redis.UniversalClient, queue string) (*Broker, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if queue == "" {
		return nil, errors.New("queue name is required")
	}
	return &Broker{client: client, queue: queue}, nil
}

// Queue returns the list key.
func (b *Broker) Queue() string { return b.queue }

// Enqueue validates and publishes msg.
func (b *Broker) Enqueue(ctx context.Context, msg *model.TaskMessage) error {
	if msg == nil {
		return errors.New("task message is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode task %s: %w", msg.TaskID, err)
	}
	if err := b.client.LPush(ctx, b.queue, payload).Err(); err != nil {
		return fmt.Errorf("redis lpush %s: %w", b.queue, err)
	}
	return nil
}

// Dequeue blocks up to wait for the next message. ports.ErrNoTask is returned
// when the wait elapses with an empty queue.
func (b *Broker) Dequeue(ctx context.Context, wait time.Duration) (*model.TaskMessage, error) {
	res, err := b.client.BRPop(ctx, wait, b.queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrNoTask
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("redis brpop %s: %w", b.queue, err)
	}
	// BRPOP replies with [key, value].
	if len(res) != 2 {
		return nil, fmt.Errorf("redis brpop %s: unexpected reply length %d", b.queue, len(res))
	}

	var msg model.TaskMessage
	if err := json.Unmarshal([]byte(res[1]), &msg); err != nil {
		return nil, fmt.Errorf("decode task message: %w", err)
	}
	return &msg, nil
}
