package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/target/mmk-auth-api/internal/adapters/redisqueue"
	"github.com/target/mmk-auth-api/internal/bootstrap"
	"github.com/target/mmk-auth-api/internal/domain/model"
	"github.com/urfave/cli/v2"
)

func enqueueCmd(st *appState) *cli.Command {
	return &cli.Command{
		Name:      "enqueue",
		Usage:     "Push a task message onto the queue",
		ArgsUsage: "<task>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "label", Aliases: []string{"l"}, Usage: "task label as key=value (repeatable)"},
			&cli.StringSliceFlag{Name: "arg", Aliases: []string{"a"}, Usage: "positional argument; JSON literals are decoded (repeatable)"},
			&cli.StringSliceFlag{Name: "kwarg", Aliases: []string{"k"}, Usage: "keyword argument as key=value (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			msg, err := buildTaskMessage(c.Args().First(), c.StringSlice("arg"), c.StringSlice("kwarg"), c.StringSlice("label"))
			if err != nil {
				return err
			}

			client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{RedisConfig: st.cfg.Redis, Logger: st.logger})
			if err != nil {
				return fmt.Errorf("connect redis: %w", err)
			}
			defer func() { _ = client.Close() }()

			broker, err := redisqueue.NewBroker(client, st.cfg.Redis.QueueName)
			if err != nil {
				return err
			}
			if err := broker.Enqueue(c.Context, msg); err != nil {
				return err
			}

			st.logger.InfoContext(c.Context, "task enqueued", "task_id", msg.TaskID, "task_name", msg.TaskName, "queue", broker.Queue())
			_, err = fmt.Fprintln(c.App.Writer, msg.TaskID)
			return err
		},
	}
}

func buildTaskMessage(name string, rawArgs, rawKwargs, rawLabels []string) (*model.TaskMessage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("task name is required")
	}

	args := make([]any, 0, len(rawArgs))
	for _, a := range rawArgs {
		args = append(args, parseValue(a))
	}

	kwargs := make(map[string]any, len(rawKwargs))
	for _, kv := range rawKwargs {
		k, v, err := splitPair(kv)
		if err != nil {
			return nil, fmt.Errorf("kwarg: %w", err)
		}
		kwargs[k] = parseValue(v)
	}

	labels := make(map[string]string, len(rawLabels))
	for _, kv := range rawLabels {
		k, v, err := splitPair(kv)
		if err != nil {
			return nil, fmt.Errorf("label: %w", err)
		}
		labels[k] = v
	}

	return model.NewTaskMessage(name, args, kwargs, labels), nil
}

func splitPair(kv string) (string, string, error) {
	k, v, ok := strings.Cut(kv, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", kv)
	}
	return k, v, nil
}

// parseValue decodes JSON literals (numbers, booleans, objects) and keeps
// anything else as a plain string.
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v
	}
	return s
}
