package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Label keys understood by the progress middleware.
const (
	LabelEntityType       = "entity_type"
	LabelEntityIDParam    = "entity_id_param"
	LabelProgressField    = "progress_field"
	LabelEntityIDArgIndex = "entity_id_arg_index"
)

// TaskMessage is the queued representation of a background task.
type TaskMessage struct {
	TaskID     string            `json:"task_id"`
	TaskName   string            `json:"task_name"`
	Args       []any             `json:"args"`
	Kwargs     map[string]any    `json:"kwargs"`
	Labels     map[string]string `json:"labels"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
}

// NewTaskMessage builds a message with a fresh id.
func NewTaskMessage(name string, args []any, kwargs map[string]any, labels map[string]string) *TaskMessage {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	if labels == nil {
		labels = map[string]string{}
	}
	return &TaskMessage{
		TaskID:     uuid.NewString(),
		TaskName:   name,
		Args:       args,
		Kwargs:     kwargs,
		Labels:     labels,
		EnqueuedAt: time.Now().UTC(),
	}
}

// Validate checks the fields required to route a message.
func (m *TaskMessage) Validate() error {
	if m == nil {
		return errors.New("task message is required")
	}
	if m.TaskID == "" {
		return errors.New("task_id is required")
	}
	if m.TaskName == "" {
		return errors.New("task_name is required")
	}
	return nil
}

// ProgressTarget identifies the entity flag a task toggles while it runs.
type ProgressTarget struct {
	EntityType    string
	EntityID      uuid.UUID
	EntityIDParam string
	Field         string
}

// ErrNoProgressLabels means the task did not opt in to progress tracking.
var ErrNoProgressLabels = errors.New("task has no entity_type label")

// ProgressTarget resolves the progress labels against the message arguments.
// The entity id comes from Args[entity_id_arg_index] (default 0) when positional
// arguments are present, otherwise from Kwargs[entity_id_param].
func (m *TaskMessage) ProgressTarget() (ProgressTarget, error) {
	entityType := m.Labels[LabelEntityType]
	if entityType == "" {
		return ProgressTarget{}, ErrNoProgressLabels
	}

	param := m.Labels[LabelEntityIDParam]
	field := m.Labels[LabelProgressField]
	if param == "" || field == "" {
		return ProgressTarget{}, fmt.Errorf("entity_type %q set but entity_id_param or progress_field missing", entityType)
	}

	raw, err := m.entityIDValue(param)
	if err != nil {
		return ProgressTarget{}, err
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return ProgressTarget{}, fmt.Errorf("invalid entity id %q: %w", raw, err)
	}

	return ProgressTarget{EntityType: entityType, EntityID: id, EntityIDParam: param, Field: field}, nil
}

func (m *TaskMessage) entityIDValue(param string) (string, error) {
	if len(m.Args) > 0 {
		idx := 0
		if v := m.Labels[LabelEntityIDArgIndex]; v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return "", fmt.Errorf("invalid entity_id_arg_index %q: %w", v, err)
			}
			idx = n
		}
		if idx < 0 || idx >= len(m.Args) {
			return "", fmt.Errorf("entity_id_arg_index %d out of range for %d args", idx, len(m.Args))
		}
		return stringArg(m.Args[idx])
	}

	v, ok := m.Kwargs[param]
	if !ok || v == nil {
		return "", fmt.Errorf("no entity id in args/kwargs for param %q", param)
	}
	return stringArg(v)
}

func stringArg(v any) (string, error) {
	switch s := v.(type) {
	case string:
		if s == "" {
			return "", errors.New("entity id is empty")
		}
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return "", fmt.Errorf("entity id has unsupported type %T", v)
	}
}

// TaskResult is stored in the result backend once a task finishes.
type TaskResult struct {
	TaskID        string          `json:"task_id"`
	TaskName      string          `json:"task_name"`
	IsErr         bool            `json:"is_err"`
	Error         string          `json:"error,omitempty"`
	ReturnValue   json.RawMessage `json:"return_value,omitempty"`
	ExecutionTime float64         `json:"execution_time"`
	FinishedAt    time.Time       `json:"finished_at"`
}
