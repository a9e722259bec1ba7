package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTaskMessage(t *testing.T) {
	msg, err := buildTaskMessage(" generate_chapter ",
		[]string{"3f1c1f9e-2c55-4f51-9a3e-9e0b1b0f6a11", "42", "plain text"},
		[]string{"force=true", "note=hello=world"},
		[]string{"entity_type=chapter", "progress_field=generation_in_progress"},
	)
	require.NoError(t, err)

	assert.Equal(t, "generate_chapter", msg.TaskName)
	assert.NotEmpty(t, msg.TaskID)
	assert.Equal(t, []any{"3f1c1f9e-2c55-4f51-9a3e-9e0b1b0f6a11", float64(42), "plain text"}, msg.Args)
	assert.Equal(t, map[string]any{"force": true, "note": "hello=world"}, msg.Kwargs)
	assert.Equal(t, map[string]string{"entity_type": "chapter", "progress_field": "generation_in_progress"}, msg.Labels)
	assert.NoError(t, msg.Validate())
}

func TestBuildTaskMessage_Errors(t *testing.T) {
	_, err := buildTaskMessage("", nil, nil, nil)
	assert.Error(t, err)

	_, err = buildTaskMessage("t", nil, []string{"novalue"}, nil)
	assert.ErrorContains(t, err, "kwarg")

	_, err = buildTaskMessage("t", nil, nil, []string{"=v"})
	assert.ErrorContains(t, err, "label")
}

func TestNewAppCommands(t *testing.T) {
	app := newApp(&appState{})

	names := make([]string, 0, len(app.Commands))
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"serve", "worker", "migrate", "enqueue"}, names)

	migrate := app.Command("migrate")
	require.NotNil(t, migrate)
	sub := make([]string, 0, len(migrate.Subcommands))
	for _, c := range migrate.Subcommands {
		sub = append(sub, c.Name)
	}
	assert.Equal(t, []string{"up", "down", "status"}, sub)
}
