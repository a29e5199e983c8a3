package state_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat4g/internal/app/infrastructure/state"
	"chat4g/pkg/logger"
)

func TestNewCreatesDefaultSchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bobstream.json")
	m, err := state.New(logger.NewNop(), path)
	require.NoError(t, err)

	tmpl, ok := m.TemplateCommand("boop")
	require.True(t, ok)
	assert.Contains(t, tmpl, "{user}")

	// the full default schema must be on disk
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Contains(t, onDisk, "template_commands")
	assert.Contains(t, onDisk, "reminders")
}

func TestBackfillMissingKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bobstream.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"template_commands":{"hi":"hello {user}"}}`), 0644))

	m, err := state.New(logger.NewNop(), path)
	require.NoError(t, err)

	// existing key kept, missing reminders backfilled
	tmpl, ok := m.TemplateCommand("hi")
	require.True(t, ok)
	assert.Equal(t, "hello {user}", tmpl)
	assert.NotNil(t, m.Reminders())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Contains(t, onDisk, "reminders")
}

func TestBackfillLeavesEmptyMapsAlone(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bobstream.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"template_commands":{},"reminders":{}}`), 0644))

	before, err := os.Stat(path)
	require.NoError(t, err)

	m, err := state.New(logger.NewNop(), path)
	require.NoError(t, err)
	assert.Empty(t, m.TemplateCommands())

	// a complete schema must not be rewritten
	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
	assert.Equal(t, before.Size(), after.Size())
}

func TestSetAndDelete(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bobstream.json")
	m, err := state.New(logger.NewNop(), path)
	require.NoError(t, err)

	require.NoError(t, m.SetTemplateCommand("hug", "{user} hugs {0}!"))

	// reload sees the persisted command
	reloaded, err := state.New(logger.NewNop(), path)
	require.NoError(t, err)
	tmpl, ok := reloaded.TemplateCommand("hug")
	require.True(t, ok)
	assert.Equal(t, "{user} hugs {0}!", tmpl)

	require.NoError(t, m.DeleteTemplateCommands([]string{"hug", "boop"}))
	_, ok = m.TemplateCommand("hug")
	assert.False(t, ok)
	_, ok = m.TemplateCommand("boop")
	assert.False(t, ok)
}

func TestDeleteAllOrNothing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bobstream.json")
	m, err := state.New(logger.NewNop(), path)
	require.NoError(t, err)

	err = m.DeleteTemplateCommands([]string{"boop", "no_such_command"})
	require.Error(t, err)

	// the known half of the batch must survive
	_, ok := m.TemplateCommand("boop")
	assert.True(t, ok)
}
