package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chat4g/pkg/logger"
)

// Schema is the persisted per-streamer configuration. Keys mirror the fixed
// default schema; a loaded file missing any of them is backfilled and
// rewritten once.
type Schema struct {
	TemplateCommands map[string]string `json:"template_commands"`
	Reminders        map[string]string `json:"reminders"`
}

func defaultSchema() Schema {
	return Schema{
		TemplateCommands: map[string]string{
			"boop":    "{user} boops {0}'s snoot!",
			"so":      "Check out {0}'s stream! Here's a link: https://www.twitch.tv/{0}",
			"pizza":   "{user} will be getting a pizza in the mail in a few years.",
			"headpat": "{user} gives {0} headpats!",
		},
		Reminders: map[string]string{},
	}
}

// Manager owns states/<streamer>.json. All mutations hold the lock across
// the in-memory change and the rewrite, so concurrent handlers from one batch
// cannot interleave a torn file.
type Manager struct {
	log  logger.Logger
	path string

	mu    sync.RWMutex
	state Schema
}

// New loads the state file, creating it from the default schema when absent.
// Missing keys relative to the default schema trigger exactly one rewrite.
func New(log logger.Logger, path string) (*Manager, error) {
	m := &Manager{log: log, path: path}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		m.state = defaultSchema()
		if err := m.saveLocked(); err != nil {
			return nil, fmt.Errorf("create state: %w", err)
		}
		log.Info("State file created", slog.String("path", path))
		return m, nil
	case err != nil:
		return nil, fmt.Errorf("read state: %w", err)
	}

	if err := json.Unmarshal(raw, &m.state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	if m.ensureSchema() {
		log.Warn("State schema incomplete, backfilling", slog.String("path", path))
		if err := m.saveLocked(); err != nil {
			return nil, fmt.Errorf("rewrite state: %w", err)
		}
	}

	return m, nil
}

// ensureSchema backfills keys absent from the loaded file. A present-but-empty
// map unmarshals non-nil and is left alone.
func (m *Manager) ensureSchema() bool {
	defaults := defaultSchema()
	dirty := false

	if m.state.TemplateCommands == nil {
		m.state.TemplateCommands = defaults.TemplateCommands
		dirty = true
	}
	if m.state.Reminders == nil {
		m.state.Reminders = defaults.Reminders
		dirty = true
	}

	return dirty
}

func (m *Manager) TemplateCommand(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tmpl, ok := m.state.TemplateCommands[name]
	return tmpl, ok
}

func (m *Manager) TemplateCommands() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.state.TemplateCommands))
	for k, v := range m.state.TemplateCommands {
		out[k] = v
	}
	return out
}

func (m *Manager) SetTemplateCommand(name, tmpl string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.TemplateCommands[name] = tmpl
	return m.saveLocked()
}

// DeleteTemplateCommands removes every named command or nothing at all.
func (m *Manager) DeleteTemplateCommands(names []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range names {
		if _, ok := m.state.TemplateCommands[name]; !ok {
			return fmt.Errorf("no template command named %q", name)
		}
	}

	for _, name := range names {
		delete(m.state.TemplateCommands, name)
	}
	return m.saveLocked()
}

func (m *Manager) Reminders() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.state.Reminders))
	for k, v := range m.state.Reminders {
		out[k] = v
	}
	return out
}

// saveLocked persists the whole object: write to a temp file, then replace.
func (m *Manager) saveLocked() error {
	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", filepath.Base(m.path), time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp, m.path)
}
