package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

func (m *Manager) validate(cfg *Config) error {
	if cfg.App.Username == "" {
		return errors.New("app.username is required")
	}
	if cfg.App.Channel == "" {
		return errors.New("app.channel is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}

	switch cfg.App.Transport {
	case "", "tcp", "ws":
	default:
		return fmt.Errorf("app.transport must be tcp or ws, got %q", cfg.App.Transport)
	}

	if cfg.App.CommandPrefix != "" && utf8.RuneCountInString(cfg.App.CommandPrefix) != 1 {
		return fmt.Errorf("app.command_prefix must be a single character, got %q", cfg.App.CommandPrefix)
	}
	if cfg.App.SendDelaySeconds < 0 {
		return errors.New("app.send_delay_seconds must not be negative")
	}

	return nil
}
