package commands

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"chat4g/internal/app/domain"
	"chat4g/internal/app/domain/game"
	"chat4g/internal/app/domain/participant"
	"chat4g/internal/app/ports"
	"chat4g/pkg/logger"
)

// Commands is the static table of built-in commands. The table is filled once
// at construction and never mutated, so lookups need no locking.
//
// Help texts may contain a {prefix} placeholder; it renders as the streamer's
// current command prefix, which can change at runtime.
type Commands struct {
	log      logger.Logger
	repo     ports.RepositoryPort
	registry ports.RegistryPort
	streamer *participant.Streamer
	state    ports.StatePort
	gamble   *game.Gamble
	dataDir  string

	table map[string]*ports.Registration
}

func New(log logger.Logger, repo ports.RepositoryPort, registry ports.RegistryPort,
	streamer *participant.Streamer, state ports.StatePort, gamble *game.Gamble, dataDir string) *Commands {
	c := &Commands{
		log:      log,
		repo:     repo,
		registry: registry,
		streamer: streamer,
		state:    state,
		gamble:   gamble,
		dataDir:  dataDir,
		table:    make(map[string]*ports.Registration),
	}

	c.registerBuiltin()
	c.registerSocial()
	c.registerPoints()
	c.registerGames()

	return c
}

func (c *Commands) Lookup(name string) (*ports.Registration, bool) {
	reg, ok := c.table[name]
	return reg, ok
}

func (c *Commands) Names() []string {
	names := make([]string, 0, len(c.table))
	for name := range c.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Commands) register(reg *ports.Registration) {
	c.table[reg.Name] = reg
}

func (c *Commands) isOwner(ev *domain.Event) bool {
	return ev.User == c.streamer.Username()
}

// resolve maps a username onto its participant aggregate. The streamer is
// always resolvable; viewers only once the registry has seen them.
func (c *Commands) resolve(username string) (participant.Participant, bool) {
	if username == c.streamer.Username() {
		return c.streamer, true
	}
	if v, ok := c.registry.Lookup(username); ok {
		return v, true
	}
	return nil, false
}

// fail logs a store or handler failure and answers the generic failure line.
// Store failures are terminal for the single invocation, never retried.
func (c *Commands) fail(ev *domain.Event, err error) *ports.Answer {
	c.log.Error("Command failed", err,
		slog.String("command", ev.TextCommand),
		slog.String("user", ev.User))
	return ports.Reply("%s failed. Please check syntax and try again.", ev.TextCommand)
}

func errNotHydrated(username string) error {
	return fmt.Errorf("cached stats for %s were never fetched", username)
}

func (c *Commands) renderHelp(help string) string {
	return strings.ReplaceAll(help, "{prefix}", c.streamer.Prefix())
}
