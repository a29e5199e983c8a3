package ports

import (
	"context"

	"chat4g/internal/app/domain"
)

// Handler runs one built-in command against a parsed event and answers with
// zero or more chat lines. Handlers never return errors; failures are caught
// at the handler boundary and reported as chat lines.
type Handler func(ctx context.Context, ev *domain.Event) *Answer

// Registration is one entry of the static command table. Query marks usage
// counter commands; OwnerOnly marks commands the dispatcher refuses for
// anyone but the channel owner.
type Registration struct {
	Name      string
	Query     bool
	OwnerOnly bool
	Help      string
	Handler   Handler
}

// CommandsPort is the static command table.
type CommandsPort interface {
	Lookup(name string) (*Registration, bool)
	Names() []string
}

// TemplatePort renders a streamer-defined template against the triggering
// event. A referenced field missing from the event is a render failure.
type TemplatePort interface {
	Render(tmpl string, ev *domain.Event) (string, error)
}
