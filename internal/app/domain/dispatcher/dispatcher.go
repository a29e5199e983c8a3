package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chat4g/internal/app/adapters/metrics"
	"chat4g/internal/app/domain"
	"chat4g/internal/app/domain/parser"
	"chat4g/internal/app/domain/participant"
	"chat4g/internal/app/infrastructure/storage"
	"chat4g/internal/app/ports"
	"chat4g/pkg/logger"
)

// Dispatcher routes parsed events to their handlers. Lines of one receive
// batch run concurrently; HandleBatch returns only after all of them finish,
// so the transport never reads ahead of an unfinished batch.
type Dispatcher struct {
	log      logger.Logger
	chat     ports.ChatPort
	repo     ports.RepositoryPort
	registry ports.RegistryPort
	commands ports.CommandsPort
	state    ports.StatePort
	template ports.TemplatePort
	streamer *participant.Streamer
	botUser  string

	knownUsers     *storage.Cache[time.Time]
	channelViewers *storage.Cache[time.Time]
}

func New(log logger.Logger, chat ports.ChatPort, repo ports.RepositoryPort,
	registry ports.RegistryPort, commands ports.CommandsPort, state ports.StatePort,
	template ports.TemplatePort, streamer *participant.Streamer, botUser string,
	knownUsers, channelViewers *storage.Cache[time.Time]) *Dispatcher {
	return &Dispatcher{
		log:            log,
		chat:           chat,
		repo:           repo,
		registry:       registry,
		commands:       commands,
		state:          state,
		template:       template,
		streamer:       streamer,
		botUser:        botUser,
		knownUsers:     knownUsers,
		channelViewers: channelViewers,
	}
}

func (d *Dispatcher) HandleBatch(lines []string) {
	var wg sync.WaitGroup
	for _, line := range lines {
		if line == "" {
			continue
		}

		wg.Add(1)
		go func(line string) {
			defer wg.Done()
			d.handleLine(line)
		}(line)
	}
	wg.Wait()
}

func (d *Dispatcher) handleLine(line string) {
	ev := parser.Parse(line, d.streamer.Prefix())
	if ev == nil {
		return
	}

	d.log.Trace("Line received", slog.String("line", line))
	metrics.LinesProcessed.WithLabelValues(ev.IRCCommand).Inc()

	ctx := context.Background()
	switch ev.IRCCommand {
	case "PING":
		d.chat.SendRaw("PONG :tmi.twitch.tv")
	case "JOIN":
		d.handleJoin(ctx, ev)
	case "PART":
		d.handlePart(ev)
	case "PRIVMSG":
		d.handlePrivmsg(ctx, ev)
	}
}

func (d *Dispatcher) handleJoin(ctx context.Context, ev *domain.Event) {
	if ev.User == ev.Channel || ev.User == d.botUser {
		return
	}

	if !d.knownUsers.Has(ev.User) {
		// first sighting ever: identity creation plus watches relation
		if err := d.repo.CreateWatches(ctx, ev.User, ev.Channel, true); err != nil {
			d.log.Error("Creating person with watches relation failed", err, slog.String("username", ev.User))
			return
		}
		if err := d.repo.CreateWatches(ctx, ev.User, ev.Channel, false); err != nil {
			d.log.Error("Creating watches relation failed", err, slog.String("username", ev.User))
			return
		}
		d.knownUsers.Set(ev.User, time.Now())

		d.chat.Say(ev.Channel, fmt.Sprintf(
			"Welcome to the stream, %s! I am a bot. If you would like help with my features, please use %shelp. If you would like me to forget your username, please use %soptout.",
			ev.User, d.streamer.Prefix(), d.streamer.Prefix()))
	}

	if !d.channelViewers.Has(ev.User) {
		// known from an earlier session but not yet a viewer of this channel
		if err := d.repo.CreateWatches(ctx, ev.User, ev.Channel, false); err != nil {
			d.log.Error("Creating watches relation failed", err, slog.String("username", ev.User))
			return
		}
		d.channelViewers.Set(ev.User, time.Now())
	} else {
		d.chat.Say(ev.Channel, fmt.Sprintf("Welcome back, %s! I'm so glad to see you again!", ev.User))
	}

	if v, ok := d.registry.Lookup(ev.User); ok {
		if !v.Online() {
			v.ToggleOnline()
		}
	} else {
		d.registry.GetOrCreate(ctx, ev.User, ev.Channel)
	}
	metrics.RegistrySize.Set(float64(d.registry.Len()))
}

func (d *Dispatcher) handlePart(ev *domain.Event) {
	if v, ok := d.registry.Lookup(ev.User); ok && v.Online() {
		v.ToggleOnline()
	}
	d.chat.Say(ev.Channel, fmt.Sprintf("%s has died. F.", ev.User))
}

func (d *Dispatcher) handlePrivmsg(ctx context.Context, ev *domain.Event) {
	if ev.TextCommand == "" {
		return
	}

	if reg, ok := d.commands.Lookup(ev.TextCommand); ok {
		d.runCommand(ctx, reg, ev)
		return
	}

	if tmpl, ok := d.state.TemplateCommand(ev.TextCommand); ok {
		d.runTemplate(tmpl, ev)
	}
}

func (d *Dispatcher) runCommand(ctx context.Context, reg *ports.Registration, ev *domain.Event) {
	if reg.OwnerOnly && ev.User != d.streamer.Username() {
		d.chat.Say(ev.Channel, fmt.Sprintf("I'm sorry, %s, but you must be %s to use this command.", ev.User, ev.Channel))
		return
	}

	if reg.Query {
		if err := d.repo.IncrementQueryCount(ctx, ev.User); err != nil {
			d.log.Error("Query count increment failed", err, slog.String("username", ev.User))
		} else if ev.User == d.streamer.Username() {
			d.streamer.BumpQueryCount()
		} else if v, ok := d.registry.Lookup(ev.User); ok {
			v.BumpQueryCount()
		}
	}

	metrics.CommandRuns.WithLabelValues(reg.Name).Inc()
	start := time.Now()
	answer := d.safeInvoke(ctx, reg, ev)
	metrics.HandlerDuration.Observe(time.Since(start).Seconds())

	if answer == nil {
		return
	}
	for _, line := range answer.Text {
		d.chat.Say(ev.Channel, line)
	}
}

// safeInvoke runs the handler with a recover guard. One bad command degrades
// to an error line in chat, never a crash.
func (d *Dispatcher) safeInvoke(ctx context.Context, reg *ports.Registration, ev *domain.Event) (answer *ports.Answer) {
	defer func() {
		if r := recover(); r != nil {
			metrics.HandlerPanics.Inc()
			d.log.Error("Handler panicked", fmt.Errorf("%v", r),
				slog.String("command", reg.Name), slog.String("user", ev.User))
			answer = ports.Reply("%s failed. Please check syntax and try again.", ev.TextCommand)
		}
	}()

	return reg.Handler(ctx, ev)
}

func (d *Dispatcher) runTemplate(tmpl string, ev *domain.Event) {
	metrics.TemplateRenders.Inc()

	text, err := d.template.Render(tmpl, ev)
	if err != nil {
		d.log.Error("Template render failed", err,
			slog.String("command", ev.TextCommand), slog.String("user", ev.User))
		if len(ev.TextArgs) == 0 {
			d.chat.Say(ev.Channel, fmt.Sprintf("%s requires at least one argument. Please try again.", ev.TextCommand))
		} else {
			d.chat.Say(ev.Channel, fmt.Sprintf("%s failed. Please check syntax and try again.", ev.TextCommand))
		}
		return
	}

	d.chat.Say(ev.Channel, text)
}
