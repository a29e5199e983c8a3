package commands

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"chat4g/internal/app/domain"
	"chat4g/internal/app/domain/game"
	"chat4g/internal/app/ports"
)

const (
	eightBallFile = "8ball.txt"
	jokesFile     = "jokes.txt"
)

func (c *Commands) registerGames() {
	c.register(&ports.Registration{
		Name:    "gamble",
		Help:    "Gambles the given number of points against the house. The best outcome doubles your wager. Syntax: {prefix}gamble <amount>",
		Handler: c.playGamble,
	})
	c.register(&ports.Registration{
		Name:    "8ball",
		Help:    "Takes a question and responds with a prediction, just like a magic 8 ball. Syntax: {prefix}8ball <question>",
		Handler: c.eightBall,
	})
	c.register(&ports.Registration{
		Name:    "joke",
		Help:    "Sends a random joke in the chat.",
		Handler: c.joke,
	})
	c.register(&ports.Registration{
		Name:      "addjoke",
		OwnerOnly: true,
		Help:      "Adds a joke to the list of jokes. Syntax: {prefix}addjoke <joke>",
		Handler:   c.addJoke,
	})
}

// playGamble wagers points on two rolls. The streamer always loses; everyone
// else is settled by the net of payout minus wager in one balance update.
func (c *Commands) playGamble(ctx context.Context, ev *domain.Event) *ports.Answer {
	if c.isOwner(ev) {
		return ports.Reply("%s has rolled 0. They lost all their %s. Laugh at them.",
			c.streamer.Username(), c.streamer.PointsName())
	}

	if len(ev.TextArgs) != 1 {
		return ports.Reply("This command requires one argument: the number of %s to wager.", c.streamer.PointsName())
	}
	wager, err := strconv.Atoi(ev.TextArgs[0])
	if err != nil || wager <= 0 {
		return ports.Reply("The wager must be a positive whole number.")
	}

	viewer, ok := c.registry.Lookup(ev.User)
	if !ok {
		return ports.Reply("I do not know you yet, %s. Join the stream first so I can remember you.", ev.User)
	}

	stats, hydrated := viewer.Stats()
	if !hydrated {
		return c.fail(ev, errNotHydrated(ev.User))
	}
	if stats.Points < wager {
		return ports.Reply("Sorry, %s, but you cannot wager more %s than you have.", ev.User, c.streamer.PointsName())
	}

	payout, house, player := c.gamble.Play(wager)
	if err := viewer.AdjustPoints(ctx, payout-wager); err != nil {
		return c.fail(ev, err)
	}

	return ports.Reply("%s rolled %d against the house's %d. They won %d %s and now have %d %s.",
		ev.User, player, house, payout, c.streamer.PointsName(),
		stats.Points+payout-wager, c.streamer.PointsName())
}

func (c *Commands) eightBall(_ context.Context, ev *domain.Event) *ports.Answer {
	answer, err := game.RandomLine(filepath.Join(c.dataDir, eightBallFile))
	if err != nil {
		return c.fail(ev, err)
	}
	return ports.Reply("@%s %s", ev.User, answer)
}

func (c *Commands) joke(_ context.Context, ev *domain.Event) *ports.Answer {
	line, err := game.RandomLine(filepath.Join(c.dataDir, jokesFile))
	if err != nil {
		return c.fail(ev, err)
	}
	return ports.Reply("%s", line)
}

func (c *Commands) addJoke(_ context.Context, ev *domain.Event) *ports.Answer {
	if len(ev.TextArgs) == 0 {
		return ports.Reply("This command requires the joke as its argument.")
	}

	joke := strings.Join(ev.TextArgs, " ")
	if err := game.AppendLine(filepath.Join(c.dataDir, jokesFile), joke); err != nil {
		return c.fail(ev, err)
	}
	return ports.Reply("Added joke: %s", joke)
}
