package commands

import (
	"context"
	"strconv"

	"chat4g/internal/app/domain"
	"chat4g/internal/app/ports"
)

func (c *Commands) registerPoints() {
	c.register(&ports.Registration{
		Name:      "addpoints",
		OwnerOnly: true,
		Help:      "Adds points to a viewer. Syntax: {prefix}addpoints <viewer> <amount>",
		Handler:   c.addPoints,
	})
	c.register(&ports.Registration{
		Name:      "removepoints",
		OwnerOnly: true,
		Help:      "Removes points from a viewer. Syntax: {prefix}removepoints <viewer> <amount>",
		Handler:   c.removePoints,
	})
	c.register(&ports.Registration{
		Name:    "donate",
		Help:    "Gives some of your points to another viewer. You cannot give more than you have, and they are gone for good. Syntax: {prefix}donate <viewer> <amount>",
		Handler: c.donate,
	})
}

// parseGrant validates the shared <viewer> <amount> shape of the grant and
// revoke commands.
func (c *Commands) parseGrant(ev *domain.Event) (target string, amount int, answer *ports.Answer) {
	if len(ev.TextArgs) != 2 {
		return "", 0, ports.Reply("This command requires 2 arguments: the viewer, and the amount.")
	}

	amount, err := strconv.Atoi(ev.TextArgs[1])
	if err != nil {
		return "", 0, ports.Reply("The amount must be a whole number.")
	}
	return ev.TextArgs[0], amount, nil
}

func (c *Commands) addPoints(ctx context.Context, ev *domain.Event) *ports.Answer {
	target, amount, answer := c.parseGrant(ev)
	if answer != nil {
		return answer
	}

	viewer, ok := c.registry.Lookup(target)
	if !ok {
		return ports.Reply("I do not know %s. They may have opted out, or I have not seen them yet.", target)
	}

	if err := viewer.AdjustPoints(ctx, amount); err != nil {
		return c.fail(ev, err)
	}
	return ports.Reply("Gave %d %s to %s.", amount, c.streamer.PointsName(), target)
}

func (c *Commands) removePoints(ctx context.Context, ev *domain.Event) *ports.Answer {
	target, amount, answer := c.parseGrant(ev)
	if answer != nil {
		return answer
	}

	viewer, ok := c.registry.Lookup(target)
	if !ok {
		return ports.Reply("I do not know %s. They may have opted out, or I have not seen them yet.", target)
	}

	if err := viewer.AdjustPoints(ctx, -amount); err != nil {
		return c.fail(ev, err)
	}
	return ports.Reply("Removed %d %s from %s.", amount, c.streamer.PointsName(), target)
}

// donate moves points between viewers. The balance check runs before either
// write, so a refused transfer changes nothing on either side.
func (c *Commands) donate(ctx context.Context, ev *domain.Event) *ports.Answer {
	if c.isOwner(ev) {
		return ports.Reply("Sorry, %s, but you cannot donate %s in your own chat. Please try %saddpoints instead.",
			ev.User, c.streamer.PointsName(), c.streamer.Prefix())
	}

	target, amount, answer := c.parseGrant(ev)
	if answer != nil {
		return answer
	}
	if amount <= 0 {
		return ports.Reply("The amount must be a positive whole number.")
	}

	source, ok := c.registry.Lookup(ev.User)
	if !ok {
		return ports.Reply("I do not know you yet, %s. Join the stream first so I can remember you.", ev.User)
	}
	recipient, ok := c.registry.Lookup(target)
	if !ok {
		return ports.Reply("I do not know %s. They may have opted out, or I have not seen them yet.", target)
	}

	stats, hydrated := source.Stats()
	if !hydrated {
		return c.fail(ev, errNotHydrated(ev.User))
	}
	if stats.Points < amount {
		return ports.Reply("Sorry, %s, but you do not have enough %s, and I am not a licensed %s lender.",
			ev.User, c.streamer.PointsName(), c.streamer.PointsName())
	}

	if err := source.AdjustPoints(ctx, -amount); err != nil {
		return c.fail(ev, err)
	}
	if err := recipient.AdjustPoints(ctx, amount); err != nil {
		return c.fail(ev, err)
	}
	return ports.Reply("%s donated %d %s to %s. How kind!", ev.User, amount, c.streamer.PointsName(), target)
}
