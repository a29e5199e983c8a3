package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chat4g/internal/app/domain"
	"chat4g/internal/app/domain/participant"
	"chat4g/internal/app/ports"
)

func (c *Commands) registerSocial() {
	c.register(&ports.Registration{
		Name:      "query_add_streamer",
		Query:     true,
		OwnerOnly: true,
		Help:      "Adds a node with your username and sets your created-on date to today. Meant for initial setup.",
		Handler:   c.addStreamer,
	})
	c.register(&ports.Registration{
		Name:    "query_set_friend",
		Query:   true,
		Help:    "Tells me that you are friends with another user. Syntax: {prefix}query_set_friend <friend username>",
		Handler: c.setFriend,
	})
	c.register(&ports.Registration{
		Name:    "query_get_friends",
		Query:   true,
		Help:    "Pulls a list of all your current friends.",
		Handler: c.getFriends,
	})
	c.register(&ports.Registration{
		Name:    "query_get_stats",
		Query:   true,
		Help:    "Gets your created-on date, Query Count and point balance. Optionally takes a username to look at instead.",
		Handler: c.getStats,
	})
	c.register(&ports.Registration{
		Name:    "query_get_genres",
		Query:   true,
		Help:    "Gets all video game genres I currently know about.",
		Handler: c.getGenres,
	})
	c.register(&ports.Registration{
		Name:    "query_like_genre",
		Query:   true,
		Help:    "Tells me that you like a genre. Syntax: {prefix}query_like_genre <genre name>",
		Handler: c.likeGenre,
	})
	c.register(&ports.Registration{
		Name:    "query_get_liked_genres",
		Query:   true,
		Help:    "Pulls a list of all genres I know you like. Optionally takes a username to look at instead.",
		Handler: c.getLikedGenres,
	})
	c.register(&ports.Registration{
		Name:      "query_get_viewers",
		Query:     true,
		OwnerOnly: true,
		Help:      "Pulls a list of all registered viewers.",
		Handler:   c.getViewers,
	})
	c.register(&ports.Registration{
		Name:      "query_suggest_genre",
		Query:     true,
		OwnerOnly: true,
		Help:      "Suggests a genre to play based on how many of your viewers like each one.",
		Handler:   c.suggestGenre,
	})
	c.register(&ports.Registration{
		Name:    "query_countleader",
		Query:   true,
		Help:    "Pulls the current Query Count leader for the channel.",
		Handler: c.countLeader,
	})
}

func (c *Commands) addStreamer(ctx context.Context, ev *domain.Event) *ports.Answer {
	if err := c.repo.AddPerson(ctx, ev.User); err != nil {
		return c.fail(ev, err)
	}
	return ports.Reply("Okay, %s, I will remember you.", ev.User)
}

func (c *Commands) setFriend(ctx context.Context, ev *domain.Event) *ports.Answer {
	if len(ev.TextArgs) == 0 {
		return ports.Reply("Please include the username of the person you wish to be friends with.")
	}

	p, ok := c.resolve(ev.User)
	if !ok {
		return c.fail(ev, fmt.Errorf("no viewer object for %s", ev.User))
	}

	friend := ev.TextArgs[0]
	if err := p.AddFriend(ctx, friend); err != nil {
		if errors.Is(err, participant.ErrAlreadyFriends) {
			return ports.Reply("I already knew you were friends with %s.", friend)
		}
		return c.fail(ev, err)
	}
	return ports.Reply("Your friendship with %s will be remembered.", friend)
}

func (c *Commands) getFriends(_ context.Context, ev *domain.Event) *ports.Answer {
	p, ok := c.resolve(ev.User)
	if !ok {
		return c.fail(ev, fmt.Errorf("no viewer object for %s", ev.User))
	}

	friends := p.Friends()
	if len(friends) == 0 {
		return ports.Reply("I do not know any of your friends yet, %s.", ev.User)
	}
	return ports.Reply("Your friends are: %s", strings.Join(friends, ", "))
}

// getStats answers one line per stat. With an argument it reports the named
// viewer, otherwise the asking user.
func (c *Commands) getStats(_ context.Context, ev *domain.Event) *ports.Answer {
	target := ev.User
	header := fmt.Sprintf("%s, your stats are:", ev.User)
	if len(ev.TextArgs) > 0 {
		target = ev.TextArgs[0]
		header = fmt.Sprintf("%s's stats are:", target)
	}

	p, ok := c.resolve(target)
	if !ok {
		return ports.Reply("I do not know %s. They may have opted out, or I have not seen them yet.", target)
	}

	stats, ok := p.Stats()
	if !ok {
		return c.fail(ev, fmt.Errorf("stats for %s were never fetched", target))
	}

	return &ports.Answer{Text: []string{
		header,
		fmt.Sprintf("Created On: %s", stats.CreatedOn.Format("2006-01-02")),
		fmt.Sprintf("Query Count: %d", stats.QueryCount),
		fmt.Sprintf("%s: %d", c.streamer.PointsName(), stats.Points),
	}}
}

func (c *Commands) getGenres(ctx context.Context, ev *domain.Event) *ports.Answer {
	genres, err := c.repo.Genres(ctx)
	if err != nil {
		return c.fail(ev, err)
	}
	if len(genres) == 0 {
		return ports.Reply("I do not know about any genres yet.")
	}
	return ports.Reply("The genres I know about are: %s", strings.Join(genres, ", "))
}

func (c *Commands) likeGenre(ctx context.Context, ev *domain.Event) *ports.Answer {
	if len(ev.TextArgs) == 0 {
		return ports.Reply("You must specify a genre. You can see the genres I know with %squery_get_genres.", c.streamer.Prefix())
	}

	p, ok := c.resolve(ev.User)
	if !ok {
		return c.fail(ev, fmt.Errorf("no viewer object for %s", ev.User))
	}

	genre := ev.TextArgs[0]
	if err := p.LikeGenre(ctx, genre); err != nil {
		if errors.Is(err, participant.ErrAlreadyLiked) {
			return ports.Reply("I already knew you like %s, %s.", genre, ev.User)
		}
		return c.fail(ev, err)
	}
	return ports.Reply("I will remember that you like %s, %s.", genre, ev.User)
}

func (c *Commands) getLikedGenres(_ context.Context, ev *domain.Event) *ports.Answer {
	target := ev.User
	if len(ev.TextArgs) > 0 {
		target = ev.TextArgs[0]
	}

	p, ok := c.resolve(target)
	if !ok {
		return ports.Reply("I do not know %s. They may have opted out, or I have not seen them yet.", target)
	}

	genres := p.LikedGenres()
	if len(genres) == 0 {
		return ports.Reply("I do not know any genres %s likes yet.", target)
	}
	if target == ev.User {
		return ports.Reply("You like the following genres: %s", strings.Join(genres, ", "))
	}
	return ports.Reply("%s likes the following genres: %s", target, strings.Join(genres, ", "))
}

func (c *Commands) getViewers(ctx context.Context, ev *domain.Event) *ports.Answer {
	viewers, err := c.repo.Viewers(ctx, ev.Channel)
	if err != nil {
		return c.fail(ev, err)
	}
	if len(viewers) == 0 {
		return ports.Reply("Nobody is registered as a viewer yet.")
	}
	return ports.Reply("Your registered viewers are: %s", strings.Join(viewers, ", "))
}

// suggestGenre picks the genre liked by the most viewers. Ties resolve to the
// first row the repository returns.
func (c *Commands) suggestGenre(ctx context.Context, ev *domain.Event) *ports.Answer {
	prefs, err := c.repo.GenrePreferences(ctx, ev.Channel)
	if err != nil {
		return c.fail(ev, err)
	}
	if len(prefs) == 0 {
		return ports.Reply("I do not know what genres your viewers like yet.")
	}
	return ports.Reply("Based on the genres your viewers enjoy, I think you should play games from the %s genre.", prefs[0].Genre)
}

func (c *Commands) countLeader(ctx context.Context, ev *domain.Event) *ports.Answer {
	leader, count, err := c.repo.QueryCountLeader(ctx, ev.Channel)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ports.Reply("Nobody has run a query yet.")
		}
		return c.fail(ev, err)
	}
	return ports.Reply("The Query Leader is %s with %d queries!", leader, count)
}
