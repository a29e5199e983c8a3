package participant

import (
	"context"
	"errors"

	"chat4g/internal/app/domain"
)

var (
	// ErrAlreadyFriends and ErrAlreadyLiked report idempotent social writes.
	// Handlers turn them into "I already knew that" answers instead of the
	// generic failure line.
	ErrAlreadyFriends = errors.New("already on the friends list")
	ErrAlreadyLiked   = errors.New("genre already liked")
)

// Store is the slice of the graph repository a participant writes through.
// Declared here so the aggregate does not depend on the ports package; the
// full repository satisfies it structurally.
type Store interface {
	AddFriendship(ctx context.Context, from, to string) error
	LikeGenre(ctx context.Context, username, genre string) error
	AddPoints(ctx context.Context, viewer, streamer string, delta int) error
}

// Participant is what command handlers see: a chat participant with cached
// graph state. Viewer and Streamer both implement it.
type Participant interface {
	Username() string
	Stats() (domain.Stats, bool)
	Friends() []string
	LikedGenres() []string
	AddFriend(ctx context.Context, friend string) error
	LikeGenre(ctx context.Context, genre string) error
	AdjustPoints(ctx context.Context, delta int) error
	BumpQueryCount()
}
