package ports

import (
	"context"
	"errors"

	"chat4g/internal/app/domain"
)

// ErrNotFound marks a read against an identity the store does not know.
// Distinct from an empty result, which is a legitimate answer.
var ErrNotFound = errors.New("not found")

// RepositoryPort is the graph-store access object. Every read returns either
// a result (possibly empty) or an error; the two are never conflated. Writes
// report failure through the error.
type RepositoryPort interface {
	AddPerson(ctx context.Context, username string) error
	RemovePerson(ctx context.Context, username string) error
	AllPeople(ctx context.Context) ([]string, error)

	AddFriendship(ctx context.Context, from, to string) error
	Friends(ctx context.Context, username string) ([]string, error)

	Stats(ctx context.Context, username, channel string) (domain.Stats, error)
	IncrementQueryCount(ctx context.Context, username string) error

	Genres(ctx context.Context) ([]string, error)
	LikeGenre(ctx context.Context, username, genre string) error
	LikedGenres(ctx context.Context, username string) ([]string, error)

	// CreateWatches upserts the directed watches relation with its initial
	// point balance; createViewer also upserts the source identity first.
	CreateWatches(ctx context.Context, viewer, streamer string, createViewer bool) error
	Viewers(ctx context.Context, streamer string) ([]string, error)
	AddPoints(ctx context.Context, viewer, streamer string, delta int) error

	GenrePreferences(ctx context.Context, streamer string) ([]domain.GenreCount, error)
	QueryCountLeader(ctx context.Context, streamer string) (string, int, error)
}
