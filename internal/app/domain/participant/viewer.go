package participant

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"chat4g/internal/app/domain"
)

// Viewer is the in-memory aggregate for one chat participant. The graph store
// stays authoritative; the copy here is filled once at construction and
// updated optimistically on writes, never re-fetched.
type Viewer struct {
	store    Store
	username string
	channel  string

	mu       sync.Mutex
	stats    domain.Stats
	friends  []string
	genres   []string
	online   bool
	hydrated bool
}

// NewViewer wraps already-fetched state. hydrated reports whether every
// construction-time fetch succeeded; a false value keeps the viewer usable
// with zero values instead of losing the dispatch in progress.
func NewViewer(store Store, username, channel string, stats domain.Stats, friends, genres []string, hydrated bool) *Viewer {
	return &Viewer{
		store:    store,
		username: username,
		channel:  channel,
		stats:    stats,
		friends:  friends,
		genres:   genres,
		online:   true,
		hydrated: hydrated,
	}
}

func (v *Viewer) Username() string { return v.username }

func (v *Viewer) Channel() string { return v.channel }

// Stats returns the cached stats and whether the construction-time fetch
// succeeded. Zero stats with ok=false mean "unknown", not "empty".
func (v *Viewer) Stats() (domain.Stats, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.stats, v.hydrated
}

func (v *Viewer) Friends() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return slices.Clone(v.friends)
}

func (v *Viewer) LikedGenres() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return slices.Clone(v.genres)
}

func (v *Viewer) Online() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.online
}

// ToggleOnline flips the online flag on JOIN/PART notifications.
func (v *Viewer) ToggleOnline() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.online = !v.online
}

// AddFriend persists the friendship first, then mirrors it in the cache.
func (v *Viewer) AddFriend(ctx context.Context, friend string) error {
	v.mu.Lock()
	if slices.Contains(v.friends, friend) {
		v.mu.Unlock()
		return ErrAlreadyFriends
	}
	v.mu.Unlock()

	if err := v.store.AddFriendship(ctx, v.username, friend); err != nil {
		return fmt.Errorf("add friendship: %w", err)
	}

	v.mu.Lock()
	v.friends = append(v.friends, friend)
	v.mu.Unlock()

	return nil
}

// LikeGenre persists the likes-category relation, then mirrors it.
func (v *Viewer) LikeGenre(ctx context.Context, genre string) error {
	v.mu.Lock()
	if slices.Contains(v.genres, genre) {
		v.mu.Unlock()
		return ErrAlreadyLiked
	}
	v.mu.Unlock()

	if err := v.store.LikeGenre(ctx, v.username, genre); err != nil {
		return fmt.Errorf("like genre: %w", err)
	}

	v.mu.Lock()
	v.genres = append(v.genres, genre)
	v.mu.Unlock()

	return nil
}

// AdjustPoints moves the channel-scoped balance by delta, persisting first.
// Overdraft checks belong to the caller; the balance check and both writes of
// a transfer run before any cache update.
func (v *Viewer) AdjustPoints(ctx context.Context, delta int) error {
	if err := v.store.AddPoints(ctx, v.username, v.channel, delta); err != nil {
		return fmt.Errorf("adjust points: %w", err)
	}

	v.mu.Lock()
	v.stats.Points += delta
	v.mu.Unlock()

	return nil
}

// BumpQueryCount mirrors the repository-side usage counter increment.
func (v *Viewer) BumpQueryCount() {
	v.mu.Lock()
	v.stats.QueryCount++
	v.mu.Unlock()
}
