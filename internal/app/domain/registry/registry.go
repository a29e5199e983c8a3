package registry

import (
	"context"
	"log/slog"
	"sync"

	"chat4g/internal/app/domain"
	"chat4g/internal/app/domain/participant"
	"chat4g/internal/app/ports"
	"chat4g/pkg/logger"
)

// Registry caches one Viewer per username for the process lifetime. Index
// assignment is append-only; an index handed out once stays valid forever.
type Registry struct {
	log  logger.Logger
	repo ports.RepositoryPort

	mu      sync.Mutex
	indices map[string]int
	viewers []*participant.Viewer
}

func New(log logger.Logger, repo ports.RepositoryPort) *Registry {
	return &Registry{
		log:     log,
		repo:    repo,
		indices: make(map[string]int),
	}
}

// GetOrCreate returns the cached viewer or constructs one. Hydration runs
// outside the lock so a slow repository call never blocks sibling batch
// tasks; a concurrent create of the same username keeps the first insert.
func (r *Registry) GetOrCreate(ctx context.Context, username, channel string) *participant.Viewer {
	r.mu.Lock()
	if idx, ok := r.indices[username]; ok {
		v := r.viewers[idx]
		r.mu.Unlock()
		return v
	}
	r.mu.Unlock()

	v := r.hydrate(ctx, username, channel)

	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.indices[username]; ok {
		return r.viewers[idx]
	}

	r.viewers = append(r.viewers, v)
	r.indices[username] = len(r.viewers) - 1
	r.log.Debug("Viewer registered",
		slog.String("username", username),
		slog.Int("index", len(r.viewers)-1),
	)

	return v
}

// Lookup returns the viewer without creating one.
func (r *Registry) Lookup(username string) (*participant.Viewer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.indices[username]
	if !ok {
		return nil, false
	}
	return r.viewers[idx], true
}

// Index reports the position assigned to a username.
func (r *Registry) Index(username string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.indices[username]
	return idx, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.viewers)
}

// hydrate pulls stats, friends and liked genres eagerly. Any failed fetch
// leaves its field zero-valued and marks the viewer unhydrated so callers can
// tell "fetch failed" from "legitimately empty".
func (r *Registry) hydrate(ctx context.Context, username, channel string) *participant.Viewer {
	hydrated := true

	stats, err := r.repo.Stats(ctx, username, channel)
	if err != nil {
		r.log.Warn("Stats fetch failed, creating viewer with empty stats",
			slog.String("username", username), slog.String("error", err.Error()))
		stats = domain.Stats{}
		hydrated = false
	}

	friends, err := r.repo.Friends(ctx, username)
	if err != nil {
		r.log.Warn("Friends fetch failed",
			slog.String("username", username), slog.String("error", err.Error()))
		friends = nil
		hydrated = false
	}

	genres, err := r.repo.LikedGenres(ctx, username)
	if err != nil {
		r.log.Warn("Liked genres fetch failed",
			slog.String("username", username), slog.String("error", err.Error()))
		genres = nil
		hydrated = false
	}

	return participant.NewViewer(r.repo, username, channel, stats, friends, genres, hydrated)
}
