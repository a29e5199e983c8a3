package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"chat4g/internal/app/adapters/graph"
	router "chat4g/internal/app/adapters/http"
	"chat4g/internal/app/adapters/twitch/irc"
	"chat4g/internal/app/domain"
	"chat4g/internal/app/domain/commands"
	"chat4g/internal/app/domain/dispatcher"
	"chat4g/internal/app/domain/game"
	"chat4g/internal/app/domain/participant"
	"chat4g/internal/app/domain/registry"
	"chat4g/internal/app/domain/template"
	"chat4g/internal/app/infrastructure/config"
	"chat4g/internal/app/infrastructure/state"
	"chat4g/internal/app/infrastructure/storage"
	"chat4g/pkg/logger"
)

const configPath = "config.json"

func New() error {
	log := logger.New()

	manager, err := config.New(configPath)
	if err != nil {
		log.Fatal("Error loading config", err)
	}

	cfg := manager.Get()
	log.SetLogLevel(cfg.App.LogLevel)
	gin.SetMode(cfg.App.GinMode)

	ctx := context.Background()
	repo, err := graph.New(ctx, cfg.Postgres.DSN, logger.NewPrefixedLogger(log, "graph"))
	if err != nil {
		log.Error("Error connecting to the graph store", err)
		return err
	}

	if err := os.MkdirAll(cfg.App.StateDir, 0755); err != nil {
		log.Error("Error creating state directory", err)
		return err
	}
	statePath := filepath.Join(cfg.App.StateDir, cfg.App.Channel+".json")
	states, err := state.New(logger.NewPrefixedLogger(log, "state"), statePath)
	if err != nil {
		log.Error("Error loading streamer state", err)
		return err
	}

	streamer := hydrateStreamer(ctx, log, repo, cfg)
	reg := registry.New(logger.NewPrefixedLogger(log, "registry"), repo)

	knownUsers := storage.NewCache[time.Time](256, 0, false, "")
	channelViewers := storage.NewCache[time.Time](256, 0, false, "")
	preloadCaches(ctx, log, repo, cfg.App.Channel, knownUsers, channelViewers)

	cmds := commands.New(logger.NewPrefixedLogger(log, "commands"),
		repo, reg, streamer, states, game.NewGamble(), cfg.App.DataDir)

	client, err := irc.Connect(logger.NewPrefixedLogger(log, "irc"), irc.Options{
		Transport:       cfg.App.Transport,
		Username:        cfg.App.Username,
		OAuth:           cfg.App.OAuth,
		Channel:         cfg.App.Channel,
		OperatorChannel: cfg.App.OperatorChannel,
		SendDelay:       time.Duration(cfg.App.SendDelaySeconds) * time.Second,
	})
	if err != nil {
		log.Error("Error connecting to chat", err)
		return err
	}

	d := dispatcher.New(logger.NewPrefixedLogger(log, "dispatcher"),
		client, repo, reg, cmds, states, template.New(), streamer, cfg.App.Username,
		knownUsers, channelViewers)

	go func() {
		if err := client.Run(d); err != nil {
			log.Fatal("Chat connection lost", err)
		}
	}()
	log.Info("Chatbot started", slog.String("channel", cfg.App.Channel))

	return router.NewRouter(log, manager, reg).Run()
}

// hydrateStreamer builds the channel owner's aggregate the same way the
// registry hydrates viewers: eager fetches, zero values plus a warning when
// one fails.
func hydrateStreamer(ctx context.Context, log logger.Logger, repo *graph.Repository, cfg *config.Config) *participant.Streamer {
	channel := cfg.App.Channel
	hydrated := true

	stats, err := repo.Stats(ctx, channel, channel)
	if err != nil {
		log.Warn("Streamer stats fetch failed", slog.String("error", err.Error()))
		stats = domain.Stats{}
		hydrated = false
	}
	friends, err := repo.Friends(ctx, channel)
	if err != nil {
		log.Warn("Streamer friends fetch failed", slog.String("error", err.Error()))
		friends = nil
		hydrated = false
	}
	genres, err := repo.LikedGenres(ctx, channel)
	if err != nil {
		log.Warn("Streamer liked genres fetch failed", slog.String("error", err.Error()))
		genres = nil
		hydrated = false
	}

	v := participant.NewViewer(repo, channel, channel, stats, friends, genres, hydrated)
	return participant.NewStreamer(v, cfg.App.CommandPrefix, cfg.App.PointsName)
}

// preloadCaches seeds the session sets from the store so returning viewers
// are not greeted as strangers after a restart.
func preloadCaches(ctx context.Context, log logger.Logger, repo *graph.Repository, channel string,
	knownUsers, channelViewers *storage.Cache[time.Time]) {
	now := time.Now()

	people, err := repo.AllPeople(ctx)
	if err != nil {
		log.Warn("Preloading known users failed", slog.String("error", err.Error()))
	}
	for _, username := range people {
		knownUsers.Set(username, now)
	}

	viewers, err := repo.Viewers(ctx, channel)
	if err != nil {
		log.Warn("Preloading channel viewers failed", slog.String("error", err.Error()))
	}
	for _, username := range viewers {
		channelViewers.Set(username, now)
	}

	log.Info("Session caches preloaded",
		slog.Int("known_users", knownUsers.Len()),
		slog.Int("channel_viewers", channelViewers.Len()))
}
