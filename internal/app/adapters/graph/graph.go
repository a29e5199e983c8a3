package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"chat4g/pkg/logger"
)

// Repository stores the property graph in Postgres: person and genre rows are
// the nodes, friendship, watches and likes_genre rows the edges. The watches
// edge carries the channel-scoped point balance.
type Repository struct {
	log  logger.Logger
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string, log logger.Logger) (*Repository, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(connectCtx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &Repository{log: log, pool: pool}
	if err := r.migrate(connectCtx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("Graph repository ready")
	return r, nil
}

func (r *Repository) Close() {
	r.pool.Close()
}

// migrate applies the idempotent schema. Safe to run on every startup.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS person (
			username TEXT PRIMARY KEY,
			created_on TIMESTAMPTZ NOT NULL DEFAULT now(),
			query_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS friendship (
			person_a TEXT NOT NULL REFERENCES person(username) ON DELETE CASCADE,
			person_b TEXT NOT NULL REFERENCES person(username) ON DELETE CASCADE,
			since TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (person_a, person_b)
		)`,
		`CREATE TABLE IF NOT EXISTS watches (
			viewer TEXT NOT NULL REFERENCES person(username) ON DELETE CASCADE,
			streamer TEXT NOT NULL,
			points INTEGER NOT NULL DEFAULT 100,
			created_on TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (viewer, streamer)
		)`,
		`CREATE TABLE IF NOT EXISTS genre (
			name TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS likes_genre (
			person TEXT NOT NULL REFERENCES person(username) ON DELETE CASCADE,
			genre TEXT NOT NULL REFERENCES genre(name) ON DELETE CASCADE,
			since TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (person, genre)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_watches_streamer ON watches(streamer)`,
		`CREATE INDEX IF NOT EXISTS idx_likes_genre_genre ON likes_genre(genre)`,
	}

	for _, stmt := range stmts {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
