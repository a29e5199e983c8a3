package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"chat4g/internal/app/domain"
	"chat4g/internal/app/ports"
)

func (r *Repository) AddPerson(ctx context.Context, username string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO person (username, query_count) VALUES ($1, 1)
		 ON CONFLICT (username) DO NOTHING`, username)
	if err != nil {
		return fmt.Errorf("add person %s: %w", username, err)
	}
	return nil
}

// RemovePerson deletes the identity; edges follow via cascade.
func (r *Repository) RemovePerson(ctx context.Context, username string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM person WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("remove person %s: %w", username, err)
	}
	return nil
}

func (r *Repository) AllPeople(ctx context.Context) ([]string, error) {
	return r.stringColumn(ctx, `SELECT username FROM person ORDER BY username`)
}

// AddFriendship fails when either side has no person row, matching the rule
// that you can only befriend someone the bot remembers.
func (r *Repository) AddFriendship(ctx context.Context, from, to string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO friendship (person_a, person_b) VALUES ($1, $2)
		 ON CONFLICT (person_a, person_b) DO NOTHING`, from, to)
	if err != nil {
		return fmt.Errorf("add friendship %s -> %s: %w", from, to, err)
	}
	return nil
}

func (r *Repository) Friends(ctx context.Context, username string) ([]string, error) {
	return r.stringColumn(ctx,
		`SELECT person_b FROM friendship WHERE person_a = $1 ORDER BY person_b`, username)
}

// Stats reads the identity row plus the point balance scoped to the given
// channel's watches edge. No edge means a zero balance, not a missing person.
func (r *Repository) Stats(ctx context.Context, username, channel string) (domain.Stats, error) {
	var stats domain.Stats
	err := r.pool.QueryRow(ctx,
		`SELECT p.created_on, p.query_count, COALESCE(w.points, 0)
		 FROM person p
		 LEFT JOIN watches w ON w.viewer = p.username AND w.streamer = $2
		 WHERE p.username = $1`, username, channel).
		Scan(&stats.CreatedOn, &stats.QueryCount, &stats.Points)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Stats{}, fmt.Errorf("stats for %s: %w", username, ports.ErrNotFound)
	}
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats for %s: %w", username, err)
	}
	return stats, nil
}

func (r *Repository) IncrementQueryCount(ctx context.Context, username string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE person SET query_count = query_count + 1 WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("increment query count for %s: %w", username, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment query count for %s: %w", username, ports.ErrNotFound)
	}
	return nil
}

func (r *Repository) Genres(ctx context.Context) ([]string, error) {
	return r.stringColumn(ctx, `SELECT name FROM genre ORDER BY name`)
}

// LikeGenre fails when the genre is unknown; the genre catalogue is curated,
// not grown by viewers.
func (r *Repository) LikeGenre(ctx context.Context, username, genre string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO likes_genre (person, genre) VALUES ($1, $2)
		 ON CONFLICT (person, genre) DO NOTHING`, username, genre)
	if err != nil {
		return fmt.Errorf("like genre %s for %s: %w", genre, username, err)
	}
	return nil
}

func (r *Repository) LikedGenres(ctx context.Context, username string) ([]string, error) {
	return r.stringColumn(ctx,
		`SELECT genre FROM likes_genre WHERE person = $1 ORDER BY genre`, username)
}

// CreateWatches upserts the watches edge with its initial balance. The edge
// upsert never resets an existing balance.
func (r *Repository) CreateWatches(ctx context.Context, viewer, streamer string, createViewer bool) error {
	if createViewer {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO person (username) VALUES ($1) ON CONFLICT (username) DO NOTHING`, viewer)
		if err != nil {
			return fmt.Errorf("create person %s: %w", viewer, err)
		}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO watches (viewer, streamer) VALUES ($1, $2)
		 ON CONFLICT (viewer, streamer) DO NOTHING`, viewer, streamer)
	if err != nil {
		return fmt.Errorf("create watches %s -> %s: %w", viewer, streamer, err)
	}
	return nil
}

func (r *Repository) Viewers(ctx context.Context, streamer string) ([]string, error) {
	return r.stringColumn(ctx,
		`SELECT viewer FROM watches WHERE streamer = $1 ORDER BY viewer`, streamer)
}

func (r *Repository) AddPoints(ctx context.Context, viewer, streamer string, delta int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE watches SET points = points + $3 WHERE viewer = $1 AND streamer = $2`,
		viewer, streamer, delta)
	if err != nil {
		return fmt.Errorf("add points for %s: %w", viewer, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("add points for %s: %w", viewer, ports.ErrNotFound)
	}
	return nil
}

// GenrePreferences counts, per genre, the streamer's watchers who like it.
// Descending by count with the genre name as tiebreaker, so the first row is
// a deterministic suggestion.
func (r *Repository) GenrePreferences(ctx context.Context, streamer string) ([]domain.GenreCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT lg.genre, COUNT(*) AS cnt
		 FROM likes_genre lg
		 JOIN watches w ON w.viewer = lg.person
		 WHERE w.streamer = $1
		 GROUP BY lg.genre
		 ORDER BY cnt DESC, lg.genre`, streamer)
	if err != nil {
		return nil, fmt.Errorf("genre preferences for %s: %w", streamer, err)
	}
	defer rows.Close()

	var prefs []domain.GenreCount
	for rows.Next() {
		var gc domain.GenreCount
		if err := rows.Scan(&gc.Genre, &gc.Count); err != nil {
			return nil, fmt.Errorf("genre preferences for %s: %w", streamer, err)
		}
		prefs = append(prefs, gc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("genre preferences for %s: %w", streamer, err)
	}
	return prefs, nil
}

func (r *Repository) QueryCountLeader(ctx context.Context, streamer string) (string, int, error) {
	var username string
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT p.username, p.query_count
		 FROM person p
		 JOIN watches w ON w.viewer = p.username
		 WHERE w.streamer = $1
		 ORDER BY p.query_count DESC, p.username
		 LIMIT 1`, streamer).Scan(&username, &count)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", 0, fmt.Errorf("query count leader for %s: %w", streamer, ports.ErrNotFound)
	}
	if err != nil {
		return "", 0, fmt.Errorf("query count leader for %s: %w", streamer, err)
	}
	return username, count, nil
}

func (r *Repository) stringColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
