package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artemkav/moviebox/pkg/movie"
	"github.com/artemkav/moviebox/pkg/watchlist"
)

// WatchlistRepository implements watchlist.Repository backed by PostgreSQL.
type WatchlistRepository struct {
	pool *pgxpool.Pool
}

func NewWatchlistRepository(pool *pgxpool.Pool) (*WatchlistRepository, error) {
	r := &WatchlistRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *WatchlistRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS watchlist (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	movie_id UUID REFERENCES movies(id) ON DELETE SET NULL,
	watched_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_watchlist_user ON watchlist(user_id);
`)
	return err
}

func (r *WatchlistRepository) Create(ctx context.Context, e watchlist.Entry) error {
	var movieID *uuid.UUID
	if e.Movie != nil {
		movieID = &e.Movie.ID
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO watchlist (id, user_id, movie_id, watched_at)
VALUES ($1, $2, $3, $4)
`, e.ID, e.UserID, movieID, e.WatchedAt)
	return err
}

func (r *WatchlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]watchlist.Entry, error) {
	rows, err := r.pool.Query(ctx, `
SELECT w.id, w.user_id, w.watched_at,
	m.id, m.title, m.genre, m.release_year, m.ratings, m.image
FROM watchlist w
LEFT JOIN movies m ON m.id = w.movie_id
WHERE w.user_id = $1
ORDER BY w.watched_at DESC NULLS LAST
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []watchlist.Entry
	for rows.Next() {
		var e watchlist.Entry
		var watchedAt *time.Time
		var mID *uuid.UUID
		var mTitle, mImage *string
		var mGenre []string
		var mYear *int
		var mRatings *float32
		if err := rows.Scan(&e.ID, &e.UserID, &watchedAt,
			&mID, &mTitle, &mGenre, &mYear, &mRatings, &mImage); err != nil {
			return nil, err
		}
		e.WatchedAt = watchedAt
		if mID != nil {
			e.Movie = &movie.Movie{
				ID:          *mID,
				Title:       *mTitle,
				Genre:       mGenre,
				ReleaseYear: *mYear,
				Ratings:     *mRatings,
				Image:       *mImage,
			}
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (r *WatchlistRepository) DetachMovie(ctx context.Context, movieID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE watchlist SET movie_id = NULL WHERE movie_id = $1`, movieID)
	return err
}
