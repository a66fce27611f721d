package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artemkav/moviebox/pkg/movie"
)

// MovieRepository implements movie.Repository backed by PostgreSQL.
// Genres live in a TEXT[] column so the overlap operator can drive
// recommendations.
type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) (*MovieRepository, error) {
	r := &MovieRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MovieRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS movies (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	genre TEXT[] NOT NULL DEFAULT '{}',
	release_year INT NOT NULL,
	ratings REAL NOT NULL,
	image TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (title, release_year)
);
CREATE INDEX IF NOT EXISTS idx_movies_genre ON movies USING GIN (genre);
`)
	return err
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO movies (id, title, genre, release_year, ratings, image, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, m.ID, m.Title, m.Genre, m.ReleaseYear, m.Ratings, m.Image, m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return movie.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id uuid.UUID) (movie.Movie, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, genre, release_year, ratings, image, created_at
FROM movies WHERE id = $1
`, id)
	return scanMovie(row)
}

func (r *MovieRepository) FindByTitleYear(ctx context.Context, title string, releaseYear int) (movie.Movie, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, genre, release_year, ratings, image, created_at
FROM movies WHERE title = $1 AND release_year = $2
`, title, releaseYear)
	return scanMovie(row)
}

func (r *MovieRepository) List(ctx context.Context, limit, offset int) ([]movie.Movie, error) {
	if limit <= 0 {
		limit = 15
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, title, genre, release_year, ratings, image, created_at
FROM movies
ORDER BY created_at, id
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMovies(rows)
}

func (r *MovieRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MovieRepository) Save(ctx context.Context, m movie.Movie) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE movies
SET title = $2, genre = $3, release_year = $4, ratings = $5, image = $6
WHERE id = $1
`, m.ID, m.Title, m.Genre, m.ReleaseYear, m.Ratings, m.Image)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return movie.ErrNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return movie.ErrNotFound
	}
	return nil
}

func (r *MovieRepository) ListByGenreOverlap(ctx context.Context, exclude uuid.UUID, genres []string, limit int) ([]movie.Movie, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, title, genre, release_year, ratings, image, created_at
FROM movies
WHERE id <> $1 AND genre && $2
LIMIT $3
`, exclude, genres, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMovies(rows)
}

func scanMovie(row pgx.Row) (movie.Movie, error) {
	var m movie.Movie
	var created time.Time
	if err := row.Scan(&m.ID, &m.Title, &m.Genre, &m.ReleaseYear, &m.Ratings, &m.Image, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return movie.Movie{}, movie.ErrNotFound
		}
		return movie.Movie{}, err
	}
	m.CreatedAt = created.UTC()
	return m, nil
}

func collectMovies(rows pgx.Rows) ([]movie.Movie, error) {
	var res []movie.Movie
	for rows.Next() {
		var m movie.Movie
		var created time.Time
		if err := rows.Scan(&m.ID, &m.Title, &m.Genre, &m.ReleaseYear, &m.Ratings, &m.Image, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = created.UTC()
		res = append(res, m)
	}
	return res, rows.Err()
}
