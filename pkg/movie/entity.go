package movie

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("movie not found")
	ErrAlreadyExists = errors.New("movie already exists")
)

// Movie describes a catalog entry.
type Movie struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Genre       []string  `json:"genre"`
	ReleaseYear int       `json:"releaseYear"`
	Ratings     float32   `json:"ratings"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"-"`
}

// Update is a partial update: a nil field leaves the stored value
// unchanged, a non-nil field is applied even when it holds a zero
// value (e.g. ratings 0).
type Update struct {
	Title       *string
	Genre       *[]string
	ReleaseYear *int
	Ratings     *float32
	Image       *string
}

// Repository is the persistence port for the movie catalog.
type Repository interface {
	Create(ctx context.Context, m Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (Movie, error)
	FindByTitleYear(ctx context.Context, title string, releaseYear int) (Movie, error)
	List(ctx context.Context, limit, offset int) ([]Movie, error)
	Count(ctx context.Context) (int, error)
	Save(ctx context.Context, m Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByGenreOverlap returns movies sharing at least one genre,
	// excluding the given movie.
	ListByGenreOverlap(ctx context.Context, exclude uuid.UUID, genres []string, limit int) ([]Movie, error)
}

// WatchlistDetacher breaks watchlist references to a movie being removed.
type WatchlistDetacher interface {
	DetachMovie(ctx context.Context, movieID uuid.UUID) error
}
