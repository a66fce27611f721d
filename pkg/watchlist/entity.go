package watchlist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/artemkav/moviebox/pkg/movie"
)

var ErrMovieNotFound = errors.New("movie not found")

// Entry is one watchlist record. The movie reference is optional: it
// is dropped when the movie is removed from the catalog.
type Entry struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user"`
	Movie     *movie.Movie `json:"movie"`
	WatchedAt *time.Time   `json:"watchedAt"`
}

// Repository is the persistence port for watchlists.
type Repository interface {
	Create(ctx context.Context, e Entry) error
	// ListByUser returns entries with the movie populated, most
	// recently watched first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Entry, error)
	DetachMovie(ctx context.Context, movieID uuid.UUID) error
}
