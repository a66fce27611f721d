package watchlist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/artemkav/moviebox/pkg/movie"
)

// UseCase encapsulates per-user watchlist operations.
type UseCase interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Entry, error)
	Add(ctx context.Context, userID, movieID uuid.UUID) (Entry, error)
}

type service struct {
	repo   Repository
	movies movie.Repository
}

func NewService(repo Repository, movies movie.Repository) UseCase {
	return &service{repo: repo, movies: movies}
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Add(ctx context.Context, userID, movieID uuid.UUID) (Entry, error) {
	m, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			return Entry{}, ErrMovieNotFound
		}
		return Entry{}, err
	}
	now := time.Now().UTC()
	e := Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Movie:     &m,
		WatchedAt: &now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}
