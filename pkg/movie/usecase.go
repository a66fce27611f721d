package movie

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 15
	recommendLimit  = 5
)

// Page is one page of the catalog listing.
type Page struct {
	TotalPages int
	Page       int
	Movies     []Movie
}

// UseCase encapsulates catalog operations.
type UseCase interface {
	List(ctx context.Context, limit, page int) (Page, error)
	Add(ctx context.Context, m Movie) error
	Update(ctx context.Context, id uuid.UUID, upd Update) error
	Delete(ctx context.Context, id uuid.UUID) error
	Recommend(ctx context.Context, id uuid.UUID) ([]Movie, error)
}

type service struct {
	repo       Repository
	watchlists WatchlistDetacher
}

func NewService(repo Repository, watchlists WatchlistDetacher) UseCase {
	return &service{repo: repo, watchlists: watchlists}
}

func (s *service) List(ctx context.Context, limit, page int) (Page, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return Page{}, err
	}
	movies, err := s.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return Page{}, err
	}
	return Page{
		TotalPages: (count + limit - 1) / limit,
		Page:       page,
		Movies:     movies,
	}, nil
}

func (s *service) Add(ctx context.Context, m Movie) error {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		return errors.New("title is required")
	}
	m.Genre = normalizeGenres(m.Genre)

	// Best-effort duplicate check; the unique constraint on
	// (title, release_year) is the authoritative guard.
	if _, err := s.repo.FindByTitleYear(ctx, m.Title, m.ReleaseYear); err == nil {
		return ErrAlreadyExists
	}

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, m)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, upd Update) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if upd.Title != nil {
		m.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Genre != nil {
		m.Genre = normalizeGenres(*upd.Genre)
	}
	if upd.ReleaseYear != nil {
		m.ReleaseYear = *upd.ReleaseYear
	}
	if upd.Ratings != nil {
		m.Ratings = *upd.Ratings
	}
	if upd.Image != nil {
		m.Image = *upd.Image
	}
	return s.repo.Save(ctx, m)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	// Watchlist entries keep their row but lose the movie reference.
	// Detach first: the store's foreign key forbids deleting a movie
	// that is still referenced.
	if err := s.watchlists.DetachMovie(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Recommend(ctx context.Context, id uuid.UUID) ([]Movie, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByGenreOverlap(ctx, id, current.Genre, recommendLimit)
}

func normalizeGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		g = strings.ToLower(strings.TrimSpace(g))
		if g != "" {
			out = append(out, g)
		}
	}
	return out
}
