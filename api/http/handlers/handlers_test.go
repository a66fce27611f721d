package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	httpapi "github.com/artemkav/moviebox/api/http"
	"github.com/artemkav/moviebox/api/http/handlers"
	"github.com/artemkav/moviebox/pkg/auth"
	"github.com/artemkav/moviebox/pkg/health"
	"github.com/artemkav/moviebox/pkg/movie"
	"github.com/artemkav/moviebox/pkg/security/jwt"
	"github.com/artemkav/moviebox/pkg/watchlist"
)

const testSecret = "test-secret"

// In-memory repositories standing in for the Postgres layer.

type memUsers struct {
	users map[uuid.UUID]auth.User
}

func newMemUsers() *memUsers { return &memUsers{users: make(map[uuid.UUID]auth.User)} }

func (r *memUsers) Create(ctx context.Context, user auth.User) error {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return auth.ErrUserAlreadyExists
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}

func (r *memUsers) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	u, ok := r.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

type memMovies struct {
	movies []movie.Movie
	// Mirrors the schema's foreign key: Delete refuses while a
	// watchlist entry still references the movie.
	wl *memWatchlist
}

func (r *memMovies) Create(ctx context.Context, m movie.Movie) error {
	for _, existing := range r.movies {
		if existing.Title == m.Title && existing.ReleaseYear == m.ReleaseYear {
			return movie.ErrAlreadyExists
		}
	}
	r.movies = append(r.movies, m)
	return nil
}

func (r *memMovies) GetByID(ctx context.Context, id uuid.UUID) (movie.Movie, error) {
	for _, m := range r.movies {
		if m.ID == id {
			return m, nil
		}
	}
	return movie.Movie{}, movie.ErrNotFound
}

func (r *memMovies) FindByTitleYear(ctx context.Context, title string, releaseYear int) (movie.Movie, error) {
	for _, m := range r.movies {
		if m.Title == title && m.ReleaseYear == releaseYear {
			return m, nil
		}
	}
	return movie.Movie{}, movie.ErrNotFound
}

func (r *memMovies) List(ctx context.Context, limit, offset int) ([]movie.Movie, error) {
	if offset >= len(r.movies) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.movies) {
		end = len(r.movies)
	}
	return r.movies[offset:end], nil
}

func (r *memMovies) Count(ctx context.Context) (int, error) { return len(r.movies), nil }

func (r *memMovies) Save(ctx context.Context, m movie.Movie) error {
	for i := range r.movies {
		if r.movies[i].ID == m.ID {
			r.movies[i] = m
			return nil
		}
	}
	return movie.ErrNotFound
}

func (r *memMovies) Delete(ctx context.Context, id uuid.UUID) error {
	if r.wl != nil {
		for _, e := range r.wl.entries {
			if e.Movie != nil && e.Movie.ID == id {
				return errors.New(`update or delete on table "movies" violates foreign key constraint "watchlist_movie_id_fkey" on table "watchlist" (SQLSTATE 23503)`)
			}
		}
	}
	for i := range r.movies {
		if r.movies[i].ID == id {
			r.movies = append(r.movies[:i], r.movies[i+1:]...)
			return nil
		}
	}
	return movie.ErrNotFound
}

func (r *memMovies) ListByGenreOverlap(ctx context.Context, exclude uuid.UUID, genres []string, limit int) ([]movie.Movie, error) {
	wanted := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		wanted[g] = struct{}{}
	}
	var res []movie.Movie
	for _, m := range r.movies {
		if m.ID == exclude {
			continue
		}
		for _, g := range m.Genre {
			if _, ok := wanted[g]; ok {
				res = append(res, m)
				break
			}
		}
		if len(res) == limit {
			break
		}
	}
	return res, nil
}

type memWatchlist struct {
	entries []watchlist.Entry
}

func (r *memWatchlist) Create(ctx context.Context, e watchlist.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *memWatchlist) ListByUser(ctx context.Context, userID uuid.UUID) ([]watchlist.Entry, error) {
	var res []watchlist.Entry
	for _, e := range r.entries {
		if e.UserID == userID {
			res = append(res, e)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i].WatchedAt, res[j].WatchedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return res, nil
}

func (r *memWatchlist) DetachMovie(ctx context.Context, movieID uuid.UUID) error {
	for i := range r.entries {
		if r.entries[i].Movie != nil && r.entries[i].Movie.ID == movieID {
			r.entries[i].Movie = nil
		}
	}
	return nil
}

type testEnv struct {
	app       *fiber.App
	users     *memUsers
	movies    *memMovies
	watchlist *memWatchlist
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()

	users := newMemUsers()
	wl := &memWatchlist{}
	movies := &memMovies{wl: wl}

	jwtGen := jwt.NewGenerator(testSecret)
	authUC := auth.NewAuthService(users, jwtGen, bcrypt.MinCost)
	movieUC := movie.NewService(movies, wl)
	watchlistUC := watchlist.NewService(wl, movies)
	readiness := health.NewService()

	app := fiber.New()
	httpapi.Register(app,
		handlers.NewAuthHandler(authUC),
		handlers.NewMovieHandler(movieUC),
		handlers.NewWatchlistHandler(watchlistUC),
		handlers.NewHealthHandler(readiness),
		jwt.NewAuthMiddleware(testSecret, users),
	)
	return &testEnv{app: app, users: users, movies: movies, watchlist: wl}
}

// doJSON performs a request against the test app and decodes the JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	decoded := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response %q: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App, name, email, password string) (token, userID string) {
	t.Helper()

	status, _ := doJSON(t, app, http.MethodPost, "/user/register", fiber.Map{
		"name": name, "email": email, "role": "user", "password": password,
	}, "")
	if status != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", status)
	}

	status, body := doJSON(t, app, http.MethodPost, "/user/login", fiber.Map{
		"email": email, "password": password,
	}, "")
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", status)
	}
	token, _ = body["token"].(string)
	userID, _ = body["userID"].(string)
	if token == "" {
		t.Fatal("login: expected non-empty token")
	}
	return token, userID
}

func addMovie(t *testing.T, app *fiber.App, title string, genres []string, year int) {
	t.Helper()
	status, _ := doJSON(t, app, http.MethodPost, "/movies/add", fiber.Map{
		"title":       title,
		"genre":       genres,
		"releaseYear": year,
		"ratings":     7.1,
		"image":       "https://example.com/poster.jpg",
	}, "")
	if status != http.StatusCreated {
		t.Fatalf("add movie %q: expected 201, got %d", title, status)
	}
}
