package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artemkav/moviebox/api/http/presenter"
	"github.com/artemkav/moviebox/pkg/auth"
	"github.com/artemkav/moviebox/pkg/security/jwt"
	"github.com/artemkav/moviebox/pkg/watchlist"
)

type WatchlistHandler struct {
	uc watchlist.UseCase
}

func NewWatchlistHandler(uc watchlist.UseCase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// currentUser reads the identity attached by the auth middleware.
func currentUser(c *fiber.Ctx) (auth.User, bool) {
	user, ok := c.Locals(jwt.LocalCurrentUser).(auth.User)
	return user, ok
}

// List returns the authenticated user's watchlist, most recently
// watched first.
// @Summary Get watchlist
// @Tags    movies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /movies/watchlist [get]
func (h *WatchlistHandler) List(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "No token provided")
	}
	entries, err := h.uc.ListForUser(c.Context(), user.ID)
	if err != nil {
		log.Printf("list watchlist: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "Failed to retrieve watchlist")
	}
	if entries == nil {
		entries = []watchlist.Entry{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"watchlist": entries})
}

// Add puts a catalog movie onto the authenticated user's watchlist.
// @Summary Add movie to watchlist
// @Tags    movies
// @Produce json
// @Param   movieId path string true "movie ID (UUID)"
// @Security BearerAuth
// @Success 201 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /movies/watchlist/add/{movieId} [post]
func (h *WatchlistHandler) Add(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "No token provided")
	}
	movieID, err := uuid.Parse(c.Params("movieId"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "Movie not found")
	}
	if _, err := h.uc.Add(c.Context(), user.ID, movieID); err != nil {
		if errors.Is(err, watchlist.ErrMovieNotFound) {
			return presenter.Error(c, http.StatusNotFound, "Movie not found")
		}
		log.Printf("add to watchlist: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "Failed to add movie to watchlist")
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{"message": "Movie added to watchlist successfully"})
}
