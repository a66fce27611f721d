package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artemkav/moviebox/api/http/presenter"
	"github.com/artemkav/moviebox/pkg/movie"
)

type MovieHandler struct {
	uc movie.UseCase
}

func NewMovieHandler(uc movie.UseCase) *MovieHandler { return &MovieHandler{uc: uc} }

type movieListResponse struct {
	TotalPages int           `json:"total_pages"`
	Page       int           `json:"page"`
	Movies     []movie.Movie `json:"movies"`
}

// List returns one page of the catalog.
// @Summary List movies
// @Tags    movies
// @Produce json
// @Param   limit query int false "page size (default 15)"
// @Param   page  query int false "page number (default 1)"
// @Success 200 {object} movieListResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /movies [get]
func (h *MovieHandler) List(c *fiber.Ctx) error {
	limit, page := parseLimitPage(c, 15)
	result, err := h.uc.List(c.Context(), limit, page)
	if err != nil {
		log.Printf("list movies: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
	}
	if result.Movies == nil {
		result.Movies = []movie.Movie{}
	}
	return presenter.JSON(c, http.StatusOK, movieListResponse{
		TotalPages: result.TotalPages,
		Page:       result.Page,
		Movies:     result.Movies,
	})
}

// Recommend returns up to five movies sharing a genre with the given one.
// @Summary Recommend similar movies
// @Tags    movies
// @Produce json
// @Param   id path string true "movie ID (UUID)"
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /movies/recommend/{id} [get]
func (h *MovieHandler) Recommend(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "Movie not found")
	}
	recommended, err := h.uc.Recommend(c.Context(), id)
	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "Movie not found")
		}
		log.Printf("recommend movies: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "Failed to recommend movies")
	}
	if recommended == nil {
		recommended = []movie.Movie{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"recommendedMovies": recommended})
}

type addMovieRequest struct {
	Title       string   `json:"title"`
	Genre       []string `json:"genre"`
	ReleaseYear int      `json:"releaseYear"`
	Ratings     float32  `json:"ratings"`
	Image       string   `json:"image"`
}

// Add creates a catalog entry.
// @Summary Add a movie
// @Tags    movies
// @Accept  json
// @Produce json
// @Param   input body addMovieRequest true "movie payload"
// @Success 201 {object} presenter.ErrorResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /movies/add [post]
func (h *MovieHandler) Add(c *fiber.Ctx) error {
	var req addMovieRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	err := h.uc.Add(c.Context(), movie.Movie{
		Title:       req.Title,
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
		Ratings:     req.Ratings,
		Image:       req.Image,
	})
	if err != nil {
		if errors.Is(err, movie.ErrAlreadyExists) {
			return presenter.Error(c, http.StatusBadRequest, "Movie already exists")
		}
		log.Printf("add movie: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "Failed to add movie")
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{"message": "Movie added successfully"})
}

// updateMovieRequest applies only the fields present in the payload;
// an absent field leaves the stored value unchanged.
type updateMovieRequest struct {
	Title       *string   `json:"title"`
	Genre       *[]string `json:"genre"`
	ReleaseYear *int      `json:"releaseYear"`
	Ratings     *float32  `json:"ratings"`
	Image       *string   `json:"image"`
}

// Update partially updates a movie by ID.
// @Summary Update a movie
// @Tags    movies
// @Accept  json
// @Produce json
// @Param   id    path string             true "movie ID (UUID)"
// @Param   input body updateMovieRequest true "fields to update"
// @Success 200 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /movies/update/{id} [put]
func (h *MovieHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "Movie not found")
	}
	var req updateMovieRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	err = h.uc.Update(c.Context(), id, movie.Update{
		Title:       req.Title,
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
		Ratings:     req.Ratings,
		Image:       req.Image,
	})
	if err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "Movie not found")
		}
		log.Printf("update movie: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "Failed to update movie")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "Movie updated successfully"})
}

// Delete removes a movie and detaches it from all watchlists.
// @Summary Delete a movie
// @Tags    movies
// @Produce json
// @Param   id path string true "movie ID (UUID)"
// @Success 200 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /movies/delete/{id} [delete]
func (h *MovieHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "Movie not found")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, movie.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "Movie not found")
		}
		log.Printf("delete movie: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "Failed to delete movie")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "Movie deleted successfully"})
}
