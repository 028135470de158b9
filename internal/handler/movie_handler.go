package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"moviewatch/internal/errors"
	"moviewatch/internal/model"
	"moviewatch/internal/service"
)

// MovieHandler handles movie endpoints.
type MovieHandler struct {
	movieService service.MovieService
}

// NewMovieHandler creates a new movie handler.
func NewMovieHandler(movieService service.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

// CreateMovieRequest represents a new movie.
type CreateMovieRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Overview    *string  `json:"overview" validate:"omitnil,min=1,max=255"`
	ReleaseYear int      `json:"releaseYear" validate:"required,gte=1900,lte=2100"`
	Genre       []string `json:"genre" validate:"omitempty,min=1,max=5,dive,required"`
	Runtime     *int     `json:"runtime" validate:"omitnil,gte=1,lte=300"`
	PosterURL   *string  `json:"posterUrl" validate:"omitnil,url"`
}

// UpdateMovieRequest represents a partial movie update; absent fields are kept.
type UpdateMovieRequest struct {
	Title       *string  `json:"title" validate:"omitnil,min=1,max=255"`
	Overview    *string  `json:"overview" validate:"omitnil,min=1,max=255"`
	ReleaseYear *int     `json:"releaseYear" validate:"omitnil,gte=1900,lte=2100"`
	Genre       []string `json:"genre" validate:"omitempty,min=1,max=5,dive,required"`
	Runtime     *int     `json:"runtime" validate:"omitnil,gte=1,lte=300"`
	PosterURL   *string  `json:"posterUrl" validate:"omitnil,url"`
}

// MovieResponse wraps a single movie.
type MovieResponse struct {
	Message string       `json:"message"`
	Data    *model.Movie `json:"data"`
}

// MovieListResponse wraps the movie catalogue.
type MovieListResponse struct {
	Message string        `json:"message"`
	Data    []model.Movie `json:"data"`
}

// ListMovies godoc
// @Summary List all movies
// @Tags movies
// @Produce json
// @Success 200 {object} MovieListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /movies [get]
func (h *MovieHandler) ListMovies(c echo.Context) error {
	movies, err := h.movieService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MovieListResponse{
		Message: "movies fetched successfully",
		Data:    movies,
	})
}

// GetMovie godoc
// @Summary Get a movie by id
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} MovieResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c, errors.ErrMovieNotFound)
	if err != nil {
		return err
	}

	movie, err := h.movieService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MovieResponse{Message: "movie fetched successfully", Data: movie})
}

// CreateMovie godoc
// @Summary Add a movie
// @Description The caller becomes the movie's owner.
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMovieRequest true "Movie data"
// @Success 201 {object} MovieResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	var req CreateMovieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	movie, err := h.movieService.Create(c.Request().Context(), user.ID, service.MovieInput{
		Title:       req.Title,
		Overview:    req.Overview,
		ReleaseYear: req.ReleaseYear,
		Genre:       req.Genre,
		Runtime:     req.Runtime,
		PosterURL:   req.PosterURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, MovieResponse{Message: "movie added successfully", Data: movie})
}

// UpdateMovie godoc
// @Summary Update one of your movies
// @Description Movies owned by other users are reported as not found.
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Movie ID"
// @Param request body UpdateMovieRequest true "Fields to change"
// @Success 200 {object} MovieResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrMovieNotFound)
	if err != nil {
		return err
	}

	var req UpdateMovieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	movie, err := h.movieService.Update(c.Request().Context(), id, user.ID, service.MovieUpdate{
		Title:       req.Title,
		Overview:    req.Overview,
		ReleaseYear: req.ReleaseYear,
		Genre:       req.Genre,
		Runtime:     req.Runtime,
		PosterURL:   req.PosterURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MovieResponse{Message: "movie updated successfully", Data: movie})
}

// DeleteMovie godoc
// @Summary Delete one of your movies
// @Description Also removes the movie from every watchlist.
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Movie ID"
// @Success 200 {object} MovieResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrMovieNotFound)
	if err != nil {
		return err
	}

	movie, err := h.movieService.Delete(c.Request().Context(), id, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MovieResponse{Message: "movie deleted successfully", Data: movie})
}
