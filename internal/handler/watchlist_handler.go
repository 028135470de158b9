package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"moviewatch/internal/errors"
	"moviewatch/internal/model"
	"moviewatch/internal/service"
)

// WatchlistHandler handles watchlist endpoints. All routes require a session.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
}

// NewWatchlistHandler creates a new watchlist handler.
func NewWatchlistHandler(watchlistService service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// AddToWatchlistRequest represents a new watchlist entry.
type AddToWatchlistRequest struct {
	MovieID string  `json:"movieId" validate:"required,uuid"`
	Status  *string `json:"status"`
	Rating  *int    `json:"rating" validate:"omitnil,gte=1,lte=10"`
	Note    *string `json:"note"`
}

// UpdateWatchlistRequest represents a partial watchlist update.
type UpdateWatchlistRequest struct {
	Status *string `json:"status"`
	Rating *int    `json:"rating" validate:"omitnil,gte=1,lte=10"`
	Note   *string `json:"note"`
}

// WatchlistItemResponse wraps a single watchlist item.
type WatchlistItemResponse struct {
	Message string               `json:"message"`
	Data    *model.WatchlistItem `json:"data"`
}

// WatchlistResponse wraps the caller's watchlist.
type WatchlistResponse struct {
	Message string                `json:"message"`
	Data    []model.WatchlistItem `json:"data"`
}

// ListWatchlist godoc
// @Summary List your watchlist
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} WatchlistResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) ListWatchlist(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	items, err := h.watchlistService.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, WatchlistResponse{Message: "watchlist fetched successfully", Data: items})
}

// AddToWatchlist godoc
// @Summary Add a movie to your watchlist
// @Tags watchlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddToWatchlistRequest true "Watchlist entry"
// @Success 201 {object} WatchlistItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) AddToWatchlist(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	var req AddToWatchlistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.watchlistService.Add(c.Request().Context(), user.ID, service.WatchlistInput{
		MovieID: uuid.MustParse(req.MovieID),
		Status:  req.Status,
		Rating:  req.Rating,
		Note:    req.Note,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, WatchlistItemResponse{Message: "movie added to watchlist", Data: item})
}

// UpdateWatchlistItem godoc
// @Summary Update a watchlist item
// @Description Only the provided fields change.
// @Tags watchlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Watchlist item ID"
// @Param request body UpdateWatchlistRequest true "Fields to change"
// @Success 200 {object} WatchlistItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /watchlist/{id} [put]
func (h *WatchlistHandler) UpdateWatchlistItem(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrWatchlistItemNotFound)
	if err != nil {
		return err
	}

	var req UpdateWatchlistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.watchlistService.Update(c.Request().Context(), id, user.ID, service.WatchlistUpdate{
		Status: req.Status,
		Rating: req.Rating,
		Note:   req.Note,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, WatchlistItemResponse{Message: "movie updated in watchlist", Data: item})
}

// RemoveFromWatchlist godoc
// @Summary Remove a watchlist item
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Watchlist item ID"
// @Success 200 {object} WatchlistItemResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /watchlist/{id} [delete]
func (h *WatchlistHandler) RemoveFromWatchlist(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, errors.ErrWatchlistItemNotFound)
	if err != nil {
		return err
	}

	item, err := h.watchlistService.Remove(c.Request().Context(), id, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, WatchlistItemResponse{Message: "movie removed from watchlist", Data: item})
}
