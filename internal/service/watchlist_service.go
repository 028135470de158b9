package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "moviewatch/internal/errors"
	"moviewatch/internal/metrics"
	"moviewatch/internal/model"
	"moviewatch/internal/repository"
)

// WatchlistInput carries a new watchlist entry.
type WatchlistInput struct {
	MovieID uuid.UUID
	Status  *string
	Rating  *int
	Note    *string
}

// WatchlistUpdate carries a partial update; nil fields are left unchanged.
type WatchlistUpdate struct {
	Status *string
	Rating *int
	Note   *string
}

// WatchlistService enforces the watchlist rules: one item per (user, movie),
// items reference existing movies, and only the owner may change an item.
type WatchlistService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.WatchlistItem, error)
	Add(ctx context.Context, userID uuid.UUID, in WatchlistInput) (*model.WatchlistItem, error)
	Update(ctx context.Context, id, userID uuid.UUID, upd WatchlistUpdate) (*model.WatchlistItem, error)
	Remove(ctx context.Context, id, userID uuid.UUID) (*model.WatchlistItem, error)
}

type watchlistService struct {
	items  repository.WatchlistRepository
	movies repository.MovieRepository
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(items repository.WatchlistRepository, movies repository.MovieRepository) WatchlistService {
	return &watchlistService{
		items:  items,
		movies: movies,
	}
}

// List returns the user's watchlist.
func (s *watchlistService) List(ctx context.Context, userID uuid.UUID) ([]model.WatchlistItem, error) {
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	if items == nil {
		items = []model.WatchlistItem{}
	}
	return items, nil
}

// Add puts a movie on the user's watchlist with status PLANNED unless told otherwise.
func (s *watchlistService) Add(ctx context.Context, userID uuid.UUID, in WatchlistInput) (item *model.WatchlistItem, err error) {
	defer func() { recordOp("add", err) }()

	status := model.WatchlistStatusPlanned
	if in.Status != nil {
		parsed, ok := model.ParseWatchlistStatus(*in.Status)
		if !ok {
			return nil, apperrors.ErrInvalidStatus
		}
		status = parsed
	}

	if _, err := s.movies.FindByID(ctx, in.MovieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}

	// Early exit only; the unique index decides between concurrent adds.
	existing, err := s.items.FindByUserAndMovie(ctx, userID, in.MovieID)
	if err == nil && existing != nil {
		return nil, apperrors.ErrWatchlistItemExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check watchlist: %w", err)
	}

	item = &model.WatchlistItem{
		UserID:  userID,
		MovieID: in.MovieID,
		Status:  status,
		Rating:  in.Rating,
		Note:    in.Note,
	}
	if err := s.items.Create(ctx, item); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperrors.ErrWatchlistItemExists
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			// The movie was deleted between the lookup and the insert.
			return nil, apperrors.ErrMovieNotFound
		default:
			return nil, fmt.Errorf("create watchlist item: %w", err)
		}
	}
	return item, nil
}

// Update applies the provided fields to the user's item. Any status may move
// to any other status.
func (s *watchlistService) Update(ctx context.Context, id, userID uuid.UUID, upd WatchlistUpdate) (item *model.WatchlistItem, err error) {
	defer func() { recordOp("update", err) }()

	patch := &model.WatchlistItem{}
	var columns []string

	if upd.Status != nil {
		status, ok := model.ParseWatchlistStatus(*upd.Status)
		if !ok {
			return nil, apperrors.ErrInvalidStatus
		}
		patch.Status = status
		columns = append(columns, "status")
	}
	if upd.Rating != nil {
		patch.Rating = upd.Rating
		columns = append(columns, "rating")
	}
	if upd.Note != nil {
		patch.Note = upd.Note
		columns = append(columns, "note")
	}

	item, err = s.items.UpdateOwned(ctx, id, userID, patch, columns)
	if err != nil {
		return nil, s.ownershipError(ctx, id, err)
	}
	return item, nil
}

// Remove deletes the user's item and returns it.
func (s *watchlistService) Remove(ctx context.Context, id, userID uuid.UUID) (item *model.WatchlistItem, err error) {
	defer func() { recordOp("remove", err) }()

	item, err = s.items.DeleteOwned(ctx, id, userID)
	if err != nil {
		return nil, s.ownershipError(ctx, id, err)
	}
	return item, nil
}

// ownershipError explains why an owner-scoped write matched no row: the item
// is either missing or belongs to another user.
func (s *watchlistService) ownershipError(ctx context.Context, id uuid.UUID, err error) error {
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("write watchlist item: %w", err)
	}
	if _, err := s.items.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrWatchlistItemNotFound
		}
		return fmt.Errorf("find watchlist item: %w", err)
	}
	return apperrors.ErrWatchlistForbidden
}

func recordOp(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrWatchlistItemExists):
		result = "exists"
	case errors.Is(err, apperrors.ErrWatchlistForbidden):
		result = "forbidden"
	case errors.Is(err, apperrors.ErrWatchlistItemNotFound), errors.Is(err, apperrors.ErrMovieNotFound):
		result = "not_found"
	case errors.Is(err, apperrors.ErrInvalidStatus):
		result = "invalid"
	default:
		result = "error"
	}
	metrics.RecordWatchlistOp(op, result)
}
