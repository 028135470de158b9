package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moviewatch/internal/model"
)

// WatchlistRepository defines watchlist persistence operations.
type WatchlistRepository interface {
	Create(ctx context.Context, item *model.WatchlistItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.WatchlistItem, error)
	FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*model.WatchlistItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.WatchlistItem, error)
	UpdateOwned(ctx context.Context, id, userID uuid.UUID, patch *model.WatchlistItem, columns []string) (*model.WatchlistItem, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (*model.WatchlistItem, error)
}

type watchlistRepository struct {
	db *gorm.DB
}

// NewWatchlistRepository creates a new watchlist repository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

// Create inserts a watchlist item. A second item for the same (user, movie)
// fails with gorm.ErrDuplicatedKey.
func (r *watchlistRepository) Create(ctx context.Context, item *model.WatchlistItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

// FindByID finds a watchlist item by ID regardless of owner.
func (r *watchlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByUserAndMovie finds the item a user holds for a movie.
func (r *watchlistRepository) FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByUser returns a user's items with their movies, newest first.
func (r *watchlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.WatchlistItem, error) {
	var items []model.WatchlistItem
	if err := r.db.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateOwned writes the selected columns of patch to the user's item.
// user_id is never among the writable columns.
func (r *watchlistRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, patch *model.WatchlistItem, columns []string) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwned(tx, &item, "user_id", id, userID); err != nil {
			return err
		}
		if len(columns) == 0 {
			return nil
		}
		if err := tx.Model(&item).Select(columns).Omit("user_id", "movie_id").Updates(patch).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteOwned removes the user's item and returns it as it was.
func (r *watchlistRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwned(tx, &item, "user_id", id, userID); err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.WatchlistItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}
