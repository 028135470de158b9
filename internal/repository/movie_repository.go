package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moviewatch/internal/model"
)

// MovieRepository defines movie persistence operations. The *Owned methods
// only ever touch rows whose created_by matches ownerID; any other row is
// reported as gorm.ErrRecordNotFound.
type MovieRepository interface {
	Create(ctx context.Context, movie *model.Movie) error
	List(ctx context.Context) ([]model.Movie, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Movie, error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch *model.Movie, columns []string) (*model.Movie, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Movie, error)
}

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository.
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

// Create creates a new movie.
func (r *movieRepository) Create(ctx context.Context, movie *model.Movie) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(movie).Error
}

// List returns every movie, oldest first.
func (r *movieRepository) List(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

// FindByID finds a movie by ID.
func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	var movie model.Movie
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&movie).Error; err != nil {
		return nil, err
	}
	return &movie, nil
}

// UpdateOwned writes the selected columns of patch to the caller's movie and
// returns the stored row. Lookup and write share one transaction and row lock.
func (r *movieRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch *model.Movie, columns []string) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwned(tx, &movie, "created_by", id, ownerID); err != nil {
			return err
		}
		if len(columns) == 0 {
			return nil
		}
		if err := tx.Model(&movie).Select(columns).Updates(patch).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&movie).Error
	})
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// DeleteOwned removes the caller's movie and returns it as it was.
func (r *movieRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwned(tx, &movie, "created_by", id, ownerID); err != nil {
			return err
		}
		return tx.Where("id = ? AND created_by = ?", id, ownerID).Delete(&model.Movie{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// lockOwned loads dest with a row lock, matching both the id and the owner column.
func lockOwned(tx *gorm.DB, dest interface{}, ownerColumn string, id, ownerID uuid.UUID) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND "+ownerColumn+" = ?", id, ownerID).
		First(dest).Error
}
