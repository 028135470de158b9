package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moviewatch/internal/cache"
	apperrors "moviewatch/internal/errors"
	"moviewatch/internal/metrics"
	"moviewatch/internal/model"
	"moviewatch/internal/repository"
)

const (
	movieListCacheKey = "movies:all"
	movieListCacheTTL = time.Minute
)

// MovieInput carries the fields of a new movie.
type MovieInput struct {
	Title       string
	Overview    *string
	ReleaseYear int
	Genre       []string
	Runtime     *int
	PosterURL   *string
}

// MovieUpdate carries a partial movie update; nil fields are left unchanged.
type MovieUpdate struct {
	Title       *string
	Overview    *string
	ReleaseYear *int
	Genre       []string
	Runtime     *int
	PosterURL   *string
}

// MovieService handles the movie catalogue. Mutations are restricted to the
// movie's creator; a movie owned by someone else is reported as not found.
type MovieService interface {
	List(ctx context.Context) ([]model.Movie, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Movie, error)
	Create(ctx context.Context, ownerID uuid.UUID, in MovieInput) (*model.Movie, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, upd MovieUpdate) (*model.Movie, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) (*model.Movie, error)
}

type movieService struct {
	repo  repository.MovieRepository
	cache *cache.Client
}

// NewMovieService creates a new movie service.
func NewMovieService(repo repository.MovieRepository, cache *cache.Client) MovieService {
	return &movieService{
		repo:  repo,
		cache: cache,
	}
}

// List returns all movies, served from cache when possible.
func (s *movieService) List(ctx context.Context) ([]model.Movie, error) {
	var cached []model.Movie
	if s.cache.GetJSON(ctx, movieListCacheKey, &cached) {
		metrics.RecordMovieCache(true)
		return cached, nil
	}
	metrics.RecordMovieCache(false)

	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	if movies == nil {
		movies = []model.Movie{}
	}

	s.cache.SetJSON(ctx, movieListCacheKey, movies, movieListCacheTTL)
	return movies, nil
}

// Get returns a single movie.
func (s *movieService) Get(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateMovieError("get movie", err)
	}
	return movie, nil
}

// Create stores a movie owned by ownerID.
func (s *movieService) Create(ctx context.Context, ownerID uuid.UUID, in MovieInput) (*model.Movie, error) {
	movie := &model.Movie{
		Title:       in.Title,
		Overview:    in.Overview,
		ReleaseYear: in.ReleaseYear,
		Genre:       in.Genre,
		Runtime:     in.Runtime,
		PosterURL:   in.PosterURL,
		CreatedBy:   ownerID,
	}
	if movie.Genre == nil {
		movie.Genre = []string{}
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, translateMovieError("create movie", err)
	}

	s.invalidateList(ctx)
	return movie, nil
}

// Update applies the provided fields to the caller's movie.
func (s *movieService) Update(ctx context.Context, id, ownerID uuid.UUID, upd MovieUpdate) (*model.Movie, error) {
	patch, columns := upd.patch()

	movie, err := s.repo.UpdateOwned(ctx, id, ownerID, patch, columns)
	if err != nil {
		return nil, translateMovieError("update movie", err)
	}

	if len(columns) > 0 {
		s.invalidateList(ctx)
	}
	return movie, nil
}

// Delete removes the caller's movie together with its watchlist entries.
func (s *movieService) Delete(ctx context.Context, id, ownerID uuid.UUID) (*model.Movie, error) {
	movie, err := s.repo.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return nil, translateMovieError("delete movie", err)
	}

	s.invalidateList(ctx)
	return movie, nil
}

func (s *movieService) invalidateList(ctx context.Context) {
	_ = s.cache.Delete(ctx, movieListCacheKey)
}

// patch converts the update into a model carrying the new values and the
// list of columns to write. created_by is never writable.
func (u MovieUpdate) patch() (*model.Movie, []string) {
	patch := &model.Movie{}
	var columns []string

	if u.Title != nil {
		patch.Title = *u.Title
		columns = append(columns, "title")
	}
	if u.Overview != nil {
		patch.Overview = u.Overview
		columns = append(columns, "overview")
	}
	if u.ReleaseYear != nil {
		patch.ReleaseYear = *u.ReleaseYear
		columns = append(columns, "release_year")
	}
	if u.Genre != nil {
		patch.Genre = u.Genre
		columns = append(columns, "genre")
	}
	if u.Runtime != nil {
		patch.Runtime = u.Runtime
		columns = append(columns, "runtime")
	}
	if u.PosterURL != nil {
		patch.PosterURL = u.PosterURL
		columns = append(columns, "poster_url")
	}
	return patch, columns
}

func translateMovieError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrMovieNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrMovieExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrInvalidOwner
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
