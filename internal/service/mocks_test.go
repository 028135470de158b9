package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"moviewatch/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockMovieRepository is a mock implementation of MovieRepository.
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) List(ctx context.Context) ([]model.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Movie), args.Error(1)
}

func (m *MockMovieRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *MockMovieRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch *model.Movie, columns []string) (*model.Movie, error) {
	args := m.Called(ctx, id, ownerID, patch, columns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *MockMovieRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Movie, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

// MockWatchlistRepository is a mock implementation of WatchlistRepository.
type MockWatchlistRepository struct {
	mock.Mock
}

func (m *MockWatchlistRepository) Create(ctx context.Context, item *model.WatchlistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockWatchlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.WatchlistItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WatchlistItem), args.Error(1)
}

func (m *MockWatchlistRepository) FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*model.WatchlistItem, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WatchlistItem), args.Error(1)
}

func (m *MockWatchlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.WatchlistItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WatchlistItem), args.Error(1)
}

func (m *MockWatchlistRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, patch *model.WatchlistItem, columns []string) (*model.WatchlistItem, error) {
	args := m.Called(ctx, id, userID, patch, columns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WatchlistItem), args.Error(1)
}

func (m *MockWatchlistRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (*model.WatchlistItem, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WatchlistItem), args.Error(1)
}
