package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "moviewatch/internal/errors"
	"moviewatch/internal/model"
)

func TestWatchlistService_Add(t *testing.T) {
	userID, movieID := uuid.New(), uuid.New()
	movie := &model.Movie{ID: movieID}

	tests := []struct {
		name          string
		input         WatchlistInput
		setupMock     func(*MockWatchlistRepository, *MockMovieRepository)
		expectedError error
		wantStatus    model.WatchlistStatus
	}{
		{
			name:  "defaults to planned",
			input: WatchlistInput{MovieID: movieID},
			setupMock: func(items *MockWatchlistRepository, movies *MockMovieRepository) {
				movies.On("FindByID", mock.Anything, movieID).Return(movie, nil)
				items.On("FindByUserAndMovie", mock.Anything, userID, movieID).Return(nil, gorm.ErrRecordNotFound)
				items.On("Create", mock.Anything, mock.AnythingOfType("*model.WatchlistItem")).Return(nil)
			},
			wantStatus: model.WatchlistStatusPlanned,
		},
		{
			name:  "explicit status is normalized",
			input: WatchlistInput{MovieID: movieID, Status: strPtr("watching"), Rating: intPtr(8)},
			setupMock: func(items *MockWatchlistRepository, movies *MockMovieRepository) {
				movies.On("FindByID", mock.Anything, movieID).Return(movie, nil)
				items.On("FindByUserAndMovie", mock.Anything, userID, movieID).Return(nil, gorm.ErrRecordNotFound)
				items.On("Create", mock.Anything, mock.AnythingOfType("*model.WatchlistItem")).Return(nil)
			},
			wantStatus: model.WatchlistStatusWatching,
		},
		{
			name:          "unknown status",
			input:         WatchlistInput{MovieID: movieID, Status: strPtr("paused")},
			setupMock:     func(*MockWatchlistRepository, *MockMovieRepository) {},
			expectedError: apperrors.ErrInvalidStatus,
		},
		{
			name:  "movie missing",
			input: WatchlistInput{MovieID: movieID},
			setupMock: func(items *MockWatchlistRepository, movies *MockMovieRepository) {
				movies.On("FindByID", mock.Anything, movieID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrMovieNotFound,
		},
		{
			name:  "already on watchlist",
			input: WatchlistInput{MovieID: movieID},
			setupMock: func(items *MockWatchlistRepository, movies *MockMovieRepository) {
				movies.On("FindByID", mock.Anything, movieID).Return(movie, nil)
				items.On("FindByUserAndMovie", mock.Anything, userID, movieID).Return(&model.WatchlistItem{}, nil)
			},
			expectedError: apperrors.ErrWatchlistItemExists,
		},
		{
			name:  "lost race on unique index",
			input: WatchlistInput{MovieID: movieID},
			setupMock: func(items *MockWatchlistRepository, movies *MockMovieRepository) {
				movies.On("FindByID", mock.Anything, movieID).Return(movie, nil)
				items.On("FindByUserAndMovie", mock.Anything, userID, movieID).Return(nil, gorm.ErrRecordNotFound)
				items.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrWatchlistItemExists,
		},
		{
			name:  "movie deleted before insert",
			input: WatchlistInput{MovieID: movieID},
			setupMock: func(items *MockWatchlistRepository, movies *MockMovieRepository) {
				movies.On("FindByID", mock.Anything, movieID).Return(movie, nil)
				items.On("FindByUserAndMovie", mock.Anything, userID, movieID).Return(nil, gorm.ErrRecordNotFound)
				items.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrForeignKeyViolated)
			},
			expectedError: apperrors.ErrMovieNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := new(MockWatchlistRepository)
			movies := new(MockMovieRepository)
			tt.setupMock(items, movies)

			svc := NewWatchlistService(items, movies)
			item, err := svc.Add(context.Background(), userID, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, item)
			} else {
				require.NoError(t, err)
				assert.Equal(t, userID, item.UserID)
				assert.Equal(t, movieID, item.MovieID)
				assert.Equal(t, tt.wantStatus, item.Status)
				assert.Equal(t, tt.input.Rating, item.Rating)
			}
			items.AssertExpectations(t)
			movies.AssertExpectations(t)
		})
	}
}

func TestWatchlistService_UpdateNoteOnly(t *testing.T) {
	id, userID := uuid.New(), uuid.New()
	items := new(MockWatchlistRepository)
	items.On("UpdateOwned", mock.Anything, id, userID,
		mock.MatchedBy(func(p *model.WatchlistItem) bool { return *p.Note == "x" }),
		[]string{"note"},
	).Return(&model.WatchlistItem{ID: id, UserID: userID, Status: model.WatchlistStatusCompleted, Rating: intPtr(9), Note: strPtr("x")}, nil)

	svc := NewWatchlistService(items, new(MockMovieRepository))
	item, err := svc.Update(context.Background(), id, userID, WatchlistUpdate{Note: strPtr("x")})

	require.NoError(t, err)
	assert.Equal(t, model.WatchlistStatusCompleted, item.Status)
	assert.Equal(t, 9, *item.Rating)
	items.AssertExpectations(t)
}

func TestWatchlistService_UpdateStatusUppercased(t *testing.T) {
	id, userID := uuid.New(), uuid.New()
	items := new(MockWatchlistRepository)
	items.On("UpdateOwned", mock.Anything, id, userID,
		mock.MatchedBy(func(p *model.WatchlistItem) bool { return p.Status == model.WatchlistStatusDropped }),
		[]string{"status"},
	).Return(&model.WatchlistItem{ID: id, Status: model.WatchlistStatusDropped}, nil)

	svc := NewWatchlistService(items, new(MockMovieRepository))
	_, err := svc.Update(context.Background(), id, userID, WatchlistUpdate{Status: strPtr("dropped")})

	require.NoError(t, err)
	items.AssertExpectations(t)
}

func TestWatchlistService_OwnershipFailures(t *testing.T) {
	id, caller, owner := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name          string
		setupFind     func(*MockWatchlistRepository)
		expectedError error
	}{
		{
			name: "item missing",
			setupFind: func(m *MockWatchlistRepository) {
				m.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrWatchlistItemNotFound,
		},
		{
			name: "item owned by someone else",
			setupFind: func(m *MockWatchlistRepository) {
				m.On("FindByID", mock.Anything, id).Return(&model.WatchlistItem{ID: id, UserID: owner}, nil)
			},
			expectedError: apperrors.ErrWatchlistForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/update", func(t *testing.T) {
			items := new(MockWatchlistRepository)
			items.On("UpdateOwned", mock.Anything, id, caller, mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
			tt.setupFind(items)

			_, err := NewWatchlistService(items, new(MockMovieRepository)).
				Update(context.Background(), id, caller, WatchlistUpdate{Rating: intPtr(3)})
			assert.ErrorIs(t, err, tt.expectedError)
			items.AssertExpectations(t)
		})

		t.Run(tt.name+"/remove", func(t *testing.T) {
			items := new(MockWatchlistRepository)
			items.On("DeleteOwned", mock.Anything, id, caller).Return(nil, gorm.ErrRecordNotFound)
			tt.setupFind(items)

			_, err := NewWatchlistService(items, new(MockMovieRepository)).
				Remove(context.Background(), id, caller)
			assert.ErrorIs(t, err, tt.expectedError)
			items.AssertExpectations(t)
		})
	}
}

func TestWatchlistService_RemoveStoreFailure(t *testing.T) {
	id, userID := uuid.New(), uuid.New()
	items := new(MockWatchlistRepository)
	storeErr := errors.New("deadlock")
	items.On("DeleteOwned", mock.Anything, id, userID).Return(nil, storeErr)

	_, err := NewWatchlistService(items, new(MockMovieRepository)).Remove(context.Background(), id, userID)

	assert.ErrorIs(t, err, storeErr)
	items.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// racyWatchlistRepository never finds an existing item on the pre-check but
// enforces uniqueness on Create, like a database unique index under a race.
type racyWatchlistRepository struct {
	MockWatchlistRepository
	mu   sync.Mutex
	seen map[[2]uuid.UUID]bool
}

func (r *racyWatchlistRepository) FindByUserAndMovie(context.Context, uuid.UUID, uuid.UUID) (*model.WatchlistItem, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *racyWatchlistRepository) Create(_ context.Context, item *model.WatchlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uuid.UUID{item.UserID, item.MovieID}
	if r.seen[key] {
		return gorm.ErrDuplicatedKey
	}
	r.seen[key] = true
	return nil
}

func TestWatchlistService_ConcurrentDuplicateAdds(t *testing.T) {
	userID, movieID := uuid.New(), uuid.New()
	items := &racyWatchlistRepository{seen: map[[2]uuid.UUID]bool{}}
	movies := new(MockMovieRepository)
	movies.On("FindByID", mock.Anything, movieID).Return(&model.Movie{ID: movieID}, nil)

	svc := NewWatchlistService(items, movies)

	const workers = 16
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Add(context.Background(), userID, WatchlistInput{MovieID: movieID})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes, duplicates := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperrors.ErrWatchlistItemExists):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, duplicates)
}
