package router_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moviewatch/internal/model"
)

// memStore is an in-memory stand-in for the database. It reports unique
// violations and missing rows with the same gorm errors a translated driver does.
type memStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]model.User
	movies map[uuid.UUID]model.Movie
	items  map[uuid.UUID]model.WatchlistItem
	clock  time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[uuid.UUID]model.User{},
		movies: map[uuid.UUID]model.Movie{},
		items:  map[uuid.UUID]model.WatchlistItem{},
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = r.tick()
	r.users[user.ID] = *user
	return nil
}

func (r memUsers) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memMovies struct{ *memStore }

func (r memMovies) Create(_ context.Context, movie *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[movie.CreatedBy]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if r.titleTaken(movie.Title, movie.ReleaseYear, uuid.Nil) {
		return gorm.ErrDuplicatedKey
	}
	movie.ID = uuid.New()
	movie.CreatedAt = r.tick()
	movie.UpdatedAt = movie.CreatedAt
	r.movies[movie.ID] = *movie
	return nil
}

func (r memMovies) titleTaken(title string, year int, except uuid.UUID) bool {
	for id, m := range r.movies {
		if id != except && m.Title == title && m.ReleaseYear == year {
			return true
		}
	}
	return false
}

func (r memMovies) List(_ context.Context) ([]model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	movies := make([]model.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		movies = append(movies, m)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].CreatedAt.Before(movies[j].CreatedAt) })
	return movies, nil
}

func (r memMovies) FindByID(_ context.Context, id uuid.UUID) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r memMovies) UpdateOwned(_ context.Context, id, ownerID uuid.UUID, patch *model.Movie, columns []string) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok || m.CreatedBy != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	for _, col := range columns {
		switch col {
		case "title":
			m.Title = patch.Title
		case "overview":
			m.Overview = patch.Overview
		case "release_year":
			m.ReleaseYear = patch.ReleaseYear
		case "genre":
			m.Genre = patch.Genre
		case "runtime":
			m.Runtime = patch.Runtime
		case "poster_url":
			m.PosterURL = patch.PosterURL
		}
	}
	if r.titleTaken(m.Title, m.ReleaseYear, id) {
		return nil, gorm.ErrDuplicatedKey
	}
	m.UpdatedAt = r.tick()
	r.movies[id] = m
	return &m, nil
}

func (r memMovies) DeleteOwned(_ context.Context, id, ownerID uuid.UUID) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok || m.CreatedBy != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	delete(r.movies, id)
	for itemID, item := range r.items {
		if item.MovieID == id {
			delete(r.items, itemID)
		}
	}
	return &m, nil
}

type memWatchlist struct{ *memStore }

func (r memWatchlist) Create(_ context.Context, item *model.WatchlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[item.MovieID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.MovieID == item.MovieID {
			return gorm.ErrDuplicatedKey
		}
	}
	item.ID = uuid.New()
	item.CreatedAt = r.tick()
	item.UpdatedAt = item.CreatedAt
	r.items[item.ID] = *item
	return nil
}

func (r memWatchlist) FindByID(_ context.Context, id uuid.UUID) (*model.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r memWatchlist) FindByUserAndMovie(_ context.Context, userID, movieID uuid.UUID) (*model.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.UserID == userID && item.MovieID == movieID {
			return &item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memWatchlist) ListByUser(_ context.Context, userID uuid.UUID) ([]model.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []model.WatchlistItem
	for _, item := range r.items {
		if item.UserID != userID {
			continue
		}
		if m, ok := r.movies[item.MovieID]; ok {
			item.Movie = &m
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (r memWatchlist) UpdateOwned(_ context.Context, id, userID uuid.UUID, patch *model.WatchlistItem, columns []string) (*model.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	for _, col := range columns {
		switch col {
		case "status":
			item.Status = patch.Status
		case "rating":
			item.Rating = patch.Rating
		case "note":
			item.Note = patch.Note
		}
	}
	item.UpdatedAt = r.tick()
	r.items[id] = item
	return &item, nil
}

func (r memWatchlist) DeleteOwned(_ context.Context, id, userID uuid.UUID) (*model.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return &item, nil
}
