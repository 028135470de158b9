package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchlistStatus is the consumption state of a watchlist item.
type WatchlistStatus string

const (
	WatchlistStatusPlanned   WatchlistStatus = "PLANNED"
	WatchlistStatusWatching  WatchlistStatus = "WATCHING"
	WatchlistStatusCompleted WatchlistStatus = "COMPLETED"
	WatchlistStatusDropped   WatchlistStatus = "DROPPED"
)

// ParseWatchlistStatus upper-cases s and reports whether it names a known status.
func ParseWatchlistStatus(s string) (WatchlistStatus, bool) {
	status := WatchlistStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case WatchlistStatusPlanned, WatchlistStatusWatching, WatchlistStatusCompleted, WatchlistStatusDropped:
		return status, true
	}
	return "", false
}

// WatchlistItem links a user to a movie. At most one item exists per (user, movie).
type WatchlistItem struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID       `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_watchlist_user_movie"`
	MovieID   uuid.UUID       `json:"movieId" gorm:"type:char(36);not null;uniqueIndex:idx_watchlist_user_movie;index"`
	Status    WatchlistStatus `json:"status" gorm:"type:varchar(20);not null;default:'PLANNED'"`
	Rating    *int            `json:"rating,omitempty"`
	Note      *string         `json:"note,omitempty" gorm:"type:text"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	// Relations
	User  User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Movie *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (w *WatchlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
