package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movie is a catalogue entry. CreatedBy is set once on creation and never updated.
type Movie struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null;uniqueIndex:idx_movies_title_year"`
	Overview    *string   `json:"overview,omitempty" gorm:"size:255"`
	ReleaseYear int       `json:"releaseYear" gorm:"not null;uniqueIndex:idx_movies_title_year"`
	Genre       []string  `json:"genre" gorm:"serializer:json;type:text"`
	Runtime     *int      `json:"runtime,omitempty"`
	PosterURL   *string   `json:"posterUrl,omitempty" gorm:"size:1024"`
	CreatedBy   uuid.UUID `json:"createdBy" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Creator User `json:"-" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Movie) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
