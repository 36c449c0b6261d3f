package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	MusicID   string    `json:"music_id" gorm:"type:uuid;not null;index"`
	Music     *Music    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Rating    int       `json:"rating" gorm:"not null"`
	Title     *string   `json:"title"`
	Comment   *string   `json:"comment"`
	Username  string    `json:"username,omitempty" gorm:"->;-:migration"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ParseRating accepts integer-valued numbers in [MinRating, MaxRating].
func ParseRating(value float64) (int, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, false
	}
	if value < MinRating || value > MaxRating {
		return 0, false
	}
	return int(value), true
}
