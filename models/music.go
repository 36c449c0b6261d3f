package models

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UnknownGenreSlug = "unknown"
	UnknownGenreName = "Unknown"
	MinMusicYear     = 1900
)

type Genre struct {
	Slug      string    `json:"slug" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

type Music struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Artist    string    `json:"artist" gorm:"not null"`
	Album     *string   `json:"album"`
	Year      *int      `json:"year"`
	GenreSlug string    `json:"genre" gorm:"column:genre_slug;not null;index"`
	Genre     *Genre    `json:"-" gorm:"foreignKey:GenreSlug;references:Slug"`
	CreatedAt time.Time `json:"created_at"`
}

func (Music) TableName() string {
	return "music"
}

func (m *Music) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// GenreFromName derives the genre row a display name resolves to.
// Blank names resolve to the "unknown" genre.
func GenreFromName(name string) Genre {
	name = strings.TrimSpace(name)
	if name == "" {
		return Genre{Slug: UnknownGenreSlug, Name: UnknownGenreName}
	}
	return Genre{Slug: Slugify(name), Name: name}
}

// Slugify lower-cases s and collapses whitespace runs into a single hyphen.
func Slugify(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// MaxMusicYear is the latest release year accepted for a music entry.
func MaxMusicYear(now time.Time) int {
	return now.Year() + 1
}

func ValidYear(year int, now time.Time) bool {
	return year >= MinMusicYear && year <= MaxMusicYear(now)
}

// MusicReviews is the aggregate returned for a single music entry's reviews.
type MusicReviews struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
}

func NewMusicReviews(reviews []Review) *MusicReviews {
	if reviews == nil {
		reviews = []Review{}
	}
	return &MusicReviews{
		Reviews:       reviews,
		AverageRating: AverageRating(reviews),
		ReviewCount:   len(reviews),
	}
}

// AverageRating rounds to two decimals and is 0 for an empty slice.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*100) / 100
}
