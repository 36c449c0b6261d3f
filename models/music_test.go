package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "jazz", Slugify("Jazz"))
	assert.Equal(t, "jazz", Slugify("jazz"))
	assert.Equal(t, "hip-hop", Slugify("Hip  Hop"))
	assert.Equal(t, "drum-and-bass", Slugify("  Drum\tand\nBass "))
}

func TestGenreFromName(t *testing.T) {
	assert.Equal(t, Genre{Slug: "unknown", Name: "Unknown"}, GenreFromName(""))
	assert.Equal(t, Genre{Slug: "unknown", Name: "Unknown"}, GenreFromName("   "))
	assert.Equal(t, Genre{Slug: "progressive-rock", Name: "Progressive Rock"}, GenreFromName(" Progressive Rock "))
}

func TestValidYear(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, ValidYear(1900, now))
	assert.True(t, ValidYear(2027, now))
	assert.False(t, ValidYear(1899, now))
	assert.False(t, ValidYear(2028, now))
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 4.0, AverageRating([]Review{{Rating: 4}}))
	assert.Equal(t, 3.67, AverageRating([]Review{{Rating: 5}, {Rating: 4}, {Rating: 2}}))
	assert.Equal(t, 1.5, AverageRating([]Review{{Rating: 1}, {Rating: 2}}))
}

func TestNewMusicReviews_Empty(t *testing.T) {
	summary := NewMusicReviews(nil)

	assert.NotNil(t, summary.Reviews)
	assert.Equal(t, 0, summary.ReviewCount)
	assert.Equal(t, 0.0, summary.AverageRating)
}

func TestParseRating(t *testing.T) {
	for _, ok := range []float64{1, 2, 3, 4, 5, 5.0} {
		r, valid := ParseRating(ok)
		assert.True(t, valid, "%v", ok)
		assert.Equal(t, int(ok), r)
	}
	for _, bad := range []float64{0, 6, 4.5, -1, 1.0001} {
		_, valid := ParseRating(bad)
		assert.False(t, valid, "%v", bad)
	}
}
