package repositories

import (
	"context"

	"musicweb-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenreRepository interface {
	// Upsert inserts the genre unless its slug already exists.
	Upsert(ctx context.Context, genre *models.Genre) error
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	GetAll(ctx context.Context) ([]models.Genre, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Upsert(ctx context.Context, genre *models.Genre) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).
		Create(genre).Error
}

func (r *genreRepository) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var genre models.Genre
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error
	return &genre, err
}

func (r *genreRepository) GetAll(ctx context.Context) ([]models.Genre, error) {
	genres := make([]models.Genre, 0)
	err := r.db.WithContext(ctx).Order("name asc").Find(&genres).Error
	return genres, err
}
