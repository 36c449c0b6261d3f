package repositories

import (
	"context"

	"musicweb-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MusicRepository interface {
	Create(ctx context.Context, music *models.Music) error
	GetByID(ctx context.Context, id string) (*models.Music, error)
	GetList(ctx context.Context, params models.MusicListParams) ([]models.Music, int64, error)
	Update(ctx context.Context, id string, columns map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type musicRepository struct {
	db *gorm.DB
}

func NewMusicRepository(db *gorm.DB) MusicRepository {
	return &musicRepository{db: db}
}

func (r *musicRepository) Create(ctx context.Context, music *models.Music) error {
	return r.db.WithContext(ctx).Create(music).Error
}

func (r *musicRepository) GetByID(ctx context.Context, id string) (*models.Music, error) {
	var music models.Music
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&music).Error
	return &music, err
}

func (r *musicRepository) filtered(ctx context.Context, params models.MusicListParams) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Music{})

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("(LOWER(title) LIKE LOWER(?) OR LOWER(artist) LIKE LOWER(?) OR LOWER(album) LIKE LOWER(?))",
			like, like, like)
	}
	if params.Genre != "" {
		query = query.Where("genre_slug = ?", models.Slugify(params.Genre))
	}
	if params.Year != nil {
		query = query.Where("year = ?", *params.Year)
	}
	return query
}

func (r *musicRepository) GetList(ctx context.Context, params models.MusicListParams) ([]models.Music, int64, error) {
	var total int64
	if err := r.filtered(ctx, params).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	music := make([]models.Music, 0)
	err := r.filtered(ctx, params).
		Order(clause.OrderByColumn{Column: clause.Column{Name: params.SortBy}, Desc: params.Desc()}).
		Order("id").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&music).Error
	return music, total, err
}

func (r *musicRepository) Update(ctx context.Context, id string, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Music{}).Where("id = ?", id).Updates(columns).Error
}

// Delete removes the entry together with its reviews.
func (r *musicRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("music_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Music{}).Error
	})
}
