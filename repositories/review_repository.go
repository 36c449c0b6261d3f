package repositories

import (
	"context"

	"musicweb-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	GetList(ctx context.Context, params models.ReviewListParams) ([]models.Review, int64, error)
	ListByMusic(ctx context.Context, musicID string) ([]models.Review, error)
	Update(ctx context.Context, id string, columns map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = "reviews.*, users.username AS username"

func (r *reviewRepository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Review{}).
		Joins("LEFT JOIN users ON users.id = reviews.user_id")
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	err := r.withAuthor(ctx).Select(reviewColumns).Where("reviews.id = ?", id).First(&review).Error
	return &review, err
}

func (r *reviewRepository) filtered(ctx context.Context, params models.ReviewListParams) *gorm.DB {
	query := r.withAuthor(ctx)

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("(LOWER(reviews.title) LIKE LOWER(?) OR LOWER(reviews.comment) LIKE LOWER(?))", like, like)
	}
	query = whereID(query, "reviews.music_id", params.MusicID)
	query = whereID(query, "reviews.user_id", params.UserID)
	if params.MinRating != nil {
		query = query.Where("reviews.rating >= ?", *params.MinRating)
	}
	if params.MaxRating != nil {
		query = query.Where("reviews.rating <= ?", *params.MaxRating)
	}
	return query
}

// whereID filters column by id. A malformed id matches no rows instead of reaching the uuid column.
func whereID(query *gorm.DB, column, id string) *gorm.DB {
	if id == "" {
		return query
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return query.Where("1 = 0")
	}
	return query.Where(column+" = ?", parsed.String())
}

func (r *reviewRepository) GetList(ctx context.Context, params models.ReviewListParams) ([]models.Review, int64, error) {
	var total int64
	if err := r.filtered(ctx, params).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	reviews := make([]models.Review, 0)
	err := r.filtered(ctx, params).
		Select(reviewColumns).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "reviews", Name: params.SortBy}, Desc: params.Desc()}).
		Order("reviews.id").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *reviewRepository) ListByMusic(ctx context.Context, musicID string) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	err := r.withAuthor(ctx).
		Select(reviewColumns).
		Where("reviews.music_id = ?", musicID).
		Order("reviews.created_at desc").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) Update(ctx context.Context, id string, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(columns).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{}).Error
}
