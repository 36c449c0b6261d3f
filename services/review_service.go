package services

import (
	"context"

	"musicweb-api/models"
	"musicweb-api/repositories"
)

type ReviewService interface {
	List(ctx context.Context, params models.ReviewListParams) ([]models.Review, int64, error)
	Get(ctx context.Context, id string) (*models.Review, error)
	Create(ctx context.Context, identity *models.Identity, req models.CreateReviewRequest) (*models.Review, error)
	// Update and Delete are allowed to the author and to moderators.
	Update(ctx context.Context, identity *models.Identity, id string, patch models.ReviewPatch) (*models.Review, error)
	Delete(ctx context.Context, identity *models.Identity, id string) error
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
	musicRepo  repositories.MusicRepository
	perms      PermissionService
}

func NewReviewService(reviewRepo repositories.ReviewRepository, musicRepo repositories.MusicRepository, perms PermissionService) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, musicRepo: musicRepo, perms: perms}
}

func (s *reviewService) List(ctx context.Context, params models.ReviewListParams) ([]models.Review, int64, error) {
	reviews, total, err := s.reviewRepo.GetList(ctx, params)
	if err != nil {
		return nil, 0, models.NewInternalError("list reviews", err)
	}
	return reviews, total, nil
}

func (s *reviewService) Get(ctx context.Context, id string) (*models.Review, error) {
	if !validID(id) {
		return nil, models.ErrorNotFound{Resource: "review"}
	}
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get review", "review", err)
	}
	return review, nil
}

func (s *reviewService) Create(ctx context.Context, identity *models.Identity, req models.CreateReviewRequest) (*models.Review, error) {
	rating, ok := models.ParseRating(*req.Rating)
	if !ok {
		return nil, models.NewFieldError("rating", "rating must be an integer between 1 and 5")
	}
	if !validID(req.MusicID) {
		return nil, models.ErrorNotFound{Resource: "music"}
	}
	if _, err := s.musicRepo.GetByID(ctx, req.MusicID); err != nil {
		return nil, storeError("get music", "music", err)
	}

	review := &models.Review{
		UserID:  identity.ID,
		MusicID: req.MusicID,
		Rating:  rating,
		Title:   req.Title,
		Comment: req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, storeError("create review", "review", err)
	}
	return s.Get(ctx, review.ID)
}

func (s *reviewService) authorize(ctx context.Context, identity *models.Identity, review *models.Review) error {
	if review.UserID == identity.ID {
		return nil
	}
	ok, err := s.perms.HasPermission(ctx, identity, models.PermReviewsModerate)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrorForbidden{Message: "You can only modify your own reviews"}
	}
	return nil
}

func (s *reviewService) Update(ctx context.Context, identity *models.Identity, id string, patch models.ReviewPatch) (*models.Review, error) {
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, identity, review); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, models.NewValidationError("No fields to update")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, id, patch.Columns()); err != nil {
		return nil, storeError("update review", "review", err)
	}
	return s.Get(ctx, id)
}

func (s *reviewService) Delete(ctx context.Context, identity *models.Identity, id string) error {
	review, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, identity, review); err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return models.NewInternalError("delete review", err)
	}
	return nil
}
