package services

import (
	"context"
	"strings"
	"time"

	"musicweb-api/models"
	"musicweb-api/repositories"
)

type MusicService interface {
	List(ctx context.Context, params models.MusicListParams) ([]models.Music, int64, error)
	Get(ctx context.Context, id string) (*models.Music, error)
	Create(ctx context.Context, req models.CreateMusicRequest) (*models.Music, error)
	Update(ctx context.Context, id string, patch models.MusicPatch) (*models.Music, error)
	Delete(ctx context.Context, id string) error
	Genres(ctx context.Context) ([]models.Genre, error)
	Reviews(ctx context.Context, id string) (*models.MusicReviews, error)
}

type musicService struct {
	musicRepo  repositories.MusicRepository
	genreRepo  repositories.GenreRepository
	reviewRepo repositories.ReviewRepository
	now        func() time.Time
}

func NewMusicService(musicRepo repositories.MusicRepository, genreRepo repositories.GenreRepository, reviewRepo repositories.ReviewRepository) MusicService {
	return &musicService{
		musicRepo:  musicRepo,
		genreRepo:  genreRepo,
		reviewRepo: reviewRepo,
		now:        time.Now,
	}
}

func (s *musicService) List(ctx context.Context, params models.MusicListParams) ([]models.Music, int64, error) {
	music, total, err := s.musicRepo.GetList(ctx, params)
	if err != nil {
		return nil, 0, models.NewInternalError("list music", err)
	}
	return music, total, nil
}

func (s *musicService) Get(ctx context.Context, id string) (*models.Music, error) {
	if !validID(id) {
		return nil, models.ErrorNotFound{Resource: "music"}
	}
	music, err := s.musicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get music", "music", err)
	}
	return music, nil
}

// resolveGenre makes sure the genre row for name exists and returns its slug.
func (s *musicService) resolveGenre(ctx context.Context, name string) (string, error) {
	genre := models.GenreFromName(name)
	if err := s.genreRepo.Upsert(ctx, &genre); err != nil {
		return "", models.NewInternalError("upsert genre", err)
	}
	return genre.Slug, nil
}

func (s *musicService) Create(ctx context.Context, req models.CreateMusicRequest) (*models.Music, error) {
	title := strings.TrimSpace(req.Title)
	artist := strings.TrimSpace(req.Artist)
	if title == "" {
		return nil, models.NewFieldError("title", "title is required")
	}
	if artist == "" {
		return nil, models.NewFieldError("artist", "artist is required")
	}
	if req.Year != nil && !models.ValidYear(*req.Year, s.now()) {
		return nil, models.NewFieldError("year", "year is out of range")
	}

	genreName := ""
	if req.Genre != nil {
		genreName = *req.Genre
	}
	slug, err := s.resolveGenre(ctx, genreName)
	if err != nil {
		return nil, err
	}

	music := &models.Music{
		Title:     title,
		Artist:    artist,
		Album:     req.Album,
		Year:      req.Year,
		GenreSlug: slug,
	}
	if err := s.musicRepo.Create(ctx, music); err != nil {
		return nil, storeError("create music", "music", err)
	}
	return music, nil
}

func (s *musicService) Update(ctx context.Context, id string, patch models.MusicPatch) (*models.Music, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, models.NewValidationError("No fields to update")
	}
	if err := patch.Validate(s.now()); err != nil {
		return nil, err
	}

	columns := patch.Columns()
	if patch.Genre.Set {
		slug, err := s.resolveGenre(ctx, patch.Genre.Value)
		if err != nil {
			return nil, err
		}
		columns["genre_slug"] = slug
	}

	if err := s.musicRepo.Update(ctx, id, columns); err != nil {
		return nil, storeError("update music", "music", err)
	}
	return s.Get(ctx, id)
}

func (s *musicService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.musicRepo.Delete(ctx, id); err != nil {
		return models.NewInternalError("delete music", err)
	}
	return nil
}

func (s *musicService) Genres(ctx context.Context) ([]models.Genre, error) {
	genres, err := s.genreRepo.GetAll(ctx)
	if err != nil {
		return nil, models.NewInternalError("list genres", err)
	}
	return genres, nil
}

func (s *musicService) Reviews(ctx context.Context, id string) (*models.MusicReviews, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByMusic(ctx, id)
	if err != nil {
		return nil, models.NewInternalError("list music reviews", err)
	}
	return models.NewMusicReviews(reviews), nil
}
