package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/ids"
	"youthhub/api/internal/models"
	"youthhub/api/internal/pagination"
	"youthhub/api/internal/repository"
)

type NewsService struct {
	news *repository.NewsRepository
	log  zerolog.Logger
}

func NewNewsService(news *repository.NewsRepository, log zerolog.Logger) *NewsService {
	return &NewsService{news: news, log: log}
}

type NewsInput struct {
	Title        string
	Content      string
	Summary      *string
	CoverImage   *string
	Category     *string
	Tags         []string
	IsPublished  bool
	IsFeatured   bool
	Translations models.Translations
}

// applyArabicTranslation keeps the top-level fields in sync with the Arabic
// translation, which is the site's primary language.
func (in *NewsInput) applyArabicTranslation() {
	ar := in.Translations.Ar
	if ar.Title != "" {
		in.Title = ar.Title
	}
	if ar.Content != "" {
		in.Content = ar.Content
	}
	if ar.Summary != "" {
		in.Summary = &ar.Summary
	}
}

func (s *NewsService) Create(ctx context.Context, input NewsInput, authorID string) (models.News, error) {
	input.applyArabicTranslation()

	news := models.News{
		ID:           ids.New(),
		Title:        input.Title,
		Slug:         DeriveSlug(input.Title),
		Content:      input.Content,
		Summary:      input.Summary,
		CoverImage:   input.CoverImage,
		AuthorID:     authorID,
		Category:     input.Category,
		Tags:         input.Tags,
		IsPublished:  input.IsPublished,
		IsFeatured:   input.IsFeatured,
		Translations: input.Translations,
	}
	if news.Tags == nil {
		news.Tags = []string{}
	}
	if news.IsPublished {
		now := time.Now()
		news.PublishedAt = &now
	}

	if err := s.news.Create(ctx, news); err != nil {
		return models.News{}, apierr.Remap(err)
	}
	return s.news.GetByID(ctx, news.ID)
}

func (s *NewsService) List(ctx context.Context, params pagination.Params, filter repository.NewsFilter) ([]models.News, pagination.Meta, error) {
	params = params.Normalize(pagination.DefaultLimit, "-createdAt")
	items, total, err := s.news.List(ctx, params, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if items == nil {
		items = []models.News{}
	}
	return items, pagination.NewMeta(total, params), nil
}

// ListPublished is the public listing; it pins the published filter on.
func (s *NewsService) ListPublished(ctx context.Context, params pagination.Params, filter repository.NewsFilter) ([]models.News, pagination.Meta, error) {
	published := true
	filter.IsPublished = &published
	return s.List(ctx, params, filter)
}

func (s *NewsService) GetByID(ctx context.Context, id string) (models.News, error) {
	news, err := s.news.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			return models.News{}, apierr.NotFound("News article not found")
		}
		return models.News{}, err
	}
	return news, nil
}

func (s *NewsService) GetBySlug(ctx context.Context, slug string) (models.News, error) {
	news, err := s.news.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			return models.News{}, apierr.NotFound("News article not found")
		}
		return models.News{}, err
	}
	return news, nil
}

func (s *NewsService) Update(ctx context.Context, id string, input NewsInput) (models.News, error) {
	news, err := s.GetByID(ctx, id)
	if err != nil {
		return models.News{}, err
	}

	input.applyArabicTranslation()

	if input.Title != news.Title {
		news.Slug = DeriveSlug(input.Title)
	}
	news.Title = input.Title
	news.Content = input.Content
	news.Summary = input.Summary
	news.CoverImage = input.CoverImage
	news.Category = input.Category
	news.Tags = input.Tags
	if news.Tags == nil {
		news.Tags = []string{}
	}
	news.IsFeatured = input.IsFeatured
	news.Translations = input.Translations
	if input.IsPublished && !news.IsPublished && news.PublishedAt == nil {
		now := time.Now()
		news.PublishedAt = &now
	}
	news.IsPublished = input.IsPublished

	if err := s.news.Update(ctx, news); err != nil {
		return models.News{}, apierr.Remap(err)
	}
	return s.news.GetByID(ctx, id)
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	if err := s.news.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
			return apierr.NotFound("News article not found")
		}
		return err
	}
	return nil
}

func (s *NewsService) TogglePublish(ctx context.Context, id string) (models.News, error) {
	news, err := s.GetByID(ctx, id)
	if err != nil {
		return models.News{}, err
	}

	news.IsPublished = !news.IsPublished
	if news.IsPublished && news.PublishedAt == nil {
		now := time.Now()
		news.PublishedAt = &now
	}

	if err := s.news.Update(ctx, news); err != nil {
		return models.News{}, err
	}
	return s.news.GetByID(ctx, id)
}
