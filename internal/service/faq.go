package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/ids"
	"youthhub/api/internal/models"
	"youthhub/api/internal/pagination"
	"youthhub/api/internal/repository"
)

// FAQ lists default to a larger page size; they back lookup-style views.
const faqDefaultLimit = 50

type FAQService struct {
	faqs *repository.FAQRepository
	log  zerolog.Logger
}

func NewFAQService(faqs *repository.FAQRepository, log zerolog.Logger) *FAQService {
	return &FAQService{faqs: faqs, log: log}
}

type FAQInput struct {
	Question     string
	Answer       string
	Category     *string
	Position     int
	IsPublished  bool
	Translations models.Translations
}

func (s *FAQService) Create(ctx context.Context, input FAQInput) (models.FAQ, error) {
	faq := models.FAQ{
		ID:           ids.New(),
		Question:     input.Question,
		Answer:       input.Answer,
		Category:     input.Category,
		Position:     input.Position,
		IsPublished:  input.IsPublished,
		Translations: input.Translations,
	}
	if err := s.faqs.Create(ctx, faq); err != nil {
		return models.FAQ{}, apierr.Remap(err)
	}
	return s.faqs.GetByID(ctx, faq.ID)
}

func (s *FAQService) List(ctx context.Context, params pagination.Params, filter repository.FAQFilter) ([]models.FAQ, pagination.Meta, error) {
	params = params.Normalize(faqDefaultLimit, "position")
	items, total, err := s.faqs.List(ctx, params, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if items == nil {
		items = []models.FAQ{}
	}
	return items, pagination.NewMeta(total, params), nil
}

func (s *FAQService) ListPublished(ctx context.Context, params pagination.Params, filter repository.FAQFilter) ([]models.FAQ, pagination.Meta, error) {
	published := true
	filter.IsPublished = &published
	return s.List(ctx, params, filter)
}

func (s *FAQService) GetByID(ctx context.Context, id string) (models.FAQ, error) {
	faq, err := s.faqs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFAQNotFound) {
			return models.FAQ{}, apierr.NotFound("FAQ not found")
		}
		return models.FAQ{}, err
	}
	return faq, nil
}

func (s *FAQService) Update(ctx context.Context, id string, input FAQInput) (models.FAQ, error) {
	faq, err := s.GetByID(ctx, id)
	if err != nil {
		return models.FAQ{}, err
	}

	faq.Question = input.Question
	faq.Answer = input.Answer
	faq.Category = input.Category
	faq.Position = input.Position
	faq.IsPublished = input.IsPublished
	faq.Translations = input.Translations

	if err := s.faqs.Update(ctx, faq); err != nil {
		return models.FAQ{}, apierr.Remap(err)
	}
	return s.faqs.GetByID(ctx, id)
}

func (s *FAQService) Delete(ctx context.Context, id string) error {
	if err := s.faqs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrFAQNotFound) {
			return apierr.NotFound("FAQ not found")
		}
		return err
	}
	return nil
}
