package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/ids"
	"youthhub/api/internal/models"
	"youthhub/api/internal/pagination"
	"youthhub/api/internal/repository"
)

type ContactService struct {
	contacts *repository.ContactRepository
	log      zerolog.Logger
}

func NewContactService(contacts *repository.ContactRepository, log zerolog.Logger) *ContactService {
	return &ContactService{contacts: contacts, log: log}
}

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submit records a public contact-form message for admin triage.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (models.Contact, error) {
	contact := models.Contact{
		ID:      ids.New(),
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(strings.ToLower(input.Email)),
		Subject: strings.TrimSpace(input.Subject),
		Message: input.Message,
		Status:  models.ContactStatusNew,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return models.Contact{}, apierr.Remap(err)
	}
	return s.contacts.GetByID(ctx, contact.ID)
}

func (s *ContactService) List(ctx context.Context, params pagination.Params, filter repository.ContactFilter) ([]models.Contact, pagination.Meta, error) {
	params = params.Normalize(pagination.DefaultLimit, "-createdAt")
	items, total, err := s.contacts.List(ctx, params, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if items == nil {
		items = []models.Contact{}
	}
	return items, pagination.NewMeta(total, params), nil
}

func (s *ContactService) GetByID(ctx context.Context, id string) (models.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return models.Contact{}, apierr.NotFound("Contact message not found")
		}
		return models.Contact{}, err
	}
	return contact, nil
}

func (s *ContactService) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) (models.Contact, error) {
	switch status {
	case models.ContactStatusNew, models.ContactStatusRead, models.ContactStatusArchived:
	default:
		return models.Contact{}, apierr.BadRequest("Invalid contact status")
	}

	if err := s.contacts.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return models.Contact{}, apierr.NotFound("Contact message not found")
		}
		return models.Contact{}, err
	}
	return s.contacts.GetByID(ctx, id)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return apierr.NotFound("Contact message not found")
		}
		return err
	}
	return nil
}
