package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/ids"
	"youthhub/api/internal/models"
	"youthhub/api/internal/pagination"
	"youthhub/api/internal/repository"
	"youthhub/api/internal/storage"
)

const maxMediaSize = 20 << 20 // 20 MiB

var allowedMediaTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"application/pdf": {},
}

type MediaService struct {
	media *repository.MediaRepository
	store *storage.ObjectStore
	log   zerolog.Logger
}

func NewMediaService(media *repository.MediaRepository, store *storage.ObjectStore, log zerolog.Logger) *MediaService {
	return &MediaService{media: media, store: store, log: log}
}

type UploadInput struct {
	File     multipart.File
	Header   *multipart.FileHeader
	Uploader models.User
}

func (s *MediaService) Upload(ctx context.Context, input UploadInput) (models.Media, error) {
	if input.Header.Size <= 0 || input.Header.Size > maxMediaSize {
		return models.Media{}, apierr.BadRequest("File is empty or exceeds the size limit")
	}

	contentType := input.Header.Header.Get("Content-Type")
	if _, ok := allowedMediaTypes[contentType]; !ok {
		return models.Media{}, apierr.BadRequest("Unsupported file type")
	}

	id := ids.New()
	ext := strings.ToLower(path.Ext(input.Header.Filename))
	objectKey := fmt.Sprintf("%s/%s%s", time.Now().Format("2006/01"), id, ext)

	if err := s.store.Put(ctx, objectKey, input.File, input.Header.Size, contentType); err != nil {
		return models.Media{}, err
	}

	media := models.Media{
		ID:          id,
		UploaderID:  input.Uploader.ID,
		Bucket:      s.store.MediaBucket(),
		ObjectKey:   objectKey,
		FileName:    input.Header.Filename,
		ContentType: contentType,
		SizeBytes:   input.Header.Size,
	}
	if err := s.media.Create(ctx, media); err != nil {
		// Keep the store consistent with the database.
		if rmErr := s.store.Remove(ctx, objectKey); rmErr != nil {
			s.log.Error().Err(rmErr).Str("object_key", objectKey).Msg("orphaned object cleanup failed")
		}
		return models.Media{}, apierr.Remap(err)
	}

	return s.media.GetByID(ctx, media.ID)
}

func (s *MediaService) List(ctx context.Context, params pagination.Params, uploaderID *string) ([]models.Media, pagination.Meta, error) {
	params = params.Normalize(pagination.DefaultLimit, "-createdAt")
	items, total, err := s.media.List(ctx, params, uploaderID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if items == nil {
		items = []models.Media{}
	}
	return items, pagination.NewMeta(total, params), nil
}

func (s *MediaService) Delete(ctx context.Context, id string) error {
	media, err := s.media.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return apierr.NotFound("Media not found")
		}
		return err
	}

	if err := s.store.Remove(ctx, media.ObjectKey); err != nil {
		s.log.Error().Err(err).Str("object_key", media.ObjectKey).Msg("remove object failed")
	}
	return s.media.Delete(ctx, id)
}
