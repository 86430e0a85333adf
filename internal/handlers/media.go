package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/middleware"
	"youthhub/api/internal/models"
	"youthhub/api/internal/service"
)

type mediaResponse struct {
	ID          string    `json:"id"`
	UploaderID  string    `json:"uploaderId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	ObjectKey   string    `json:"objectKey"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toMediaResponse(media models.Media) mediaResponse {
	return mediaResponse{
		ID:          media.ID,
		UploaderID:  media.UploaderID,
		FileName:    media.FileName,
		ContentType: media.ContentType,
		SizeBytes:   media.SizeBytes,
		ObjectKey:   media.ObjectKey,
		CreatedAt:   media.CreatedAt,
	}
}

func (h *HandlerSet) UploadMedia(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, apierr.Unauthorized("Authentication required."))
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		fail(c, apierr.BadRequest("A file is required under the \"file\" form field"))
		return
	}
	defer file.Close()

	media, err := h.media.Upload(c.Request.Context(), service.UploadInput{
		File:     file,
		Header:   header,
		Uploader: user,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "File uploaded", toMediaResponse(media))
}

func (h *HandlerSet) ListMedia(c *gin.Context) {
	items, meta, err := h.media.List(c.Request.Context(), listParams(c), strQuery(c, "uploaderId"))
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]mediaResponse, 0, len(items))
	for _, media := range items {
		out = append(out, toMediaResponse(media))
	}
	respond(c, http.StatusOK, "OK", listEnvelope{Items: out, Meta: meta})
}

func (h *HandlerSet) DeleteMedia(c *gin.Context) {
	if err := h.media.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Media deleted", nil)
}
