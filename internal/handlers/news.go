package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/middleware"
	"youthhub/api/internal/models"
	"youthhub/api/internal/repository"
	"youthhub/api/internal/service"
)

type newsRequest struct {
	Title        string              `json:"title" binding:"required,max=200"`
	Content      string              `json:"content" binding:"required"`
	Summary      *string             `json:"summary" binding:"omitempty,max=500"`
	CoverImage   *string             `json:"coverImage"`
	Category     *string             `json:"category"`
	Tags         []string            `json:"tags"`
	IsPublished  bool                `json:"isPublished"`
	IsFeatured   bool                `json:"isFeatured"`
	Translations models.Translations `json:"translations"`
}

func (r newsRequest) toInput() service.NewsInput {
	return service.NewsInput{
		Title:        r.Title,
		Content:      r.Content,
		Summary:      r.Summary,
		CoverImage:   r.CoverImage,
		Category:     r.Category,
		Tags:         r.Tags,
		IsPublished:  r.IsPublished,
		IsFeatured:   r.IsFeatured,
		Translations: r.Translations,
	}
}

type newsResponse struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Slug         string              `json:"slug"`
	Content      string              `json:"content"`
	Summary      *string             `json:"summary,omitempty"`
	CoverImage   *string             `json:"coverImage,omitempty"`
	AuthorID     string              `json:"authorId"`
	AuthorName   string              `json:"authorName"`
	Category     *string             `json:"category,omitempty"`
	Tags         []string            `json:"tags"`
	IsPublished  bool                `json:"isPublished"`
	IsFeatured   bool                `json:"isFeatured"`
	Views        int64               `json:"views"`
	PublishedAt  *time.Time          `json:"publishedAt,omitempty"`
	Translations models.Translations `json:"translations"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func toNewsResponse(news models.News) newsResponse {
	return newsResponse{
		ID:           news.ID,
		Title:        news.Title,
		Slug:         news.Slug,
		Content:      news.Content,
		Summary:      news.Summary,
		CoverImage:   news.CoverImage,
		AuthorID:     news.AuthorID,
		AuthorName:   news.AuthorName,
		Category:     news.Category,
		Tags:         news.Tags,
		IsPublished:  news.IsPublished,
		IsFeatured:   news.IsFeatured,
		Views:        news.Views,
		PublishedAt:  news.PublishedAt,
		Translations: news.Translations,
		CreatedAt:    news.CreatedAt,
		UpdatedAt:    news.UpdatedAt,
	}
}

func toNewsResponses(items []models.News) []newsResponse {
	out := make([]newsResponse, 0, len(items))
	for _, news := range items {
		out = append(out, toNewsResponse(news))
	}
	return out
}

func newsFilter(c *gin.Context) repository.NewsFilter {
	return repository.NewsFilter{
		Category:    strQuery(c, "category"),
		Tag:         strQuery(c, "tag"),
		IsPublished: boolQuery(c, "isPublished"),
		IsFeatured:  boolQuery(c, "isFeatured"),
	}
}

func (h *HandlerSet) ListPublishedNews(c *gin.Context) {
	filter := newsFilter(c)
	items, meta, err := h.news.ListPublished(c.Request.Context(), listParams(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "OK", listEnvelope{Items: toNewsResponses(items), Meta: meta})
}

func (h *HandlerSet) GetNewsBySlug(c *gin.Context) {
	news, err := h.news.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "OK", toNewsResponse(news))
}

func (h *HandlerSet) ListNews(c *gin.Context) {
	items, meta, err := h.news.List(c.Request.Context(), listParams(c), newsFilter(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "OK", listEnvelope{Items: toNewsResponses(items), Meta: meta})
}

func (h *HandlerSet) GetNews(c *gin.Context) {
	news, err := h.news.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "OK", toNewsResponse(news))
}

func (h *HandlerSet) CreateNews(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, apierr.Unauthorized("Authentication required."))
		return
	}

	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.FromBinding(err))
		return
	}

	news, err := h.news.Create(c.Request.Context(), req.toInput(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "News article created", toNewsResponse(news))
}

func (h *HandlerSet) UpdateNews(c *gin.Context) {
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.FromBinding(err))
		return
	}

	news, err := h.news.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "News article updated", toNewsResponse(news))
}

func (h *HandlerSet) DeleteNews(c *gin.Context) {
	if err := h.news.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "News article deleted", nil)
}

func (h *HandlerSet) ToggleNewsPublish(c *gin.Context) {
	news, err := h.news.TogglePublish(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "News publish state updated", toNewsResponse(news))
}
