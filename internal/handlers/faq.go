package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/models"
	"youthhub/api/internal/repository"
	"youthhub/api/internal/service"
)

type faqRequest struct {
	Question     string              `json:"question" binding:"required"`
	Answer       string              `json:"answer" binding:"required"`
	Category     *string             `json:"category"`
	Position     int                 `json:"position"`
	IsPublished  *bool               `json:"isPublished"`
	Translations models.Translations `json:"translations"`
}

func (r faqRequest) toInput() service.FAQInput {
	published := true
	if r.IsPublished != nil {
		published = *r.IsPublished
	}
	return service.FAQInput{
		Question:     r.Question,
		Answer:       r.Answer,
		Category:     r.Category,
		Position:     r.Position,
		IsPublished:  published,
		Translations: r.Translations,
	}
}

type faqResponse struct {
	ID           string              `json:"id"`
	Question     string              `json:"question"`
	Answer       string              `json:"answer"`
	Category     *string             `json:"category,omitempty"`
	Position     int                 `json:"position"`
	IsPublished  bool                `json:"isPublished"`
	Translations models.Translations `json:"translations"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func toFAQResponse(faq models.FAQ) faqResponse {
	return faqResponse{
		ID:           faq.ID,
		Question:     faq.Question,
		Answer:       faq.Answer,
		Category:     faq.Category,
		Position:     faq.Position,
		IsPublished:  faq.IsPublished,
		Translations: faq.Translations,
		CreatedAt:    faq.CreatedAt,
		UpdatedAt:    faq.UpdatedAt,
	}
}

func toFAQResponses(items []models.FAQ) []faqResponse {
	out := make([]faqResponse, 0, len(items))
	for _, faq := range items {
		out = append(out, toFAQResponse(faq))
	}
	return out
}

func (h *HandlerSet) ListPublishedFAQs(c *gin.Context) {
	filter := repository.FAQFilter{Category: strQuery(c, "category")}
	items, meta, err := h.faqs.ListPublished(c.Request.Context(), listParams(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "OK", listEnvelope{Items: toFAQResponses(items), Meta: meta})
}

func (h *HandlerSet) ListFAQs(c *gin.Context) {
	filter := repository.FAQFilter{
		Category:    strQuery(c, "category"),
		IsPublished: boolQuery(c, "isPublished"),
	}
	items, meta, err := h.faqs.List(c.Request.Context(), listParams(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "OK", listEnvelope{Items: toFAQResponses(items), Meta: meta})
}

func (h *HandlerSet) GetFAQ(c *gin.Context) {
	faq, err := h.faqs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "OK", toFAQResponse(faq))
}

func (h *HandlerSet) CreateFAQ(c *gin.Context) {
	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.FromBinding(err))
		return
	}

	faq, err := h.faqs.Create(c.Request.Context(), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "FAQ created", toFAQResponse(faq))
}

func (h *HandlerSet) UpdateFAQ(c *gin.Context) {
	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.FromBinding(err))
		return
	}

	faq, err := h.faqs.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "FAQ updated", toFAQResponse(faq))
}

func (h *HandlerSet) DeleteFAQ(c *gin.Context) {
	if err := h.faqs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "FAQ deleted", nil)
}
