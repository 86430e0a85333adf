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

type contactRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

type contactResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Subject   string               `json:"subject"`
	Message   string               `json:"message"`
	Status    models.ContactStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func toContactResponse(contact models.Contact) contactResponse {
	return contactResponse{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Subject:   contact.Subject,
		Message:   contact.Message,
		Status:    contact.Status,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}

func (h *HandlerSet) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.FromBinding(err))
		return
	}

	contact, err := h.contacts.Submit(c.Request.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Message received. We will get back to you soon.", toContactResponse(contact))
}

func (h *HandlerSet) ListContacts(c *gin.Context) {
	filter := repository.ContactFilter{}
	if raw := strQuery(c, "status"); raw != nil {
		status := models.ContactStatus(*raw)
		filter.Status = &status
	}

	items, meta, err := h.contacts.List(c.Request.Context(), listParams(c), filter)
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]contactResponse, 0, len(items))
	for _, contact := range items {
		out = append(out, toContactResponse(contact))
	}
	respond(c, http.StatusOK, "OK", listEnvelope{Items: out, Meta: meta})
}

func (h *HandlerSet) GetContact(c *gin.Context) {
	contact, err := h.contacts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "OK", toContactResponse(contact))
}

type contactStatusRequest struct {
	Status models.ContactStatus `json:"status" binding:"required,oneof=new read archived"`
}

func (h *HandlerSet) UpdateContactStatus(c *gin.Context) {
	var req contactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.FromBinding(err))
		return
	}

	contact, err := h.contacts.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Contact status updated", toContactResponse(contact))
}

func (h *HandlerSet) DeleteContact(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Contact message deleted", nil)
}
