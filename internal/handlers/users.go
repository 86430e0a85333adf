package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/models"
	"youthhub/api/internal/pagination"
	"youthhub/api/internal/repository"
)

func (h *HandlerSet) ListUsers(c *gin.Context) {
	filter := repository.UserFilter{IsActive: boolQuery(c, "isActive")}
	if raw := strQuery(c, "role"); raw != nil {
		role := models.Role(*raw)
		if !models.ValidRole(role) {
			fail(c, apierr.BadRequest("Unknown role filter"))
			return
		}
		filter.Role = &role
	}

	params := listParams(c).Normalize(0, "-createdAt")
	users, total, err := h.users.List(c.Request.Context(), params, filter)
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	respond(c, http.StatusOK, "OK", listEnvelope{Items: out, Meta: pagination.NewMeta(total, params)})
}

func (h *HandlerSet) GetUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			fail(c, apierr.NotFound("User not found"))
			return
		}
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, "OK", toUserResponse(user))
}
