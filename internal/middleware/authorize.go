package middleware

import (
	"github.com/gin-gonic/gin"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/i18n"
	"youthhub/api/internal/models"
)

// Lang picks the response language from the lang query parameter or the
// Accept-Language header. Supported: ar, en, tr.
func Lang(c *gin.Context) string {
	if lang := c.Query("lang"); lang != "" {
		return lang
	}
	return c.GetHeader("Accept-Language")
}

// RequireRoles restricts the route to the given roles. Must run after Auth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	roleSet := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWithError(c, apierr.Unauthorized("Authentication required."))
			return
		}

		if _, ok := roleSet[user.Role]; !ok {
			abortWithError(c, apierr.Forbidden(i18n.T("forbidden.generic", Lang(c))))
			return
		}

		c.Next()
	}
}

// RequirePermission gates the route on the static permission table, with a
// per-resource denial message. Must run after Auth.
func RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWithError(c, apierr.Unauthorized("Authentication required."))
			return
		}

		if _, configured := models.AllowedRoles(resource, action); !configured {
			abortWithError(c, apierr.Forbidden(i18n.T("forbidden.generic", Lang(c))))
			return
		}

		if !models.Can(user.Role, resource, action) {
			key := models.DenialMessageKey(resource, action)
			abortWithError(c, apierr.Forbidden(i18n.T(key, Lang(c))))
			return
		}

		c.Next()
	}
}
