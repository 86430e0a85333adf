package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/config"
	"youthhub/api/internal/models"
	"youthhub/api/internal/security"
)

const (
	ctxUserKey   = "current_user"
	ctxClaimsKey = "access_claims"
)

// UserLoader resolves the token's subject against the credential store.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

// Auth verifies the bearer token, resolves the user and attaches both to
// the request context. Tokens issued before the user's last password change
// are rejected even when cryptographically valid.
func Auth(cfg *config.AppConfig, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, apierr.Unauthorized("Access denied. No token provided."))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseAccessToken(tokenStr, cfg.Auth.JWTSecret)
		if err != nil {
			if errors.Is(err, security.ErrExpiredToken) {
				abortWithError(c, apierr.Unauthorized("Token has expired."))
			} else {
				abortWithError(c, apierr.Unauthorized("Invalid token."))
			}
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortWithError(c, apierr.Unauthorized("User belonging to this token no longer exists."))
			return
		}

		if claims.IssuedAt != nil && user.ChangedPasswordAfter(claims.IssuedAt.Time) {
			abortWithError(c, apierr.Unauthorized("Password recently changed. Please log in again."))
			return
		}

		if !user.IsActive {
			abortWithError(c, apierr.Forbidden("Account has been deactivated."))
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxClaimsKey, *claims)

		c.Next()
	}
}

// CurrentUser returns the identity resolved by Auth for this request.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(ctxUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

// SetCurrentUser is a test hook for exercising handlers behind Auth.
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(ctxUserKey, user)
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
