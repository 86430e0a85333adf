package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"youthhub/api/internal/apierr"
)

// ErrorHandler renders every error attached to the context through the one
// response envelope. Domain errors keep their status and message; anything
// unrecognized becomes a generic 500, with the underlying detail exposed
// only outside production.
func ErrorHandler(log zerolog.Logger, environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := apierr.Remap(c.Errors.Last().Err)

		var apiErr *apierr.Error
		if errors.As(err, &apiErr) {
			body := gin.H{
				"success": false,
				"message": apiErr.Message,
			}
			if len(apiErr.Fields) > 0 {
				body["errors"] = apiErr.Fields
			}
			c.JSON(apiErr.Status, body)
			return
		}

		log.Error().
			Err(err).
			Str("request_id", c.Writer.Header().Get(requestIDHeader)).
			Str("path", c.Request.URL.Path).
			Msg("unhandled error")

		body := gin.H{
			"success": false,
			"message": "Internal server error",
		}
		if environment != "production" {
			body["error"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
