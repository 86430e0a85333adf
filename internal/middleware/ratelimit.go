package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"youthhub/api/internal/apierr"
	"youthhub/api/internal/config"
	"youthhub/api/internal/i18n"
)

// RateLimit enforces a fixed-window per-IP quota backed by redis. Auth
// endpoints get a separate, stricter quota under their own name. Redis
// being down degrades to letting traffic through.
func RateLimit(client *redis.Client, cfg config.RateLimitConfig, name string, max int, messageKey string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Disabled || client == nil {
			c.Next()
			return
		}

		window := time.Now().Unix() / int64(cfg.Window.Seconds())
		key := fmt.Sprintf("rl:%s:%s:%d", name, c.ClientIP(), window)

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("rate limit counter unavailable")
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(c.Request.Context(), key, cfg.Window)
		}

		if count > int64(max) {
			abortWithError(c, apierr.TooManyRequests(i18n.T(messageKey, Lang(c))))
			return
		}

		c.Next()
	}
}
