package ratelimit

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/syter/media/internal/httputil"
)

// unknownClientKey buckets requests whose client address cannot be resolved.
// They share one window rather than bypassing the limiter.
const unknownClientKey = "unknown"

// Middleware enforces per-client rate limiting keyed by client address.
//
// Rejections render 429 with the X-RateLimit-Limit, X-RateLimit-Remaining and
// Retry-After headers attached by the error mapper.
func Middleware(limiter *Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if key == "" {
			key = unknownClientKey
		}

		if err := limiter.Allow(key, time.Now()); err != nil {
			logger.Debug("rate limit exceeded", slog.String("client", key))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
