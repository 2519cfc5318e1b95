package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolsync/backend/pkg/redis"
	"schoolsync/backend/pkg/response"
)

// RateLimit caps requests per client IP within a fixed window. With no
// Redis it becomes a no-op rather than blocking traffic.
func RateLimit(cache *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := cache.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 42900, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
