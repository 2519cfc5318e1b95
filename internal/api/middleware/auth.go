package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolsync/backend/pkg/jwt"
	"schoolsync/backend/pkg/redis"
	"schoolsync/backend/pkg/response"
)

// JWTAuth guards routes with a bearer access token. cache may be nil;
// blacklist checks are then skipped and tokens die only by expiry.
func JWTAuth(tokens *jwt.Manager, cache *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c, 40100, "missing bearer token")
			c.Abort()
			return
		}

		claims, err := tokens.ParseToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			response.Unauthorized(c, 40100, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			response.Unauthorized(c, 40100, "access token required")
			c.Abort()
			return
		}

		if cache != nil {
			blacklisted, err := cache.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis down: fail open, signed tokens still expire.
				logger.Warn("blacklist check failed", zap.Error(err))
			} else if blacklisted {
				response.Unauthorized(c, 40100, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set("auth_subject", claims.Subject)
		c.Next()
	}
}
