package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolsync/backend/pkg/response"
)

// BodyLimit rejects request bodies larger than maxBytes. Oversized
// payloads fail inside the handler's bind with a wrapped
// MaxBytesError, so the declared Content-Length is checked up front
// and the reader capped for chunked requests.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 41300, "request body too large")
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
