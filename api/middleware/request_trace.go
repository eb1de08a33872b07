package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const headerRequestID = "X-Request-Id"

// RequestTrace guarantees every inbound request carries a request ID and
// echoes it on the response so callers can correlate logs.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Request.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request.Header.Set(headerRequestID, requestID)
		}
		c.Writer.Header().Set(headerRequestID, requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}
