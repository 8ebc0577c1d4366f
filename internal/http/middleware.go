package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the Gin context key holding the per-request id.
const RequestIDKey = "request_id"

// RequestIDHeader is echoed on every response so clients can correlate logs.
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags every request with a UUID, honouring one supplied
// by the client.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestID returns the current request's id, or an empty string outside the
// middleware.
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
