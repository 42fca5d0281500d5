package middleware

import (
	"applytrack/api/internal/requestid"
	"github.com/gin-gonic/gin"
)

// RequestID makes every request traceable end to end: a client-supplied
// ID is trusted as-is so the frontend can correlate its own logs,
// otherwise one is minted here. The ID lands in the request context and
// on the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestid.Header)
		if id == "" {
			id = requestid.New()
		}

		ctx := requestid.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestid.Header, id)
		c.Next()
	}
}
