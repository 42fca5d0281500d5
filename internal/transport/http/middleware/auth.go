package middleware

import (
	"errors"
	"net/http"
	"strings"

	"applytrack/api/internal/token"
	"github.com/gin-gonic/gin"
)

const (
	errMissingToken = "Missing auth token"
	errTokenInvalid = "Invalid or expired token"

	detailExpired   = "The token has expired. Please sign in again."
	detailMalformed = "Invalid or malformed token."
)

// Auth validates a Bearer session token and sets "userID" in the gin
// context. The 401 detail distinguishes an expired token from a bad one.
func Auth(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingToken})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")

		subject, err := codec.Verify(raw)
		if err != nil {
			detail := detailMalformed
			if errors.Is(err, token.ErrExpired) {
				detail = detailExpired
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": errTokenInvalid, "details": detail})
			return
		}

		c.Set("userID", subject)
		c.Next()
	}
}
