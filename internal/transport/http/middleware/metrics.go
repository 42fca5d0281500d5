package middleware

import (
	"strconv"
	"time"

	"applytrack/api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records per-route request counts and latency. Labels use the
// route template (/api/jobs/:id), not the raw URL, so document IDs and
// tokens never become label values.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			// Unmatched paths (scanner noise, typoed URLs) collapse into
			// one label to keep cardinality bounded.
			path = "unknown"
		}
		method := c.Request.Method
		duration := time.Since(start).Seconds()

		metrics.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	}
}
