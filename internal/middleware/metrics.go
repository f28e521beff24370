package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haitham-dev/hudur-api/internal/service"
)

// Metrics records per-request duration and status, labelled by route
// template rather than raw path to bound cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, status, duration)
	}
}
