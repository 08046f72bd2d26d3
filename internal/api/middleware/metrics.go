package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mpcbarbosa/SeniorCare/internal/metrics"
)

// Metrics records request count and latency by route template, so
// /medications/:id stays one series regardless of the id.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
