package middleware

import (
	"strconv"
	"time"

	"github.com/franciscosanchezn/pizza-restaurants-api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// unmatchedRoute labels requests that hit no route, keeping label cardinality bounded
const unmatchedRoute = "unmatched"

// Metrics records request count and duration per route template
func Metrics(manager *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = unmatchedRoute
		}
		durationMs := float64(time.Since(start).Microseconds()) / 1000
		manager.RecordHTTPRequest(endpoint, c.Request.Method, strconv.Itoa(c.Writer.Status()), durationMs)
	}
}
