package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/pet-bank/internal/metrics"
)

// Metrics records the duration of every request by its route template.
func Metrics() gin.HandlerFunc {
	return func(gctx *gin.Context) {
		start := time.Now()

		gctx.Next()

		route := gctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequestDuration.
			WithLabelValues(gctx.Request.Method, route, strconv.Itoa(gctx.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
