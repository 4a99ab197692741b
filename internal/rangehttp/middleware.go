package rangehttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/signalsfoundry/slant-range/internal/logging"
	"github.com/signalsfoundry/slant-range/internal/observability"
	"github.com/signalsfoundry/slant-range/internal/ratelimit"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

func requestID(base logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if incoming := c.GetHeader(RequestIDHeader); incoming != "" {
			ctx = logging.ContextWithRequestID(ctx, incoming)
		}
		ctx, id := logging.EnsureRequestID(ctx)
		reqLog := base.With(
			logging.String("http_method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
		)
		ctx = logging.ContextWithLogger(ctx, reqLog)

		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()
		reqLog.Debug(ctx, "request served",
			logging.Int("status", c.Writer.Status()),
			logging.Any("elapsed", time.Since(start)),
		)
	}
}

func metrics(collector *observability.RangeCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		collector.ObserveRequest(observability.TransportHTTP, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func rateLimit(limiter *ratelimit.KeyedLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
