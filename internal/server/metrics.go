package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics captures request health signals for the pricing surface.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	quotes   *prometheus.CounterVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "akwa_pricing_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "akwa_pricing_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		quotes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "akwa_pricing_quotes_total",
			Help: "Quote computations by category.",
		}, []string{"category"}),
	}
}

// RecordQuote counts one quote computation.
func (m *HTTPMetrics) RecordQuote(category string) {
	if m == nil {
		return
	}
	m.quotes.WithLabelValues(strings.TrimSpace(category)).Inc()
}

// MetricsMiddleware records per-request counters and latency.
func MetricsMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
