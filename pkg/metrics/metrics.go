package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eduflow_http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eduflow_http_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eduflow_db_query_duration_seconds",
			Help:    "Database query latency distribution, by operation and table.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "table"},
	)

	viewIncrementsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eduflow_content_view_increments_total",
			Help: "Total number of content view counter bumps issued.",
		},
	)

	historyInsertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eduflow_history_inserts_total",
			Help: "Total number of history rows recorded for detail-page loads.",
		},
	)
)

// Middleware collects request count and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordDBQuery records latency for a database query.
func RecordDBQuery(operation, table string, elapsed time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(elapsed.Seconds())
}

// RecordViewIncrement counts a fired view counter bump.
func RecordViewIncrement() {
	viewIncrementsTotal.Inc()
}

// RecordHistoryInsert counts a recorded history row.
func RecordHistoryInsert() {
	historyInsertsTotal.Inc()
}
