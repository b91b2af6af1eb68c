// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "unburden_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "unburden_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ConfessionsCreatedTotal counts confessions created through the API.
	ConfessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unburden_confessions_created_total",
		Help: "Total number of confessions created",
	})

	// EngagementEventsTotal counts likes, unlikes, comments and follow changes.
	EngagementEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "unburden_engagement_events_total",
		Help: "Total engagement events by type",
	}, []string{"event_type"})

	// AccountDeletionsTotal counts completed account deletion cascades.
	AccountDeletionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unburden_account_deletions_total",
		Help: "Total number of account deletion cascades completed",
	})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
