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
		Name: "newshub_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "newshub_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// InteractionToggles counts like and favorite toggles by type and action.
	InteractionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newshub_interaction_toggles_total",
		Help: "Total number of interaction toggles by type and resulting action",
	}, []string{"type", "action"})

	// InteractionRecordDrops counts best-effort interaction records that failed
	// to persist and were dropped.
	InteractionRecordDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newshub_interaction_record_drops_total",
		Help: "Total number of interaction records dropped after a store failure",
	})

	// CacheHits counts cache lookups by resource and outcome.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newshub_cache_lookups_total",
		Help: "Total number of cache lookups by resource and outcome",
	}, []string{"resource", "outcome"})

	// FeedItemsIngested counts articles stored by the feed ingestion worker.
	FeedItemsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newshub_feed_items_ingested_total",
		Help: "Total number of feed items ingested by source",
	}, []string{"source"})

	// FeedFetchErrors counts feed fetch failures by source.
	FeedFetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newshub_feed_fetch_errors_total",
		Help: "Total number of feed fetch failures by source",
	}, []string{"source"})
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

// RecordToggle increments the toggle counter.
func RecordToggle(interactionType, action string) {
	InteractionToggles.WithLabelValues(interactionType, action).Inc()
}

// RecordCacheLookup increments the cache lookup counter.
func RecordCacheLookup(resource string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CacheHits.WithLabelValues(resource, outcome).Inc()
}
