// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "estately_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ModerationDecisions counts approve/reject decisions.
	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "estately_moderation_decisions_total",
		Help: "Total number of moderation decisions by outcome",
	}, []string{"decision"})

	// PendingProperties is the size of the moderation queue at the last digest run.
	PendingProperties = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "estately_pending_properties",
		Help: "Number of listings awaiting moderation",
	})

	// SearchCacheLookups counts search cache lookups by result (hit, miss, error).
	SearchCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "estately_search_cache_lookups_total",
		Help: "Search cache lookups by result",
	}, []string{"result"})

	// NotificationsDelivered counts owner notifications received from pub/sub by event type.
	NotificationsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "estately_notifications_delivered_total",
		Help: "Owner notifications received from Redis pub/sub by event type",
	}, []string{"type"})
)
