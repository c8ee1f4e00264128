// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TourLockWait measures how long a mutation waited for the tour lock
	TourLockWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tours_lock_wait_seconds",
			Help:    "Time spent acquiring the per-tour lock",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // create, update, delete, reorder
	)

	GeometryRecomputes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tours_geometry_recomputes_total",
			Help: "Total number of tour bounding box/center recomputations",
		},
	)

	ReorderRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tours_reorder_rejections_total",
			Help: "Reorder requests rejected by validation",
		},
		[]string{"reason"}, // foreign, missing, duplicate
	)

	TxRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tours_tx_retries_total",
			Help: "Transactions retried after a deadlock or busy error",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tours_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	PublishedCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tours_published_cache_results_total",
			Help: "Published tour cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)
)
