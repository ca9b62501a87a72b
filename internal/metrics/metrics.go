// Package metrics defines Prometheus metrics for searchselect.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "searchselect"

// Search client metrics.
var (
	SearchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_requests_total",
		Help:      "Total number of remote search requests by type and outcome.",
	}, []string{"type", "outcome"})

	SearchRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_request_duration_seconds",
		Help:      "Duration of remote search requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"type"})

	ClientRateLimitWaits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_rate_limit_waits_total",
		Help:      "Total number of requests that went through the client rate limiter.",
	})
)

// Widget metrics.
var (
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "widget_cache_lookups_total",
		Help:      "Widget result cache lookups by type and result (hit, miss, stale).",
	}, []string{"type", "result"})

	SearchesSuppressedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "widget_searches_suppressed_total",
		Help:      "Searches that never reached the network, by type and reason.",
	}, []string{"type", "reason"})

	StaleResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "widget_stale_responses_total",
		Help:      "Responses discarded because a newer search intent was active.",
	}, []string{"type"})

	SelectionChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "widget_selection_changes_total",
		Help:      "Total number of change notifications emitted.",
	}, []string{"type"})
)

// HTTP metrics for the mock search server.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last /healthz probe succeeded (1) or not (0).",
	})
)
