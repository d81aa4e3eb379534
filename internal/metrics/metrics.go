// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Import Job Metrics
	ImportJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ludothek_import_jobs_total",
			Help: "Total number of import jobs by kind and outcome",
		},
		[]string{"kind", "status"}, // status: "success", "failed", "rejected"
	)

	ImportJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ludothek_import_job_duration_seconds",
			Help:    "Duration of import jobs in seconds",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600, 1800}, // full syncs can take many minutes
		},
		[]string{"kind"},
	)

	ImportItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ludothek_import_items_total",
			Help: "Total number of inventory items changed by imports",
		},
		[]string{"change"}, // "added", "updated", "deleted"
	)

	ImportInProgressRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ludothek_import_in_progress_rejections_total",
			Help: "Total number of import requests rejected because another import was running",
		},
	)

	ImportLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ludothek_import_last_success_timestamp",
			Help: "Unix timestamp of the last successful import job",
		},
		[]string{"kind"},
	)

	// Upstream (BoardGameGeek) Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ludothek_upstream_requests_total",
			Help: "Total number of requests sent to BoardGameGeek",
		},
		[]string{"endpoint", "status"}, // status: HTTP status code or "error"
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ludothek_upstream_request_duration_seconds",
			Help:    "Duration of BoardGameGeek requests in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	UpstreamRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ludothek_upstream_retries_total",
			Help: "Total number of retried BoardGameGeek requests",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ludothek_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ludothek_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ludothek_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Tag and Similarity Metrics
	TagsAssignedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ludothek_tags_assigned_total",
			Help: "Total number of canonical tag assignments created",
		},
	)

	UnmatchedTagsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ludothek_unmatched_tags_total",
			Help: "Total number of raw tags that matched no canonical tag",
		},
	)

	SimilarityEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ludothek_similarity_edges",
			Help: "Number of similarity edges after the last refresh",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ludothek_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ludothek_duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ludothek_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ludothek_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 60, 300},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ludothek_api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordImportJob records the outcome of an import job.
func RecordImportJob(kind string, duration time.Duration, err error) {
	ImportJobDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if err != nil {
		ImportJobsTotal.WithLabelValues(kind, "failed").Inc()
		return
	}
	ImportJobsTotal.WithLabelValues(kind, "success").Inc()
	ImportLastSuccess.WithLabelValues(kind).Set(float64(time.Now().Unix()))
}

// RecordImportRejected records an import refused by the single-flight guard.
func RecordImportRejected(kind string) {
	ImportJobsTotal.WithLabelValues(kind, "rejected").Inc()
	ImportInProgressRejections.Inc()
}

// RecordItemChanges records per-change-type item counts from a reconcile.
func RecordItemChanges(added, updated, deleted int) {
	ImportItemsTotal.WithLabelValues("added").Add(float64(added))
	ImportItemsTotal.WithLabelValues("updated").Add(float64(updated))
	ImportItemsTotal.WithLabelValues("deleted").Add(float64(deleted))
}

// RecordUpstreamRequest records a BoardGameGeek request. status is the HTTP
// status code, or "error" when no response was received.
func RecordUpstreamRequest(endpoint, status string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordUpstreamRetry records a retry against a BoardGameGeek endpoint.
func RecordUpstreamRetry(endpoint string) {
	UpstreamRetriesTotal.WithLabelValues(endpoint).Inc()
}

// RecordTagPass records the results of a tag normalization pass.
func RecordTagPass(assigned, unmatched int) {
	TagsAssignedTotal.Add(float64(assigned))
	UnmatchedTagsTotal.Add(float64(unmatched))
}

// RecordSimilarityRefresh records the edge count written by a refresh.
func RecordSimilarityRefresh(edges int) {
	SimilarityEdges.Set(float64(edges))
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// StateLabel normalizes a circuit breaker state name for metric labels.
func StateLabel(state string) string {
	return strings.ReplaceAll(strings.ToLower(state), " ", "-")
}
