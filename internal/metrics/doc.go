// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package metrics provides Prometheus metrics for the inventory sync pipeline.

All collectors are registered with the default registry through promauto and
exposed at /metrics by the API router.

# Available Metrics

Import Metrics:
  - ludothek_import_jobs_total: Import jobs (counter)
    Labels: kind, status
  - ludothek_import_job_duration_seconds: Job duration (histogram)
    Labels: kind
  - ludothek_import_items_total: Items added, updated or deleted (counter)
    Labels: change
  - ludothek_import_in_progress_rejections_total: Rejected concurrent imports (counter)
  - ludothek_import_last_success_timestamp: Last success per kind (gauge)

Upstream Metrics:
  - ludothek_upstream_requests_total: BoardGameGeek requests (counter)
    Labels: endpoint, status
  - ludothek_upstream_request_duration_seconds: Request latency (histogram)
  - ludothek_upstream_retries_total: Retried requests (counter)
  - ludothek_circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)

Tag and Similarity Metrics:
  - ludothek_tags_assigned_total: New tag assignments (counter)
  - ludothek_unmatched_tags_total: Raw tags without a canonical match (counter)
  - ludothek_similarity_edges: Edges after the last refresh (gauge)

Database and API Metrics:
  - ludothek_duckdb_query_duration_seconds, ludothek_duckdb_query_errors_total
  - ludothek_api_requests_total, ludothek_api_request_duration_seconds,
    ludothek_api_active_requests

# Usage

	start := time.Now()
	stats, err := coordinator.Run(ctx, importer.JobQuickSync, params)
	metrics.RecordImportJob("quick_sync", time.Since(start), err)
*/
package metrics
