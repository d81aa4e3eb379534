// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package api provides the admin HTTP API for Ludothek.

The API is a thin caller of the import coordinator: every import endpoint
runs its job synchronously and answers with the job statistics.

Routes:

	POST /api/v1/import/quick          quick sync, body {"fast_mode": bool}
	POST /api/v1/import/full           full sync with the configured credentials
	POST /api/v1/import/collection     full sync without tag or similarity passes
	POST /api/v1/import/complete       full sync, tag pass, similarity refresh
	POST /api/v1/import/tags           tag pass, body {"only_missing": bool}
	POST /api/v1/import/similarities   similarity refresh, body {"top_k": 1..100}
	GET  /api/v1/import/status         running flag and last result
	GET  /api/v1/import/history        recent runs, ?limit=N
	GET  /api/v1/games/{id}/similar    similar game ids, ?limit=N
	GET  /api/v1/health/live           liveness
	GET  /api/v1/health/ready          database reachable
	GET  /metrics                      Prometheus

Responses use one envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "IMPORT_IN_PROGRESS", "message": "..."}, "meta": {...}}

Error mapping:

	importer.ErrImportInProgress   409 IMPORT_IN_PROGRESS
	request validation             400 VALIDATION_ERROR
	unknown game                   404 GAME_NOT_FOUND
	missing credentials            400 CREDENTIALS_REQUIRED
	upstream unavailable           502 UPSTREAM_UNAVAILABLE
	anything else                  500 INTERNAL_ERROR

Middleware stack: request ID, real IP, panic recovery, CORS (go-chi/cors),
security headers, per-IP rate limiting (go-chi/httprate) and Prometheus
request metrics.
*/
package api
