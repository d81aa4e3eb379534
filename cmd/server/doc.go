// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package main is the entry point for the Ludothek server.

Ludothek mirrors a BoardGameGeek collection into a local DuckDB inventory,
normalizes user tags onto a canonical vocabulary and keeps a table of
similar games per title. Jobs are started over a small admin HTTP API or
by the optional scheduler.

# Application Architecture

The server runs under a Suture v4 supervision tree:

	RootSupervisor ("ludothek")
	├── JobsSupervisor ("jobs-layer")
	│   └── Scheduled sync (optional, SYNC_SCHEDULE_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── Admin HTTP server

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB inventory, tag and similarity tables
 4. Vocabulary: optional YAML seed of canonical tags
 5. Upstream: BoardGameGeek client behind a circuit breaker and rate limiter
 6. Import coordinator: one job at a time, run history in BadgerDB
 7. Supervisor Tree: HTTP server and scheduler

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Upstream
	BGG_USERNAME=<user>          # collection owner
	BGG_PASSWORD=<password>      # only needed for full (private) syncs
	BGG_API_TOKEN=<token>        # optional bearer token

	# Storage
	DUCKDB_PATH=/data/ludothek.duckdb
	PROGRESS_PATH=/data/progress # empty keeps run history in memory

	# Server
	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Scheduler
	SYNC_SCHEDULE_ENABLED=false
	SYNC_SCHEDULE_INTERVAL=6h
	SYNC_SCHEDULE_RUN_ON_STARTUP=false
	SYNC_FAST_MODE=false

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server gracefully, a running job observes the cancellation at its next
upstream call, and the database and history store are closed last.
*/
package main
