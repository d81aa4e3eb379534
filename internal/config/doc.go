// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package config loads Ludothek configuration with Koanf v2.

Sources are layered, highest priority last:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, else config.yaml / config.yml / /etc/ludothek/config.yaml
 3. Environment variables, mapped explicitly by envTransformFunc

Only mapped environment variables are read; unrelated variables in the
process environment never leak into the configuration.

Common variables:

	BGG_USERNAME, BGG_PASSWORD      collection owner and credentials for full sync
	BGG_API_TOKEN                   bearer token for the XML API
	DUCKDB_PATH                     database file (":memory:" for ephemeral)
	PROGRESS_PATH                   Badger directory for job history (empty = in-memory)
	SIMILARITY_TOP_K                neighbors kept per game (default 10)
	SYNC_SCHEDULE_ENABLED           run a quick sync on SYNC_SCHEDULE_INTERVAL
	HTTP_PORT, LOG_LEVEL, LOG_FORMAT

Validation uses struct tags checked by internal/validation plus a few
cross-field rules in Validate.
*/
package config
