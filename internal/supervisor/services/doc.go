// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package services provides suture.Service wrappers for Ludothek components.

  - HTTPServerService runs an *http.Server and shuts it down gracefully when
    the supervisor stops.
  - ScheduledSyncService triggers a quick sync on a fixed interval. A tick
    that finds another job running is skipped and logged at info level.

Every service implements fmt.Stringer so suture can name it in its events.
*/
package services
