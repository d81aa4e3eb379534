// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package api

import (
	"net/http"
	"time"
)

// HealthLive returns 200 while the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 only when the database answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil || h.db.Ping(r.Context()) != nil {
		NewResponseWriter(w, r).ServiceUnavailable("Database is not reachable")
		return
	}
	WriteSuccess(w, r, map[string]interface{}{
		"ready":          true,
		"import_running": h.coord.Status().Running,
	})
}
