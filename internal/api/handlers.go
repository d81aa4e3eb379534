// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/ludothek/internal/config"
	"github.com/tomtom215/ludothek/internal/database"
	"github.com/tomtom215/ludothek/internal/importer"
	"github.com/tomtom215/ludothek/internal/logging"
)

// defaultJobTimeout bounds HTTP-triggered jobs when no timeout is configured.
const defaultJobTimeout = 30 * time.Minute

// Coordinator is the part of importer.Coordinator the handlers use.
type Coordinator interface {
	Run(ctx context.Context, kind importer.JobKind, params importer.Params) (*importer.JobResult, error)
	Status() importer.Status
	History(ctx context.Context, limit int) ([]importer.JobResult, error)
	TopSimilar(ctx context.Context, itemID, displayLimit int) ([]int, error)
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, error mapping
//   - handlers_health.go: liveness and readiness
//   - handlers_import.go: import jobs, status, history, similar games
type Handler struct {
	coord      Coordinator
	db         Pinger
	jobTimeout time.Duration
	startTime  time.Time
}

// NewHandler creates a Handler. cfg may be nil in tests.
func NewHandler(coord Coordinator, db Pinger, cfg *config.Config) *Handler {
	timeout := defaultJobTimeout
	if cfg != nil && cfg.Sync.JobTimeout > 0 {
		timeout = cfg.Sync.JobTimeout
	}
	return &Handler{
		coord:      coord,
		db:         db,
		jobTimeout: timeout,
		startTime:  time.Now(),
	}
}

// writeFailure maps coordinator errors onto status codes. A non-nil result
// is attached as error details.
func writeFailure(w http.ResponseWriter, r *http.Request, err error, result *importer.JobResult) {
	rw := NewResponseWriter(w, r)

	// a nil result must stay an untyped nil so details are omitted
	var data interface{}
	if result != nil {
		data = result
	}

	var jobErr *importer.JobError
	switch {
	case errors.Is(err, importer.ErrImportInProgress):
		rw.Conflict(ErrCodeImportInProgress, "Another import job is running")
	case errors.Is(err, importer.ErrCredentialsRequired):
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeCredentialsRequired, "BoardGameGeek credentials are not configured", data)
	case errors.Is(err, database.ErrNotFound):
		rw.NotFound(ErrCodeGameNotFound, "Game not found")
	case errors.As(err, &jobErr) && jobErr.Code == importer.CodeUpstreamUnavailable:
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Import failed, BoardGameGeek unavailable")
		rw.ErrorWithDetails(http.StatusBadGateway, ErrCodeUpstreamUnavailable, "BoardGameGeek is unavailable", data)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		rw.ErrorWithDetails(http.StatusInternalServerError, ErrCodeInternalError, "Internal server error", data)
	}
}
