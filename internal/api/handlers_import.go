// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/ludothek/internal/importer"
	"github.com/tomtom215/ludothek/internal/logging"
)

// defaultHistoryLimit is the page size of GET /import/history.
const defaultHistoryLimit = 20

// runJob runs kind synchronously on a context detached from the request so a
// dropped connection does not abort a half-written import.
func (h *Handler) runJob(w http.ResponseWriter, r *http.Request, kind importer.JobKind, params importer.Params) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.jobTimeout)
	defer cancel()

	logging.Ctx(r.Context()).Info().Str("kind", string(kind)).Msg("Import requested")

	result, err := h.coord.Run(ctx, kind, params)
	if err != nil {
		writeFailure(w, r, err, result)
		return
	}
	WriteSuccess(w, r, result)
}

// ImportQuick handles POST /api/v1/import/quick.
func (h *Handler) ImportQuick(w http.ResponseWriter, r *http.Request) {
	var req QuickImportRequest
	if err := decodeJSONBody(r, &req); err != nil {
		NewResponseWriter(w, r).ValidationError(err.Error(), nil)
		return
	}
	h.runJob(w, r, importer.JobQuickSync, importer.Params{FastMode: req.FastMode})
}

// ImportFull handles POST /api/v1/import/full.
func (h *Handler) ImportFull(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, importer.JobFullSync, importer.Params{})
}

// ImportCollection handles POST /api/v1/import/collection.
func (h *Handler) ImportCollection(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, importer.JobCollectionOnly, importer.Params{})
}

// ImportComplete handles POST /api/v1/import/complete.
func (h *Handler) ImportComplete(w http.ResponseWriter, r *http.Request) {
	h.runJob(w, r, importer.JobCompleteSync, importer.Params{})
}

// ImportTags handles POST /api/v1/import/tags.
func (h *Handler) ImportTags(w http.ResponseWriter, r *http.Request) {
	var req TagPassRequest
	if err := decodeJSONBody(r, &req); err != nil {
		NewResponseWriter(w, r).ValidationError(err.Error(), nil)
		return
	}
	h.runJob(w, r, importer.JobTagPass, importer.Params{OnlyMissing: req.OnlyMissing})
}

// ImportSimilarities handles POST /api/v1/import/similarities.
func (h *Handler) ImportSimilarities(w http.ResponseWriter, r *http.Request) {
	var req SimilarityRequest
	if err := decodeJSONBody(r, &req); err != nil {
		NewResponseWriter(w, r).ValidationError(err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	h.runJob(w, r, importer.JobSimilarityPass, importer.Params{TopK: req.TopK})
}

// ImportStatus handles GET /api/v1/import/status.
func (h *Handler) ImportStatus(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.coord.Status())
}

// ImportHistory handles GET /api/v1/import/history.
func (h *Handler) ImportHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query().Get("limit"), defaultHistoryLimit)
	if err != nil {
		NewResponseWriter(w, r).ValidationError("limit: "+err.Error(), nil)
		return
	}
	req := HistoryRequest{Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	runs, err := h.coord.History(r.Context(), req.Limit)
	if err != nil {
		writeFailure(w, r, err, nil)
		return
	}
	if runs == nil {
		runs = []importer.JobResult{}
	}
	WriteSuccess(w, r, runs)
}

// SimilarGames handles GET /api/v1/games/{id}/similar.
func (h *Handler) SimilarGames(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(chi.URLParam(r, "id"), 0)
	if err != nil {
		NewResponseWriter(w, r).ValidationError("id: "+err.Error(), nil)
		return
	}
	limit, err := intParam(r.URL.Query().Get("limit"), 0)
	if err != nil {
		NewResponseWriter(w, r).ValidationError("limit: "+err.Error(), nil)
		return
	}
	req := SimilarGamesRequest{ID: id, Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ids, err := h.coord.TopSimilar(r.Context(), req.ID, req.Limit)
	if err != nil {
		writeFailure(w, r, err, nil)
		return
	}
	if ids == nil {
		ids = []int{}
	}
	WriteSuccess(w, r, map[string]interface{}{
		"bgg_id":  req.ID,
		"similar": ids,
	})
}
