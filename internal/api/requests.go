// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ludothek/internal/validation"
)

// maxRequestBody caps import request bodies; they carry a few flags at most.
const maxRequestBody = 64 << 10

// QuickImportRequest is the body of POST /import/quick.
type QuickImportRequest struct {
	FastMode bool `json:"fast_mode"`
}

// TagPassRequest is the body of POST /import/tags.
type TagPassRequest struct {
	OnlyMissing bool `json:"only_missing"`
}

// SimilarityRequest is the body of POST /import/similarities. Zero uses the
// configured top-K.
type SimilarityRequest struct {
	TopK int `json:"top_k" validate:"omitempty,min=1,max=100"`
}

// HistoryRequest holds the query parameters of GET /import/history.
type HistoryRequest struct {
	Limit int `json:"limit" validate:"min=1,max=500"`
}

// SimilarGamesRequest holds the parameters of GET /games/{id}/similar. Zero
// limit uses the configured display limit.
type SimilarGamesRequest struct {
	ID    int `json:"id" validate:"min=1"`
	Limit int `json:"limit" validate:"omitempty,min=1,max=100"`
}

// decodeJSONBody decodes an optional JSON body into v. An empty body leaves
// v unchanged.
func decodeJSONBody(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// validateRequest runs validator tags on v.
func validateRequest(v interface{}) *validation.APIError {
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr.ToAPIError()
	}
	return nil
}

// intParam parses an integer query or path value, returning def when raw is empty.
func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return n, nil
}
