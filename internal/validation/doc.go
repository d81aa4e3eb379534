// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the whole process. It caches struct
// metadata, so reusing it is cheaper than building one per call. Field names in
// error messages come from the struct's json or koanf tag, which keeps API
// and configuration errors aligned with what the caller actually typed.
//
// Custom tags:
//   - loglevel: value must be a level understood by internal/logging
//
// Example:
//
//	type refreshRequest struct {
//	    TopK int `json:"top_k" validate:"min=1,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    rw.ValidationError(apiErr.Message, apiErr.Details)
//	}
package validation
