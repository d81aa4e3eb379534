// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package bgg

import "errors"

var (
	// ErrNotReady means the upstream queued the request; retry later.
	ErrNotReady = errors.New("bgg: response not ready")

	// ErrLoginFailed means the credentials were rejected.
	ErrLoginFailed = errors.New("bgg: login failed")

	// ErrRateLimited means the upstream kept answering 429.
	ErrRateLimited = errors.New("bgg: rate limited")

	// ErrUnavailable means the upstream could not be reached, answered with
	// a 5xx status or was cut off by the circuit breaker.
	ErrUnavailable = errors.New("bgg: upstream unavailable")
)
