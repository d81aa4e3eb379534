// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package bgg is the BoardGameGeek upstream client.

It covers four endpoints:
  - xmlapi2/collection: a user's collection as XML, public or with privateinfo
  - xmlapi2/thing: per-game details in batches of up to 20 ids
  - api/tags: crowd tags for one game as JSON
  - login/api/v1: session login for the private collection

BoardGameGeek queues collection and thing requests. While a response is being
prepared it answers HTTP 202, or HTTP 200 with a <message> body; both surface
as ErrNotReady so callers can retry on their own schedule.

# Resilience

Every request passes a token-bucket limiter (golang.org/x/time/rate). A 429
is retried once after Retry-After, then reported as ErrRateLimited.
CircuitBreakerClient wraps the client with sony/gobreaker; ErrNotReady does
not count as a failure.

# Usage

	client, err := bgg.NewCircuitBreakerClient(&cfg.BGG)
	if err != nil {
		return err
	}
	xml, err := client.FetchCollection(ctx, "meeple", false)
	if errors.Is(err, bgg.ErrNotReady) {
		// retry later
	}
*/
package bgg
