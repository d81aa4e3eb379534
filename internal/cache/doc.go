// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package cache provides an in-process LRU cache with TTL expiry.

# LRU

LRU is a generic, thread-safe least recently used cache:

	c := cache.NewLRU[int, []models.SimilarityEdge](1024, 10*time.Minute)
	c.Add(13, edges)
	if edges, ok := c.Get(13); ok {
	    // cached
	}
	c.Purge() // drop everything, e.g. after the graph was rebuilt

Get, Add and Remove are O(1). Expired entries are removed lazily on access
or in bulk by CleanupExpired.

# Thread Safety

All methods are safe for concurrent use. Values are returned as stored, so
callers that mutate a cached slice must copy it first.
*/
package cache
