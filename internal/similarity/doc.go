// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package similarity builds the game-to-game similarity graph from shared
canonical tags and serves randomized "similar games" lists from it.

# Scoring

For two games A and B with tag -> priority maps and complexities:

	shared = |tags(A) ∩ tags(B)|
	prio   = Σ over shared tags of (priority in A + priority in B)
	bonus  = max(0, cap - |complexity(A) - complexity(B)|)
	score  = shared + 0.1*prio + bonus

Pairs without a shared tag get no edge. Every scored pair yields an edge in
both directions and each source keeps only its K best neighbors. Equal
scores are ordered by target id so a refresh over the same data writes the
same graph.

# Display

TopSimilar reads the stored neighbors of one game, shuffles games with equal
scores, takes the first N and shuffles those again. The random source is
guarded by a mutex. With a non-zero cache size the stored neighbor lists are
kept in an LRU until the next Refresh or Invalidate.
*/
package similarity
