// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package models defines the data structures shared by the Ludothek sync pipeline.

Persisted models:

  - InventoryItem: one logical board game, keyed by its BoardGameGeek id
  - CanonicalTag: controlled-vocabulary label with synonyms and a priority weight
  - TagAssignment: (item, tag) link; at most one per pair
  - SimilarityEdge: directed, scored neighbor relation between two items

Transient models:

  - SnapshotRecord: per-item working record built by the snapshot parser
  - Details: supplementary attributes fetched by the detail enricher

Optional attributes are pointers: nil means "unknown" and is never written over
a known value during reconciliation. ItemFields.MergeFrom implements that rule
once so the parser, the enricher and the reconciler all share it.

Statistics returned by the import entry points live in stats.go.
*/
package models
