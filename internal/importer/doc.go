// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package importer runs the library's import jobs one at a time.

The Coordinator owns a non-blocking guard: a job started while another is
running fails immediately with ErrImportInProgress instead of queueing.
Inside a job the steps run sequentially:

	quick_sync       public collection -> parse -> enrich new ids (fast mode) -> add-only reconcile
	full_sync        login -> private collection -> parse -> enrich all -> full reconcile
	collection_only  same as full_sync
	complete_sync    full_sync -> tag pass (untagged items) -> similarity refresh
	tag_pass         tag normalization
	similarity_pass  similarity refresh

Every run gets a UUID run id, is logged with it and is stored in the job
History (BadgerDB, or memory when no path is configured).

# Errors

Failures are returned as *JobError with a stable Code. Use errors.Is on the
JobError to test for the underlying cause, for example bgg.ErrNotReady when
the collection never became available.

# Read Path

TopSimilar does not take the guard and can run while a job is active.
*/
package importer
