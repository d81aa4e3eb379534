// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package snapshot turns a BoardGameGeek collection document into one
SnapshotRecord per game.

The collection lists one <item> per owned copy, so a game owned twice appears
twice. Parse collapses duplicates by object id: descriptive fields follow a
"last non-nil value wins" merge while Quantity and Available are summed, so N
copies become one record with Quantity N.

# Private annotation

Authenticated fetches carry a <privateinfo> block with a free-text comment.
The library stores curated data there:

	!!! Bitte nicht verändern !!!
	{"ean":"4002051694050","inventory_location":"Shelf B"}

The last non-blank line is decoded as a JSON object and its known keys
override the fields of that occurrence. A line that does not decode leaves
the comment as plain text.

# Fault Tolerance

A single malformed attribute (minplayers="x") becomes nil and is logged. Only
a document that is not well-formed XML fails the parse.
*/
package snapshot
