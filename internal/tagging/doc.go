// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package tagging maps BoardGameGeek crowd tags onto the library's controlled
tag vocabulary.

For every target item the Normalizer fetches the raw tags, matches each one
against the active canonical tags, filters the matches through the rule
tables in rules.go and records the assignments the item does not have yet.
All new assignments of a pass are written in one transaction. Existing
assignments are never removed, so re-running with unchanged upstream tags
adds nothing.

# Matching

Matching is case-insensitive. A raw tag equal to a canonical label wins;
otherwise the first canonical tag (by id) listing the raw tag as a synonym
is used. Unmatched raw tags are counted and dropped.

# Vocabulary

SeedVocabulary loads canonical tags from a YAML file:

	tags:
	  - normalized_tag: Co-op
	    german_normalized_tag: Kooperativ
	    synonyms: [cooperative, coop, cooperative game]
	    priority: 3
	    is_active: true
*/
package tagging
