// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package models

import "strings"

// CanonicalTag is a controlled-vocabulary label. NormalizedTag is unique.
// Inactive tags are skipped by the tag normalizer but kept with their
// assignments.
type CanonicalTag struct {
	ID                  int      `json:"id"`
	NormalizedTag       string   `json:"normalized_tag"`
	GermanNormalizedTag string   `json:"german_normalized_tag"`
	Synonyms            []string `json:"synonyms"`
	Priority            int      `json:"priority"`
	IsActive            bool     `json:"is_active"`
}

// Key returns the lowercase normalized label used for matching and rules.
func (t *CanonicalTag) Key() string {
	return strings.ToLower(strings.TrimSpace(t.NormalizedTag))
}

// SynonymsString joins synonyms the way they are stored.
func (t *CanonicalTag) SynonymsString() string {
	return strings.Join(t.Synonyms, ",")
}

// ParseSynonyms splits a stored comma-separated synonym list, trimming blanks.
func ParseSynonyms(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TagAssignment links an item to a canonical tag.
type TagAssignment struct {
	ItemID int `json:"bgg_id"`
	TagID  int `json:"tag_id"`
}
