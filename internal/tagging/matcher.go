// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package tagging

import (
	"strings"

	"github.com/tomtom215/ludothek/internal/models"
)

// matcher resolves raw tags to canonical tags.
type matcher struct {
	byKey map[string]int // lowercase label -> index into tags
	tags  []models.CanonicalTag
	syns  [][]string // lowercase synonyms, parallel to tags
}

// newMatcher indexes tags. Tags must already be ordered by id.
func newMatcher(tags []models.CanonicalTag) *matcher {
	m := &matcher{
		byKey: make(map[string]int, len(tags)),
		tags:  tags,
		syns:  make([][]string, len(tags)),
	}
	for i := range tags {
		key := tags[i].Key()
		if _, dup := m.byKey[key]; !dup {
			m.byKey[key] = i
		}
		for _, s := range tags[i].Synonyms {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				m.syns[i] = append(m.syns[i], s)
			}
		}
	}
	return m
}

// match returns the canonical tag for raw, preferring an exact label match.
func (m *matcher) match(raw string) (models.CanonicalTag, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return models.CanonicalTag{}, false
	}
	if i, ok := m.byKey[raw]; ok {
		return m.tags[i], true
	}
	for i, syns := range m.syns {
		for _, s := range syns {
			if s == raw {
				return m.tags[i], true
			}
		}
	}
	return models.CanonicalTag{}, false
}

// matchAll resolves raws and returns the distinct matches in first-seen
// order together with the number of raw tags that matched nothing.
func (m *matcher) matchAll(raws []string) (matched []models.CanonicalTag, unmatched int) {
	seen := make(map[int]struct{}, len(raws))
	for _, raw := range raws {
		tag, ok := m.match(raw)
		if !ok {
			unmatched++
			continue
		}
		if _, dup := seen[tag.ID]; dup {
			continue
		}
		seen[tag.ID] = struct{}{}
		matched = append(matched, tag)
	}
	return matched, unmatched
}
