// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package tagging

import (
	"reflect"
	"testing"

	"github.com/tomtom215/ludothek/internal/models"
)

func TestMatcher_Match(t *testing.T) {
	m := newMatcher([]models.CanonicalTag{tagDuel, tagCoop, tagCompetitive, tagFamily})

	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"duel", "Duel", true},
		{"  DUEL ", "Duel", true},
		{"coop", "Co-op", true},
		// first tag by id listing the synonym wins
		{"cooperative", "Co-op", true},
		{"versus", "Competitive", true},
		{"kids", "Family", true},
		{"dungeon crawler", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := m.match(tt.raw)
			if ok != tt.wantOK || got.NormalizedTag != tt.want {
				t.Errorf("match(%q) = %q, %v; want %q, %v", tt.raw, got.NormalizedTag, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMatcher_ExactLabelBeatsSynonym(t *testing.T) {
	// "family" is a synonym of an earlier tag but the exact label of a later one.
	strategy := models.CanonicalTag{ID: 1, NormalizedTag: "Strategy", Synonyms: []string{"family"}}
	family := models.CanonicalTag{ID: 2, NormalizedTag: "Family"}

	got, ok := newMatcher([]models.CanonicalTag{strategy, family}).match("family")
	if !ok || got.ID != 2 {
		t.Errorf("match(family) = %+v, want the Family tag", got)
	}
}

func TestMatcher_MatchAll(t *testing.T) {
	m := newMatcher([]models.CanonicalTag{tagDuel, tagCoop, tagFamily})

	matched, unmatched := m.matchAll([]string{"coop", "cooperative", "family", "worker placement", "duel"})
	if want := []string{"Co-op", "Family", "Duel"}; !reflect.DeepEqual(names(matched), want) {
		t.Errorf("matched = %v, want %v", names(matched), want)
	}
	if unmatched != 1 {
		t.Errorf("unmatched = %d, want 1", unmatched)
	}
}
