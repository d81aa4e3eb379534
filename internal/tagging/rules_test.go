// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package tagging

import (
	"io"
	"reflect"
	"testing"

	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/models"
)

var (
	tagDuel        = models.CanonicalTag{ID: 1, NormalizedTag: "Duel", Priority: 2, IsActive: true}
	tagCoop        = models.CanonicalTag{ID: 2, NormalizedTag: "Co-op", Synonyms: []string{"cooperative", "Coop"}, Priority: 3, IsActive: true}
	tagCompetitive = models.CanonicalTag{ID: 3, NormalizedTag: "Competitive", Synonyms: []string{"versus"}, Priority: 1, IsActive: true}
	tagFamily      = models.CanonicalTag{ID: 4, NormalizedTag: "Family", Synonyms: []string{"kids", "cooperative"}, Priority: 1, IsActive: true}
)

func names(tags []models.CanonicalTag) []string {
	out := make([]string, len(tags))
	for i := range tags {
		out[i] = tags[i].NormalizedTag
	}
	return out
}

func TestApplyRules_Duel(t *testing.T) {
	tests := []struct {
		name       string
		maxPlayers *int
		want       []string
	}{
		{"two players keeps duel", models.Ptr(2), []string{"Duel", "Family"}},
		{"one player keeps duel", models.Ptr(1), []string{"Duel", "Family"}},
		{"four players drops duel", models.Ptr(4), []string{"Family"}},
		{"unknown player count drops duel", nil, []string{"Family"}},
	}

	logger := logging.NewTestLogger(io.Discard)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &models.InventoryItem{ExternalID: 1}
			item.MaxPlayers = tt.maxPlayers

			got := applyRules(item, []models.CanonicalTag{tagDuel, tagFamily}, logger)
			if !reflect.DeepEqual(names(got), tt.want) {
				t.Errorf("applyRules() = %v, want %v", names(got), tt.want)
			}
		})
	}
}

func TestApplyRules_Exclusion(t *testing.T) {
	logger := logging.NewTestLogger(io.Discard)
	item := &models.InventoryItem{ExternalID: 1}
	item.MaxPlayers = models.Ptr(4)

	got := applyRules(item, []models.CanonicalTag{tagCoop, tagCompetitive, tagFamily}, logger)
	if want := []string{"Competitive", "Family"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("applyRules() = %v, want %v", names(got), want)
	}

	got = applyRules(item, []models.CanonicalTag{tagCoop, tagFamily}, logger)
	if want := []string{"Co-op", "Family"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("co-op alone should survive, got %v", names(got))
	}
}

func TestApplyRules_CardinalityBeforeExclusion(t *testing.T) {
	logger := logging.NewTestLogger(io.Discard)
	item := &models.InventoryItem{ExternalID: 1}
	item.MaxPlayers = models.Ptr(2)

	got := applyRules(item, []models.CanonicalTag{tagDuel, tagCoop, tagCompetitive}, logger)
	if want := []string{"Duel", "Competitive"}; !reflect.DeepEqual(names(got), want) {
		t.Errorf("applyRules() = %v, want %v", names(got), want)
	}
}
