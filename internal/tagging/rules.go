// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package tagging

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/ludothek/internal/models"
)

// cardinalityRules drops a tag when the item's max player count is unknown
// or above the limit.
var cardinalityRules = map[string]int{
	"duel": 2,
}

// exclusionRule drops Loser when Winner is also present.
type exclusionRule struct {
	Loser  string
	Winner string
}

var exclusionRules = []exclusionRule{
	{Loser: "co-op", Winner: "competitive"},
}

// applyRules filters matched tags for item. Cardinality rules run before
// exclusion rules.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func applyRules(item *models.InventoryItem, matched []models.CanonicalTag, logger zerolog.Logger) []models.CanonicalTag {
	kept := make([]models.CanonicalTag, 0, len(matched))
	for i := range matched {
		key := matched[i].Key()
		if limit, ok := cardinalityRules[key]; ok && (item.MaxPlayers == nil || *item.MaxPlayers > limit) {
			logger.Debug().
				Int("bgg_id", item.ExternalID).
				Str("tag", matched[i].NormalizedTag).
				Int("limit", limit).
				Msg("Dropping tag, player count out of range")
			continue
		}
		kept = append(kept, matched[i])
	}

	present := make(map[string]struct{}, len(kept))
	for i := range kept {
		present[kept[i].Key()] = struct{}{}
	}

	dropped := make(map[string]struct{})
	for _, rule := range exclusionRules {
		_, hasLoser := present[rule.Loser]
		_, hasWinner := present[rule.Winner]
		if hasLoser && hasWinner {
			logger.Debug().
				Int("bgg_id", item.ExternalID).
				Str("dropped", rule.Loser).
				Str("kept", rule.Winner).
				Msg("Conflicting tags, dropping one")
			dropped[rule.Loser] = struct{}{}
		}
	}
	if len(dropped) == 0 {
		return kept
	}

	out := kept[:0]
	for i := range kept {
		if _, drop := dropped[kept[i].Key()]; !drop {
			out = append(out, kept[i])
		}
	}
	return out
}
