// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package similarity

import (
	"math"
	"sort"

	"github.com/tomtom215/ludothek/internal/models"
)

// DefaultComplexityCap is the largest complexity bonus a pair can earn.
const DefaultComplexityCap = 5.0

// priorityWeight scales the summed tag priorities into the score.
const priorityWeight = 0.1

// Score compares two profiles. ok is false when they share no tag.
func Score(a, b *models.ItemTagProfile, complexityCap float64) (edge models.SimilarityEdge, ok bool) {
	small, large := a.Tags, b.Tags
	if len(small) > len(large) {
		small, large = large, small
	}

	shared, prio := 0, 0
	for tagID := range small {
		if _, both := large[tagID]; both {
			shared++
			prio += a.Tags[tagID] + b.Tags[tagID]
		}
	}
	if shared == 0 {
		return models.SimilarityEdge{}, false
	}

	bonus := math.Max(0, complexityCap-math.Abs(a.Complexity-b.Complexity))
	return models.SimilarityEdge{
		SourceID:       a.ItemID,
		TargetID:       b.ItemID,
		Score:          float64(shared) + priorityWeight*float64(prio) + bonus,
		SharedTagCount: shared,
		TagPrioritySum: float64(prio),
	}, true
}

// BuildEdges scores every pair of profiles and keeps the topK best
// neighbors per source. The result is ordered by source, then by score.
func BuildEdges(profiles []models.ItemTagProfile, topK int, complexityCap float64) []models.SimilarityEdge {
	neighbors := make(map[int][]models.SimilarityEdge, len(profiles))

	for i := 0; i < len(profiles); i++ {
		for j := i + 1; j < len(profiles); j++ {
			if profiles[i].ItemID == profiles[j].ItemID {
				continue
			}
			edge, ok := Score(&profiles[i], &profiles[j], complexityCap)
			if !ok {
				continue
			}
			neighbors[edge.SourceID] = append(neighbors[edge.SourceID], edge)

			reverse := edge
			reverse.SourceID, reverse.TargetID = edge.TargetID, edge.SourceID
			neighbors[reverse.SourceID] = append(neighbors[reverse.SourceID], reverse)
		}
	}

	sources := make([]int, 0, len(neighbors))
	for id := range neighbors {
		sources = append(sources, id)
	}
	sort.Ints(sources)

	var edges []models.SimilarityEdge
	for _, source := range sources {
		list := neighbors[source]
		sort.Slice(list, func(x, y int) bool {
			if list[x].Score != list[y].Score {
				return list[x].Score > list[y].Score
			}
			return list[x].TargetID < list[y].TargetID
		})
		if len(list) > topK {
			list = list[:topK]
		}
		edges = append(edges, list...)
	}
	return edges
}
