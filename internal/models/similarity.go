// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package models

// SimilarityEdge is a directed neighbor relation from SourceID to TargetID.
// SourceID never equals TargetID.
type SimilarityEdge struct {
	SourceID       int     `json:"game_id"`
	TargetID       int     `json:"similar_game_id"`
	Score          float64 `json:"similarity_score"`
	SharedTagCount int     `json:"shared_tags_count"`
	TagPrioritySum float64 `json:"tag_priority_sum"`
}

// ItemTagProfile is the in-memory per-item view the similarity engine scores.
type ItemTagProfile struct {
	ItemID     int
	Tags       map[int]int // tag id -> priority
	Complexity float64
}
