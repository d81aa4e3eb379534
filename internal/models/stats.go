// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package models

// SyncStats is the result of one reconcile pass.
type SyncStats struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

// Add accumulates other into s.
func (s *SyncStats) Add(other SyncStats) {
	s.Added += other.Added
	s.Updated += other.Updated
	s.Deleted += other.Deleted
}

// TagStats is the result of one tag normalization pass.
type TagStats struct {
	ItemsProcessed int `json:"items_processed"`
	ItemsChanged   int `json:"items_changed"`
	TagsAssigned   int `json:"tags_assigned"`
}
