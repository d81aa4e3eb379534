// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package models

// ItemUpdate is a persisted item after incoming fields were merged into it.
// Changed lists the column names that differ from the stored row.
type ItemUpdate struct {
	Item    InventoryItem
	Changed []string
}

// ReconcilePlan is the full set of writes a reconcile pass commits together.
type ReconcilePlan struct {
	Create []InventoryItem
	Update []ItemUpdate
	Delete []int
}

// Empty reports whether the plan would write nothing.
func (p *ReconcilePlan) Empty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

// Stats returns the counts the plan will produce once applied.
func (p *ReconcilePlan) Stats() SyncStats {
	return SyncStats{
		Added:   len(p.Create),
		Updated: len(p.Update),
		Deleted: len(p.Delete),
	}
}
