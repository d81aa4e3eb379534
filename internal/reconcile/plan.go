// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package reconcile

import (
	"sort"

	"github.com/tomtom215/ludothek/internal/models"
)

// Plan is the set of writes one reconcile pass commits.
type Plan = models.ReconcilePlan

// Mode selects which kinds of change a pass may make.
type Mode int

const (
	// ModeFull creates, updates and deletes.
	ModeFull Mode = iota
	// ModeAddOnly creates and deletes; existing rows are left alone.
	ModeAddOnly
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeAddOnly:
		return "add_only"
	default:
		return "unknown"
	}
}

// BuildPlan computes the writes that bring persisted in line with incoming.
// The plan lists are ordered by external id.
func BuildPlan(persisted []models.InventoryItem, incoming map[int]*models.SnapshotRecord, mode Mode) Plan {
	var plan Plan
	existing := make(map[int]*models.InventoryItem, len(persisted))
	for i := range persisted {
		existing[persisted[i].ExternalID] = &persisted[i]
	}

	for _, id := range sortedIDs(incoming) {
		rec := incoming[id]
		current, found := existing[id]
		if !found {
			plan.Create = append(plan.Create, rec.ToItem())
			continue
		}
		if mode == ModeAddOnly {
			continue
		}
		if update, changed := diff(*current, rec); changed {
			plan.Update = append(plan.Update, update)
		}
	}

	for id := range existing {
		if _, keep := incoming[id]; !keep {
			plan.Delete = append(plan.Delete, id)
		}
	}
	sort.Ints(plan.Delete)

	return plan
}

// diff merges rec into a copy of current and reports whether anything changed.
func diff(current models.InventoryItem, rec *models.SnapshotRecord) (models.ItemUpdate, bool) {
	item := current
	changed := item.MergeFrom(&rec.ItemFields)

	before := current.Available
	if rec.Quantity != item.Quantity {
		item.Available += rec.Quantity - item.Quantity
		item.Quantity = rec.Quantity
		changed = append(changed, "quantity")
	}
	if rec.AvailableOverride {
		item.Available = rec.Available
	}
	item.ClampAvailable()
	if item.Available != before {
		changed = append(changed, "available")
	}

	return models.ItemUpdate{Item: item, Changed: changed}, len(changed) > 0
}

func sortedIDs(records map[int]*models.SnapshotRecord) []int {
	ids := make([]int, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
