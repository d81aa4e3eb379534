// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package reconcile diffs a parsed collection snapshot against the stored
library and commits the difference in one transaction.

BuildPlan is pure: it compares the stored items with the incoming records and
returns the creates, updates and deletes. Reconciler.Reconcile loads the
stored items, builds the plan and hands it to the store, which applies it
atomically.

# Update Rules

A stored field is only replaced by a non-nil incoming value that differs.
Unknown incoming values never erase known ones.

When Quantity changes, Available moves by the same delta and is clamped to
[0, Quantity], so copies currently lent out stay lent out. An annotation that
sets Available explicitly wins over the shift.

# Modes

ModeFull adds, updates and deletes. ModeAddOnly is used by the quick sync: it
adds and deletes but never touches existing rows.
*/
package reconcile
