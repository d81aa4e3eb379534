// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/ludothek/internal/config"
	"github.com/tomtom215/ludothek/internal/models"
)

// testDBSemaphore serializes DuckDB tests; concurrent CGO connections can hang under CI load.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates a new in-memory database that is closed when the test ends.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", Threads: 2})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

func newItem(id int, name string, qty, avail int) models.InventoryItem {
	it := models.InventoryItem{ExternalID: id, Quantity: qty, Available: avail}
	it.Name = models.Ptr(name)
	return it
}

func TestNew_CreatesSchemaIdempotently(t *testing.T) {
	db := setupTestDB(t)

	if err := db.initialize(); err != nil {
		t.Fatalf("second initialize failed: %v", err)
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
}

func TestApplyPlan_CreateUpdateDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	err := db.ApplyPlan(ctx, models.ReconcilePlan{
		Create: []models.InventoryItem{
			newItem(1, "Catan", 1, 1),
			newItem(2, "Azul", 2, 2),
			newItem(3, "Patchwork", 1, 5),
		},
	})
	if err != nil {
		t.Fatalf("ApplyPlan(create) error = %v", err)
	}

	items, err := db.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if items[2].Available != 1 {
		t.Errorf("Available = %d, want clamped to quantity 1", items[2].Available)
	}
	if items[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	updated := items[0]
	updated.Complexity = models.Ptr(2.5)
	updated.Quantity = 2
	updated.Available = 2
	err = db.ApplyPlan(ctx, models.ReconcilePlan{
		Update: []models.ItemUpdate{{Item: updated, Changed: []string{"complexity", "quantity"}}},
		Delete: []int{2},
	})
	if err != nil {
		t.Fatalf("ApplyPlan(update/delete) error = %v", err)
	}

	got, err := db.GetItem(ctx, 1)
	if err != nil {
		t.Fatalf("GetItem(1) error = %v", err)
	}
	if got.Complexity == nil || *got.Complexity != 2.5 || got.Quantity != 2 {
		t.Errorf("item 1 not updated: complexity=%v quantity=%d", got.Complexity, got.Quantity)
	}
	if *got.Name != "Catan" {
		t.Errorf("Name = %q, want Catan", *got.Name)
	}

	if _, err := db.GetItem(ctx, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetItem(2) error = %v, want ErrNotFound", err)
	}
	exists, err := db.ItemExists(ctx, 3)
	if err != nil || !exists {
		t.Errorf("ItemExists(3) = %v, %v", exists, err)
	}
}

func TestApplyPlan_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.ApplyPlan(ctx, models.ReconcilePlan{Create: []models.InventoryItem{newItem(1, "Catan", 1, 1)}}); err != nil {
		t.Fatalf("seed ApplyPlan error = %v", err)
	}

	// Duplicate primary key makes the insert fail after the delete already ran.
	err := db.ApplyPlan(ctx, models.ReconcilePlan{
		Create: []models.InventoryItem{newItem(5, "Root", 1, 1), newItem(5, "Root", 1, 1)},
		Delete: []int{1},
	})
	if err == nil {
		t.Fatal("expected error for duplicate id")
	}

	ids, err := db.ItemIDs(ctx)
	if err != nil {
		t.Fatalf("ItemIDs() error = %v", err)
	}
	if _, ok := ids[1]; !ok || len(ids) != 1 {
		t.Errorf("ids = %v, want only item 1 after rollback", ids)
	}
}

func TestApplyPlan_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.ApplyPlan(ctx, models.ReconcilePlan{
		Create: []models.InventoryItem{newItem(1, "A", 1, 1), newItem(2, "B", 1, 1)},
	}); err != nil {
		t.Fatalf("ApplyPlan error = %v", err)
	}
	tagID, err := db.UpsertTag(ctx, &models.CanonicalTag{NormalizedTag: "Strategy", Priority: 2, IsActive: true})
	if err != nil {
		t.Fatalf("UpsertTag error = %v", err)
	}
	if _, err := db.AddAssignments(ctx, []models.TagAssignment{{ItemID: 1, TagID: tagID}, {ItemID: 2, TagID: tagID}}); err != nil {
		t.Fatalf("AddAssignments error = %v", err)
	}
	if _, err := db.ReplaceEdges(ctx, []models.SimilarityEdge{
		{SourceID: 1, TargetID: 2, Score: 6.4, SharedTagCount: 1, TagPrioritySum: 4},
		{SourceID: 2, TargetID: 1, Score: 6.4, SharedTagCount: 1, TagPrioritySum: 4},
	}); err != nil {
		t.Fatalf("ReplaceEdges error = %v", err)
	}

	if err := db.ApplyPlan(ctx, models.ReconcilePlan{Delete: []int{1}}); err != nil {
		t.Fatalf("ApplyPlan(delete) error = %v", err)
	}

	assignments, err := db.AssignmentsByItem(ctx)
	if err != nil {
		t.Fatalf("AssignmentsByItem error = %v", err)
	}
	if _, ok := assignments[1]; ok {
		t.Error("assignments of deleted item should be gone")
	}
	if _, ok := assignments[2][tagID]; !ok {
		t.Error("assignments of surviving item should remain")
	}
	if n, _ := db.CountEdges(ctx); n != 0 {
		t.Errorf("CountEdges = %d, want 0 (both directions removed)", n)
	}
}

func TestUpsertTag(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	coop := &models.CanonicalTag{NormalizedTag: "Co-op", Synonyms: []string{"cooperative", "coop"}, Priority: 3, IsActive: true}
	id, err := db.UpsertTag(ctx, coop)
	if err != nil {
		t.Fatalf("UpsertTag error = %v", err)
	}
	if coop.ID != id {
		t.Errorf("tag.ID = %d, want %d", coop.ID, id)
	}

	again, err := db.UpsertTag(ctx, &models.CanonicalTag{NormalizedTag: "co-op", Priority: 5, IsActive: false})
	if err != nil {
		t.Fatalf("second UpsertTag error = %v", err)
	}
	if again != id {
		t.Errorf("upsert with same label returned id %d, want %d", again, id)
	}
	if _, err := db.UpsertTag(ctx, &models.CanonicalTag{NormalizedTag: "Duel", IsActive: true}); err != nil {
		t.Fatalf("UpsertTag(Duel) error = %v", err)
	}
	if _, err := db.UpsertTag(ctx, &models.CanonicalTag{NormalizedTag: "  "}); err == nil {
		t.Error("empty label should be rejected")
	}

	all, err := db.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(ListTags) = %d, want 2", len(all))
	}
	if all[0].Priority != 5 || all[0].IsActive || len(all[0].Synonyms) != 0 {
		t.Errorf("updated tag = %+v", all[0])
	}

	active, err := db.ListActiveTags(ctx)
	if err != nil {
		t.Fatalf("ListActiveTags error = %v", err)
	}
	if len(active) != 1 || active[0].NormalizedTag != "Duel" {
		t.Errorf("ListActiveTags = %+v, want only Duel", active)
	}
}

func TestAssignmentsAndTaggingTargets(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.ApplyPlan(ctx, models.ReconcilePlan{
		Create: []models.InventoryItem{newItem(10, "A", 1, 1), newItem(20, "B", 1, 1)},
	}); err != nil {
		t.Fatalf("ApplyPlan error = %v", err)
	}
	tagID, err := db.UpsertTag(ctx, &models.CanonicalTag{NormalizedTag: "Family", IsActive: true})
	if err != nil {
		t.Fatalf("UpsertTag error = %v", err)
	}

	added, err := db.AddAssignments(ctx, []models.TagAssignment{{ItemID: 10, TagID: tagID}})
	if err != nil || len(added) != 1 {
		t.Fatalf("AddAssignments = %v, %v; want one row", added, err)
	}

	added, err = db.AddAssignments(ctx, []models.TagAssignment{{ItemID: 10, TagID: tagID}})
	if err != nil {
		t.Fatalf("repeat AddAssignments error = %v", err)
	}
	if len(added) != 0 {
		t.Errorf("repeat AddAssignments added %v, want none", added)
	}

	missing, err := db.ListTaggingTargets(ctx, true)
	if err != nil {
		t.Fatalf("ListTaggingTargets(true) error = %v", err)
	}
	if len(missing) != 1 || missing[0].ExternalID != 20 {
		t.Errorf("untagged = %+v, want only item 20", missing)
	}

	all, err := db.ListTaggingTargets(ctx, false)
	if err != nil || len(all) != 2 {
		t.Errorf("ListTaggingTargets(false) = %d items, %v", len(all), err)
	}
}

func TestTagProfilesAndEdges(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a := newItem(1, "A", 1, 1)
	a.Complexity = models.Ptr(2.0)
	b := newItem(2, "B", 1, 1)
	c := newItem(3, "C", 1, 1)
	if err := db.ApplyPlan(ctx, models.ReconcilePlan{Create: []models.InventoryItem{a, b, c}}); err != nil {
		t.Fatalf("ApplyPlan error = %v", err)
	}

	strategy, _ := db.UpsertTag(ctx, &models.CanonicalTag{NormalizedTag: "Strategy", Priority: 3, IsActive: true})
	retired, _ := db.UpsertTag(ctx, &models.CanonicalTag{NormalizedTag: "Retired", Priority: 9, IsActive: false})
	if _, err := db.AddAssignments(ctx, []models.TagAssignment{
		{ItemID: 1, TagID: strategy},
		{ItemID: 1, TagID: retired},
		{ItemID: 2, TagID: strategy},
	}); err != nil {
		t.Fatalf("AddAssignments error = %v", err)
	}

	profiles, err := db.LoadTagProfiles(ctx)
	if err != nil {
		t.Fatalf("LoadTagProfiles error = %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("len(profiles) = %d, want 2 (item 3 has no tags)", len(profiles))
	}
	if profiles[0].Complexity != 2.0 || profiles[1].Complexity != 0 {
		t.Errorf("complexities = %v, %v; want 2, 0", profiles[0].Complexity, profiles[1].Complexity)
	}
	if _, ok := profiles[0].Tags[retired]; ok {
		t.Error("inactive tag should not appear in profiles")
	}
	if profiles[0].Tags[strategy] != 3 {
		t.Errorf("priority = %d, want 3", profiles[0].Tags[strategy])
	}

	n, err := db.ReplaceEdges(ctx, []models.SimilarityEdge{
		{SourceID: 1, TargetID: 2, Score: 3.1, SharedTagCount: 1, TagPrioritySum: 6},
		{SourceID: 1, TargetID: 3, Score: 7.5, SharedTagCount: 2, TagPrioritySum: 5},
		{SourceID: 2, TargetID: 1, Score: 3.1, SharedTagCount: 1, TagPrioritySum: 6},
	})
	if err != nil || n != 3 {
		t.Fatalf("ReplaceEdges = %d, %v; want 3", n, err)
	}

	edges, err := db.EdgesFor(ctx, 1)
	if err != nil {
		t.Fatalf("EdgesFor error = %v", err)
	}
	if len(edges) != 2 || edges[0].TargetID != 3 {
		t.Errorf("EdgesFor(1) = %+v, want best score first", edges)
	}

	if n, err := db.ReplaceEdges(ctx, nil); err != nil || n != 0 {
		t.Fatalf("ReplaceEdges(nil) = %d, %v", n, err)
	}
	if count, _ := db.CountEdges(ctx); count != 0 {
		t.Errorf("CountEdges = %d, want 0 after replace with empty set", count)
	}
}
