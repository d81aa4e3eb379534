// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/metrics"
	"github.com/tomtom215/ludothek/internal/models"
)

// Store is the persistence the reconciler needs.
type Store interface {
	ListItems(ctx context.Context) ([]models.InventoryItem, error)
	ApplyPlan(ctx context.Context, plan models.ReconcilePlan) error
}

// Reconciler applies collection snapshots to the library.
type Reconciler struct {
	store  Store
	logger zerolog.Logger
}

// New creates a Reconciler backed by store.
func New(store Store) *Reconciler {
	return &Reconciler{
		store:  store,
		logger: logging.WithComponent("reconcile"),
	}
}

// Reconcile brings the stored library in line with records. Nothing is
// written if any part of the plan fails.
func (r *Reconciler) Reconcile(ctx context.Context, records map[int]*models.SnapshotRecord, mode Mode) (models.SyncStats, error) {
	start := time.Now()

	persisted, err := r.store.ListItems(ctx)
	if err != nil {
		return models.SyncStats{}, fmt.Errorf("failed to load items: %w", err)
	}

	plan := BuildPlan(persisted, records, mode)
	for _, u := range plan.Update {
		r.logger.Debug().
			Int("bgg_id", u.Item.ExternalID).
			Strs("changed", u.Changed).
			Msg("Item updated")
	}

	if err := r.store.ApplyPlan(ctx, plan); err != nil {
		return models.SyncStats{}, fmt.Errorf("failed to apply reconcile plan: %w", err)
	}

	stats := plan.Stats()
	metrics.RecordItemChanges(stats.Added, stats.Updated, stats.Deleted)

	r.logger.Info().
		Str("mode", mode.String()).
		Int("incoming", len(records)).
		Int("stored", len(persisted)).
		Int("added", stats.Added).
		Int("updated", stats.Updated).
		Int("deleted", stats.Deleted).
		Dur("duration", time.Since(start)).
		Msg("Reconcile complete")
	return stats, nil
}
