// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/ludothek/internal/bgg"
	"github.com/tomtom215/ludothek/internal/enrich"
	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/models"
	"github.com/tomtom215/ludothek/internal/reconcile"
	"github.com/tomtom215/ludothek/internal/snapshot"
)

// syncQuick imports the public collection without touching existing rows.
// In fast mode games not yet in the library are enriched with details.
func (c *Coordinator) syncQuick(ctx context.Context, username string, fastMode bool) (models.SyncStats, error) {
	if username == "" {
		return models.SyncStats{}, fmt.Errorf("%w: no BoardGameGeek username configured", ErrCredentialsRequired)
	}

	records, err := c.loadSnapshot(ctx, username, false, c.cfg.Sync.CollectionRetriesQuick)
	if err != nil {
		return models.SyncStats{}, err
	}

	if fastMode {
		known, err := c.store.ItemIDs(ctx)
		if err != nil {
			return models.SyncStats{}, fmt.Errorf("failed to load known ids: %w", err)
		}
		var fresh []int
		for _, id := range snapshot.IDs(records) {
			if _, ok := known[id]; !ok {
				fresh = append(fresh, id)
			}
		}
		if len(fresh) > 0 {
			if err := c.enrichRecords(ctx, records, fresh); err != nil {
				return models.SyncStats{}, err
			}
		} else {
			logging.Ctx(ctx).Debug().Msg("No new games, skipping detail requests")
		}
	}

	return c.reconciler.Reconcile(ctx, records, reconcile.ModeAddOnly)
}

// syncFull logs in, imports the private collection and updates every row.
func (c *Coordinator) syncFull(ctx context.Context, username string, creds Credentials) (models.SyncStats, error) {
	if username == "" || creds.Password == "" {
		return models.SyncStats{}, ErrCredentialsRequired
	}

	if err := c.upstream.Login(ctx, creds.Username, creds.Password); err != nil {
		return models.SyncStats{}, fmt.Errorf("login: %w", err)
	}

	records, err := c.loadSnapshot(ctx, username, true, c.cfg.Sync.CollectionRetriesFull)
	if err != nil {
		return models.SyncStats{}, err
	}
	if err := c.enrichRecords(ctx, records, snapshot.IDs(records)); err != nil {
		return models.SyncStats{}, err
	}

	return c.reconciler.Reconcile(ctx, records, reconcile.ModeFull)
}

func (c *Coordinator) enrichRecords(ctx context.Context, records map[int]*models.SnapshotRecord, ids []int) error {
	details, err := c.enricher.Enrich(ctx, ids)
	if err != nil {
		return fmt.Errorf("detail enrichment: %w", err)
	}
	applied := enrich.Apply(records, details)
	logging.Ctx(ctx).Debug().Int("requested", len(ids)).Int("applied", applied).Msg("Details merged")
	return nil
}

// loadSnapshot fetches the collection, waiting while BoardGameGeek queues
// the request, and parses it.
func (c *Coordinator) loadSnapshot(ctx context.Context, username string, private bool, attempts int) (map[int]*models.SnapshotRecord, error) {
	body, err := c.fetchCollection(ctx, username, private, attempts)
	if err != nil {
		return nil, err
	}
	records, err := snapshot.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().
		Str("username", username).
		Bool("private", private).
		Int("games", len(records)).
		Msg("Collection snapshot loaded")
	return records, nil
}

func (c *Coordinator) fetchCollection(ctx context.Context, username string, private bool, attempts int) ([]byte, error) {
	if attempts < 1 {
		attempts = 1
	}
	interval := c.cfg.Sync.CollectionRetryInterval

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, err := c.upstream.FetchCollection(ctx, username, private)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err

		event := logging.Ctx(ctx).Warn()
		if errors.Is(err, bgg.ErrNotReady) {
			event = logging.Ctx(ctx).Info()
		}
		event.Err(err).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Dur("retry_in", interval).
			Msg("Collection not ready")

		if attempt < attempts {
			if err := c.sleep(ctx, interval); err != nil {
				return nil, err
			}
		}
	}
	if errors.Is(lastErr, bgg.ErrUnavailable) {
		return nil, fmt.Errorf("collection unavailable after %d attempts: %w", attempts, lastErr)
	}
	return nil, fmt.Errorf("collection unavailable after %d attempts: %w: %w", attempts, bgg.ErrUnavailable, lastErr)
}
