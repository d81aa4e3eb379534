// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

// Package enrich fetches per-game details in batches and merges them into
// snapshot records.
package enrich

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ludothek/internal/bgg"
	"github.com/tomtom215/ludothek/internal/config"
	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/models"
)

// Defaults match the upstream thing endpoint limits.
const (
	DefaultBatchSize     = bgg.MaxThingBatch
	DefaultMaxRetries    = 5
	DefaultRetryInterval = 5 * time.Second
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Enricher fetches details for batches of ids with fixed-interval retries.
type Enricher struct {
	source        bgg.DetailSource
	batchSize     int
	maxRetries    int
	retryInterval time.Duration
	sleep         SleepFunc
	logger        zerolog.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithSleep replaces the retry sleeper.
func WithSleep(fn SleepFunc) Option {
	return func(e *Enricher) {
		e.sleep = fn
	}
}

// New creates an Enricher. A nil cfg uses the defaults.
func New(source bgg.DetailSource, cfg *config.SyncConfig, opts ...Option) *Enricher {
	e := &Enricher{
		source:        source,
		batchSize:     DefaultBatchSize,
		maxRetries:    DefaultMaxRetries,
		retryInterval: DefaultRetryInterval,
		sleep:         bgg.SleepContext,
		logger:        logging.WithComponent("enrich"),
	}
	if cfg != nil {
		if cfg.DetailBatchSize > 0 && cfg.DetailBatchSize <= bgg.MaxThingBatch {
			e.batchSize = cfg.DetailBatchSize
		}
		if cfg.DetailRetries > 0 {
			e.maxRetries = cfg.DetailRetries
		}
		e.retryInterval = cfg.DetailRetryInterval
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich fetches details for ids. Batches that stay unavailable after all
// retries are skipped and their ids are absent from the result. The only
// error returned is the context's.
func (e *Enricher) Enrich(ctx context.Context, ids []int) (map[int]*models.Details, error) {
	out := make(map[int]*models.Details, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	skipped := 0
	for start := 0; start < len(ids); start += e.batchSize {
		end := start + e.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		details, err := e.fetchBatch(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			skipped += len(batch)
			e.logger.Warn().
				Ints("ids", batch).
				Int("attempts", e.maxRetries).
				Err(err).
				Msg("No details for batch, retries exhausted")
			continue
		}
		for id, d := range details {
			out[id] = d
		}
	}

	e.logger.Info().
		Int("requested", len(ids)).
		Int("enriched", len(out)).
		Int("skipped", skipped).
		Msg("Detail enrichment complete")
	return out, nil
}

func (e *Enricher) fetchBatch(ctx context.Context, batch []int) (map[int]*models.Details, error) {
	var lastErr error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		details, err := e.source.FetchDetails(ctx, batch)
		if err == nil {
			return details, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err

		event := e.logger.Debug()
		if !errors.Is(err, bgg.ErrNotReady) {
			event = e.logger.Warn()
		}
		event.Err(err).
			Int("attempt", attempt).
			Int("max_attempts", e.maxRetries).
			Int("batch_size", len(batch)).
			Msg("Details not ready")

		if attempt < e.maxRetries {
			if err := e.sleep(ctx, e.retryInterval); err != nil {
				return nil, err
			}
		}
	}
	return nil, lastErr
}

// Apply merges details into the matching records and returns how many
// records received details.
func Apply(records map[int]*models.SnapshotRecord, details map[int]*models.Details) int {
	applied := 0
	for id, d := range details {
		if rec, ok := records[id]; ok && d != nil {
			rec.ApplyDetails(d)
			applied++
		}
	}
	return applied
}
