// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package tagging

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ludothek/internal/bgg"
	"github.com/tomtom215/ludothek/internal/config"
	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/metrics"
	"github.com/tomtom215/ludothek/internal/models"
)

// Defaults for the per-item tag fetch.
const (
	DefaultFetchRetries       = 3
	DefaultFetchRetryInterval = 500 * time.Millisecond
)

// Store is the persistence the normalizer needs.
type Store interface {
	ListActiveTags(ctx context.Context) ([]models.CanonicalTag, error)
	ListTaggingTargets(ctx context.Context, onlyMissing bool) ([]models.InventoryItem, error)
	AssignmentsByItem(ctx context.Context) (map[int]map[int]struct{}, error)
	AddAssignments(ctx context.Context, assignments []models.TagAssignment) ([]models.TagAssignment, error)
}

// Normalizer runs tag normalization passes.
type Normalizer struct {
	store    Store
	source   bgg.TagSource
	retries  int
	interval time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	logger   zerolog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithSleep replaces the retry sleeper.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(n *Normalizer) {
		n.sleep = fn
	}
}

// NewNormalizer creates a Normalizer. A nil cfg uses the defaults.
func NewNormalizer(store Store, source bgg.TagSource, cfg *config.TagsConfig, opts ...Option) *Normalizer {
	n := &Normalizer{
		store:    store,
		source:   source,
		retries:  DefaultFetchRetries,
		interval: DefaultFetchRetryInterval,
		sleep:    bgg.SleepContext,
		logger:   logging.WithComponent("tagging"),
	}
	if cfg != nil {
		if cfg.FetchRetries > 0 {
			n.retries = cfg.FetchRetries
		}
		n.interval = cfg.FetchRetryInterval
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize assigns canonical tags to the target items. With onlyMissing set
// only items without any assignment are visited.
func (n *Normalizer) Normalize(ctx context.Context, onlyMissing bool) (models.TagStats, error) {
	var stats models.TagStats
	start := time.Now()

	tags, err := n.store.ListActiveTags(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to load tags: %w", err)
	}
	items, err := n.store.ListTaggingTargets(ctx, onlyMissing)
	if err != nil {
		return stats, fmt.Errorf("failed to load tagging targets: %w", err)
	}
	stats.ItemsProcessed = len(items)
	if len(items) == 0 {
		n.logger.Info().Bool("only_missing", onlyMissing).Msg("No items to tag")
		return stats, nil
	}

	existing, err := n.store.AssignmentsByItem(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to load assignments: %w", err)
	}

	m := newMatcher(tags)
	var (
		pending   []models.TagAssignment
		unmatched int
		skipped   int
	)
	for i := range items {
		item := &items[i]

		raws, err := n.fetchTags(ctx, item.ExternalID)
		if err != nil {
			if ctx.Err() != nil {
				return models.TagStats{}, ctx.Err()
			}
			skipped++
			n.logger.Warn().Err(err).Int("bgg_id", item.ExternalID).Int("attempts", n.retries).Msg("No tags for item, retries exhausted")
			continue
		}
		if len(raws) == 0 {
			continue
		}

		matched, missed := m.matchAll(raws)
		unmatched += missed
		filtered := applyRules(item, matched, n.logger)

		var added []string
		for j := range filtered {
			if _, has := existing[item.ExternalID][filtered[j].ID]; has {
				continue
			}
			pending = append(pending, models.TagAssignment{ItemID: item.ExternalID, TagID: filtered[j].ID})
			added = append(added, filtered[j].NormalizedTag)
		}
		if len(added) > 0 {
			n.logger.Debug().Int("bgg_id", item.ExternalID).Strs("tags", added).Msg("New tags for item")
		}
	}

	written, err := n.store.AddAssignments(ctx, pending)
	if err != nil {
		return models.TagStats{}, fmt.Errorf("failed to save tag assignments: %w", err)
	}
	if len(written) != len(pending) {
		n.logger.Warn().Int("planned", len(pending)).Int("written", len(written)).Msg("Some tag assignments already existed")
	}
	changed := make(map[int]struct{}, len(written))
	for _, a := range written {
		changed[a.ItemID] = struct{}{}
	}
	stats.ItemsChanged = len(changed)
	stats.TagsAssigned = len(written)

	metrics.RecordTagPass(stats.TagsAssigned, unmatched)
	n.logger.Info().
		Bool("only_missing", onlyMissing).
		Int("items", stats.ItemsProcessed).
		Int("items_changed", stats.ItemsChanged).
		Int("tags_assigned", stats.TagsAssigned).
		Int("unmatched_raw_tags", unmatched).
		Int("skipped", skipped).
		Dur("duration", time.Since(start)).
		Msg("Tag normalization complete")
	return stats, nil
}

func (n *Normalizer) fetchTags(ctx context.Context, id int) ([]string, error) {
	var lastErr error
	for attempt := 1; attempt <= n.retries; attempt++ {
		tags, err := n.source.FetchTags(ctx, id)
		if err == nil {
			return tags, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		n.logger.Debug().Err(err).Int("bgg_id", id).Int("attempt", attempt).Msg("Tag fetch failed")

		if attempt < n.retries {
			if err := n.sleep(ctx, n.interval); err != nil {
				return nil, err
			}
		}
	}
	return nil, lastErr
}
