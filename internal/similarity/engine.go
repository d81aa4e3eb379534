// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package similarity

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ludothek/internal/cache"
	"github.com/tomtom215/ludothek/internal/config"
	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/metrics"
	"github.com/tomtom215/ludothek/internal/models"
)

// Defaults for the graph size and the display list.
const (
	DefaultTopK         = 10
	DefaultDisplayLimit = 6
)

// Store is the persistence the engine needs.
type Store interface {
	LoadTagProfiles(ctx context.Context) ([]models.ItemTagProfile, error)
	ReplaceEdges(ctx context.Context, edges []models.SimilarityEdge) (int, error)
	EdgesFor(ctx context.Context, itemID int) ([]models.SimilarityEdge, error)
}

// Engine refreshes and reads the similarity graph. It is safe for
// concurrent use.
type Engine struct {
	store         Store
	complexityCap float64
	displayLimit  int
	logger        zerolog.Logger

	// neighbors caches EdgesFor results; nil when disabled. generation
	// counts invalidations; a read only fills the cache when no
	// invalidation happened since it started.
	neighbors  *cache.LRU[int, []models.SimilarityEdge]
	cacheMu    sync.Mutex
	generation uint64

	// Random source for display shuffling (protected by rngMu for concurrent access)
	rng   *rand.Rand
	rngMu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes display shuffling reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // math/rand is fine for display shuffling
	}
}

// NewEngine creates an Engine. A nil cfg uses the defaults.
func NewEngine(store Store, cfg *config.SimilarityConfig, opts ...Option) *Engine {
	e := &Engine{
		store:         store,
		complexityCap: DefaultComplexityCap,
		displayLimit:  DefaultDisplayLimit,
		logger:        logging.WithComponent("similarity"),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // math/rand is fine for display shuffling
	}
	if cfg != nil {
		if cfg.ComplexityCap > 0 {
			e.complexityCap = cfg.ComplexityCap
		}
		if cfg.DisplayLimit > 0 {
			e.displayLimit = cfg.DisplayLimit
		}
		if cfg.CacheSize > 0 {
			e.neighbors = cache.NewLRU[int, []models.SimilarityEdge](cfg.CacheSize, cfg.CacheTTL)
		}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Refresh rebuilds the whole graph, keeping at most topK neighbors per game,
// and returns the number of edges written.
func (e *Engine) Refresh(ctx context.Context, topK int) (int, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	start := time.Now()

	profiles, err := e.store.LoadTagProfiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load tag profiles: %w", err)
	}

	edges := BuildEdges(profiles, topK, e.complexityCap)
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	written, err := e.store.ReplaceEdges(ctx, edges)
	if err != nil {
		return 0, fmt.Errorf("failed to store similarity edges: %w", err)
	}

	e.Invalidate()
	metrics.RecordSimilarityRefresh(written)
	e.logger.Info().
		Int("items", len(profiles)).
		Int("top_k", topK).
		Int("edges", written).
		Dur("duration", time.Since(start)).
		Msg("Similarity graph refreshed")
	return written, nil
}

// TopSimilar returns up to displayLimit neighbor ids of itemID in random
// order. A non-positive displayLimit uses the configured default.
func (e *Engine) TopSimilar(ctx context.Context, itemID, displayLimit int) ([]int, error) {
	if displayLimit <= 0 {
		displayLimit = e.displayLimit
	}

	edges, err := e.neighborsOf(ctx, itemID)
	if err != nil {
		return nil, err
	}

	e.rngMu.Lock()
	defer e.rngMu.Unlock()

	// shuffle within runs of equal score
	for lo := 0; lo < len(edges); {
		hi := lo + 1
		for hi < len(edges) && edges[hi].Score == edges[lo].Score {
			hi++
		}
		group := edges[lo:hi]
		e.rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
		lo = hi
	}

	if len(edges) > displayLimit {
		edges = edges[:displayLimit]
	}
	ids := make([]int, len(edges))
	for i := range edges {
		ids[i] = edges[i].TargetID
	}
	e.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return ids, nil
}

// Invalidate drops cached neighbor lists. Callers that change items or
// edges outside Refresh must call it.
func (e *Engine) Invalidate() {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	e.generation++
	if e.neighbors != nil {
		e.neighbors.Purge()
	}
}

func (e *Engine) currentGeneration() uint64 {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	return e.generation
}

// neighborsOf returns a private copy of the stored edges of itemID in
// score order.
func (e *Engine) neighborsOf(ctx context.Context, itemID int) ([]models.SimilarityEdge, error) {
	if e.neighbors != nil {
		if cached, ok := e.neighbors.Get(itemID); ok {
			return append([]models.SimilarityEdge(nil), cached...), nil
		}
	}

	gen := e.currentGeneration()
	edges, err := e.store.EdgesFor(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load neighbors of %d: %w", itemID, err)
	}
	if e.neighbors != nil {
		e.cacheMu.Lock()
		if e.generation == gen {
			e.neighbors.Add(itemID, append([]models.SimilarityEdge(nil), edges...))
		}
		e.cacheMu.Unlock()
	}
	return edges, nil
}
