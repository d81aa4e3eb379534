// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/ludothek/internal/bgg"
	"github.com/tomtom215/ludothek/internal/config"
	"github.com/tomtom215/ludothek/internal/database"
	"github.com/tomtom215/ludothek/internal/enrich"
	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/metrics"
	"github.com/tomtom215/ludothek/internal/models"
	"github.com/tomtom215/ludothek/internal/reconcile"
	"github.com/tomtom215/ludothek/internal/similarity"
	"github.com/tomtom215/ludothek/internal/tagging"
)

// Store is the persistence every job needs.
type Store interface {
	reconcile.Store
	tagging.Store
	similarity.Store
	ItemIDs(ctx context.Context) (map[int]struct{}, error)
	ItemExists(ctx context.Context, id int) (bool, error)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Deps are the collaborators of a Coordinator.
type Deps struct {
	Upstream bgg.Upstream
	Store    Store
	History  History

	// Sleep replaces the retry sleeper of every step. Nil uses bgg.SleepContext.
	Sleep SleepFunc

	// Seed makes similarity display shuffling reproducible when non-zero.
	Seed int64
}

// Status describes the coordinator at one instant.
type Status struct {
	Running   bool       `json:"running"`
	Kind      JobKind    `json:"kind,omitempty"`
	RunID     string     `json:"run_id,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	Last      *JobResult `json:"last,omitempty"`
}

// Coordinator serializes import jobs.
//
// Thread Safety: all methods are safe for concurrent use. Run admits one job
// at a time; TopSimilar and Status never wait for a job.
type Coordinator struct {
	cfg      *config.Config
	upstream bgg.Upstream
	store    Store
	history  History
	sleep    SleepFunc

	enricher   *enrich.Enricher
	reconciler *reconcile.Reconciler
	normalizer *tagging.Normalizer
	engine     *similarity.Engine

	guard sync.Mutex

	stateMu sync.RWMutex
	current *JobResult
	last    *JobResult

	logger zerolog.Logger
}

// NewCoordinator wires the pipeline components around deps.
func NewCoordinator(cfg *config.Config, deps Deps) (*Coordinator, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if deps.Upstream == nil || deps.Store == nil {
		return nil, errors.New("upstream and store are required")
	}
	if deps.History == nil {
		deps.History = NewInMemoryHistory(DefaultHistoryLimit)
	}
	sleep := deps.Sleep
	if sleep == nil {
		sleep = bgg.SleepContext
	}

	var simOpts []similarity.Option
	if deps.Seed != 0 {
		simOpts = append(simOpts, similarity.WithSeed(deps.Seed))
	}

	return &Coordinator{
		cfg:        cfg,
		upstream:   deps.Upstream,
		store:      deps.Store,
		history:    deps.History,
		sleep:      sleep,
		enricher:   enrich.New(deps.Upstream, &cfg.Sync, enrich.WithSleep(enrich.SleepFunc(sleep))),
		reconciler: reconcile.New(deps.Store),
		normalizer: tagging.NewNormalizer(deps.Store, deps.Upstream, &cfg.Tags, tagging.WithSleep(sleep)),
		engine:     similarity.NewEngine(deps.Store, &cfg.Similarity, simOpts...),
		logger:     logging.WithComponent("importer"),
	}, nil
}

// Run executes one job. It returns ErrImportInProgress at once when another
// job is running. Failures are returned as *JobError alongside the partial
// result.
func (c *Coordinator) Run(ctx context.Context, kind JobKind, params Params) (*JobResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown job kind %q", kind)
	}
	if !c.guard.TryLock() {
		metrics.RecordImportRejected(string(kind))
		c.logger.Info().Str("kind", string(kind)).Msg("Import rejected, another job is running")
		return nil, ErrImportInProgress
	}
	defer c.guard.Unlock()

	result := &JobResult{
		RunID:     uuid.New().String(),
		Kind:      kind,
		StartedAt: time.Now().UTC(),
	}
	c.setCurrent(result)
	defer c.setCurrent(nil)

	ctx = logging.ContextWithRunID(ctx, result.RunID)
	logger := c.logger.With().Str("run_id", result.RunID).Str("kind", string(kind)).Logger()
	logger.Info().Msg("Import job started")

	err := c.execute(ctx, kind, params, result)
	result.Duration = time.Since(result.StartedAt)
	// syncs may delete games that cached neighbor lists still point to
	c.engine.Invalidate()

	var jobErr *JobError
	if err != nil {
		jobErr = newJobError(kind, err)
		result.Error = jobErr.Error()
		logger.Error().Err(err).Str("code", jobErr.Code).Dur("duration", result.Duration).Msg("Import job failed")
	} else {
		logger.Info().Dur("duration", result.Duration).Msg("Import job finished")
	}
	metrics.RecordImportJob(string(kind), result.Duration, err)

	if herr := c.history.Record(context.WithoutCancel(ctx), result); herr != nil {
		logger.Warn().Err(herr).Msg("Failed to record job history")
	}
	c.setLast(result)

	if jobErr != nil {
		return result, jobErr
	}
	return result, nil
}

func newJobError(kind JobKind, err error) *JobError {
	code := CodeInternal
	switch {
	case errors.Is(err, ErrCredentialsRequired):
		code = CodeCredentialsRequired
	case errors.Is(err, bgg.ErrNotReady), errors.Is(err, bgg.ErrRateLimited),
		errors.Is(err, bgg.ErrLoginFailed), errors.Is(err, bgg.ErrUnavailable):
		code = CodeUpstreamUnavailable
	}
	return &JobError{Code: code, Kind: kind, Err: err}
}

func (c *Coordinator) execute(ctx context.Context, kind JobKind, params Params, result *JobResult) error {
	switch kind {
	case JobQuickSync:
		stats, err := c.syncQuick(ctx, c.username(params), params.FastMode || c.cfg.Sync.FastMode)
		result.Sync = &stats
		return err

	case JobFullSync, JobCollectionOnly:
		stats, err := c.syncFull(ctx, c.username(params), c.credentials(params))
		result.Sync = &stats
		return err

	case JobCompleteSync:
		stats, err := c.syncFull(ctx, c.username(params), c.credentials(params))
		result.Sync = &stats
		if err != nil {
			return err
		}
		tags, err := c.normalizer.Normalize(ctx, true)
		result.Tags = &tags
		if err != nil {
			return err
		}
		edges, err := c.engine.Refresh(ctx, c.topK(params))
		result.EdgesCreated = &edges
		return err

	case JobTagPass:
		tags, err := c.normalizer.Normalize(ctx, params.OnlyMissing)
		result.Tags = &tags
		return err

	case JobSimilarityPass:
		edges, err := c.engine.Refresh(ctx, c.topK(params))
		result.EdgesCreated = &edges
		return err
	}
	return fmt.Errorf("unknown job kind %q", kind)
}

func (c *Coordinator) username(p Params) string {
	if p.Username != "" {
		return p.Username
	}
	if p.Credentials.Username != "" {
		return p.Credentials.Username
	}
	return c.cfg.BGG.Username
}

func (c *Coordinator) credentials(p Params) Credentials {
	creds := p.Credentials
	if creds.Username == "" {
		creds.Username = c.username(p)
	}
	if creds.Password == "" {
		creds.Password = c.cfg.BGG.Password
	}
	return creds
}

func (c *Coordinator) topK(p Params) int {
	if p.TopK > 0 {
		return p.TopK
	}
	return c.cfg.Similarity.TopK
}

func (c *Coordinator) setCurrent(r *JobResult) {
	c.stateMu.Lock()
	c.current = r
	c.stateMu.Unlock()
}

func (c *Coordinator) setLast(r *JobResult) {
	copied := *r
	c.stateMu.Lock()
	c.last = &copied
	c.stateMu.Unlock()
}

// Status reports the running job, if any, and the last finished one.
func (c *Coordinator) Status() Status {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	var s Status
	if c.current != nil {
		started := c.current.StartedAt
		s.Running = true
		s.Kind = c.current.Kind
		s.RunID = c.current.RunID
		s.StartedAt = &started
	}
	if c.last != nil {
		last := *c.last
		s.Last = &last
	}
	return s
}

// History returns up to limit recent runs, newest first.
func (c *Coordinator) History(ctx context.Context, limit int) ([]JobResult, error) {
	return c.history.Recent(ctx, limit)
}

// SyncQuick runs a quick sync of the public collection of userHandle.
func (c *Coordinator) SyncQuick(ctx context.Context, userHandle string, fastMode bool) (models.SyncStats, error) {
	result, err := c.Run(ctx, JobQuickSync, Params{Username: userHandle, FastMode: fastMode})
	return syncStats(result), err
}

// SyncFull logs in and runs a full sync of the private collection.
func (c *Coordinator) SyncFull(ctx context.Context, userHandle string, creds Credentials) (models.SyncStats, error) {
	result, err := c.Run(ctx, JobFullSync, Params{Username: userHandle, Credentials: creds})
	return syncStats(result), err
}

// NormalizeTags runs a tag pass.
func (c *Coordinator) NormalizeTags(ctx context.Context, onlyMissing bool) (models.TagStats, error) {
	result, err := c.Run(ctx, JobTagPass, Params{OnlyMissing: onlyMissing})
	if err != nil || result == nil || result.Tags == nil {
		return models.TagStats{}, err
	}
	return *result.Tags, nil
}

// RefreshSimilarities rebuilds the similarity graph and returns the number
// of edges written.
func (c *Coordinator) RefreshSimilarities(ctx context.Context, topK int) (int, error) {
	result, err := c.Run(ctx, JobSimilarityPass, Params{TopK: topK})
	if err != nil || result == nil || result.EdgesCreated == nil {
		return 0, err
	}
	return *result.EdgesCreated, nil
}

// TopSimilar returns up to displayLimit similar game ids in random order.
// It does not take the job guard.
func (c *Coordinator) TopSimilar(ctx context.Context, itemID, displayLimit int) ([]int, error) {
	exists, err := c.store.ItemExists(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up game %d: %w", itemID, err)
	}
	if !exists {
		return nil, fmt.Errorf("game %d: %w", itemID, database.ErrNotFound)
	}
	return c.engine.TopSimilar(ctx, itemID, displayLimit)
}

// syncStats returns whatever sync progress the job recorded, failed or not.
func syncStats(result *JobResult) models.SyncStats {
	if result == nil || result.Sync == nil {
		return models.SyncStats{}
	}
	return *result.Sync
}
