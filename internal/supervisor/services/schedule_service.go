// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ludothek/internal/importer"
)

// JobRunner starts import jobs. Satisfied by *importer.Coordinator.
type JobRunner interface {
	Run(ctx context.Context, kind importer.JobKind, params importer.Params) (*importer.JobResult, error)
}

// ScheduledSyncConfig holds configuration for the scheduled sync.
type ScheduledSyncConfig struct {
	// Interval between runs. Defaults to 6h.
	Interval time.Duration

	// JobTimeout bounds one run. Defaults to 30m.
	JobTimeout time.Duration

	// RunOnStartup triggers a sync as soon as the service starts.
	RunOnStartup bool

	// FastMode enriches newly found games with details.
	FastMode bool
}

// ScheduledSyncService periodically runs a quick sync.
type ScheduledSyncService struct {
	runner JobRunner
	config ScheduledSyncConfig
	logger zerolog.Logger
	name   string
}

// NewScheduledSyncService creates a new scheduled sync service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewScheduledSyncService(runner JobRunner, cfg ScheduledSyncConfig, logger zerolog.Logger) *ScheduledSyncService {
	if cfg.Interval <= 0 {
		cfg.Interval = 6 * time.Hour
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 30 * time.Minute
	}
	return &ScheduledSyncService{
		runner: runner,
		config: cfg,
		logger: logger.With().Str("service", "scheduled-sync").Logger(),
		name:   "scheduled-sync",
	}
}

// Serve implements suture.Service.
func (s *ScheduledSyncService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_startup", s.config.RunOnStartup).
		Bool("fast_mode", s.config.FastMode).
		Dur("interval", s.config.Interval).
		Msg("scheduled sync starting")

	if s.config.RunOnStartup {
		s.runOnce(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("scheduled sync shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce runs one quick sync. Failures are logged, never returned, so a
// BoardGameGeek outage does not make suture restart the service.
func (s *ScheduledSyncService) runOnce(ctx context.Context) {
	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	result, err := s.runner.Run(jobCtx, importer.JobQuickSync, importer.Params{FastMode: s.config.FastMode})
	switch {
	case errors.Is(err, importer.ErrImportInProgress):
		s.logger.Info().Msg("scheduled sync skipped, another job is running")
	case err != nil:
		s.logger.Warn().Err(err).Msg("scheduled sync failed")
	default:
		event := s.logger.Info().Str("run_id", result.RunID).Dur("duration", result.Duration)
		if result.Sync != nil {
			event = event.Int("added", result.Sync.Added).Int("deleted", result.Sync.Deleted)
		}
		event.Msg("scheduled sync complete")
	}
}

// String returns the service name for logging.
func (s *ScheduledSyncService) String() string {
	return s.name
}
