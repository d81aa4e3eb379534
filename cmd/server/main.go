// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/ludothek/internal/api"
	"github.com/tomtom215/ludothek/internal/bgg"
	"github.com/tomtom215/ludothek/internal/config"
	"github.com/tomtom215/ludothek/internal/database"
	"github.com/tomtom215/ludothek/internal/importer"
	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/supervisor"
	"github.com/tomtom215/ludothek/internal/supervisor/services"
	"github.com/tomtom215/ludothek/internal/tagging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logging is not initialized yet.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Ludothek...")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seeded, err := tagging.SeedVocabulary(ctx, db, cfg.Tags.VocabularyPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Tags.VocabularyPath).Msg("Failed to seed tag vocabulary")
	}
	if seeded > 0 {
		logging.Info().Int("tags", seeded).Msg("Tag vocabulary seeded")
	}

	upstream, err := bgg.NewCircuitBreakerClient(&cfg.BGG)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create BoardGameGeek client")
	}
	if !cfg.HasCredentials() {
		logging.Warn().Msg("BGG_USERNAME/BGG_PASSWORD not set: full syncs will be rejected")
	}

	history, err := importer.OpenHistory(&cfg.Progress)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open run history")
	}
	defer func() {
		if err := history.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing run history")
		}
	}()

	coord, err := importer.NewCoordinator(cfg, importer.Deps{
		Upstream: upstream,
		Store:    db,
		History:  history,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create import coordinator")
	}

	handler := api.NewHandler(coord, db, cfg)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromServer(&cfg.Server)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Sync.JobTimeout + cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if cfg.Sync.ScheduleEnabled {
		tree.AddJobService(services.NewScheduledSyncService(coord, services.ScheduledSyncConfig{
			Interval:     cfg.Sync.ScheduleInterval,
			JobTimeout:   cfg.Sync.JobTimeout,
			RunOnStartup: cfg.Sync.ScheduleOnStart,
			FastMode:     cfg.Sync.FastMode,
		}, logging.WithComponent("scheduler")))
		logging.Info().Dur("interval", cfg.Sync.ScheduleInterval).Msg("Scheduled sync enabled")
	}

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Application stopped gracefully")
}
