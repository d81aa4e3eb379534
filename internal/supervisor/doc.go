// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
Package supervisor runs Ludothek's long-lived services under a suture tree.

The tree has two layers so a crashing scheduler never takes the admin API
down with it:

	ludothek (root)
	├── jobs-layer   scheduled quick sync
	└── api-layer    admin HTTP server

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog using the application's slog handler, which forwards to zerolog.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	tree.AddJobService(services.NewScheduledSyncService(coord, cfg, logger))
	err = tree.Serve(ctx)
*/
package supervisor
