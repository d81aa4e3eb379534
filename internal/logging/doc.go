// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

// Package logging provides centralized zerolog-based logging for Ludothek.
//
// The package exposes a process-wide logger configured once at start-up and a
// small set of helpers for component loggers and request-scoped fields.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("bgg_id", 174430).Msg("Item added")
//	logging.Error().Err(err).Msg("Reconcile failed")
//
//	// Component loggers carry a "component" field
//	logger := logging.WithComponent("similarity")
//
//	// Request-scoped fields (request_id, run_id)
//	logging.Ctx(ctx).Info().Msg("Import finished")
//
// # Configuration
//
// Environment variables (mapped by internal/config):
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
//
// # slog Adapter
//
// Suture reports supervisor events through log/slog. NewSlogLogger returns an
// slog.Logger that writes through the zerolog backend so all output shares one
// format:
//
//	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), cfg)
package logging
