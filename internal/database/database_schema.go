// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

/*
database_schema.go - Database Schema Management

Tables:
  - items: one row per board game in the library, keyed by the BoardGameGeek id
  - tags: the canonical tag vocabulary; rows are deactivated, never deleted
  - tag_assignments: (item, tag) set produced by the tag normalization pass
  - similarity_edges: the top-K neighbor graph, replaced wholesale on each refresh

The schema is created idempotently at start-up. There are no foreign keys:
deleting an item removes its assignments and edges explicitly inside the
reconcile transaction.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// createIndexes creates secondary indexes
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range indexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}

func tableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS items (
			bgg_id INTEGER PRIMARY KEY,
			name TEXT,
			description TEXT,
			german_description TEXT,
			year_published INTEGER,
			min_players INTEGER,
			max_players INTEGER,
			min_playtime INTEGER,
			max_playtime INTEGER,
			playing_time INTEGER,
			rating DOUBLE,
			ean TEXT,
			img_url TEXT,
			thumbnail_url TEXT,
			player_age INTEGER,
			complexity DOUBLE,
			complexity_label TEXT,
			best_playercount INTEGER,
			min_recommended_playercount INTEGER,
			max_recommended_playercount INTEGER,
			acquired_from TEXT,
			inventory_location TEXT,
			private_comment TEXT,
			quantity INTEGER NOT NULL DEFAULT 1,
			available INTEGER NOT NULL DEFAULT 1,
			borrow_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			CHECK (available >= 0 AND available <= quantity)
		);`,

		`CREATE SEQUENCE IF NOT EXISTS tags_id_seq START 1;`,

		`CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY DEFAULT nextval('tags_id_seq'),
			normalized_tag TEXT NOT NULL UNIQUE,
			german_normalized_tag TEXT,
			synonyms TEXT,
			priority INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		);`,

		`CREATE TABLE IF NOT EXISTS tag_assignments (
			bgg_id INTEGER NOT NULL,
			tag_id INTEGER NOT NULL,
			PRIMARY KEY (bgg_id, tag_id)
		);`,

		`CREATE TABLE IF NOT EXISTS similarity_edges (
			game_id INTEGER NOT NULL,
			similar_game_id INTEGER NOT NULL,
			similarity_score DOUBLE NOT NULL,
			shared_tags_count INTEGER NOT NULL,
			tag_priority_sum DOUBLE NOT NULL,
			CHECK (game_id <> similar_game_id)
		);`,
	}
}

func indexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_similarity_game ON similarity_edges(game_id);`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_tag ON tag_assignments(tag_id);`,
	}
}
