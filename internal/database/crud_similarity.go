// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/ludothek/internal/models"
)

// LoadTagProfiles returns, for every item with at least one active tag, its
// tag -> priority map and its complexity (0 when unknown).
func (db *DB) LoadTagProfiles(ctx context.Context) ([]models.ItemTagProfile, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT i.bgg_id, COALESCE(i.complexity, 0), a.tag_id, t.priority
		FROM items i
		JOIN tag_assignments a ON a.bgg_id = i.bgg_id
		JOIN tags t ON t.id = a.tag_id
		WHERE t.is_active
		ORDER BY i.bgg_id, a.tag_id`)
	if err != nil {
		observe("select", "tag_profiles", start, err)
		return nil, fmt.Errorf("failed to query tag profiles: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var profiles []models.ItemTagProfile
	for rows.Next() {
		var (
			itemID, tagID, priority int
			complexity              float64
		)
		if err := rows.Scan(&itemID, &complexity, &tagID, &priority); err != nil {
			return nil, fmt.Errorf("failed to scan tag profile: %w", err)
		}
		if n := len(profiles); n == 0 || profiles[n-1].ItemID != itemID {
			profiles = append(profiles, models.ItemTagProfile{
				ItemID:     itemID,
				Tags:       make(map[int]int),
				Complexity: complexity,
			})
		}
		profiles[len(profiles)-1].Tags[tagID] = priority
	}
	err = rows.Err()
	observe("select", "tag_profiles", start, err)
	return profiles, err
}

// ReplaceEdges swaps the whole similarity graph in one transaction and
// returns the number of edges written.
func (db *DB) ReplaceEdges(ctx context.Context, edges []models.SimilarityEdge) (written int, err error) {
	start := time.Now()
	defer func() { observe("replace", "similarity_edges", start, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			rollback(tx, err)
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM similarity_edges"); err != nil {
		return 0, fmt.Errorf("failed to clear similarity edges: %w", err)
	}

	if len(edges) > 0 {
		stmt, prepErr := tx.PrepareContext(ctx, `INSERT INTO similarity_edges
			(game_id, similar_game_id, similarity_score, shared_tags_count, tag_priority_sum)
			VALUES (?, ?, ?, ?, ?)`)
		if prepErr != nil {
			err = fmt.Errorf("failed to prepare edge insert: %w", prepErr)
			return 0, err
		}
		defer closeWithLog(stmt, "statement")

		for _, e := range edges {
			if _, err = stmt.ExecContext(ctx, e.SourceID, e.TargetID, e.Score, e.SharedTagCount, e.TagPrioritySum); err != nil {
				return 0, fmt.Errorf("failed to insert edge %d -> %d: %w", e.SourceID, e.TargetID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(edges), nil
}

// EdgesFor returns the stored neighbors of an item, best score first.
func (db *DB) EdgesFor(ctx context.Context, itemID int) ([]models.SimilarityEdge, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT game_id, similar_game_id, similarity_score, shared_tags_count, tag_priority_sum
		FROM similarity_edges
		WHERE game_id = ?
		ORDER BY similarity_score DESC, similar_game_id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query similarity edges: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var edges []models.SimilarityEdge
	for rows.Next() {
		var e models.SimilarityEdge
		if err := rows.Scan(&e.SourceID, &e.TargetID, &e.Score, &e.SharedTagCount, &e.TagPrioritySum); err != nil {
			return nil, fmt.Errorf("failed to scan similarity edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// CountEdges returns the number of stored similarity edges.
func (db *DB) CountEdges(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM similarity_edges").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count similarity edges: %w", err)
	}
	return n, nil
}
