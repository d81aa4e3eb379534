// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/ludothek/internal/models"
)

const selectTagsQuery = `SELECT id, normalized_tag, german_normalized_tag, synonyms, priority, is_active FROM tags`

func scanTag(s rowScanner) (models.CanonicalTag, error) {
	var (
		tag      models.CanonicalTag
		german   sql.NullString
		synonyms sql.NullString
	)
	if err := s.Scan(&tag.ID, &tag.NormalizedTag, &german, &synonyms, &tag.Priority, &tag.IsActive); err != nil {
		return tag, err
	}
	tag.GermanNormalizedTag = german.String
	tag.Synonyms = models.ParseSynonyms(synonyms.String)
	return tag, nil
}

func (db *DB) queryTags(ctx context.Context, query string) ([]models.CanonicalTag, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		observe("select", "tags", start, err)
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var tags []models.CanonicalTag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	err = rows.Err()
	observe("select", "tags", start, err)
	return tags, err
}

// ListActiveTags returns the tags eligible for matching, ordered by id.
func (db *DB) ListActiveTags(ctx context.Context) ([]models.CanonicalTag, error) {
	return db.queryTags(ctx, selectTagsQuery+" WHERE is_active ORDER BY id")
}

// ListTags returns the whole vocabulary including inactive tags.
func (db *DB) ListTags(ctx context.Context) ([]models.CanonicalTag, error) {
	return db.queryTags(ctx, selectTagsQuery+" ORDER BY id")
}

// UpsertTag inserts a tag or updates the existing row with the same
// (case-insensitive) normalized label. It returns the tag id.
func (db *DB) UpsertTag(ctx context.Context, tag *models.CanonicalTag) (id int, err error) {
	label := strings.TrimSpace(tag.NormalizedTag)
	if label == "" {
		return 0, fmt.Errorf("tag label must not be empty")
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			rollback(tx, err)
		}
	}()

	err = tx.QueryRowContext(ctx,
		"SELECT id FROM tags WHERE lower(normalized_tag) = lower(?)", label).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = tx.QueryRowContext(ctx,
			`INSERT INTO tags (normalized_tag, german_normalized_tag, synonyms, priority, is_active)
			 VALUES (?, ?, ?, ?, ?) RETURNING id`,
			label, tag.GermanNormalizedTag, tag.SynonymsString(), tag.Priority, tag.IsActive).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to insert tag %q: %w", label, err)
		}
	case err != nil:
		return 0, fmt.Errorf("failed to look up tag %q: %w", label, err)
	default:
		if _, err = tx.ExecContext(ctx,
			`UPDATE tags SET german_normalized_tag = ?, synonyms = ?, priority = ?, is_active = ? WHERE id = ?`,
			tag.GermanNormalizedTag, tag.SynonymsString(), tag.Priority, tag.IsActive, id); err != nil {
			return 0, fmt.Errorf("failed to update tag %q: %w", label, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	tag.ID = id
	return id, nil
}

// ListTaggingTargets returns the items a tag pass should visit. With
// onlyMissing set, items that already carry any assignment are skipped.
func (db *DB) ListTaggingTargets(ctx context.Context, onlyMissing bool) ([]models.InventoryItem, error) {
	if !onlyMissing {
		return db.ListItems(ctx)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, selectItemsQuery+
		" WHERE NOT EXISTS (SELECT 1 FROM tag_assignments a WHERE a.bgg_id = items.bgg_id) ORDER BY bgg_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query untagged items: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var items []models.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// AssignmentsByItem returns the current assignments as item id -> set of tag ids.
func (db *DB) AssignmentsByItem(ctx context.Context) (map[int]map[int]struct{}, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, "SELECT bgg_id, tag_id FROM tag_assignments")
	if err != nil {
		return nil, fmt.Errorf("failed to query tag assignments: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make(map[int]map[int]struct{})
	for rows.Next() {
		var itemID, tagID int
		if err := rows.Scan(&itemID, &tagID); err != nil {
			return nil, fmt.Errorf("failed to scan tag assignment: %w", err)
		}
		if out[itemID] == nil {
			out[itemID] = make(map[int]struct{})
		}
		out[itemID][tagID] = struct{}{}
	}
	return out, rows.Err()
}

// AddAssignments inserts assignments in one transaction. Existing pairs are
// left alone. It returns the assignments that were actually added.
func (db *DB) AddAssignments(ctx context.Context, assignments []models.TagAssignment) (added []models.TagAssignment, err error) {
	if len(assignments) == 0 {
		return nil, nil
	}

	start := time.Now()
	defer func() { observe("insert", "tag_assignments", start, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			rollback(tx, err)
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO tag_assignments (bgg_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare assignment insert: %w", err)
	}
	defer closeWithLog(stmt, "statement")

	for _, a := range assignments {
		res, execErr := stmt.ExecContext(ctx, a.ItemID, a.TagID)
		if execErr != nil {
			err = fmt.Errorf("failed to assign tag %d to item %d: %w", a.TagID, a.ItemID, execErr)
			return nil, err
		}
		if n, raErr := res.RowsAffected(); raErr == nil && n > 0 {
			added = append(added, a)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return added, nil
}
