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

	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/models"
)

// itemColumns lists the items columns in scan order.
var itemColumns = []string{
	"bgg_id", "name", "description", "german_description", "year_published",
	"min_players", "max_players", "min_playtime", "max_playtime", "playing_time",
	"rating", "ean", "img_url", "thumbnail_url", "player_age",
	"complexity", "complexity_label", "best_playercount",
	"min_recommended_playercount", "max_recommended_playercount",
	"acquired_from", "inventory_location", "private_comment",
	"quantity", "available", "borrow_count", "created_at", "updated_at",
}

var selectItemsQuery = "SELECT " + strings.Join(itemColumns, ", ") + " FROM items"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(s rowScanner) (models.InventoryItem, error) {
	var it models.InventoryItem
	err := s.Scan(
		&it.ExternalID, &it.Name, &it.Description, &it.GermanDescription, &it.YearPublished,
		&it.MinPlayers, &it.MaxPlayers, &it.MinPlaytime, &it.MaxPlaytime, &it.PlayingTime,
		&it.Rating, &it.EAN, &it.ImageURL, &it.ThumbnailURL, &it.PlayerAge,
		&it.Complexity, &it.ComplexityLabel, &it.BestPlayerCount,
		&it.MinRecommendedPlayerCount, &it.MaxRecommendedPlayerCount,
		&it.AcquiredFrom, &it.InventoryLocation, &it.PrivateComment,
		&it.Quantity, &it.Available, &it.BorrowCount, &it.CreatedAt, &it.UpdatedAt,
	)
	return it, err
}

// fieldArgs returns the attribute columns (name .. private_comment) as driver arguments.
func fieldArgs(f *models.ItemFields) []any {
	return []any{
		nullable(f.Name), nullable(f.Description), nullable(f.GermanDescription), nullable(f.YearPublished),
		nullable(f.MinPlayers), nullable(f.MaxPlayers), nullable(f.MinPlaytime), nullable(f.MaxPlaytime), nullable(f.PlayingTime),
		nullable(f.Rating), nullable(f.EAN), nullable(f.ImageURL), nullable(f.ThumbnailURL), nullable(f.PlayerAge),
		nullable(f.Complexity), nullable(f.ComplexityLabel), nullable(f.BestPlayerCount),
		nullable(f.MinRecommendedPlayerCount), nullable(f.MaxRecommendedPlayerCount),
		nullable(f.AcquiredFrom), nullable(f.InventoryLocation), nullable(f.PrivateComment),
	}
}

// nullable converts an optional value into a driver argument, nil for unknown.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// ListItems returns every item ordered by id.
func (db *DB) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, selectItemsQuery+" ORDER BY bgg_id")
	if err != nil {
		observe("select", "items", start, err)
		return nil, fmt.Errorf("failed to query items: %w", err)
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
	err = rows.Err()
	observe("select", "items", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// GetItem returns one item or ErrNotFound.
func (db *DB) GetItem(ctx context.Context, id int) (*models.InventoryItem, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	it, err := scanItem(db.conn.QueryRowContext(ctx, selectItemsQuery+" WHERE bgg_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		observe("select", "items", start, nil)
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	observe("select", "items", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return &it, nil
}

// ItemExists reports whether an item with the given id is stored.
func (db *DB) ItemExists(ctx context.Context, id int) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM items WHERE bgg_id = ?", id).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check item %d: %w", id, err)
	}
	return n > 0, nil
}

// ItemIDs returns the stored ids as a set.
func (db *DB) ItemIDs(ctx context.Context) (map[int]struct{}, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, "SELECT bgg_id FROM items")
	if err != nil {
		return nil, fmt.Errorf("failed to query item ids: %w", err)
	}
	defer closeWithLog(rows, "rows")

	ids := make(map[int]struct{})
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan item id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// ApplyPlan commits a reconcile plan in one transaction. Deleted items take
// their tag assignments and similarity edges with them. Any failure rolls
// the whole plan back.
func (db *DB) ApplyPlan(ctx context.Context, plan models.ReconcilePlan) (err error) {
	if plan.Empty() {
		return nil
	}

	start := time.Now()
	defer func() { observe("apply_plan", "items", start, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			rollback(tx, err)
		}
	}()

	if err = deleteItems(ctx, tx, plan.Delete); err != nil {
		return err
	}
	if err = updateItems(ctx, tx, plan.Update); err != nil {
		return err
	}
	if err = insertItems(ctx, tx, plan.Create); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logging.Debug().
		Int("created", len(plan.Create)).
		Int("updated", len(plan.Update)).
		Int("deleted", len(plan.Delete)).
		Msg("Reconcile plan applied")
	return nil
}

func deleteItems(ctx context.Context, tx *sql.Tx, ids []int) error {
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, "DELETE FROM tag_assignments WHERE bgg_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete tag assignments of item %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM similarity_edges WHERE game_id = ? OR similar_game_id = ?", id, id); err != nil {
			return fmt.Errorf("failed to delete similarity edges of item %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE bgg_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete item %d: %w", id, err)
		}
	}
	return nil
}

func updateItems(ctx context.Context, tx *sql.Tx, updates []models.ItemUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	// name .. private_comment, quantity, available
	sets := make([]string, 0, len(itemColumns))
	for _, col := range itemColumns[1:25] {
		sets = append(sets, col+" = ?")
	}
	query := "UPDATE items SET " + strings.Join(sets, ", ") + ", updated_at = ? WHERE bgg_id = ?"

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare item update: %w", err)
	}
	defer closeWithLog(stmt, "statement")

	now := time.Now().UTC()
	for i := range updates {
		it := updates[i].Item
		it.ClampAvailable()
		args := fieldArgs(&it.ItemFields)
		args = append(args, it.Quantity, it.Available, now, it.ExternalID)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to update item %d: %w", it.ExternalID, err)
		}
	}
	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, items []models.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(itemColumns)), ", ")
	query := "INSERT INTO items (" + strings.Join(itemColumns, ", ") + ") VALUES (" + placeholders + ")"

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer closeWithLog(stmt, "statement")

	now := time.Now().UTC()
	for i := range items {
		it := items[i]
		it.ClampAvailable()
		args := []any{it.ExternalID}
		args = append(args, fieldArgs(&it.ItemFields)...)
		args = append(args, it.Quantity, it.Available, it.BorrowCount, now, now)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert item %d: %w", it.ExternalID, err)
		}
	}
	return nil
}
