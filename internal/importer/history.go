// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package importer

import (
	"context"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/ludothek/internal/config"
)

const (
	// historyKeyPrefix prefixes job records; keys sort by start time.
	historyKeyPrefix = "import:history:"

	// DefaultHistoryLimit is the number of runs kept when none is configured.
	DefaultHistoryLimit = 50
)

// History stores finished job results.
type History interface {
	// Record stores a result and drops the oldest beyond the retention limit.
	Record(ctx context.Context, result *JobResult) error

	// Recent returns up to limit results, newest first.
	Recent(ctx context.Context, limit int) ([]JobResult, error)

	// Close releases the underlying storage.
	Close() error
}

// OpenHistory returns a Badger-backed history at cfg.Path, or an in-memory
// one when the path is empty.
func OpenHistory(cfg *config.ProgressConfig) (History, error) {
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if cfg.Path == "" {
		return NewInMemoryHistory(limit), nil
	}

	opts := badger.DefaultOptions(cfg.Path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for job history: %w", err)
	}
	return NewBadgerHistory(db, limit), nil
}

// BadgerHistory implements History using BadgerDB so the run log survives
// restarts.
type BadgerHistory struct {
	db    *badger.DB
	limit int
}

// NewBadgerHistory creates a history on an open BadgerDB. The history owns db.
func NewBadgerHistory(db *badger.DB, limit int) *BadgerHistory {
	return &BadgerHistory{db: db, limit: limit}
}

func historyKey(r *JobResult) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", historyKeyPrefix, r.StartedAt.UnixNano(), r.RunID))
}

// Record persists result and prunes the oldest entries.
func (h *BadgerHistory) Record(_ context.Context, result *JobResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal job result: %w", err)
	}

	return h.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(historyKey(result), data); err != nil {
			return err
		}

		var keys [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		prefix := []byte(historyKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for i := 0; i < len(keys)-h.limit; i++ {
			if err := txn.Delete(keys[i]); err != nil {
				return fmt.Errorf("prune job history: %w", err)
			}
		}
		return nil
	})
}

// Recent returns the newest results first.
func (h *BadgerHistory) Recent(_ context.Context, limit int) ([]JobResult, error) {
	var results []JobResult

	err := h.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(historyKeyPrefix)
		for it.Seek(append(append([]byte{}, prefix...), 0xff)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}
			var r JobResult
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			results = append(results, r)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load job history: %w", err)
	}
	return results, nil
}

// Close closes the BadgerDB.
func (h *BadgerHistory) Close() error {
	return h.db.Close()
}

// InMemoryHistory implements History in memory.
// This is useful for testing or when persistence is not required.
type InMemoryHistory struct {
	mu      sync.Mutex
	limit   int
	results []JobResult
}

// NewInMemoryHistory creates an in-memory history keeping limit results.
func NewInMemoryHistory(limit int) *InMemoryHistory {
	return &InMemoryHistory{limit: limit}
}

// Record stores a copy of result.
func (h *InMemoryHistory) Record(_ context.Context, result *JobResult) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.results = append(h.results, *result)
	if extra := len(h.results) - h.limit; extra > 0 {
		h.results = append([]JobResult(nil), h.results[extra:]...)
	}
	return nil
}

// Recent returns copies of the newest results first.
func (h *InMemoryHistory) Recent(_ context.Context, limit int) ([]JobResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.results)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]JobResult, 0, n)
	for i := len(h.results) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, h.results[i])
	}
	return out, nil
}

// Close is a no-op.
func (h *InMemoryHistory) Close() error {
	return nil
}
