// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package importer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/ludothek/internal/config"
	"github.com/tomtom215/ludothek/internal/models"
)

func testResults(n int) []*JobResult {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out := make([]*JobResult, n)
	for i := range out {
		out[i] = &JobResult{
			RunID:     fmt.Sprintf("run-%d", i),
			Kind:      JobQuickSync,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Duration:  time.Second,
			Sync:      &models.SyncStats{Added: i},
		}
	}
	return out
}

func exerciseHistory(t *testing.T, h History) {
	t.Helper()
	ctx := context.Background()

	for _, r := range testResults(5) {
		if err := h.Record(ctx, r); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	all, err := h.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Recent(0) returned %d results, want 3 after pruning", len(all))
	}
	for i, want := range []string{"run-4", "run-3", "run-2"} {
		if all[i].RunID != want {
			t.Errorf("all[%d].RunID = %q, want %q", i, all[i].RunID, want)
		}
	}
	if all[0].Sync == nil || all[0].Sync.Added != 4 {
		t.Errorf("newest sync stats = %+v", all[0].Sync)
	}

	two, err := h.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent(2) error = %v", err)
	}
	if len(two) != 2 || two[1].RunID != "run-3" {
		t.Errorf("Recent(2) = %+v", two)
	}
}

func TestInMemoryHistory(t *testing.T) {
	exerciseHistory(t, NewInMemoryHistory(3))
}

func TestBadgerHistory(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("badger.Open() error = %v", err)
	}
	h := NewBadgerHistory(db, 3)
	t.Cleanup(func() { _ = h.Close() })

	exerciseHistory(t, h)
}

func TestOpenHistory(t *testing.T) {
	t.Run("empty path gives memory", func(t *testing.T) {
		h, err := OpenHistory(&config.ProgressConfig{})
		if err != nil {
			t.Fatalf("OpenHistory() error = %v", err)
		}
		if _, ok := h.(*InMemoryHistory); !ok {
			t.Errorf("history type = %T, want *InMemoryHistory", h)
		}
	})

	t.Run("directory gives badger and survives reopen", func(t *testing.T) {
		dir := t.TempDir()
		cfg := &config.ProgressConfig{Path: dir, HistoryLimit: 10}

		h, err := OpenHistory(cfg)
		if err != nil {
			t.Fatalf("OpenHistory() error = %v", err)
		}
		if err := h.Record(context.Background(), testResults(1)[0]); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if err := h.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		h, err = OpenHistory(cfg)
		if err != nil {
			t.Fatalf("reopen error = %v", err)
		}
		defer h.Close()
		runs, err := h.Recent(context.Background(), 0)
		if err != nil || len(runs) != 1 || runs[0].RunID != "run-0" {
			t.Errorf("Recent() = %+v, %v", runs, err)
		}
	})
}
