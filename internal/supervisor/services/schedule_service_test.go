// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/ludothek/internal/importer"
	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/models"
)

// mockRunner records Run calls.
type mockRunner struct {
	mu    sync.Mutex
	calls []importer.Params
	kinds []importer.JobKind
	err   error
}

func (m *mockRunner) Run(_ context.Context, kind importer.JobKind, params importer.Params) (*importer.JobResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, params)
	m.kinds = append(m.kinds, kind)
	if m.err != nil {
		return nil, m.err
	}
	return &importer.JobResult{RunID: "run-1", Kind: kind, Sync: &models.SyncStats{Added: 1}}, nil
}

func (m *mockRunner) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// syncBuffer is a bytes.Buffer safe for the logger and the test goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var _ suture.Service = (*ScheduledSyncService)(nil)

func TestScheduledSyncService_Defaults(t *testing.T) {
	svc := NewScheduledSyncService(&mockRunner{}, ScheduledSyncConfig{}, logging.NewTestLogger(&syncBuffer{}))
	if svc.config.Interval != 6*time.Hour || svc.config.JobTimeout != 30*time.Minute {
		t.Errorf("config = %+v", svc.config)
	}
	if svc.String() != "scheduled-sync" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestScheduledSyncService_RunOnStartup(t *testing.T) {
	runner := &mockRunner{}
	svc := NewScheduledSyncService(runner, ScheduledSyncConfig{
		Interval:     time.Hour,
		RunOnStartup: true,
		FastMode:     true,
	}, logging.NewTestLogger(&syncBuffer{}))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want DeadlineExceeded", err)
	}
	if runner.count() != 1 {
		t.Fatalf("Run called %d times, want 1", runner.count())
	}
	if runner.kinds[0] != importer.JobQuickSync || !runner.calls[0].FastMode {
		t.Errorf("Run(%q, %+v), want fast quick_sync", runner.kinds[0], runner.calls[0])
	}
}

func TestScheduledSyncService_Ticks(t *testing.T) {
	runner := &mockRunner{}
	svc := NewScheduledSyncService(runner, ScheduledSyncConfig{Interval: 20 * time.Millisecond}, logging.NewTestLogger(&syncBuffer{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = svc.Serve(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for runner.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if runner.count() < 2 {
		t.Errorf("Run called %d times, want >= 2", runner.count())
	}
}

func TestScheduledSyncService_ConflictIsNotAFailure(t *testing.T) {
	buf := &syncBuffer{}
	runner := &mockRunner{err: importer.ErrImportInProgress}
	svc := NewScheduledSyncService(runner, ScheduledSyncConfig{Interval: time.Hour}, logging.NewTestLogger(buf))

	svc.runOnce(context.Background())

	out := buf.String()
	if !strings.Contains(out, "skipped") || !strings.Contains(out, `"level":"info"`) {
		t.Errorf("log output = %s, want info-level skip", out)
	}
	if strings.Contains(out, `"level":"warn"`) {
		t.Error("a busy coordinator must not be logged as a failure")
	}
}

func TestScheduledSyncService_FailureIsLogged(t *testing.T) {
	buf := &syncBuffer{}
	runner := &mockRunner{err: &importer.JobError{Code: importer.CodeInternal, Kind: importer.JobQuickSync, Err: errors.New("boom")}}
	svc := NewScheduledSyncService(runner, ScheduledSyncConfig{Interval: time.Hour}, logging.NewTestLogger(buf))

	svc.runOnce(context.Background())

	if out := buf.String(); !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, "scheduled sync failed") {
		t.Errorf("log output = %s", out)
	}
}
