// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package importer

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/ludothek/internal/bgg"
	"github.com/tomtom215/ludothek/internal/config"
	"github.com/tomtom215/ludothek/internal/database"
	"github.com/tomtom215/ludothek/internal/models"
)

const collectionXML = `<?xml version="1.0" encoding="utf-8" standalone="yes"?>
<items totalitems="2">
	<item objecttype="thing" objectid="13" subtype="boardgame">
		<name sortindex="1">Catan</name>
		<yearpublished>1995</yearpublished>
		<stats minplayers="3" maxplayers="4" playingtime="120"><rating value="N/A"><average value="7.1"/></rating></stats>
	</item>
	<item objecttype="thing" objectid="822" subtype="boardgame">
		<name sortindex="1">Carcassonne</name>
		<stats minplayers="2" maxplayers="5" playingtime="45"><rating value="N/A"><average value="7.4"/></rating></stats>
	</item>
</items>`

// fakeUpstream serves canned BoardGameGeek responses.
type fakeUpstream struct {
	mu sync.Mutex

	collection []byte
	notReady   int // FetchCollection answers ErrNotReady this many times first
	details    map[int]*models.Details
	tags       map[int][]string
	loginErr   error

	// collectionErr is returned by FetchCollection once notReady is used up
	collectionErr error

	logins          int
	privateFetches  int
	detailRequests  [][]int
	collectionCalls int

	// started and release block FetchCollection when set.
	started chan struct{}
	release chan struct{}
}

var _ bgg.Upstream = (*fakeUpstream)(nil)

func (f *fakeUpstream) FetchCollection(ctx context.Context, _ string, private bool) ([]byte, error) {
	f.mu.Lock()
	f.collectionCalls++
	if private {
		f.privateFetches++
	}
	started, release := f.started, f.release
	notReady := f.notReady > 0
	if notReady {
		f.notReady--
	}
	f.mu.Unlock()

	if started != nil {
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if notReady {
		return nil, bgg.ErrNotReady
	}
	if f.collectionErr != nil {
		return nil, f.collectionErr
	}
	return f.collection, nil
}

func (f *fakeUpstream) FetchDetails(_ context.Context, ids []int) (map[int]*models.Details, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailRequests = append(f.detailRequests, append([]int(nil), ids...))
	out := make(map[int]*models.Details)
	for _, id := range ids {
		if d, ok := f.details[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

func (f *fakeUpstream) FetchTags(_ context.Context, id int) ([]string, error) {
	return f.tags[id], nil
}

func (f *fakeUpstream) Login(_ context.Context, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	if f.loginErr != nil {
		return f.loginErr
	}
	if username == "" || password == "" {
		return fmt.Errorf("%w: missing credentials", bgg.ErrLoginFailed)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		BGG: config.BGGConfig{Username: "ludothek"},
		Sync: config.SyncConfig{
			CollectionRetriesFull:   10,
			CollectionRetriesQuick:  5,
			CollectionRetryInterval: 5 * time.Second,
			DetailBatchSize:         20,
			DetailRetries:           5,
			DetailRetryInterval:     5 * time.Second,
		},
		Tags: config.TagsConfig{FetchRetries: 3, FetchRetryInterval: 500 * time.Millisecond},
		Similarity: config.SimilarityConfig{
			TopK:          10,
			DisplayLimit:  6,
			ComplexityCap: 5,
		},
	}
}

// sleepRecorder records requested waits without sleeping.
type sleepRecorder struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.waits = append(s.waits, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *sleepRecorder) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waits)
}

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", Threads: 2})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestCoordinator(t *testing.T, cfg *config.Config, up *fakeUpstream, store Store) (*Coordinator, *sleepRecorder, *InMemoryHistory) {
	t.Helper()
	rec := &sleepRecorder{}
	hist := NewInMemoryHistory(10)
	c, err := NewCoordinator(cfg, Deps{
		Upstream: up,
		Store:    store,
		History:  hist,
		Sleep:    rec.sleep,
		Seed:     1,
	})
	if err != nil {
		t.Fatalf("NewCoordinator() error = %v", err)
	}
	return c, rec, hist
}
