// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	BGG        BGGConfig        `koanf:"bgg"`
	Sync       SyncConfig       `koanf:"sync"`
	Tags       TagsConfig       `koanf:"tags"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Database   DatabaseConfig   `koanf:"database"`
	Progress   ProgressConfig   `koanf:"progress"`
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// BGGConfig holds BoardGameGeek connection settings.
//
// Username is the collection owner. Password is only needed for the full
// (private) sync, which logs in to read privateinfo blocks.
type BGGConfig struct {
	BaseURL           string        `koanf:"base_url" validate:"required,url"`
	Username          string        `koanf:"username"`
	Password          string        `koanf:"password"`
	APIToken          string        `koanf:"api_token"`
	UserAgent         string        `koanf:"user_agent"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int           `koanf:"burst" validate:"min=1"`
}

// SyncConfig controls collection fetching, detail enrichment and scheduling.
type SyncConfig struct {
	CollectionRetriesFull   int           `koanf:"collection_retries_full" validate:"min=1"`
	CollectionRetriesQuick  int           `koanf:"collection_retries_quick" validate:"min=1"`
	CollectionRetryInterval time.Duration `koanf:"collection_retry_interval" validate:"gte=0"`

	// DetailBatchSize is capped at 20 by the upstream thing endpoint.
	DetailBatchSize     int           `koanf:"detail_batch_size" validate:"min=1,max=20"`
	DetailRetries       int           `koanf:"detail_retries" validate:"min=1"`
	DetailRetryInterval time.Duration `koanf:"detail_retry_interval" validate:"gte=0"`

	// FastMode limits quick-sync enrichment to games not yet in the library.
	FastMode bool `koanf:"fast_mode"`

	ScheduleEnabled  bool          `koanf:"schedule_enabled"`
	ScheduleInterval time.Duration `koanf:"schedule_interval" validate:"gte=0"`
	ScheduleOnStart  bool          `koanf:"schedule_run_on_startup"`

	// JobTimeout bounds a single import job started from the HTTP surface or the scheduler.
	JobTimeout time.Duration `koanf:"job_timeout" validate:"gt=0"`
}

// TagsConfig controls the tag normalization pass.
type TagsConfig struct {
	FetchRetries       int           `koanf:"fetch_retries" validate:"min=1"`
	FetchRetryInterval time.Duration `koanf:"fetch_retry_interval" validate:"gte=0"`

	// VocabularyPath is an optional YAML file of canonical tags seeded at start-up.
	VocabularyPath string `koanf:"vocabulary_path"`
}

// SimilarityConfig controls similarity scoring and the display read path.
type SimilarityConfig struct {
	TopK          int     `koanf:"top_k" validate:"min=1,max=100"`
	DisplayLimit  int     `koanf:"display_limit" validate:"min=1"`
	ComplexityCap float64 `koanf:"complexity_cap" validate:"gt=0"`

	// CacheSize bounds the per-game neighbor cache of the read path. Zero disables it.
	CacheSize int           `koanf:"cache_size" validate:"gte=0"`
	CacheTTL  time.Duration `koanf:"cache_ttl" validate:"gte=0"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path" validate:"required"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads" validate:"gte=0"`
}

// ProgressConfig holds job history settings. An empty Path keeps history in memory.
type ProgressConfig struct {
	Path         string `koanf:"path"`
	HistoryLimit int    `koanf:"history_limit" validate:"min=1"`
}

// ServerConfig holds the admin HTTP server settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"loglevel"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
