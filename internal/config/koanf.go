// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/ludothek/config.yaml",
	"/etc/ludothek/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. Retry counts and intervals
// match what BoardGameGeek tolerates for a single hobby collection.
func defaultConfig() *Config {
	return &Config{
		BGG: BGGConfig{
			BaseURL:           "https://boardgamegeek.com",
			UserAgent:         "ludothek/1.0 (+https://github.com/tomtom215/ludothek)",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 0.5,
			Burst:             2,
		},
		Sync: SyncConfig{
			CollectionRetriesFull:   10,
			CollectionRetriesQuick:  5,
			CollectionRetryInterval: 5 * time.Second,
			DetailBatchSize:         20,
			DetailRetries:           5,
			DetailRetryInterval:     5 * time.Second,
			FastMode:                true,
			ScheduleEnabled:         false,
			ScheduleInterval:        6 * time.Hour,
			JobTimeout:              30 * time.Minute,
		},
		Tags: TagsConfig{
			FetchRetries:       3,
			FetchRetryInterval: 500 * time.Millisecond,
		},
		Similarity: SimilarityConfig{
			TopK:          10,
			DisplayLimit:  6,
			ComplexityCap: 5.0,
			CacheSize:     1024,
			CacheTTL:      10 * time.Minute,
		},
		Database: DatabaseConfig{
			Path:      "/data/ludothek.duckdb",
			MaxMemory: "1GB",
		},
		Progress: ProgressConfig{
			Path:         "",
			HistoryLimit: 50,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			Timeout:           30 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 30,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration: defaults, then the optional file, then
// environment variables. The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// BGG_USERNAME -> bgg.username, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated env strings.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields splits comma-separated env values for known slice fields.
// Values that are already slices (from YAML) are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	"bgg_base_url":            "bgg.base_url",
	"bgg_username":            "bgg.username",
	"bgg_password":            "bgg.password",
	"bgg_api_token":           "bgg.api_token",
	"bgg_user_agent":          "bgg.user_agent",
	"bgg_timeout":             "bgg.timeout",
	"bgg_requests_per_second": "bgg.requests_per_second",
	"bgg_burst":               "bgg.burst",

	"sync_collection_retries_full":   "sync.collection_retries_full",
	"sync_collection_retries_quick":  "sync.collection_retries_quick",
	"sync_collection_retry_interval": "sync.collection_retry_interval",
	"sync_detail_batch_size":         "sync.detail_batch_size",
	"sync_detail_retries":            "sync.detail_retries",
	"sync_detail_retry_interval":     "sync.detail_retry_interval",
	"sync_fast_mode":                 "sync.fast_mode",
	"sync_schedule_enabled":          "sync.schedule_enabled",
	"sync_schedule_interval":         "sync.schedule_interval",
	"sync_schedule_run_on_startup":   "sync.schedule_run_on_startup",
	"sync_job_timeout":               "sync.job_timeout",

	"tags_fetch_retries":        "tags.fetch_retries",
	"tags_fetch_retry_interval": "tags.fetch_retry_interval",
	"tags_vocabulary_path":      "tags.vocabulary_path",

	"similarity_top_k":          "similarity.top_k",
	"similarity_display_limit":  "similarity.display_limit",
	"similarity_complexity_cap": "similarity.complexity_cap",
	"similarity_cache_size":     "similarity.cache_size",
	"similarity_cache_ttl":      "similarity.cache_ttl",

	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"progress_path":       "progress.path",
	"history_limit":       "progress.history_limit",
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
