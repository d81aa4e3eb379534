// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package config

import (
	"fmt"

	"github.com/tomtom215/ludothek/internal/validation"
)

// Validate checks struct-tag constraints and cross-field rules.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if c.Similarity.DisplayLimit > c.Similarity.TopK {
		return fmt.Errorf("similarity.display_limit (%d) must not exceed similarity.top_k (%d)",
			c.Similarity.DisplayLimit, c.Similarity.TopK)
	}

	if c.Sync.ScheduleEnabled {
		if c.BGG.Username == "" {
			return fmt.Errorf("BGG_USERNAME is required when SYNC_SCHEDULE_ENABLED=true")
		}
		if c.Sync.ScheduleInterval <= 0 {
			return fmt.Errorf("SYNC_SCHEDULE_INTERVAL must be positive when SYNC_SCHEDULE_ENABLED=true")
		}
	}

	if c.BGG.Password != "" && c.BGG.Username == "" {
		return fmt.Errorf("BGG_PASSWORD is set but BGG_USERNAME is empty")
	}

	return nil
}

// HasCredentials reports whether a full (private) sync can log in.
func (c *Config) HasCredentials() bool {
	return c.BGG.Username != "" && c.BGG.Password != ""
}
