// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package bgg

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// tagsResponse is the subset of the api/tags payload that is used.
type tagsResponse struct {
	GlobalTags []struct {
		RawTag string `json:"rawtag"`
	} `json:"globaltags"`
}

// FetchTags returns the crowd tags of one game, lowercased and trimmed.
func (c *Client) FetchTags(ctx context.Context, id int) ([]string, error) {
	params := url.Values{}
	params.Set("objectid", strconv.Itoa(id))
	params.Set("objecttype", "thing")

	body, err := c.get(ctx, "tags", c.baseURL+"/api/tags?"+params.Encode(), false)
	if err != nil {
		return nil, err
	}
	return ParseTags(body)
}

// ParseTags decodes an api/tags payload.
func ParseTags(body []byte) ([]string, error) {
	var resp tagsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("tags: failed to decode response: %w", err)
	}

	tags := make([]string, 0, len(resp.GlobalTags))
	for _, t := range resp.GlobalTags {
		if raw := strings.ToLower(strings.TrimSpace(t.RawTag)); raw != "" {
			tags = append(tags, raw)
		}
	}
	return tags, nil
}
