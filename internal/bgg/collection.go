// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package bgg

import (
	"context"
	"fmt"
	"net/url"
)

// FetchCollection returns the raw collection XML for username. The private
// variant includes privateinfo blocks and requires a prior Login.
func (c *Client) FetchCollection(ctx context.Context, username string, private bool) ([]byte, error) {
	if username == "" {
		return nil, fmt.Errorf("collection: username is required")
	}

	params := url.Values{}
	params.Set("username", username)
	params.Set("stats", "1")
	if private {
		params.Set("showprivate", "1")
	}

	body, err := c.get(ctx, "collection", c.baseURL+"/xmlapi2/collection?"+params.Encode(), true)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("username", username).
		Bool("private", private).
		Int("bytes", len(body)).
		Msg("Collection fetched")
	return body, nil
}
