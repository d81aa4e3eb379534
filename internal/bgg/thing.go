// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package bgg

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/models"
)

// MaxThingBatch is the most ids the thing endpoint accepts per request.
const MaxThingBatch = 20

type thingItems struct {
	Items []thingItem `xml:"item"`
}

type thingItem struct {
	ID            string      `xml:"id,attr"`
	Description   *string     `xml:"description"`
	MinAge        *valueAttr  `xml:"minage"`
	Polls         []thingPoll `xml:"poll"`
	AverageWeight *valueAttr  `xml:"statistics>ratings>averageweight"`
}

type valueAttr struct {
	Value string `xml:"value,attr"`
}

type thingPoll struct {
	Name    string        `xml:"name,attr"`
	Results []pollResults `xml:"results"`
}

type pollResults struct {
	NumPlayers string       `xml:"numplayers,attr"`
	Results    []pollResult `xml:"result"`
}

type pollResult struct {
	Value    string `xml:"value,attr"`
	NumVotes string `xml:"numvotes,attr"`
}

// FetchDetails fetches details for up to MaxThingBatch ids.
func (c *Client) FetchDetails(ctx context.Context, ids []int) (map[int]*models.Details, error) {
	if len(ids) == 0 {
		return map[int]*models.Details{}, nil
	}
	if len(ids) > MaxThingBatch {
		return nil, fmt.Errorf("thing: %d ids exceed the batch limit of %d", len(ids), MaxThingBatch)
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	params := url.Values{}
	params.Set("id", strings.Join(parts, ","))
	params.Set("stats", "1")

	body, err := c.get(ctx, "thing", c.baseURL+"/xmlapi2/thing?"+params.Encode(), true)
	if err != nil {
		return nil, err
	}
	return ParseThings(bytes.NewReader(body))
}

// ParseThings maps a thing response to Details keyed by id. Malformed
// numeric values are logged and left nil; only a broken document fails.
func ParseThings(r io.Reader) (map[int]*models.Details, error) {
	var doc thingItems
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("thing: failed to parse XML: %w", err)
	}

	out := make(map[int]*models.Details, len(doc.Items))
	for i := range doc.Items {
		item := &doc.Items[i]
		id, err := strconv.Atoi(strings.TrimSpace(item.ID))
		if err != nil {
			logging.Warn().Str("id", item.ID).Msg("Skipping thing with malformed id")
			continue
		}

		d := &models.Details{}
		if item.Description != nil {
			desc := html.UnescapeString(*item.Description)
			d.Description = &desc
		}
		if item.MinAge != nil {
			d.PlayerAge = parseIntField(id, "minage", item.MinAge.Value)
		}
		if item.AverageWeight != nil {
			d.Complexity = parseFloatField(id, "averageweight", item.AverageWeight.Value)
		}
		for p := range item.Polls {
			if item.Polls[p].Name == "suggested_numplayers" {
				d.BestPlayerCount, d.MinRecommendedPlayerCount, d.MaxRecommendedPlayerCount =
					playerCounts(id, &item.Polls[p])
			}
		}
		out[id] = d
	}
	return out, nil
}

// playerCounts derives the best player count (most "Best" votes) and the
// min/max of the player counts whose most-voted label is "Recommended".
func playerCounts(id int, poll *thingPoll) (best, minRec, maxRec *int) {
	bestVotes := 0
	for _, bucket := range poll.Results {
		n := parseIntField(id, "numplayers", bucket.NumPlayers)
		if n == nil {
			continue
		}

		topLabel, topVotes := "", 0
		for _, r := range bucket.Results {
			votes := 0
			if v := parseIntField(id, "numvotes", r.NumVotes); v != nil {
				votes = *v
			}
			if r.Value == "Best" && votes > bestVotes {
				bestVotes = votes
				best = models.Ptr(*n)
			}
			if votes > topVotes {
				topLabel, topVotes = r.Value, votes
			}
		}

		if topLabel == "Recommended" {
			if minRec == nil || *n < *minRec {
				minRec = models.Ptr(*n)
			}
			if maxRec == nil || *n > *maxRec {
				maxRec = models.Ptr(*n)
			}
		}
	}
	return best, minRec, maxRec
}

func parseIntField(id int, field, raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logging.Warn().Int("bgg_id", id).Str("field", field).Str("value", raw).Msg("Malformed integer value")
		return nil
	}
	return &v
}

func parseFloatField(id int, field, raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logging.Warn().Int("bgg_id", id).Str("field", field).Str("value", raw).Msg("Malformed number value")
		return nil
	}
	return &v
}
