// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package snapshot

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/models"
)

// Parse reads a collection document and returns one record per object id.
func Parse(r io.Reader) (map[int]*models.SnapshotRecord, error) {
	var doc collectionDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("snapshot: failed to parse collection XML: %w", err)
	}

	records := make(map[int]*models.SnapshotRecord, len(doc.Items))
	for i := range doc.Items {
		occ, ok := parseItem(&doc.Items[i])
		if !ok {
			continue
		}
		if existing, found := records[occ.ExternalID]; found {
			existing.Merge(occ)
			continue
		}
		records[occ.ExternalID] = occ
	}
	for _, rec := range records {
		rec.ApplyAnnotatedCounts()
	}

	logging.Debug().
		Int("entries", len(doc.Items)).
		Int("records", len(records)).
		Msg("Collection snapshot parsed")
	return records, nil
}

// IDs returns the record ids in ascending order.
func IDs(records map[int]*models.SnapshotRecord) []int {
	ids := make([]int, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// parseItem builds the record for one collection entry. The entry counts as
// one copy unless its privateinfo says otherwise.
func parseItem(item *collectionItem) (*models.SnapshotRecord, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(item.ObjectID))
	if err != nil || id <= 0 {
		logging.Warn().Str("objectid", item.ObjectID).Msg("Skipping collection entry with malformed object id")
		return nil, false
	}

	rec := models.NewSnapshotRecord(id)
	rec.Occurrences = 1
	rec.Quantity = 1

	rec.Name = text(item.Name)
	rec.YearPublished = intValue(id, "yearpublished", deref(item.YearPublished))
	rec.ImageURL = text(item.Image)
	rec.ThumbnailURL = text(item.Thumbnail)

	if s := item.Stats; s != nil {
		rec.MinPlayers = intValue(id, "minplayers", s.MinPlayers)
		rec.MaxPlayers = intValue(id, "maxplayers", s.MaxPlayers)
		rec.MinPlaytime = intValue(id, "minplaytime", s.MinPlaytime)
		rec.MaxPlaytime = intValue(id, "maxplaytime", s.MaxPlaytime)
		rec.PlayingTime = intValue(id, "playingtime", s.PlayingTime)
		if s.Average != nil {
			rec.Rating = floatValue(id, "average", s.Average.Value)
		}
	}

	if p := item.PrivateInfo; p != nil {
		if q := intValue(id, "quantity", p.Quantity); q != nil && *q > 0 {
			rec.Quantity = *q
		}
		rec.AcquiredFrom = attr(p.AcquiredFrom)
		rec.InventoryLocation = attr(p.InventoryLocation)
		if p.PrivateComment != nil {
			comment := *p.PrivateComment
			rec.PrivateComment = &comment
			applyAnnotation(rec, comment)
		}
	}

	rec.Available = rec.Quantity
	return rec, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// text returns the trimmed element text, nil when absent.
func text(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// attr returns nil for an empty attribute.
func attr(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func intValue(id int, field, raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logging.Warn().Int("bgg_id", id).Str("field", field).Str("value", raw).Msg("Malformed integer in collection entry")
		return nil
	}
	return &v
}

func floatValue(id int, field, raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logging.Warn().Int("bgg_id", id).Str("field", field).Str("value", raw).Msg("Malformed number in collection entry")
		return nil
	}
	return &v
}
