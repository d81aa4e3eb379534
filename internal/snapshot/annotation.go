// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package snapshot

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/models"
)

// AnnotationMarker is the leading line of a machine-managed private comment.
const AnnotationMarker = "!!! Bitte nicht verändern !!!"

type fieldDecoder func(rec *models.SnapshotRecord, raw json.RawMessage) error

// overrideFields maps annotation keys to the record field they replace.
// private_comment is absent: the annotation cannot rewrite itself.
var overrideFields = map[string]fieldDecoder{
	"name":                        stringField(func(r *models.SnapshotRecord) **string { return &r.Name }),
	"description":                 stringField(func(r *models.SnapshotRecord) **string { return &r.Description }),
	"german_description":          stringField(func(r *models.SnapshotRecord) **string { return &r.GermanDescription }),
	"year_published":              numberField(func(r *models.SnapshotRecord) **int { return &r.YearPublished }),
	"min_players":                 numberField(func(r *models.SnapshotRecord) **int { return &r.MinPlayers }),
	"max_players":                 numberField(func(r *models.SnapshotRecord) **int { return &r.MaxPlayers }),
	"min_playtime":                numberField(func(r *models.SnapshotRecord) **int { return &r.MinPlaytime }),
	"max_playtime":                numberField(func(r *models.SnapshotRecord) **int { return &r.MaxPlaytime }),
	"playing_time":                numberField(func(r *models.SnapshotRecord) **int { return &r.PlayingTime }),
	"rating":                      numberField(func(r *models.SnapshotRecord) **float64 { return &r.Rating }),
	"ean":                         stringField(func(r *models.SnapshotRecord) **string { return &r.EAN }),
	"img_url":                     stringField(func(r *models.SnapshotRecord) **string { return &r.ImageURL }),
	"thumbnail_url":               stringField(func(r *models.SnapshotRecord) **string { return &r.ThumbnailURL }),
	"player_age":                  numberField(func(r *models.SnapshotRecord) **int { return &r.PlayerAge }),
	"complexity":                  numberField(func(r *models.SnapshotRecord) **float64 { return &r.Complexity }),
	"complexity_label":            stringField(func(r *models.SnapshotRecord) **string { return &r.ComplexityLabel }),
	"best_playercount":            numberField(func(r *models.SnapshotRecord) **int { return &r.BestPlayerCount }),
	"min_recommended_playercount": numberField(func(r *models.SnapshotRecord) **int { return &r.MinRecommendedPlayerCount }),
	"max_recommended_playercount": numberField(func(r *models.SnapshotRecord) **int { return &r.MaxRecommendedPlayerCount }),
	"acquired_from":               stringField(func(r *models.SnapshotRecord) **string { return &r.AcquiredFrom }),
	"inventory_location":          stringField(func(r *models.SnapshotRecord) **string { return &r.InventoryLocation }),
}

// applyAnnotation decodes the last line of comment and overrides the fields
// it names. Counts are only recorded on rec; Parse applies them per game.
func applyAnnotation(rec *models.SnapshotRecord, comment string) {
	payload := payloadLine(comment)
	if payload == "" {
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		if strings.HasPrefix(payload, "{") {
			logging.Warn().Int("bgg_id", rec.ExternalID).Err(err).Msg("Private comment payload is not valid JSON, keeping it as text")
		}
		return
	}

	for key, raw := range fields {
		switch key {
		case "quantity":
			if q, ok := decodeCount(rec.ExternalID, key, raw); ok {
				rec.AnnotatedQuantity = &q
			}
			continue
		case "available":
			if a, ok := decodeCount(rec.ExternalID, key, raw); ok {
				rec.AnnotatedAvailable = &a
			}
			continue
		}

		decode, known := overrideFields[key]
		if !known {
			logging.Debug().Int("bgg_id", rec.ExternalID).Str("key", key).Msg("Ignoring unknown private comment key")
			continue
		}
		if err := decode(rec, raw); err != nil {
			logging.Warn().Int("bgg_id", rec.ExternalID).Str("key", key).Err(err).Msg("Ignoring malformed private comment value")
		}
	}
}

// payloadLine returns the trimmed last non-blank line, or "" when the
// comment holds nothing but the marker.
func payloadLine(comment string) string {
	lines := strings.Split(strings.TrimSpace(comment), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == AnnotationMarker {
		return ""
	}
	return last
}

func decodeCount(id int, key string, raw json.RawMessage) (int, bool) {
	var v *int
	if err := json.Unmarshal(raw, &v); err != nil || v == nil || *v < 0 {
		logging.Warn().Int("bgg_id", id).Str("key", key).Str("value", string(raw)).Msg("Ignoring malformed private comment count")
		return 0, false
	}
	return *v, true
}

// stringField accepts JSON strings and bare numbers, since EANs are often
// written unquoted.
func stringField(field func(*models.SnapshotRecord) **string) fieldDecoder {
	return func(rec *models.SnapshotRecord, raw json.RawMessage) error {
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && (raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
			v := string(raw)
			*field(rec) = &v
			return nil
		}
		var v *string
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if v != nil {
			*field(rec) = v
		}
		return nil
	}
}

func numberField[T int | float64](field func(*models.SnapshotRecord) **T) fieldDecoder {
	return func(rec *models.SnapshotRecord, raw json.RawMessage) error {
		var v *T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if v != nil {
			*field(rec) = v
		}
		return nil
	}
}
