// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package tagging

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/models"
	"github.com/tomtom215/ludothek/internal/validation"
)

// VocabularyStore persists canonical tags.
type VocabularyStore interface {
	UpsertTag(ctx context.Context, tag *models.CanonicalTag) (int, error)
}

type vocabularyFile struct {
	Tags []vocabularyEntry `koanf:"tags" validate:"dive"`
}

// vocabularyEntry is one tag as written in YAML. is_active defaults to true.
type vocabularyEntry struct {
	NormalizedTag       string   `koanf:"normalized_tag" validate:"required"`
	GermanNormalizedTag string   `koanf:"german_normalized_tag"`
	Synonyms            []string `koanf:"synonyms"`
	Priority            int      `koanf:"priority" validate:"min=0"`
	IsActive            *bool    `koanf:"is_active"`
}

func (e *vocabularyEntry) tag() models.CanonicalTag {
	active := true
	if e.IsActive != nil {
		active = *e.IsActive
	}
	return models.CanonicalTag{
		NormalizedTag:       e.NormalizedTag,
		GermanNormalizedTag: e.GermanNormalizedTag,
		Synonyms:            e.Synonyms,
		Priority:            e.Priority,
		IsActive:            active,
	}
}

// LoadVocabulary reads and validates a YAML tag vocabulary.
func LoadVocabulary(path string) ([]models.CanonicalTag, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load tag vocabulary %s: %w", path, err)
	}

	var vocab vocabularyFile
	if err := k.Unmarshal("", &vocab); err != nil {
		return nil, fmt.Errorf("failed to decode tag vocabulary: %w", err)
	}
	if verr := validation.ValidateStruct(&vocab); verr != nil {
		return nil, fmt.Errorf("invalid tag vocabulary: %w", verr)
	}
	tags := make([]models.CanonicalTag, len(vocab.Tags))
	for i := range vocab.Tags {
		tags[i] = vocab.Tags[i].tag()
	}
	return tags, nil
}

// SeedVocabulary upserts every tag of the YAML file at path and returns how
// many were written. An empty path is a no-op.
func SeedVocabulary(ctx context.Context, store VocabularyStore, path string) (int, error) {
	if path == "" {
		return 0, nil
	}

	tags, err := LoadVocabulary(path)
	if err != nil {
		return 0, err
	}

	for i := range tags {
		if _, err := store.UpsertTag(ctx, &tags[i]); err != nil {
			return i, fmt.Errorf("failed to save tag %q: %w", tags[i].NormalizedTag, err)
		}
	}

	logging.Info().Str("path", path).Int("tags", len(tags)).Msg("Tag vocabulary seeded")
	return len(tags), nil
}
