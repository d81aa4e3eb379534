// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package models

import "time"

// ItemFields holds the optional descriptive attributes of a board game.
// A nil pointer means the value is unknown.
type ItemFields struct {
	Name              *string  `json:"name,omitempty"`
	Description       *string  `json:"description,omitempty"`
	GermanDescription *string  `json:"german_description,omitempty"`
	YearPublished     *int     `json:"year_published,omitempty"`
	MinPlayers        *int     `json:"min_players,omitempty"`
	MaxPlayers        *int     `json:"max_players,omitempty"`
	MinPlaytime       *int     `json:"min_playtime,omitempty"`
	MaxPlaytime       *int     `json:"max_playtime,omitempty"`
	PlayingTime       *int     `json:"playing_time,omitempty"`
	Rating            *float64 `json:"rating,omitempty"`
	EAN               *string  `json:"ean,omitempty"`
	ImageURL          *string  `json:"img_url,omitempty"`
	ThumbnailURL      *string  `json:"thumbnail_url,omitempty"`
	PlayerAge         *int     `json:"player_age,omitempty"`
	Complexity        *float64 `json:"complexity,omitempty"`
	ComplexityLabel   *string  `json:"complexity_label,omitempty"`

	BestPlayerCount           *int `json:"best_playercount,omitempty"`
	MinRecommendedPlayerCount *int `json:"min_recommended_playercount,omitempty"`
	MaxRecommendedPlayerCount *int `json:"max_recommended_playercount,omitempty"`

	// Operator-curated fields. The public collection never carries them.
	AcquiredFrom      *string `json:"acquired_from,omitempty"`
	InventoryLocation *string `json:"inventory_location,omitempty"`
	PrivateComment    *string `json:"private_comment,omitempty"`
}

// MergeFrom copies every non-nil field of src that differs from the current
// value into f and returns the names of the fields that changed. Nil fields in
// src never clear a known value.
func (f *ItemFields) MergeFrom(src *ItemFields) []string {
	if src == nil {
		return nil
	}

	var changed []string
	track := func(name string, ok bool) {
		if ok {
			changed = append(changed, name)
		}
	}

	track("name", mergePtr(&f.Name, src.Name))
	track("description", mergePtr(&f.Description, src.Description))
	track("german_description", mergePtr(&f.GermanDescription, src.GermanDescription))
	track("year_published", mergePtr(&f.YearPublished, src.YearPublished))
	track("min_players", mergePtr(&f.MinPlayers, src.MinPlayers))
	track("max_players", mergePtr(&f.MaxPlayers, src.MaxPlayers))
	track("min_playtime", mergePtr(&f.MinPlaytime, src.MinPlaytime))
	track("max_playtime", mergePtr(&f.MaxPlaytime, src.MaxPlaytime))
	track("playing_time", mergePtr(&f.PlayingTime, src.PlayingTime))
	track("rating", mergePtr(&f.Rating, src.Rating))
	track("ean", mergePtr(&f.EAN, src.EAN))
	track("img_url", mergePtr(&f.ImageURL, src.ImageURL))
	track("thumbnail_url", mergePtr(&f.ThumbnailURL, src.ThumbnailURL))
	track("player_age", mergePtr(&f.PlayerAge, src.PlayerAge))
	track("complexity", mergePtr(&f.Complexity, src.Complexity))
	track("complexity_label", mergePtr(&f.ComplexityLabel, src.ComplexityLabel))
	track("best_playercount", mergePtr(&f.BestPlayerCount, src.BestPlayerCount))
	track("min_recommended_playercount", mergePtr(&f.MinRecommendedPlayerCount, src.MinRecommendedPlayerCount))
	track("max_recommended_playercount", mergePtr(&f.MaxRecommendedPlayerCount, src.MaxRecommendedPlayerCount))
	track("acquired_from", mergePtr(&f.AcquiredFrom, src.AcquiredFrom))
	track("inventory_location", mergePtr(&f.InventoryLocation, src.InventoryLocation))
	track("private_comment", mergePtr(&f.PrivateComment, src.PrivateComment))

	return changed
}

// mergePtr sets *dst to a copy of *src when src is non-nil and differs.
func mergePtr[T comparable](dst **T, src *T) bool {
	if src == nil {
		return false
	}
	if *dst != nil && **dst == *src {
		return false
	}
	v := *src
	*dst = &v
	return true
}

// InventoryItem is one logical board game in the library.
//
// ExternalID is the BoardGameGeek id. It is unique across items and never
// changes once the item exists. Quantity counts owned copies; Available counts
// copies currently on the shelf and always satisfies 0 <= Available <= Quantity.
type InventoryItem struct {
	ExternalID int `json:"bgg_id"`
	ItemFields

	Quantity    int `json:"quantity"`
	Available   int `json:"available"`
	BorrowCount int `json:"borrow_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClampAvailable forces Available into [0, Quantity]. Quantity itself is
// floored at zero.
func (i *InventoryItem) ClampAvailable() {
	if i.Quantity < 0 {
		i.Quantity = 0
	}
	if i.Available < 0 {
		i.Available = 0
	}
	if i.Available > i.Quantity {
		i.Available = i.Quantity
	}
}

// DisplayName returns the item name or a placeholder for name-less records.
func (i *InventoryItem) DisplayName() string {
	if i.Name == nil || *i.Name == "" {
		return "(unnamed)"
	}
	return *i.Name
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
