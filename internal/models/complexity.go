// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package models

// complexityBand is a half-open (Min, Max] range of BGG weight values.
type complexityBand struct {
	Label string
	Min   float64
	Max   float64
}

// complexityBands maps BGG average weight to the labels shown in the library.
// The heaviest band intentionally has an empty label.
var complexityBands = []complexityBand{
	{Label: "Family", Min: 0.9, Max: 1.5},
	{Label: "Beginner", Min: 1.5, Max: 2.2},
	{Label: "Intermediate", Min: 2.2, Max: 3},
	{Label: "Advanced", Min: 3, Max: 4},
	{Label: "", Min: 4, Max: 5},
}

// ComplexityLabel returns the label for a BGG weight. ok is false when the
// weight falls outside every band (including 0, which BGG uses for "no votes").
func ComplexityLabel(weight float64) (label string, ok bool) {
	for _, band := range complexityBands {
		if weight > band.Min && weight <= band.Max {
			return band.Label, true
		}
	}
	return "", false
}
