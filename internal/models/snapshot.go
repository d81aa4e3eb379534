// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package models

// SnapshotRecord is the working record for one external id during a single
// sync job. It is never persisted directly.
type SnapshotRecord struct {
	ExternalID int
	ItemFields

	// Quantity and Available accumulate across duplicate collection entries.
	Quantity  int
	Available int

	// AvailableOverride is set when the private annotation fixed Available
	// explicitly instead of deriving it from Quantity.
	AvailableOverride bool

	// AnnotatedQuantity and AnnotatedAvailable hold counts from the private
	// annotation. ApplyAnnotatedCounts swaps them in once all entries merged.
	AnnotatedQuantity  *int
	AnnotatedAvailable *int

	// Occurrences counts how many collection entries collapsed into this record.
	Occurrences int
}

// NewSnapshotRecord returns a record with counters at zero and every
// attribute unknown.
func NewSnapshotRecord(externalID int) *SnapshotRecord {
	return &SnapshotRecord{ExternalID: externalID}
}

// Merge folds another occurrence of the same game into r. Non-nil fields of
// other win and the counters are summed.
func (r *SnapshotRecord) Merge(other *SnapshotRecord) {
	if other == nil {
		return
	}
	r.MergeFrom(&other.ItemFields)
	r.Quantity += other.Quantity
	r.Available += other.Available
	r.Occurrences += other.Occurrences
	r.AvailableOverride = r.AvailableOverride || other.AvailableOverride
	if other.AnnotatedQuantity != nil {
		r.AnnotatedQuantity = other.AnnotatedQuantity
	}
	if other.AnnotatedAvailable != nil {
		r.AnnotatedAvailable = other.AnnotatedAvailable
	}
}

// ApplyAnnotatedCounts replaces the summed counters with the annotated
// ones. Available follows Quantity unless it was annotated itself.
func (r *SnapshotRecord) ApplyAnnotatedCounts() {
	if r.AnnotatedQuantity != nil {
		r.Quantity = *r.AnnotatedQuantity
		if !r.AvailableOverride {
			r.Available = r.Quantity
		}
	}
	if r.AnnotatedAvailable != nil {
		r.Available = *r.AnnotatedAvailable
		r.AvailableOverride = true
	}
}

// ApplyDetails merges enrichment data into the record and derives the
// complexity label.
func (r *SnapshotRecord) ApplyDetails(d *Details) {
	if d == nil {
		return
	}
	r.MergeFrom(&ItemFields{
		Description:               d.Description,
		PlayerAge:                 d.PlayerAge,
		Complexity:                d.Complexity,
		BestPlayerCount:           d.BestPlayerCount,
		MinRecommendedPlayerCount: d.MinRecommendedPlayerCount,
		MaxRecommendedPlayerCount: d.MaxRecommendedPlayerCount,
	})
	if r.Complexity != nil {
		if label, ok := ComplexityLabel(*r.Complexity); ok {
			r.ComplexityLabel = &label
		}
	}
}

// ToItem converts the record into a new InventoryItem with Available clamped.
func (r *SnapshotRecord) ToItem() InventoryItem {
	item := InventoryItem{
		ExternalID: r.ExternalID,
		Quantity:   r.Quantity,
		Available:  r.Available,
	}
	item.MergeFrom(&r.ItemFields)
	item.ClampAvailable()
	return item
}

// Details holds the supplementary attributes fetched per item by the detail
// enricher. Every field is optional.
type Details struct {
	Description               *string
	PlayerAge                 *int
	Complexity                *float64
	BestPlayerCount           *int
	MinRecommendedPlayerCount *int
	MaxRecommendedPlayerCount *int
}
