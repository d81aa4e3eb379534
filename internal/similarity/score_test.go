// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package similarity

import (
	"math"
	"testing"

	"github.com/tomtom215/ludothek/internal/models"
)

func profile(id int, complexity float64, tags map[int]int) models.ItemTagProfile {
	return models.ItemTagProfile{ItemID: id, Tags: tags, Complexity: complexity}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScore(t *testing.T) {
	a := profile(1, 2.5, map[int]int{10: 3, 11: 1, 12: 2})
	b := profile(2, 3.0, map[int]int{10: 2, 12: 1, 13: 5})

	edge, ok := Score(&a, &b, DefaultComplexityCap)
	if !ok {
		t.Fatal("Score() ok = false, want true")
	}
	// shared = 2, prio = (3+2)+(2+1) = 8, bonus = 5 - 0.5
	if edge.SharedTagCount != 2 || !approx(edge.TagPrioritySum, 8) {
		t.Errorf("shared/prio = %d/%v, want 2/8", edge.SharedTagCount, edge.TagPrioritySum)
	}
	if want := 2 + 0.8 + 4.5; !approx(edge.Score, want) {
		t.Errorf("Score = %v, want %v", edge.Score, want)
	}

	reverse, _ := Score(&b, &a, DefaultComplexityCap)
	if !approx(reverse.Score, edge.Score) {
		t.Errorf("Score is not symmetric: %v vs %v", edge.Score, reverse.Score)
	}
}

func TestScore_ComplexityBonusFloor(t *testing.T) {
	a := profile(1, 0, map[int]int{1: 0})
	b := profile(2, 4.8, map[int]int{1: 0})

	edge, _ := Score(&a, &b, 3)
	if !approx(edge.Score, 1) {
		t.Errorf("Score = %v, want 1 with bonus floored at 0", edge.Score)
	}
}

func TestScore_NoOverlap(t *testing.T) {
	a := profile(1, 2, map[int]int{1: 5})
	b := profile(2, 2, map[int]int{2: 5})
	if _, ok := Score(&a, &b, DefaultComplexityCap); ok {
		t.Error("pairs without shared tags must not be scored")
	}
}

func TestBuildEdges_SymmetryAndTopK(t *testing.T) {
	profiles := []models.ItemTagProfile{
		profile(1, 2, map[int]int{1: 1, 2: 1}),
		profile(2, 2, map[int]int{1: 1, 2: 1}),
		profile(3, 2, map[int]int{1: 1}),
		profile(4, 2, map[int]int{2: 1}),
		profile(5, 2, map[int]int{1: 1, 2: 1, 3: 1}),
		profile(6, 2, map[int]int{9: 1}),
	}
	const topK = 2

	edges := BuildEdges(profiles, topK, DefaultComplexityCap)

	perSource := map[int]int{}
	seen := map[[2]int]float64{}
	for _, e := range edges {
		if e.SourceID == e.TargetID {
			t.Errorf("self edge %d", e.SourceID)
		}
		if e.SourceID == 6 || e.TargetID == 6 {
			t.Errorf("item without shared tags got edge %d -> %d", e.SourceID, e.TargetID)
		}
		perSource[e.SourceID]++
		seen[[2]int{e.SourceID, e.TargetID}] = e.Score
	}
	for source, n := range perSource {
		if n > topK {
			t.Errorf("source %d has %d edges, want at most %d", source, n, topK)
		}
	}

	// 1 and 2 are each other's best match, so both directions survive the cut.
	s12, ok12 := seen[[2]int{1, 2}]
	s21, ok21 := seen[[2]int{2, 1}]
	if !ok12 || !ok21 || !approx(s12, s21) {
		t.Errorf("edges 1<->2 = %v/%v (%v/%v), want symmetric", s12, s21, ok12, ok21)
	}
}

func TestBuildEdges_DeterministicTiebreak(t *testing.T) {
	profiles := []models.ItemTagProfile{
		profile(1, 1, map[int]int{1: 1}),
		profile(4, 1, map[int]int{1: 1}),
		profile(3, 1, map[int]int{1: 1}),
		profile(2, 1, map[int]int{1: 1}),
	}

	edges := BuildEdges(profiles, 2, DefaultComplexityCap)
	var fromOne []int
	for _, e := range edges {
		if e.SourceID == 1 {
			fromOne = append(fromOne, e.TargetID)
		}
	}
	if len(fromOne) != 2 || fromOne[0] != 2 || fromOne[1] != 3 {
		t.Errorf("neighbors of 1 = %v, want [2 3]", fromOne)
	}
}

func TestBuildEdges_Empty(t *testing.T) {
	if edges := BuildEdges(nil, 10, DefaultComplexityCap); len(edges) != 0 {
		t.Errorf("BuildEdges(nil) = %v", edges)
	}
}
