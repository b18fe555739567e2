// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package search

import (
	"slices"
	"strings"
	"testing"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

func testPhases() []model.Phase {
	return []model.Phase{
		{
			ID: 1, Title: "Discover", Slug: "discover",
			Description: "<p>Understand your community and its needs.</p>",
			Modules: []model.Module{
				{ID: 1, Title: "Community Mapping", Slug: "community-mapping", Summary: "Identify stakeholders."},
			},
		},
		{
			ID: 2, Title: "Strategic Planning", Slug: "strategic-planning",
			Description: "<p>Turn your vision into goals.</p>",
			Modules: []model.Module{
				{ID: 2, Title: "Setting Goals", Slug: "setting-goals", Summary: "Write measurable goals."},
				{ID: 3, Title: "Action Plans", Slug: "action-plans", Summary: "Owners and milestones."},
			},
		},
	}
}

func TestFlatten(t *testing.T) {
	items := Flatten(testPhases())
	if len(items) != 5 {
		t.Fatalf("len(Flatten) = %d, want 5", len(items))
	}

	if items[0].Kind != KindPhase || items[0].Slug != "discover" {
		t.Errorf("items[0] = %+v, want discover phase", items[0])
	}
	if items[0].Description != "Understand your community and its needs." {
		t.Errorf("phase description = %q, want stripped text", items[0].Description)
	}

	mod := items[3]
	if mod.Kind != KindModule || mod.PhaseSlug != "strategic-planning" || mod.PhaseTitle != "Strategic Planning" {
		t.Errorf("module item = %+v, want parent phase fields", mod)
	}
}

func TestSearchExact(t *testing.T) {
	idx := NewIndex(Flatten(testPhases()), DefaultOptions())

	results := idx.Search("Strategic Planning")
	if len(results) == 0 {
		t.Fatal("Search returned no results")
	}
	top := results[0]
	if top.Item.Kind != KindPhase || top.Item.Slug != "strategic-planning" {
		t.Errorf("top result = %+v, want strategic-planning phase", top.Item)
	}
	if !slices.Contains(top.Matches, FieldTitle) {
		t.Errorf("top matches = %v, want title", top.Matches)
	}

	// Modules of the phase match through phaseTitle, ranked lower.
	for _, r := range results[1:] {
		if r.Score < top.Score {
			t.Errorf("result %q scored %v, better than top %v", r.Item.Slug, r.Score, top.Score)
		}
	}
}

func TestSearchTypo(t *testing.T) {
	idx := NewIndex(Flatten(testPhases()), DefaultOptions())

	results := idx.Search("stratgic")
	if len(results) == 0 {
		t.Fatal("Search(stratgic) returned no results")
	}
	if results[0].Item.Slug != "strategic-planning" {
		t.Errorf("top result = %q, want strategic-planning", results[0].Item.Slug)
	}
}

func TestSearchShortQueries(t *testing.T) {
	idx := NewIndex(Flatten(testPhases()), DefaultOptions())

	for _, q := range []string{"", "   ", "s"} {
		if got := idx.Search(q); len(got) != 0 {
			t.Errorf("Search(%q) = %d results, want 0", q, len(got))
		}
	}
}

func TestSearchLongQueries(t *testing.T) {
	long := strings.Repeat("ab", 150)
	idx := NewIndex([]Item{{Kind: KindPhase, ID: 1, Title: long, Slug: "long"}}, DefaultOptions())

	atLimit := long[:MaxQueryRunes]
	if got := idx.Search(atLimit); len(got) != 1 {
		t.Errorf("Search(%d runes) = %d results, want 1", len(atLimit), len(got))
	}

	over := long[:MaxQueryRunes+1]
	if got := idx.Search(over); len(got) != 0 {
		t.Errorf("Search(%d runes) = %d results, want 0", len(over), len(got))
	}
	if !TooLong(over) {
		t.Errorf("TooLong(%d runes) = false, want true", len(over))
	}
	if TooLong("  " + atLimit + "  ") {
		t.Error("TooLong should ignore surrounding space")
	}
}

func TestSearchNoMatch(t *testing.T) {
	idx := NewIndex(Flatten(testPhases()), DefaultOptions())
	if got := idx.Search("zzqqxx"); len(got) != 0 {
		t.Errorf("Search(zzqqxx) = %+v, want none", got)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	idx := NewIndex(Flatten(testPhases()), DefaultOptions())
	results := idx.Search("COMMUNITY")
	if len(results) == 0 || results[0].Item.Slug != "community-mapping" {
		t.Errorf("Search(COMMUNITY) = %+v, want community-mapping first", results)
	}
}

func TestApproxSubstring(t *testing.T) {
	tests := []struct {
		pattern, text string
		dist, length  int
	}{
		{"plan", "strategic planning", 0, 4},
		{"stratgic", "strategic planning", 1, 9},
		{"goals", "setting goals", 0, 5},
		{"xyz", "abc", 3, 0},
	}
	for _, tt := range tests {
		dist, length := approxSubstring([]rune(tt.pattern), []rune(tt.text))
		if dist != tt.dist {
			t.Errorf("approxSubstring(%q, %q) dist = %d, want %d", tt.pattern, tt.text, dist, tt.dist)
		}
		if tt.dist < len(tt.pattern) && length != tt.length {
			t.Errorf("approxSubstring(%q, %q) length = %d, want %d", tt.pattern, tt.text, length, tt.length)
		}
	}
}

func TestMemo(t *testing.T) {
	memo := NewMemo()
	items := Flatten(testPhases())
	build := func() *Index { return NewIndex(items, DefaultOptions()) }

	a := memo.Get("en", "1", build)
	b := memo.Get("en", "1", build)
	if a != b {
		t.Error("same stamp returned different indexes")
	}
	if memo.Builds() != 1 {
		t.Errorf("Builds() = %d, want 1", memo.Builds())
	}

	c := memo.Get("en", "2", build)
	if c == a {
		t.Error("new stamp reused the old index")
	}
	if memo.Builds() != 2 {
		t.Errorf("Builds() after new stamp = %d, want 2", memo.Builds())
	}
	memo.Get("ar", "2", build)
	if memo.Len() != 2 {
		t.Errorf("Len() = %d, want one index per slot", memo.Len())
	}

	memo.Reset()
	if memo.Len() != 0 {
		t.Errorf("Len() after reset = %d, want 0", memo.Len())
	}
	memo.Get("en", "2", build)
	if memo.Builds() != 4 {
		t.Errorf("Builds() after reset = %d, want 4", memo.Builds())
	}
}
