// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package filter

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		title, body string
		want        []Category
	}{
		{"Strategic Planning", "", []Category{Strategy, Planning}},
		{"Crafting Your Story", "<p>Build a message</p>", []Category{Messaging, Communication}},
		{"Building Your Team", "Recruit members", []Category{TeamBuilding}},
		{"Leading Meetings", "", []Category{Leadership}},
		{"Team Leadership", "", []Category{TeamBuilding, Leadership}},
		{"Discover", "<p>Understand your community.</p>", []Category{Fallback}},
		// Markup is not classified.
		{"Discover", `<a href="/team">Read</a>`, []Category{Fallback}},
	}
	for _, tt := range tests {
		got := Classify(tt.title, tt.body)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Classify(%q, %q) mismatch (-want +got):\n%s", tt.title, tt.body, diff)
		}
	}
}

func TestSelectionToggle(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		toggles []Category
		want    []Category
	}{
		{"initial", ModeSingle, nil, []Category{All}},
		{"replaces all", ModeSingle, []Category{Strategy}, []Category{Strategy}},
		{"single replaces", ModeSingle, []Category{Strategy, Messaging}, []Category{Messaging}},
		{"all resets", ModeMulti, []Category{Strategy, Messaging, All}, []Category{All}},
		{"multi adds", ModeMulti, []Category{Strategy, Messaging}, []Category{Strategy, Messaging}},
		{"multi removes", ModeMulti, []Category{Strategy, Messaging, Strategy}, []Category{Messaging}},
		{"multi last removed", ModeMulti, []Category{Strategy, Strategy}, []Category{All}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection(tt.mode)
			for _, c := range tt.toggles {
				s.Toggle(c)
			}
			if diff := cmp.Diff(tt.want, s.Selected()); diff != "" {
				t.Errorf("Selected() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectionClearAndActive(t *testing.T) {
	s := NewSelection(ModeMulti)
	if s.Active() {
		t.Error("new selection should not be active")
	}
	s.Toggle(Leadership)
	if !s.Active() || !s.IsSelected(Leadership) {
		t.Errorf("after toggle: Active=%v IsSelected=%v, want true", s.Active(), s.IsSelected(Leadership))
	}
	s.Clear()
	if s.Active() || !s.IsSelected(All) {
		t.Errorf("after Clear: Selected = %v, want [all]", s.Selected())
	}
}

func TestSelectionQueryRoundTrip(t *testing.T) {
	s := NewSelection(ModeMulti)
	s.Toggle(Strategy)
	s.Toggle(Leadership)

	got := FromQuery(s.Query())
	if got.Mode() != ModeMulti {
		t.Errorf("Mode() = %q, want multi", got.Mode())
	}
	if diff := cmp.Diff(s.Selected(), got.Selected()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// Unknown categories and duplicates are ignored.
	v := url.Values{"category": {"bogus", "messaging", "messaging"}}
	if diff := cmp.Diff([]Category{Messaging}, FromQuery(v).Selected()); diff != "" {
		t.Errorf("FromQuery mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleQueryLeavesSelection(t *testing.T) {
	s := NewSelection(ModeSingle)
	q := s.ToggleQuery(Planning)
	if q != "category=planning" {
		t.Errorf("ToggleQuery = %q, want %q", q, "category=planning")
	}
	if s.Active() {
		t.Error("ToggleQuery modified the selection")
	}
}

func phases() []model.Phase {
	return []model.Phase{
		{
			Title: "Strategic Planning", Slug: "strategic-planning",
			Modules: []model.Module{
				{Title: "Setting Goals", Slug: "setting-goals"},
				{Title: "Leading Meetings", Slug: "leading-meetings"},
			},
		},
		{
			Title: "Messaging", Slug: "messaging",
			Modules: []model.Module{
				{Title: "Crafting Your Story", Slug: "crafting-your-story"},
			},
		},
		{
			Title: "Team", Slug: "team",
			Modules: []model.Module{
				{Title: "Vision Board", Slug: "vision-board"},
			},
		},
	}
}

func TestApply(t *testing.T) {
	all := phases()

	if got := Apply(all, NewSelection(ModeSingle)); len(got) != len(all) {
		t.Errorf("Apply(all) = %d phases, want %d", len(got), len(all))
	}

	s := NewSelection(ModeSingle)
	s.Toggle(Strategy)
	got := Apply(all, s)
	if len(got) != 1 || got[0].Slug != "strategic-planning" {
		t.Fatalf("Apply(strategy) = %+v, want strategic-planning only", got)
	}
	if len(got[0].Modules) != 1 || got[0].Modules[0].Slug != "setting-goals" {
		t.Errorf("modules = %+v, want setting-goals only", got[0].Modules)
	}
	// The input is not modified.
	if len(all[0].Modules) != 2 {
		t.Errorf("input modules = %d, want 2", len(all[0].Modules))
	}

	// A matching module does not bring in a non-matching phase.
	s.Toggle(TeamBuilding)
	got = Apply(all, s)
	if len(got) != 1 || got[0].Slug != "team" || len(got[0].Modules) != 0 {
		t.Errorf("Apply(team_building) = %+v, want team phase with no modules", got)
	}
}

func TestCount(t *testing.T) {
	all := phases()
	tests := []struct {
		cat  Category
		want int
	}{
		{All, 3},
		{Strategy, 3},   // phase + setting-goals + vision-board
		{Messaging, 2},  // phase + story
		{Leadership, 1}, // leading-meetings
		{TeamBuilding, 1},
	}
	for _, tt := range tests {
		if got := Count(all, tt.cat); got != tt.want {
			t.Errorf("Count(%s) = %d, want %d", tt.cat, got, tt.want)
		}
	}
}

func TestOptionLabels(t *testing.T) {
	if len(Options) != 7 {
		t.Fatalf("len(Options) = %d, want 7", len(Options))
	}
	if got := Options[0].LabelFor(model.LocaleArabic); got != "جميع المواضيع" {
		t.Errorf("All label ar = %q", got)
	}
	if got := Options[3].LabelFor(model.LocaleEnglish); got != "Team Building" {
		t.Errorf("TeamBuilding label en = %q", got)
	}
}
