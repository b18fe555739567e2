// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package filter

import (
	"net/url"
	"slices"
)

// Mode selects single- or multi-category filtering.
type Mode string

// Selection modes.
const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
)

// Selection is the set of active categories. It always holds at least one
// category, and All never coexists with another.
type Selection struct {
	mode     Mode
	selected []Category
}

// NewSelection returns a selection of [All] in mode.
func NewSelection(mode Mode) *Selection {
	if mode != ModeMulti {
		mode = ModeSingle
	}
	return &Selection{mode: mode, selected: []Category{All}}
}

// Mode returns the selection mode.
func (s *Selection) Mode() Mode {
	return s.mode
}

// Toggle applies a click on cat.
func (s *Selection) Toggle(cat Category) {
	if cat == All {
		s.selected = []Category{All}
		return
	}
	if slices.Contains(s.selected, All) || s.mode == ModeSingle {
		s.selected = []Category{cat}
		return
	}
	if i := slices.Index(s.selected, cat); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		if len(s.selected) == 0 {
			s.selected = []Category{All}
		}
		return
	}
	s.selected = append(s.selected, cat)
}

// Clear resets the selection to [All].
func (s *Selection) Clear() {
	s.selected = []Category{All}
}

// Selected returns a copy of the active categories.
func (s *Selection) Selected() []Category {
	return slices.Clone(s.selected)
}

// IsSelected reports whether cat is active.
func (s *Selection) IsSelected(cat Category) bool {
	return slices.Contains(s.selected, cat)
}

// Active reports whether a filter other than All is applied.
func (s *Selection) Active() bool {
	return !slices.Contains(s.selected, All)
}

// FromQuery rebuilds a selection from ?category=a&category=b&mode=multi by
// toggling each known category in order.
func FromQuery(v url.Values) *Selection {
	s := NewSelection(Mode(v.Get("mode")))
	for _, raw := range v["category"] {
		if cat, ok := ParseCategory(raw); ok && !s.IsSelected(cat) {
			s.Toggle(cat)
		}
	}
	return s
}

// Query encodes the selection as query parameters.
func (s *Selection) Query() url.Values {
	v := url.Values{}
	if s.mode == ModeMulti {
		v.Set("mode", string(ModeMulti))
	}
	if s.Active() {
		for _, c := range s.selected {
			v.Add("category", string(c))
		}
	}
	return v
}

// ToggleQuery returns the query string for the selection after toggling cat,
// leaving s unchanged. Filter links are rendered with it.
func (s *Selection) ToggleQuery(cat Category) string {
	next := &Selection{mode: s.mode, selected: slices.Clone(s.selected)}
	next.Toggle(cat)
	return next.Query().Encode()
}
