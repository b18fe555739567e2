// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"math"

	"github.com/olegiv/fiftyfifty-toolkit/internal/consent"
	"github.com/olegiv/fiftyfifty-toolkit/internal/filter"
	"github.com/olegiv/fiftyfifty-toolkit/internal/library"
	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
	"github.com/olegiv/fiftyfifty-toolkit/internal/progress"
	"github.com/olegiv/fiftyfifty-toolkit/internal/search"
	"github.com/olegiv/fiftyfifty-toolkit/internal/service"
)

// ProgressView is the visitor's progress over a set of modules.
type ProgressView struct {
	Done      map[int]bool
	Completed int
	Total     int
	Percent   int
}

// newProgressView summarises tracker over phases. Stale IDs of modules no
// longer published are ignored.
func newProgressView(tracker *progress.Tracker, phases []model.Phase) ProgressView {
	v := ProgressView{Done: make(map[int]bool), Total: model.CountModules(phases)}
	for i := range phases {
		for _, m := range phases[i].Modules {
			if tracker.IsComplete(m.ID) {
				v.Done[m.ID] = true
			}
		}
	}
	v.Completed = len(v.Done)
	if v.Total > 0 {
		v.Percent = int(math.Round(float64(v.Completed) * 100 / float64(v.Total)))
	}
	return v
}

// HomeView is the home page data.
type HomeView struct {
	Page     *service.HomePage
	Progress ProgressView
}

// FilterOption is one topic chip on the phases page.
type FilterOption struct {
	ID       filter.Category
	Label    string
	Count    int
	Selected bool
	Query    string // query string after clicking the chip
}

// PhasesView is the topic-filtered phase list.
type PhasesView struct {
	Phases          []model.Phase
	Total           int
	Mode            filter.Mode
	Options         []FilterOption
	SingleModeQuery string
	MultiModeQuery  string
	Progress        ProgressView
}

// PhaseView is the phase page data.
type PhaseView struct {
	Phase    model.Phase
	Progress ProgressView
}

// ModuleView is the module page data.
type ModuleView struct {
	Page        *service.ModulePage
	Completed   bool
	SubtitleURL string
}

// TypeOption is a file type choice in the resource library.
type TypeOption struct {
	Value    string
	Label    string
	Count    int
	Selected bool
}

// GroupOption is a grouping choice in the resource library.
type GroupOption struct {
	Value    library.GroupBy
	Label    string
	Selected bool
}

// ResourcesView is the resource library page data.
type ResourcesView struct {
	Library *library.View
	Types   []TypeOption
	Groups  []GroupOption
}

// SearchView is the search page data.
type SearchView struct {
	Query    string
	Results  []search.Result
	TooShort bool
	TooLong  bool
	MinChars int
	MaxChars int
}

// PrivacyView is the privacy page data.
type PrivacyView struct {
	Consent *consent.Record
}
