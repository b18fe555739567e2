// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package library

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// twoByTwo has two phases with two modules each and one resource per module.
func twoByTwo() []model.Phase {
	return []model.Phase{
		{
			Title: "Plan", Slug: "plan", PhaseNumber: 2,
			Modules: []model.Module{
				{Title: "Goals", Slug: "goals", Resources: []model.Resource{
					{ID: 3, Title: "Goal Worksheet", FileType: model.FileTypePDF, Order: 1},
				}},
				{Title: "Budget", Slug: "budget", Resources: []model.Resource{
					{ID: 4, Title: "Budget Planner", Description: "Estimate costs", FileType: model.FileTypeExcel, Order: 1},
				}},
			},
		},
		{
			Title: "Discover", Slug: "discover", PhaseNumber: 1,
			Modules: []model.Module{
				{Title: "Mapping", Slug: "mapping", Resources: []model.Resource{
					{ID: 1, Title: "Stakeholder Map", FileType: model.FileTypePDF, Order: 2},
				}},
				{Title: "Listening", Slug: "listening", Resources: []model.Resource{
					{ID: 2, Title: "Facilitator Guide", FileType: model.FileTypeWord, Order: 1},
				}},
			},
		},
	}
}

func ids(entries []Entry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestFlattenOrder(t *testing.T) {
	entries := Flatten(twoByTwo())
	// Phase 1 first; within it, resource order 1 before 2.
	assert.Equal(t, []int{2, 1, 3, 4}, ids(entries))
	assert.Equal(t, "discover", entries[0].PhaseSlug)
	assert.Equal(t, "Listening", entries[0].ModuleTitle)
}

func TestBuildTypeFilter(t *testing.T) {
	v := Build(Flatten(twoByTwo()), Params{FileType: string(model.FileTypePDF)})

	assert.Equal(t, []int{1, 3}, ids(v.Filtered))
	assert.Equal(t, 4, v.TotalCount())
	assert.Equal(t, 2, v.FilteredCount())
	assert.True(t, v.HasFilters())
}

func TestBuildTypeAndSearch(t *testing.T) {
	v := Build(Flatten(twoByTwo()), Params{FileType: string(model.FileTypePDF), Query: "goal"})
	assert.Equal(t, []int{3}, ids(v.Filtered))

	// Search covers description, module and phase titles.
	assert.Equal(t, []int{4}, ids(Build(Flatten(twoByTwo()), Params{Query: "COSTS"}).Filtered))
	assert.Equal(t, []int{2}, ids(Build(Flatten(twoByTwo()), Params{Query: "listen"}).Filtered))
	assert.Equal(t, []int{3, 4}, ids(Build(Flatten(twoByTwo()), Params{Query: "plan"}).Filtered))
}

func TestBuildShortQueryIgnored(t *testing.T) {
	v := Build(Flatten(twoByTwo()), Params{Query: "g"})
	assert.Len(t, v.Filtered, 4)
	// A one-character query still counts as a filter.
	assert.True(t, v.HasFilters())

	assert.False(t, Build(Flatten(twoByTwo()), Params{}).HasFilters())
}

func TestBuildBlankAndPaddedQueries(t *testing.T) {
	blank := Build(Flatten(twoByTwo()), ParamsFromQuery(url.Values{"q": {"   "}}))
	assert.Len(t, blank.Filtered, 4)
	assert.True(t, blank.HasFilters())

	padded := Build(Flatten(twoByTwo()), ParamsFromQuery(url.Values{"q": {"  listen "}}))
	assert.Equal(t, []int{2}, ids(padded.Filtered))
}

func TestGroupByModule(t *testing.T) {
	v := Build(Flatten(twoByTwo()), Params{GroupBy: GroupByModule})
	require.Len(t, v.Groups, 4)
	assert.Equal(t, "discover-listening", v.Groups[0].Key)
	assert.Equal(t, "Discover › Listening", v.Groups[0].Label)
	for _, g := range v.Groups {
		assert.Len(t, g.Entries, 1)
	}
}

func TestGroupByPhaseAndType(t *testing.T) {
	entries := Flatten(twoByTwo())

	byPhase := Build(entries, Params{GroupBy: GroupByPhase}).Groups
	require.Len(t, byPhase, 2)
	assert.Equal(t, "discover", byPhase[0].Key)
	assert.Equal(t, "Plan", byPhase[1].Label)

	byType := Build(entries, Params{GroupBy: GroupByType}).Groups
	require.Len(t, byType, 3)
	assert.Equal(t, []string{"Word", "PDF", "Excel"}, []string{byType[0].Key, byType[1].Key, byType[2].Key})
	assert.Len(t, byType[1].Entries, 2)
}

func TestFileTypeCounts(t *testing.T) {
	v := Build(Flatten(twoByTwo()), Params{FileType: string(model.FileTypeWord)})
	want := map[string]int{"all": 4, "PDF": 2, "Excel": 1, "Word": 1, "Other": 0}
	assert.Equal(t, want, v.FileTypeCounts)
}

func TestParamsFromQuery(t *testing.T) {
	p := ParamsFromQuery(url.Values{})
	assert.Equal(t, Params{FileType: TypeAll, GroupBy: GroupByPhase}, p)

	p = ParamsFromQuery(url.Values{"type": {"pdf"}, "q": {" map "}, "group": {"module"}})
	assert.Equal(t, Params{FileType: "PDF", Query: " map ", GroupBy: GroupByModule}, p)

	p = ParamsFromQuery(url.Values{"group": {"bogus"}})
	assert.Equal(t, GroupByPhase, p.GroupBy)
}
