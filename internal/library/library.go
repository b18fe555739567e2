// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package library aggregates module resources into a filterable,
// groupable library view.
package library

import (
	"cmp"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// MinQueryLength is the shortest query that filters the library.
const MinQueryLength = 2

// TypeAll disables the file type filter.
const TypeAll = "all"

// GroupBy selects how entries are grouped.
type GroupBy string

// Grouping modes.
const (
	GroupByPhase  GroupBy = "phase"
	GroupByModule GroupBy = "module"
	GroupByType   GroupBy = "type"
)

// ParseGroupBy returns the grouping for s, defaulting to phase.
func ParseGroupBy(s string) GroupBy {
	switch GroupBy(s) {
	case GroupByModule, GroupByType:
		return GroupBy(s)
	}
	return GroupByPhase
}

// Entry is a resource with the context of its module and phase.
type Entry struct {
	model.Resource
	ModuleTitle string
	ModuleSlug  string
	PhaseTitle  string
	PhaseSlug   string
	PhaseNumber int
}

// Flatten collects every resource of every module, sorted by phase number
// and then resource order. Equal keys keep tree order.
func Flatten(phases []model.Phase) []Entry {
	var entries []Entry
	for i := range phases {
		p := &phases[i]
		for j := range p.Modules {
			m := &p.Modules[j]
			for _, r := range m.Resources {
				entries = append(entries, Entry{
					Resource:    r,
					ModuleTitle: m.Title,
					ModuleSlug:  m.Slug,
					PhaseTitle:  p.Title,
					PhaseSlug:   p.Slug,
					PhaseNumber: p.PhaseNumber,
				})
			}
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.PhaseNumber, b.PhaseNumber),
			cmp.Compare(a.Order, b.Order),
		)
	})
	return entries
}

// Group is a labelled run of entries.
type Group struct {
	Key     string
	Label   string
	Entries []Entry
}

// Params are the user's library controls.
type Params struct {
	FileType string // "all" or a model.FileType
	Query    string
	GroupBy  GroupBy
}

// ParamsFromQuery reads ?type=&q=&group= with defaults.
func ParamsFromQuery(v url.Values) Params {
	ft := v.Get("type")
	if ft == "" {
		ft = TypeAll
	} else if ft != TypeAll {
		ft = string(model.ParseFileType(ft))
	}
	return Params{
		FileType: ft,
		Query:    v.Get("q"),
		GroupBy:  ParseGroupBy(v.Get("group")),
	}
}

// View is the computed library for a set of params.
type View struct {
	Params         Params
	All            []Entry
	Filtered       []Entry
	Groups         []Group
	FileTypeCounts map[string]int
}

// TotalCount is the number of resources before filtering.
func (v *View) TotalCount() int { return len(v.All) }

// FilteredCount is the number of resources after filtering.
func (v *View) FilteredCount() int { return len(v.Filtered) }

// HasFilters reports whether a type filter or a query is set.
func (v *View) HasFilters() bool {
	return v.Params.FileType != TypeAll || v.Params.Query != ""
}

// Build computes the library view over entries.
func Build(entries []Entry, p Params) *View {
	if p.FileType == "" {
		p.FileType = TypeAll
	}
	if p.GroupBy == "" {
		p.GroupBy = GroupByPhase
	}

	filtered := filterByType(entries, p.FileType)
	filtered = filterByQuery(filtered, p.Query)

	return &View{
		Params:         p,
		All:            entries,
		Filtered:       filtered,
		Groups:         group(filtered, p.GroupBy),
		FileTypeCounts: countTypes(entries),
	}
}

func filterByType(entries []Entry, fileType string) []Entry {
	if fileType == TypeAll {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if string(e.FileType) == fileType {
			out = append(out, e)
		}
	}
	return out
}

// filterByQuery matches the trimmed query. Params keeps the raw input, so
// a blank query still counts as a filter.
func filterByQuery(entries []Entry, query string) []Entry {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return entries
	}
	q := strings.ToLower(query)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Description), q) ||
			strings.Contains(strings.ToLower(e.ModuleTitle), q) ||
			strings.Contains(strings.ToLower(e.PhaseTitle), q) {
			out = append(out, e)
		}
	}
	return out
}

func groupKey(e *Entry, by GroupBy) (key, label string) {
	switch by {
	case GroupByModule:
		return e.PhaseSlug + "-" + e.ModuleSlug, e.PhaseTitle + " › " + e.ModuleTitle
	case GroupByType:
		return string(e.FileType), string(e.FileType)
	default:
		return e.PhaseSlug, e.PhaseTitle
	}
}

// group buckets entries in order of first appearance.
func group(entries []Entry, by GroupBy) []Group {
	var groups []Group
	index := make(map[string]int)
	for i := range entries {
		key, label := groupKey(&entries[i], by)
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, Group{Key: key, Label: label})
		}
		groups[gi].Entries = append(groups[gi].Entries, entries[i])
	}
	return groups
}

func countTypes(entries []Entry) map[string]int {
	counts := map[string]int{TypeAll: len(entries)}
	for _, ft := range model.FileTypes {
		counts[string(ft)] = 0
	}
	for _, e := range entries {
		if _, ok := counts[string(e.FileType)]; ok {
			counts[string(e.FileType)]++
		}
	}
	return counts
}
