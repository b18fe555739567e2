// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package search provides typo-tolerant search over phases and modules.
package search

import (
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
	"github.com/olegiv/fiftyfifty-toolkit/internal/richtext"
)

// Kind is the type of a searchable item.
type Kind string

// Item kinds.
const (
	KindPhase  Kind = "phase"
	KindModule Kind = "module"
)

// Searchable fields.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPhaseTitle  = "phaseTitle"
)

// MaxQueryRunes is the longest query that is searched. Matching cost grows
// with query length times text length for every field.
const MaxQueryRunes = 200

// epsilon stands in for an exact field match so weights still rank items.
const epsilon = 2.220446049250313e-16

type field struct {
	name   string
	weight float64
	value  func(*Item) string
}

var fields = []field{
	{FieldTitle, 2, func(it *Item) string { return it.Title }},
	{FieldDescription, 1, func(it *Item) string { return it.Description }},
	{FieldPhaseTitle, 0.5, func(it *Item) string { return it.PhaseTitle }},
}

// Item is one searchable phase or module.
type Item struct {
	Kind        Kind   `json:"type"`
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	PhaseSlug   string `json:"phaseSlug,omitempty"`
	PhaseTitle  string `json:"phaseTitle,omitempty"`
}

// Flatten produces one item per phase and one per module. Descriptions are
// reduced to plain text.
func Flatten(phases []model.Phase) []Item {
	items := make([]Item, 0, len(phases)+model.CountModules(phases))
	for i := range phases {
		p := &phases[i]
		items = append(items, Item{
			Kind:        KindPhase,
			ID:          p.ID,
			Title:       p.Title,
			Description: richtext.StripHTML(p.Description),
			Slug:        p.Slug,
		})
		for j := range p.Modules {
			m := &p.Modules[j]
			items = append(items, Item{
				Kind:        KindModule,
				ID:          m.ID,
				Title:       m.Title,
				Description: richtext.StripHTML(m.Summary),
				Slug:        m.Slug,
				PhaseSlug:   p.Slug,
				PhaseTitle:  p.Title,
			})
		}
	}
	return items
}

// Options tunes matching.
type Options struct {
	// Threshold is the worst per-field score still counted as a match,
	// in [0,1] where 0 is exact.
	Threshold float64
	// MinCharacters is the shortest query that is searched at all.
	MinCharacters int
	// MinMatchCharLength drops field matches spanning fewer characters.
	MinMatchCharLength int
}

// DefaultOptions returns the site's search tuning.
func DefaultOptions() Options {
	return Options{Threshold: 0.3, MinCharacters: 2, MinMatchCharLength: 2}
}

// Result is a matched item with its combined score and matched fields.
type Result struct {
	Item    Item     `json:"item"`
	Score   float64  `json:"score"`
	Matches []string `json:"matches"`
}

// Index is an immutable search index.
type Index struct {
	items []Item
	// lowered field values, parallel to items and fields
	values [][][]rune
	opts   Options
}

// NewIndex builds an index over items.
func NewIndex(items []Item, opts Options) *Index {
	idx := &Index{
		items:  slices.Clone(items),
		values: make([][][]rune, len(items)),
		opts:   opts,
	}
	for i := range idx.items {
		vals := make([][]rune, len(fields))
		for f, fd := range fields {
			vals[f] = []rune(strings.ToLower(fd.value(&idx.items[i])))
		}
		idx.values[i] = vals
	}
	return idx
}

// Len returns the number of indexed items.
func (idx *Index) Len() int {
	return len(idx.items)
}

// TooLong reports whether query exceeds MaxQueryRunes once trimmed.
func TooLong(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) > MaxQueryRunes
}

// Search returns matching items, best first. Ties keep index order.
// Queries shorter than MinCharacters or longer than MaxQueryRunes return
// nothing.
func (idx *Index) Search(query string) []Result {
	query = strings.TrimSpace(query)
	n := utf8.RuneCountInString(query)
	if n == 0 || n < idx.opts.MinCharacters || n > MaxQueryRunes {
		return []Result{}
	}
	pattern := []rune(strings.ToLower(query))

	results := []Result{}
	for i := range idx.items {
		total := 1.0
		var matched []string
		for f, fd := range fields {
			score, ok := idx.matchField(pattern, idx.values[i][f])
			if !ok {
				continue
			}
			matched = append(matched, fd.name)
			total *= math.Pow(max(score, epsilon), fd.weight)
		}
		if len(matched) == 0 {
			continue
		}
		results = append(results, Result{Item: idx.items[i], Score: total, Matches: matched})
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		}
		return 0
	})
	return results
}

func (idx *Index) matchField(pattern, text []rune) (float64, bool) {
	if len(text) == 0 {
		return 0, false
	}
	dist, length := approxSubstring(pattern, text)
	if length < idx.opts.MinMatchCharLength {
		return 0, false
	}
	score := math.Min(1, float64(dist)/float64(len(pattern)))
	if score > idx.opts.Threshold {
		return 0, false
	}
	return score, true
}

// approxSubstring returns the smallest edit distance between pattern and any
// substring of text, and the length of that substring.
func approxSubstring(pattern, text []rune) (dist, length int) {
	m := len(pattern)
	// cost[j] is the distance of pattern[:i] to the best substring ending at
	// text[j-1]; start[j] is where that substring begins.
	cost := make([]int, len(text)+1)
	start := make([]int, len(text)+1)
	prevCost := make([]int, len(text)+1)
	prevStart := make([]int, len(text)+1)
	for j := range prevCost {
		prevStart[j] = j
	}

	for i := 1; i <= m; i++ {
		cost[0], start[0] = i, 0
		for j := 1; j <= len(text); j++ {
			sub := 1
			if pattern[i-1] == text[j-1] {
				sub = 0
			}
			// substitute / match
			c, s := prevCost[j-1]+sub, prevStart[j-1]
			// pattern char missing from text
			if prevCost[j]+1 < c {
				c, s = prevCost[j]+1, prevStart[j]
			}
			// extra text char
			if cost[j-1]+1 < c {
				c, s = cost[j-1]+1, start[j-1]
			}
			cost[j], start[j] = c, s
		}
		cost, prevCost = prevCost, cost
		start, prevStart = prevStart, start
	}

	dist, length = m, 0
	for j := 1; j <= len(text); j++ {
		if prevCost[j] < dist || (prevCost[j] == dist && length == 0) {
			dist, length = prevCost[j], j-prevStart[j]
		}
	}
	return dist, length
}
