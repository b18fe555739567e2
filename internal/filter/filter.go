// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package filter classifies phases and modules into topic categories and
// narrows the phase list to a topic selection.
package filter

import (
	"regexp"
	"slices"
	"strings"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
	"github.com/olegiv/fiftyfifty-toolkit/internal/richtext"
)

// Category is a topic used to filter content.
type Category string

// Topic categories.
const (
	All           Category = "all"
	Strategy      Category = "strategy"
	Messaging     Category = "messaging"
	TeamBuilding  Category = "team_building"
	Planning      Category = "planning"
	Communication Category = "communication"
	Leadership    Category = "leadership"
)

// Fallback is assigned to content that matches no keyword rule.
const Fallback = Strategy

// Option is a selectable category with its labels.
type Option struct {
	ID      Category
	Label   string
	LabelAr string
}

// LabelFor returns the option label for locale.
func (o Option) LabelFor(locale model.Locale) string {
	if locale == model.LocaleArabic {
		return o.LabelAr
	}
	return o.Label
}

// Options lists the categories in display order.
var Options = []Option{
	{All, "All Topics", "جميع المواضيع"},
	{Strategy, "Strategy", "الإستراتيجية"},
	{Messaging, "Messaging", "الرسائل"},
	{TeamBuilding, "Team Building", "بناء الفريق"},
	{Planning, "Planning", "التخطيط"},
	{Communication, "Communication", "التواصل"},
	{Leadership, "Leadership", "القيادة"},
}

// ParseCategory returns the category for s and whether it is known.
func ParseCategory(s string) (Category, bool) {
	for _, o := range Options {
		if string(o.ID) == s {
			return o.ID, true
		}
	}
	return "", false
}

type rule struct {
	pattern    *regexp.Regexp
	categories []Category
}

var rules = []rule{
	{regexp.MustCompile(`(?i)strateg|plan|approach|vision|goal`), []Category{Strategy, Planning}},
	{regexp.MustCompile(`(?i)messag|communicat|brand|market|story`), []Category{Messaging, Communication}},
	{regexp.MustCompile(`(?i)team|collaborat|group|member|staff`), []Category{TeamBuilding}},
	{regexp.MustCompile(`(?i)lead|manag|director|coordinat`), []Category{Leadership}},
}

// Classify returns the categories for a title and its rich-text body.
func Classify(title, body string) []Category {
	text := strings.ToLower(title + " " + richtext.StripHTML(body))
	var out []Category
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			out = append(out, r.categories...)
		}
	}
	if len(out) == 0 {
		return []Category{Fallback}
	}
	return out
}

// PhaseCategories classifies a phase by title and description.
func PhaseCategories(p *model.Phase) []Category {
	return Classify(p.Title, p.Description)
}

// ModuleCategories classifies a module by title and summary.
func ModuleCategories(m *model.Module) []Category {
	return Classify(m.Title, m.Summary)
}

func anySelected(cats []Category, selected []Category) bool {
	for _, c := range selected {
		if slices.Contains(cats, c) {
			return true
		}
	}
	return false
}

// Apply keeps phases that match any selected category and, within them,
// only the matching modules. A phase is kept on its own classification even
// when none of its modules match. Selecting All returns phases unchanged.
func Apply(phases []model.Phase, sel *Selection) []model.Phase {
	selected := sel.Selected()
	if slices.Contains(selected, All) {
		return phases
	}

	out := make([]model.Phase, 0, len(phases))
	for i := range phases {
		p := phases[i]
		if !anySelected(PhaseCategories(&p), selected) {
			continue
		}
		modules := make([]model.Module, 0, len(p.Modules))
		for j := range p.Modules {
			if anySelected(ModuleCategories(&p.Modules[j]), selected) {
				modules = append(modules, p.Modules[j])
			}
		}
		p.Modules = modules
		out = append(out, p)
	}
	return out
}

// Count returns how many items fall into cat: the number of phases for All,
// otherwise matching phases plus matching modules.
func Count(phases []model.Phase, cat Category) int {
	if cat == All {
		return len(phases)
	}
	n := 0
	for i := range phases {
		if slices.Contains(PhaseCategories(&phases[i]), cat) {
			n++
		}
		for j := range phases[i].Modules {
			if slices.Contains(ModuleCategories(&phases[i].Modules[j]), cat) {
				n++
			}
		}
	}
	return n
}
