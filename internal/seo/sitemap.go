// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// Sitemap XML namespaces.
const (
	XMLNamespace   = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"
)

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the toolkit.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// Priorities per page kind.
const (
	PriorityHome   = "1.0"
	PriorityPhase  = "0.8"
	PriorityModule = "0.7"
)

// AlternateLink is an xhtml:link hreflang alternate of a sitemap URL.
type AlternateLink struct {
	Rel      string   `xml:"rel,attr"`
	Hreflang string   `xml:"hreflang,attr"`
	Href     string   `xml:"href,attr"`
}

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string          `xml:"loc"`
	LastMod    string          `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq      `xml:"changefreq,omitempty"`
	Priority   string          `xml:"priority,omitempty"`
	Alternates []AlternateLink `xml:"xhtml:link"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName    xml.Name     `xml:"urlset"`
	XMLNS      string       `xml:"xmlns,attr"`
	XMLNSXHTML string       `xml:"xmlns:xhtml,attr"`
	URLs       []SitemapURL `xml:"url"`
}

// SitemapBuilder builds sitemap XML for the localized toolkit pages.
type SitemapBuilder struct {
	siteURL string
	now     time.Time
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder. now stamps entries whose
// content has no modification time.
func NewSitemapBuilder(siteURL string, now time.Time) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		now:     now,
		urls:    make([]SitemapURL, 0),
	}
}

// alternates returns one hreflang link per site locale for the path built by pathFor.
func (b *SitemapBuilder) alternates(pathFor func(model.Locale) string) []AlternateLink {
	links := make([]AlternateLink, 0, len(model.Locales))
	for _, l := range model.Locales {
		links = append(links, AlternateLink{
			Rel:      "alternate",
			Hreflang: string(l),
			Href:     b.siteURL + pathFor(l),
		})
	}
	return links
}

func (b *SitemapBuilder) add(path string, lastMod time.Time, freq ChangeFreq, priority string, pathFor func(model.Locale) string) {
	if lastMod.IsZero() {
		lastMod = b.now
	}
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + path,
		LastMod:    lastMod.UTC().Format(time.RFC3339),
		ChangeFreq: freq,
		Priority:   priority,
		Alternates: b.alternates(pathFor),
	})
}

// AddHomepages adds the home page of every locale.
func (b *SitemapBuilder) AddHomepages() {
	for _, l := range model.Locales {
		b.add(homePath(l), time.Time{}, ChangeFreqMonthly, PriorityHome, homePath)
	}
}

// AddPhases adds the phase pages of locale.
func (b *SitemapBuilder) AddPhases(locale model.Locale, phases []model.Phase) {
	for i := range phases {
		slug := phases[i].Slug
		pathFor := func(l model.Locale) string { return phasePath(l, slug) }
		b.add(pathFor(locale), lastModified(phases[i].UpdatedAt, phases[i].PublishedAt),
			ChangeFreqWeekly, PriorityPhase, pathFor)
	}
}

// AddModules adds the module pages nested in phases of locale.
func (b *SitemapBuilder) AddModules(locale model.Locale, phases []model.Phase) {
	for i := range phases {
		phaseSlug := phases[i].Slug
		for _, m := range phases[i].Modules {
			moduleSlug := m.Slug
			pathFor := func(l model.Locale) string { return phasePath(l, phaseSlug) + "/module/" + moduleSlug }
			b.add(pathFor(locale), lastModified(m.UpdatedAt, m.PublishedAt),
				ChangeFreqWeekly, PriorityModule, pathFor)
		}
	}
}

// Len returns the number of URLs added so far.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS:      XMLNamespace,
		XMLNSXHTML: XHTMLNamespace,
		URLs:       b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds the sitemap from the phase trees of each locale.
// Locales missing from phasesByLocale contribute only their home page.
func GenerateSitemap(siteURL string, now time.Time, phasesByLocale map[model.Locale][]model.Phase) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL, now)
	builder.AddHomepages()
	for _, l := range model.Locales {
		builder.AddPhases(l, phasesByLocale[l])
	}
	for _, l := range model.Locales {
		builder.AddModules(l, phasesByLocale[l])
	}
	return builder.Build()
}

func lastModified(updated, published time.Time) time.Time {
	if !updated.IsZero() {
		return updated
	}
	return published
}

func homePath(l model.Locale) string { return "/" + string(l) }

func phasePath(l model.Locale, slug string) string { return "/" + string(l) + "/phase/" + slug }
