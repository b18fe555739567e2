// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo provides SEO utilities for building meta tags, structured data,
// sitemaps and robots.txt.
package seo

import (
	"encoding/json"
	"html/template"
	"strings"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
	"github.com/olegiv/fiftyfifty-toolkit/internal/richtext"
)

// DefaultSiteName is used when the CMS settings carry no site title.
const DefaultSiteName = "FiftyFifty ToolKit"

// Alternate is an hreflang alternate of the current page.
type Alternate struct {
	Hreflang string
	Href     string
}

// Meta holds all SEO meta tag data for a page.
type Meta struct {
	Title         string // Page title (for <title> tag)
	Description   string // Meta description
	Canonical     string // Canonical URL
	Alternates    []Alternate
	OGTitle       string
	OGDescription string
	OGImage       string
	OGType        string // website, article
	OGSiteName    string
	OGURL         string
	OGLocale      string
	Robots        string // index,follow / noindex,nofollow
	TwitterCard   string
}

// PageData contains page information for building meta tags.
type PageData struct {
	Title       string
	Description string // rich text, stripped and trimmed for the meta tag
	Image       string
	NoIndex     bool
	Article     bool
	// PathFor returns the path of this page in the given locale.
	PathFor func(model.Locale) string
}

// SiteConfig contains site-wide settings for SEO.
type SiteConfig struct {
	SiteName        string
	SiteURL         string
	SiteDescription string
	DefaultOGImage  string
}

// BuildMeta creates a Meta struct for locale from page and site data with
// proper fallbacks. A nil page yields the home page meta.
func BuildMeta(locale model.Locale, page *PageData, site *SiteConfig) *Meta {
	siteName := site.SiteName
	if siteName == "" {
		siteName = DefaultSiteName
	}
	meta := &Meta{
		OGType:      "website",
		TwitterCard: "summary_large_image",
		OGSiteName:  siteName,
		OGLocale:    ogLocale(locale),
		Robots:      "index,follow",
	}

	pathFor := func(l model.Locale) string { return "/" + string(l) }
	if page != nil && page.PathFor != nil {
		pathFor = page.PathFor
	}

	if page == nil || page.Title == "" {
		meta.Title = siteName
		meta.Description = site.SiteDescription
	} else {
		meta.Title = page.Title + " | " + siteName
		meta.Description = richtext.MetaDescription(page.Description)
		if meta.Description == "" {
			meta.Description = site.SiteDescription
		}
		if page.Article {
			meta.OGType = "article"
		}
		meta.Robots = buildRobotsDirective(page.NoIndex, page.NoIndex)
	}
	meta.OGTitle = meta.Title
	meta.OGDescription = meta.Description

	meta.Canonical = makeAbsoluteURL(pathFor(locale), site.SiteURL)
	meta.OGURL = meta.Canonical
	for _, l := range model.Locales {
		meta.Alternates = append(meta.Alternates, Alternate{
			Hreflang: string(l),
			Href:     makeAbsoluteURL(pathFor(l), site.SiteURL),
		})
	}
	meta.Alternates = append(meta.Alternates, Alternate{
		Hreflang: "x-default",
		Href:     makeAbsoluteURL(pathFor(model.DefaultLocale), site.SiteURL),
	})

	switch {
	case page != nil && page.Image != "":
		meta.OGImage = makeAbsoluteURL(page.Image, site.SiteURL)
	case site.DefaultOGImage != "":
		meta.OGImage = makeAbsoluteURL(site.DefaultOGImage, site.SiteURL)
	}

	return meta
}

func ogLocale(l model.Locale) string {
	if l == model.LocaleArabic {
		return "ar_SA"
	}
	return "en_US"
}

// buildRobotsDirective creates the robots meta content from noindex/nofollow flags.
func buildRobotsDirective(noIndex, noFollow bool) string {
	var parts []string

	if noIndex {
		parts = append(parts, "noindex")
	} else {
		parts = append(parts, "index")
	}

	if noFollow {
		parts = append(parts, "nofollow")
	} else {
		parts = append(parts, "follow")
	}

	return strings.Join(parts, ",")
}

// OrgSchema represents JSON-LD Organization structured data.
type OrgSchema struct {
	Context     string         `json:"@context,omitempty"`
	Type        string         `json:"@type"`
	Name        string         `json:"name"`
	URL         string         `json:"url,omitempty"`
	Logo        string         `json:"logo,omitempty"`
	Description string         `json:"description,omitempty"`
	SameAs      []string       `json:"sameAs,omitempty"`
	Address     *AddressSchema `json:"address,omitempty"`
}

// AddressSchema represents JSON-LD PostalAddress structured data.
type AddressSchema struct {
	Type           string `json:"@type"`
	AddressCountry string `json:"addressCountry"`
}

// WebSiteSchema represents JSON-LD WebSite structured data for the home page.
type WebSiteSchema struct {
	Context      string        `json:"@context"`
	Type         string        `json:"@type"`
	Name         string        `json:"name"`
	URL          string        `json:"url"`
	Description  string        `json:"description,omitempty"`
	InLanguage   string        `json:"inLanguage"`
	SearchAction *SearchAction `json:"potentialAction,omitempty"`
}

// SearchAction represents JSON-LD SearchAction for site search.
type SearchAction struct {
	Type       string     `json:"@type"`
	Target     EntryPoint `json:"target"`
	QueryInput string     `json:"query-input"`
}

// EntryPoint represents the JSON-LD EntryPoint of a SearchAction.
type EntryPoint struct {
	Type        string `json:"@type"`
	URLTemplate string `json:"urlTemplate"`
}

// BreadcrumbSchema represents JSON-LD BreadcrumbList structured data.
type BreadcrumbSchema struct {
	Context  string           `json:"@context"`
	Type     string           `json:"@type"`
	ItemList []BreadcrumbItem `json:"itemListElement"`
}

// BreadcrumbItem represents a single breadcrumb item.
type BreadcrumbItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// Crumb is a breadcrumb step given as a site-relative path.
type Crumb struct {
	Name string
	Path string
}

var organizationDescriptions = map[model.Locale]string{
	model.LocaleEnglish: "Building sustainable communities through social responsibility",
	model.LocaleArabic:  "منظمة تعمل على بناء مجتمعات مستدامة من خلال المسؤولية الاجتماعية",
}

var websiteDescriptions = map[model.Locale]string{
	model.LocaleEnglish: "A comprehensive methodology and learning platform for social entrepreneurs",
	model.LocaleArabic:  "منهجية شاملة ومنصة تعليمية لرواد الأعمال الاجتماعيين",
}

// BuildOrganizationSchema creates JSON-LD Organization structured data.
func BuildOrganizationSchema(locale model.Locale, site *SiteConfig, socialLinks []model.SocialLink) template.JS {
	base := strings.TrimSuffix(site.SiteURL, "/")
	org := OrgSchema{
		Context:     "https://schema.org",
		Type:        "Organization",
		Name:        "FiftyFifty",
		URL:         base,
		Logo:        base + "/static/logo.png",
		Description: organizationDescriptions[locale],
		Address:     &AddressSchema{Type: "PostalAddress", AddressCountry: "SA"},
	}
	for _, link := range socialLinks {
		if link.URL != "" {
			org.SameAs = append(org.SameAs, link.URL)
		}
	}
	return marshalJSONLD(org)
}

// BuildWebSiteSchema creates JSON-LD WebSite structured data with a
// SearchAction pointing at the localized search page.
func BuildWebSiteSchema(locale model.Locale, site *SiteConfig) template.JS {
	base := strings.TrimSuffix(site.SiteURL, "/")
	name := site.SiteName
	if name == "" {
		name = DefaultSiteName
	}
	desc := site.SiteDescription
	if desc == "" {
		desc = websiteDescriptions[locale]
	}
	return marshalJSONLD(WebSiteSchema{
		Context:     "https://schema.org",
		Type:        "WebSite",
		Name:        name,
		URL:         base,
		Description: desc,
		InLanguage:  string(locale),
		SearchAction: &SearchAction{
			Type: "SearchAction",
			Target: EntryPoint{
				Type:        "EntryPoint",
				URLTemplate: base + "/" + string(locale) + "/search?q={search_term_string}",
			},
			QueryInput: "required name=search_term_string",
		},
	})
}

// BuildBreadcrumbSchema creates JSON-LD BreadcrumbList structured data.
// It returns an empty string when crumbs is empty.
func BuildBreadcrumbSchema(site *SiteConfig, crumbs []Crumb) template.JS {
	if len(crumbs) == 0 {
		return ""
	}
	list := BreadcrumbSchema{
		Context:  "https://schema.org",
		Type:     "BreadcrumbList",
		ItemList: make([]BreadcrumbItem, 0, len(crumbs)),
	}
	for i, c := range crumbs {
		list.ItemList = append(list.ItemList, BreadcrumbItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     c.Name,
			Item:     makeAbsoluteURL(c.Path, site.SiteURL),
		})
	}
	return marshalJSONLD(list)
}

// marshalJSONLD marshals structured data to JSON-LD script tag content.
func marshalJSONLD(v any) template.JS {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(data)
}

// makeAbsoluteURL ensures a URL is absolute by prepending site URL if needed.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
