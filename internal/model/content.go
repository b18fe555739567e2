// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// Phase is a top-level curriculum stage.
type Phase struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"` // rich text
	Order          int       `json:"order"`
	PhaseNumber    int       `json:"phase_number"`
	HeaderVideoURL string    `json:"header_video_url,omitempty"`
	Locale         Locale    `json:"locale"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	PublishedAt    time.Time `json:"published_at"`
	Modules        []Module  `json:"modules"`
}

// Ref returns the back-reference used by modules of this phase.
func (p *Phase) Ref() *PhaseRef {
	return &PhaseRef{ID: p.ID, Title: p.Title, Slug: p.Slug, PhaseNumber: p.PhaseNumber}
}

// ModuleBySlug returns the phase's module with the given slug, or nil.
func (p *Phase) ModuleBySlug(slug string) *Module {
	for i := range p.Modules {
		if p.Modules[i].Slug == slug {
			return &p.Modules[i]
		}
	}
	return nil
}

// PhaseRef is a module's reference to its owning phase.
type PhaseRef struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	PhaseNumber int    `json:"phase_number"`
}

// Module is a learning unit nested under a phase.
type Module struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Summary       string     `json:"summary"` // rich text
	VideoURL      string     `json:"video_url,omitempty"`
	SubtitleURLEn string     `json:"video_subtitle_url_en,omitempty"`
	SubtitleURLAr string     `json:"video_subtitle_url_ar,omitempty"`
	KeyTakeaways  string     `json:"key_takeaways,omitempty"` // rich text
	Order         int        `json:"order"`
	Locale        Locale     `json:"locale"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   time.Time  `json:"published_at"`
	Phase         *PhaseRef  `json:"phase,omitempty"`
	Resources     []Resource `json:"resources"`
}

// SubtitleURL returns the subtitle track for locale, falling back to English.
func (m *Module) SubtitleURL(locale Locale) string {
	if locale == LocaleArabic && m.SubtitleURLAr != "" {
		return m.SubtitleURLAr
	}
	return m.SubtitleURLEn
}

// ModuleRef is a resource's reference to its owning module.
type ModuleRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// FileType classifies a downloadable resource.
type FileType string

// Resource file types.
const (
	FileTypePDF   FileType = "PDF"
	FileTypeExcel FileType = "Excel"
	FileTypeWord  FileType = "Word"
	FileTypeOther FileType = "Other"
)

// FileTypes lists the resource file types in display order.
var FileTypes = []FileType{FileTypePDF, FileTypeExcel, FileTypeWord, FileTypeOther}

// ParseFileType maps a CMS value onto a FileType. Unknown values map to Other.
func ParseFileType(s string) FileType {
	for _, ft := range FileTypes {
		if strings.EqualFold(s, string(ft)) {
			return ft
		}
	}
	return FileTypeOther
}

// Resource is a downloadable file attached to a module.
type Resource struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	FileURL     string     `json:"file_url,omitempty"`
	FileType    FileType   `json:"file_type"`
	FileSize    string     `json:"file_size,omitempty"`
	Order       int        `json:"order"`
	Locale      Locale     `json:"locale"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt time.Time  `json:"published_at"`
	Module      *ModuleRef `json:"module,omitempty"`
}

// Testimonial is a participant quote shown on the home page.
type Testimonial struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quote    string `json:"quote"`
	Role     string `json:"role,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	Order    int    `json:"order"`
	Locale   Locale `json:"locale"`
}

// SocialLink is a footer link to a social platform.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Settings is the singleton site configuration authored in the CMS.
type Settings struct {
	SiteTitle         string       `json:"site_title"`
	SiteTitleAr       string       `json:"site_title_ar,omitempty"`
	HeroHeadline      string       `json:"hero_headline"`
	HeroHeadlineAr    string       `json:"hero_headline_ar,omitempty"`
	HeroDescription   string       `json:"hero_description"`
	HeroDescriptionAr string       `json:"hero_description_ar,omitempty"`
	HeroVideoURL      string       `json:"hero_video_url,omitempty"`
	FooterText        string       `json:"footer_text,omitempty"`
	FooterTextAr      string       `json:"footer_text_ar,omitempty"`
	SocialLinks       []SocialLink `json:"social_links,omitempty"`
	Locale            Locale       `json:"locale"`
}

// LocalizedSettings holds the settings strings for one locale.
type LocalizedSettings struct {
	SiteTitle       string
	HeroHeadline    string
	HeroDescription string
	FooterText      string
}

// Localized picks the strings for locale, using the English value when the
// Arabic one is missing.
func (s *Settings) Localized(locale Locale) LocalizedSettings {
	out := LocalizedSettings{
		SiteTitle:       s.SiteTitle,
		HeroHeadline:    s.HeroHeadline,
		HeroDescription: s.HeroDescription,
		FooterText:      s.FooterText,
	}
	if locale != LocaleArabic {
		return out
	}
	if s.SiteTitleAr != "" {
		out.SiteTitle = s.SiteTitleAr
	}
	if s.HeroHeadlineAr != "" {
		out.HeroHeadline = s.HeroHeadlineAr
	}
	if s.HeroDescriptionAr != "" {
		out.HeroDescription = s.HeroDescriptionAr
	}
	if s.FooterTextAr != "" {
		out.FooterText = s.FooterTextAr
	}
	return out
}

// CountModules returns the total number of modules across phases.
func CountModules(phases []Phase) int {
	n := 0
	for i := range phases {
		n += len(phases[i].Modules)
	}
	return n
}
