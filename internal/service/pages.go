// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"

	"github.com/olegiv/fiftyfifty-toolkit/internal/cms"
	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// HomePath returns the URL path of the locale home page.
func HomePath(locale model.Locale) string { return "/" + string(locale) }

// PhasesPath returns the URL path of the phase list.
func PhasesPath(locale model.Locale) string { return "/" + string(locale) + "/phases" }

// ResourcesPath returns the URL path of the resource library.
func ResourcesPath(locale model.Locale) string { return "/" + string(locale) + "/resources" }

// SearchPath returns the URL path of the search page.
func SearchPath(locale model.Locale) string { return "/" + string(locale) + "/search" }

// PrivacyPath returns the URL path of the privacy page.
func PrivacyPath(locale model.Locale) string { return "/" + string(locale) + "/privacy" }

// PhasePath returns the URL path of a phase page.
func PhasePath(locale model.Locale, phaseSlug string) string {
	return "/" + string(locale) + "/phase/" + phaseSlug
}

// ModulePath returns the URL path of a module page.
func ModulePath(locale model.Locale, phaseSlug, moduleSlug string) string {
	return PhasePath(locale, phaseSlug) + "/module/" + moduleSlug
}

// Hero holds the home page hero copy.
type Hero struct {
	Headline    string `json:"headline"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url,omitempty"`
}

var defaultHero = map[model.Locale]Hero{
	model.LocaleEnglish: {
		Headline:    "Building Sustainable Communities",
		Description: "A step-by-step toolkit for social responsibility projects.",
	},
	model.LocaleArabic: {
		Headline:    "بناء مجتمعات مستدامة",
		Description: "مجموعة أدوات خطوة بخطوة لمشاريع المسؤولية الاجتماعية.",
	},
}

// HomePage is the content of the locale home page.
type HomePage struct {
	Hero         Hero                `json:"hero"`
	Settings     *model.Settings     `json:"settings,omitempty"`
	Phases       []model.Phase       `json:"phases"`
	Testimonials []model.Testimonial `json:"testimonials"`
	TotalModules int                 `json:"total_modules"`
}

// Home assembles the home page. Failed sections fall back to empty content
// with a logged warning, so the page always renders.
func (s *ContentService) Home(ctx context.Context, locale model.Locale) (*HomePage, error) {
	return cachedPage(ctx, s, HomePath(locale), func(ctx context.Context) (*HomePage, error) {
		page := &HomePage{Hero: defaultHero[locale], Phases: []model.Phase{}, Testimonials: []model.Testimonial{}}

		settings, err := s.repo.Settings(ctx, locale)
		if err != nil {
			s.logger.Warn("failed to load settings", "locale", locale, "error", err)
		} else if settings != nil {
			page.Settings = settings
			l := settings.Localized(locale)
			if l.HeroHeadline != "" {
				page.Hero.Headline = l.HeroHeadline
			}
			if l.HeroDescription != "" {
				page.Hero.Description = l.HeroDescription
			}
			page.Hero.VideoURL = s.repo.MediaURL(settings.HeroVideoURL)
		}

		if phases, err := s.Phases(ctx, locale); err != nil {
			s.logger.Warn("failed to load phases", "locale", locale, "error", err)
		} else {
			page.Phases = phases
			page.TotalModules = model.CountModules(phases)
		}

		if ts, err := s.repo.Testimonials(ctx, cms.Query{Locale: locale}); err != nil {
			s.logger.Warn("failed to load testimonials", "locale", locale, "error", err)
		} else {
			page.Testimonials = ts
		}
		return page, nil
	})
}

// SiteSettings returns the settings for locale, or nil when unavailable.
func (s *ContentService) SiteSettings(ctx context.Context, locale model.Locale) *model.Settings {
	settings, err := s.repo.Settings(ctx, locale)
	if err != nil {
		s.logger.Warn("failed to load settings", "locale", locale, "error", err)
		return nil
	}
	return settings
}

// PhasePage is the content of a phase page.
type PhasePage struct {
	Phase model.Phase `json:"phase"`
}

// Phase returns the phase page for slug or ErrNotFound.
func (s *ContentService) Phase(ctx context.Context, locale model.Locale, slug string) (*PhasePage, error) {
	page, err := cachedPage(ctx, s, PhasePath(locale, slug), func(ctx context.Context) (*PhasePage, error) {
		p, err := s.repo.PhaseBySlug(ctx, locale, slug)
		if err != nil || p == nil {
			return nil, err
		}
		return &PhasePage{Phase: *p}, nil
	})
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrNotFound
	}
	return page, nil
}

// ModulePage is the content of a module page with its neighbours.
type ModulePage struct {
	Phase  model.PhaseRef   `json:"phase"`
	Module model.Module     `json:"module"`
	Prev   *model.ModuleRef `json:"prev,omitempty"`
	Next   *model.ModuleRef `json:"next,omitempty"`
	Index  int              `json:"index"`
	Total  int              `json:"total"`
}

// Module returns the module page or ErrNotFound. The module must belong to
// the phase named in the path.
func (s *ContentService) Module(ctx context.Context, locale model.Locale, phaseSlug, moduleSlug string) (*ModulePage, error) {
	page, err := cachedPage(ctx, s, ModulePath(locale, phaseSlug, moduleSlug), func(ctx context.Context) (*ModulePage, error) {
		m, err := s.repo.ModuleBySlug(ctx, locale, phaseSlug, moduleSlug)
		if err != nil || m == nil || m.Phase == nil {
			return nil, err
		}

		page := &ModulePage{Phase: *m.Phase, Module: *m, Total: 1}

		siblings, err := s.repo.ModulesByPhase(ctx, locale, phaseSlug)
		if err != nil {
			s.logger.Warn("failed to load sibling modules", "phase", phaseSlug, "error", err)
			return page, nil
		}
		page.Total = len(siblings)
		for i := range siblings {
			if siblings[i].ID != m.ID {
				continue
			}
			page.Index = i
			if i > 0 {
				prev := siblings[i-1]
				page.Prev = &model.ModuleRef{ID: prev.ID, Title: prev.Title, Slug: prev.Slug}
			}
			if i < len(siblings)-1 {
				next := siblings[i+1]
				page.Next = &model.ModuleRef{ID: next.ID, Title: next.Title, Slug: next.Slug}
			}
			break
		}
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrNotFound
	}
	return page, nil
}
