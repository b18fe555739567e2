// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/fiftyfifty-toolkit/internal/filter"
	"github.com/olegiv/fiftyfifty-toolkit/internal/i18n"
	"github.com/olegiv/fiftyfifty-toolkit/internal/library"
	"github.com/olegiv/fiftyfifty-toolkit/internal/middleware"
	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
	"github.com/olegiv/fiftyfifty-toolkit/internal/progress"
	"github.com/olegiv/fiftyfifty-toolkit/internal/search"
	"github.com/olegiv/fiftyfifty-toolkit/internal/seo"
	"github.com/olegiv/fiftyfifty-toolkit/internal/service"
)

// Home handles GET /{lang}.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := middleware.GetLocale(r)

	page, err := h.content.Home(ctx, locale)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to load home page", "locale", locale, "error", err)
		page = &service.HomePage{}
	}

	data := h.baseData(w, r, &seo.PageData{PathFor: service.HomePath})
	data.Data = HomeView{
		Page:     page,
		Progress: newProgressView(progress.New(h.store(w, r)), page.Phases),
	}
	h.render(w, r, http.StatusOK, "home", data)
}

// Phases handles GET /{lang}/phases with the topic filter in the query.
func (h *FrontendHandler) Phases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := middleware.GetLocale(r)

	phases, err := h.content.Phases(ctx, locale)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to load phases", "locale", locale, "error", err)
		phases = []model.Phase{}
	}

	sel := filter.FromQuery(r.URL.Query())
	options := make([]FilterOption, 0, len(filter.Options))
	for _, opt := range filter.Options {
		options = append(options, FilterOption{
			ID:       opt.ID,
			Label:    opt.LabelFor(locale),
			Count:    filter.Count(phases, opt.ID),
			Selected: sel.IsSelected(opt.ID),
			Query:    sel.ToggleQuery(opt.ID),
		})
	}

	filtered := filter.Apply(phases, sel)
	title := i18n.T(locale, "phases.title")
	data := h.baseData(w, r, &seo.PageData{Title: title, PathFor: service.PhasesPath},
		seo.Crumb{Name: title, Path: service.PhasesPath(locale)})
	data.Data = PhasesView{
		Phases:          filtered,
		Total:           len(phases),
		Mode:            sel.Mode(),
		Options:         options,
		SingleModeQuery: filter.NewSelection(filter.ModeSingle).Query().Encode(),
		MultiModeQuery:  filter.NewSelection(filter.ModeMulti).Query().Encode(),
		Progress:        newProgressView(progress.New(h.store(w, r)), phases),
	}
	h.render(w, r, http.StatusOK, "phases", data)
}

// Phase handles GET /{lang}/phase/{slug}.
func (h *FrontendHandler) Phase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := middleware.GetLocale(r)
	slug := chi.URLParam(r, "slug")

	page, err := h.content.Phase(ctx, locale, slug)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.logger.WarnContext(ctx, "failed to load phase", "slug", slug, "error", err)
		}
		h.NotFound(w, r)
		return
	}

	p := page.Phase
	data := h.baseData(w, r,
		&seo.PageData{
			Title:       p.Title,
			Description: p.Description,
			PathFor:     func(l model.Locale) string { return service.PhasePath(l, slug) },
		},
		seo.Crumb{Name: i18n.T(locale, "nav.phases"), Path: service.PhasesPath(locale)},
		seo.Crumb{Name: p.Title, Path: service.PhasePath(locale, slug)},
	)
	data.Data = PhaseView{
		Phase:    p,
		Progress: newProgressView(progress.New(h.store(w, r)), []model.Phase{p}),
	}
	h.render(w, r, http.StatusOK, "phase", data)
}

// Module handles GET /{lang}/phase/{slug}/module/{moduleSlug}.
func (h *FrontendHandler) Module(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := middleware.GetLocale(r)
	phaseSlug := chi.URLParam(r, "slug")
	moduleSlug := chi.URLParam(r, "moduleSlug")

	page, err := h.content.Module(ctx, locale, phaseSlug, moduleSlug)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.logger.WarnContext(ctx, "failed to load module", "phase", phaseSlug, "module", moduleSlug, "error", err)
		}
		h.NotFound(w, r)
		return
	}

	m := page.Module
	data := h.baseData(w, r,
		&seo.PageData{
			Title:       m.Title,
			Description: m.Summary,
			Article:     true,
			PathFor:     func(l model.Locale) string { return service.ModulePath(l, phaseSlug, moduleSlug) },
		},
		seo.Crumb{Name: i18n.T(locale, "nav.phases"), Path: service.PhasesPath(locale)},
		seo.Crumb{Name: page.Phase.Title, Path: service.PhasePath(locale, phaseSlug)},
		seo.Crumb{Name: m.Title, Path: service.ModulePath(locale, phaseSlug, moduleSlug)},
	)
	data.Data = ModuleView{
		Page:        page,
		Completed:   progress.New(h.store(w, r)).IsComplete(m.ID),
		SubtitleURL: m.SubtitleURL(locale),
	}
	h.render(w, r, http.StatusOK, "module", data)
}

// Resources handles GET /{lang}/resources?type=&q=&group=.
func (h *FrontendHandler) Resources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := middleware.GetLocale(r)
	params := library.ParamsFromQuery(r.URL.Query())

	view, err := h.content.Library(ctx, locale, params)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to load resource library", "locale", locale, "error", err)
		view = library.Build(nil, params)
	}

	types := []TypeOption{{
		Value:    library.TypeAll,
		Label:    i18n.T(locale, "resources.allFiles"),
		Count:    view.TotalCount(),
		Selected: view.Params.FileType == library.TypeAll,
	}}
	for _, ft := range model.FileTypes {
		types = append(types, TypeOption{
			Value:    string(ft),
			Label:    string(ft),
			Count:    view.FileTypeCounts[string(ft)],
			Selected: view.Params.FileType == string(ft),
		})
	}

	groups := []GroupOption{
		{Value: library.GroupByPhase, Label: i18n.T(locale, "resources.byPhase")},
		{Value: library.GroupByModule, Label: i18n.T(locale, "resources.byModule")},
		{Value: library.GroupByType, Label: i18n.T(locale, "resources.byFileType")},
	}
	for i := range groups {
		groups[i].Selected = groups[i].Value == view.Params.GroupBy
	}

	title := i18n.T(locale, "resources.pageTitle")
	data := h.baseData(w, r,
		&seo.PageData{Title: title, Description: i18n.T(locale, "resources.pageDescription"), PathFor: service.ResourcesPath},
		seo.Crumb{Name: title, Path: service.ResourcesPath(locale)},
	)
	data.Data = ResourcesView{Library: view, Types: types, Groups: groups}
	h.render(w, r, http.StatusOK, "resources", data)
}

// Search handles GET /{lang}/search?q=.
func (h *FrontendHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := middleware.GetLocale(r)
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	minChars := search.DefaultOptions().MinCharacters

	status := http.StatusOK
	view := SearchView{Query: query, MinChars: minChars, MaxChars: search.MaxQueryRunes}
	if n := utf8.RuneCountInString(query); n > 0 && n < minChars {
		view.TooShort = true
	} else if search.TooLong(query) {
		view.TooLong = true
		view.Query = ""
		status = http.StatusBadRequest
	} else if n > 0 {
		results, err := h.content.Search(ctx, locale, query)
		if err != nil {
			h.logger.WarnContext(ctx, "search failed", "locale", locale, "error", err)
		}
		view.Results = results
	}

	title := i18n.T(locale, "search.title")
	data := h.baseData(w, r,
		&seo.PageData{Title: title, NoIndex: query != "", PathFor: service.SearchPath},
		seo.Crumb{Name: title, Path: service.SearchPath(locale)},
	)
	data.Data = view
	h.render(w, r, status, "search", data)
}

// Privacy handles GET /{lang}/privacy.
func (h *FrontendHandler) Privacy(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)
	title := i18n.T(locale, "privacy.title")

	data := h.baseData(w, r,
		&seo.PageData{Title: title, Description: i18n.T(locale, "privacy.intro"), PathFor: service.PrivacyPath},
		seo.Crumb{Name: title, Path: service.PrivacyPath(locale)},
	)
	data.Data = PrivacyView{Consent: h.consentManager(w, r).Get()}
	// The page carries its own consent controls.
	data.ShowConsentBanner = false
	h.render(w, r, http.StatusOK, "privacy", data)
}
