// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides HTTP handlers for the site pages and JSON API.
package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/fiftyfifty-toolkit/internal/consent"
	"github.com/olegiv/fiftyfifty-toolkit/internal/i18n"
	"github.com/olegiv/fiftyfifty-toolkit/internal/middleware"
	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
	"github.com/olegiv/fiftyfifty-toolkit/internal/render"
	"github.com/olegiv/fiftyfifty-toolkit/internal/seo"
	"github.com/olegiv/fiftyfifty-toolkit/internal/service"
	"github.com/olegiv/fiftyfifty-toolkit/internal/storage"
	"github.com/olegiv/fiftyfifty-toolkit/internal/uikit"
)

// FrontendOptions configures a FrontendHandler.
type FrontendOptions struct {
	Content         *service.ContentService
	Renderer        *render.Renderer
	Notifier        *consent.Notifier // may be nil
	Site            seo.SiteConfig
	GAMeasurementID string
	SecureCookies   bool
	Logger          *slog.Logger
}

// FrontendHandler handles the public site pages and the visitor state forms.
type FrontendHandler struct {
	content       *service.ContentService
	renderer      *render.Renderer
	notifier      *consent.Notifier
	site          seo.SiteConfig
	gaID          string
	cookieOptions storage.CookieOptions
	logger        *slog.Logger
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(opts FrontendOptions) *FrontendHandler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &FrontendHandler{
		content:       opts.Content,
		renderer:      opts.Renderer,
		notifier:      opts.Notifier,
		site:          opts.Site,
		gaID:          opts.GAMeasurementID,
		cookieOptions: storage.DefaultCookieOptions(opts.SecureCookies),
		logger:        opts.Logger,
	}
}

// store returns the visitor's cookie-backed key/value store.
func (h *FrontendHandler) store(w http.ResponseWriter, r *http.Request) *storage.Cookie {
	return storage.NewCookie(w, r, h.cookieOptions)
}

// consentManager returns the consent manager for the visitor.
func (h *FrontendHandler) consentManager(w http.ResponseWriter, r *http.Request) *consent.Manager {
	return consent.NewManager(h.store(w, r), h.notifier)
}

// baseData builds the template data shared by every page. crumbs are the
// steps after Home; the last one is the current page.
func (h *FrontendHandler) baseData(w http.ResponseWriter, r *http.Request, page *seo.PageData, crumbs ...seo.Crumb) render.TemplateData {
	ctx := r.Context()
	locale := middleware.GetLocale(r)

	data := render.TemplateData{
		Locale: locale,
		Path:   localPath(r.URL.Path, locale),
		Meta:   seo.BuildMeta(locale, page, &h.site),
	}

	if settings := h.content.SiteSettings(ctx, locale); settings != nil {
		data.Site = settings.Localized(locale)
		data.SocialLinks = settings.SocialLinks
	}

	rec := h.consentManager(w, r).Get()
	data.ShowConsentBanner = rec == nil
	if h.gaID != "" && rec != nil && rec.AnalyticsEnabled && !middleware.GetVisitor(r).Bot {
		data.Analytics = render.Analytics{MeasurementID: h.gaID}
	}

	data.JSONLD = []template.JS{
		seo.BuildOrganizationSchema(locale, &h.site, data.SocialLinks),
		seo.BuildWebSiteSchema(locale, &h.site),
	}
	if len(crumbs) > 0 {
		trail := append([]seo.Crumb{{Name: i18n.T(locale, "nav.home"), Path: service.HomePath(locale)}}, crumbs...)
		data.JSONLD = append(data.JSONLD, seo.BuildBreadcrumbSchema(&h.site, trail))

		pairs := make([]string, 0, len(trail)*2)
		for _, c := range trail {
			pairs = append(pairs, c.Name, c.Path)
		}
		data.Breadcrumbs = uikit.Trail(pairs...)
	}

	return data
}

// render writes a page, logging rendering failures as a 500.
func (h *FrontendHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data render.TemplateData) {
	if err := h.renderer.Render(w, status, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render template", "template", name, "error", err)
		http.Error(w, "Template rendering error", http.StatusInternalServerError)
	}
}

// NotFound renders the 404 page in the request locale.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	locale, ok := middleware.LocaleFromContext(r.Context())
	if !ok {
		locale = middleware.NegotiateLocale(r)
		r = r.WithContext(middleware.WithLocale(r.Context(), locale))
	}
	data := h.baseData(w, r, &seo.PageData{Title: i18n.T(locale, "error.notFoundTitle"), NoIndex: true})
	h.render(w, r, http.StatusNotFound, "404", data)
}

// localRedirect returns target when it is a site-relative path, otherwise
// fallback.
func localRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}

// localPath strips the locale prefix from an URL path.
func localPath(p string, locale model.Locale) string {
	prefix := "/" + string(locale)
	if p == prefix {
		return ""
	}
	if rest, ok := strings.CutPrefix(p, prefix+"/"); ok {
		return "/" + rest
	}
	return p
}
