// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
	"github.com/olegiv/fiftyfifty-toolkit/internal/seo"
	"github.com/olegiv/fiftyfifty-toolkit/internal/service"
)

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	content     *service.ContentService
	siteURL     string
	development bool
	logger      *slog.Logger
	now         func() time.Time
}

// NewSEOHandler creates a new SEOHandler.
func NewSEOHandler(content *service.ContentService, siteURL string, development bool, logger *slog.Logger) *SEOHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SEOHandler{content: content, siteURL: siteURL, development: development, logger: logger, now: time.Now}
}

// Sitemap handles GET /sitemap.xml. Locales whose phases fail to load are
// left out rather than failing the whole sitemap.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	phasesByLocale := make(map[model.Locale][]model.Phase, len(model.Locales))
	for _, locale := range model.Locales {
		phases, err := h.content.Phases(ctx, locale)
		if err != nil {
			h.logger.WarnContext(ctx, "sitemap: failed to load phases", "locale", locale, "error", err)
			continue
		}
		phasesByLocale[locale] = phases
	}

	body, err := seo.GenerateSitemap(h.siteURL, h.now(), phasesByLocale)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(body)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(seo.GenerateRobots(h.siteURL, h.development)))
}
