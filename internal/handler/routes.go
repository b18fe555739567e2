// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/fiftyfifty-toolkit/internal/middleware"
)

// staticMaxAge is the Cache-Control max-age for /static assets (one year).
const staticMaxAge = 31536000

// RouterConfig collects the handlers and middleware settings for NewRouter.
type RouterConfig struct {
	Frontend   *FrontendHandler
	API        *APIHandler
	Health     *HealthHandler
	Revalidate *RevalidateHandler
	SEO        *SEOHandler

	// Static is served under /static/. Nil disables static files.
	Static fs.FS

	Security    middleware.SecurityHeadersConfig
	CSRF        middleware.CSRFConfig
	RateLimiter *middleware.RateLimiter

	// RequestTimeout bounds each request; zero means 30s.
	RequestTimeout time.Duration
	// RequestLogging enables chi's request logger.
	RequestLogging bool
}

// NewRouter builds the site router.
func NewRouter(cfg RouterConfig) chi.Router {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.RateLimiter == nil {
		cfg.RateLimiter = middleware.NewRateLimiter(0, 0)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.RequestLogging {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(chimw.RedirectSlashes)
	r.Use(middleware.SecurityHeaders(cfg.Security))
	r.Use(middleware.VisitorInfo)

	if cfg.Static != nil {
		fileServer := http.FileServer(http.FS(cfg.Static))
		r.Handle("/static/*", middleware.StaticCache(staticMaxAge)(http.StripPrefix("/static/", fileServer)))
	}

	r.Get("/sitemap.xml", cfg.SEO.Sitemap)
	r.Get("/robots.txt", cfg.SEO.Robots)
	r.Get("/", middleware.RedirectToLocale)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Get("/health", cfg.Health.Health)

		r.Group(func(r chi.Router) {
			r.Use(cfg.RateLimiter.Middleware())
			r.Get("/search", cfg.API.Search)
			r.Get("/revalidate", cfg.Revalidate.Status)
			r.Post("/revalidate", cfg.Revalidate.Revalidate)
		})
	})

	csrf := middleware.CSRF(cfg.CSRF)
	notFound := http.HandlerFunc(cfg.Frontend.NotFound)

	r.With(csrf, middleware.NoStore).Post("/consent", cfg.Frontend.UpdateConsent)

	r.Route("/{lang}", func(r chi.Router) {
		r.Use(middleware.Locale(notFound))

		r.Get("/", cfg.Frontend.Home)
		r.Get("/phases", cfg.Frontend.Phases)
		r.Get("/phase/{slug}", cfg.Frontend.Phase)
		r.Get("/phase/{slug}/module/{moduleSlug}", cfg.Frontend.Module)
		r.Get("/resources", cfg.Frontend.Resources)
		r.Get("/search", cfg.Frontend.Search)
		r.Get("/privacy", cfg.Frontend.Privacy)
		r.With(csrf, middleware.NoStore).Post("/progress", cfg.Frontend.UpdateProgress)

		r.NotFound(notFound)
	})

	r.NotFound(notFound)

	return r
}
