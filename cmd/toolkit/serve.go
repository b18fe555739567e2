// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/cache"
	"github.com/olegiv/fiftyfifty-toolkit/internal/cms"
	"github.com/olegiv/fiftyfifty-toolkit/internal/config"
	"github.com/olegiv/fiftyfifty-toolkit/internal/consent"
	"github.com/olegiv/fiftyfifty-toolkit/internal/handler"
	"github.com/olegiv/fiftyfifty-toolkit/internal/logging"
	"github.com/olegiv/fiftyfifty-toolkit/internal/middleware"
	"github.com/olegiv/fiftyfifty-toolkit/internal/render"
	"github.com/olegiv/fiftyfifty-toolkit/internal/scheduler"
	"github.com/olegiv/fiftyfifty-toolkit/internal/seo"
	"github.com/olegiv/fiftyfifty-toolkit/internal/service"
	"github.com/olegiv/fiftyfifty-toolkit/internal/version"
	"github.com/olegiv/fiftyfifty-toolkit/web"
)

// devTemplatesDir is read from disk in development so template edits show
// up without a rebuild.
const devTemplatesDir = "web/templates"

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, logs := logging.New(cfg.LogLevel, cfg.IsDevelopment())
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	slog.Info("starting toolkit", "version", version.Version, "env", cfg.Env, "offline", cfg.CMSOffline)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Reload content when the sample data override changes
	if cfg.CMSOffline && cfg.CMSSampleDir != "" {
		watcher, err := cms.NewWatcher(cfg.CMSSampleDir, 0, func(ctx context.Context) {
			if err := a.content.Reload(ctx); err != nil {
				slog.Error("failed to reload sample content", "error", err)
				return
			}
			slog.Info("sample content reloaded", "version", a.content.Version())
		}, logger)
		if err != nil {
			return fmt.Errorf("creating sample data watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("starting sample data watcher: %w", err)
		}
		defer watcher.Stop()
	}

	// Background content warming
	sched := scheduler.New(logger, 2*time.Minute)
	if err := sched.AddWarmer(cfg.WarmSchedule, a.content); err != nil {
		return fmt.Errorf("scheduling content warmer: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	router, err := buildRouter(a, logs)
	if err != nil {
		return err
	}

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second, // Short enough to mitigate slowloris attacks
		MaxHeaderBytes:    1 << 20,          // 1MB max header size
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// buildRouter wires the HTTP handlers for a.
func buildRouter(a *app, logs *logging.RequestHandler) (http.Handler, error) {
	cfg := a.cfg

	templates, err := templatesFS(cfg.IsDevelopment())
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(render.Config{
		TemplatesFS: templates,
		MediaURL:    a.repo.MediaURL,
		IsDev:       cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("loading static files: %w", err)
	}

	key, err := csrfKey(cfg)
	if err != nil {
		return nil, err
	}

	notifier := consent.NewNotifier()
	notifier.Subscribe(func(rec consent.Record) {
		a.logger.Debug("consent recorded", "status", rec.Status, "analytics", rec.AnalyticsEnabled)
	})

	mediaOrigin := ""
	if !cfg.CMSOffline {
		mediaOrigin = origin(cfg.CMSBaseURL)
	}

	return handler.NewRouter(handler.RouterConfig{
		Frontend: handler.NewFrontendHandler(handler.FrontendOptions{
			Content:  a.content,
			Renderer: renderer,
			Notifier: notifier,
			Site: seo.SiteConfig{
				SiteName: "FiftyFifty Toolkit",
				SiteURL:  cfg.SiteURL,
			},
			GAMeasurementID: cfg.GAMeasurementID,
			SecureCookies:   !cfg.IsDevelopment(),
			Logger:          a.logger,
		}),
		API: handler.NewAPIHandler(a.content, a.logger),
		Health: handler.NewHealthHandler(cfg.Env, a.repo, map[string]cache.Cache{
			"cms":   a.cmsCache,
			"pages": a.pages,
		}, logs),
		Revalidate:     handler.NewRevalidateHandler(service.NewRevalidator(a.content, cfg.RevalidateSecret, a.logger), a.logger),
		SEO:            handler.NewSEOHandler(a.content, cfg.SiteURL, cfg.IsDevelopment(), a.logger),
		Static:         static,
		Security:       middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment(), mediaOrigin),
		CSRF:           middleware.DefaultCSRFConfig(key, cfg.SiteURL, cfg.IsDevelopment()),
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		RequestTimeout: 30 * time.Second,
		RequestLogging: cfg.IsDevelopment(),
	}), nil
}

// templatesFS returns the on-disk templates in development when present,
// otherwise the embedded ones.
func templatesFS(development bool) (fs.FS, error) {
	if development {
		if info, err := os.Stat(devTemplatesDir); err == nil && info.IsDir() {
			return os.DirFS(devTemplatesDir), nil
		}
	}
	sub, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("loading embedded templates: %w", err)
	}
	return sub, nil
}

// csrfKey returns the configured key or a random one for this process.
func csrfKey(cfg *config.Config) ([]byte, error) {
	if cfg.CSRFKey != "" {
		return []byte(cfg.CSRFKey), nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating CSRF key: %w", err)
	}
	return key, nil
}

// origin returns scheme://host of raw, or "" when raw is not an URL.
func origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
