// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/fiftyfifty-toolkit/internal/cache"
	"github.com/olegiv/fiftyfifty-toolkit/internal/cms"
	"github.com/olegiv/fiftyfifty-toolkit/internal/config"
	"github.com/olegiv/fiftyfifty-toolkit/internal/i18n"
	"github.com/olegiv/fiftyfifty-toolkit/internal/service"
)

// pageCacheTTL bounds how long assembled page views are reused.
const pageCacheTTL = 10 * time.Minute

// app holds the components shared by the server and the query commands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	cmsCache cache.Cache
	pages    cache.Cache
	repo     *cms.Repository
	content  *service.ContentService
}

// loadConfig reads .env, if present, and the environment.
func loadConfig() (*config.Config, error) {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newApp builds the content stack for cfg. logger becomes the default
// logger.
func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return nil, fmt.Errorf("initializing i18n: %w", err)
	}

	cmsCache := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix + "cms:",
		DefaultTTL: cfg.CMSCacheTTL,
		MaxSize:    cfg.CacheMaxSize,
	})
	pages := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix + "pages:",
		DefaultTTL: pageCacheTTL,
		MaxSize:    cfg.CacheMaxSize,
	})

	var (
		source  cms.Source
		baseURL string
	)
	if cfg.CMSOffline {
		source = cms.NewOffline(cfg.CMSSampleDir)
		logger.Info("serving offline sample content", "override_dir", cfg.CMSSampleDir)
	} else {
		source = cms.NewClient(cms.ClientOptions{
			BaseURL: cfg.CMSBaseURL,
			Token:   cfg.CMSAPIToken,
			Timeout: cfg.CMSTimeout,
		})
		baseURL = cfg.CMSBaseURL
	}

	repo := cms.NewRepository(cms.Options{
		Source:   source,
		Cache:    cmsCache,
		CacheTTL: cfg.CMSCacheTTL,
		Offline:  cfg.CMSOffline,
		BaseURL:  baseURL,
		Token:    cfg.CMSAPIToken,
	})
	if !repo.Configured() {
		logger.Warn("CMS API token not set, requests may be rejected", "base_url", cfg.CMSBaseURL)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		cmsCache: cmsCache,
		pages:    pages,
		repo:     repo,
		content:  service.NewContentService(repo, pages, pageCacheTTL, logger),
	}, nil
}

// Close releases the caches.
func (a *app) Close() {
	if err := a.pages.Close(); err != nil {
		a.logger.Error("error closing page cache", "error", err)
	}
	if err := a.cmsCache.Close(); err != nil {
		a.logger.Error("error closing cms cache", "error", err)
	}
}
