// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	SiteURL       string   // Base URL for the sitemap reference
	DisallowAll   bool     // Block all crawlers (development and staging)
	DisallowPaths []string // Paths kept out of the index
}

// Build renders robots.txt for cfg.
func (cfg RobotsConfig) Build() string {
	lines := []string{"User-agent: *"}
	if cfg.DisallowAll {
		return strings.Join(append(lines, "Disallow: /"), "\n") + "\n"
	}

	for _, p := range cfg.DisallowPaths {
		lines = append(lines, "Disallow: "+p)
	}
	lines = append(lines, "Allow: /")

	if cfg.SiteURL != "" {
		lines = append(lines, "", "Sitemap: "+strings.TrimSuffix(cfg.SiteURL, "/")+"/sitemap.xml")
	}
	return strings.Join(lines, "\n") + "\n"
}

// localePaths returns the search results and progress form paths of every
// locale. Both depend on visitor input and are not worth indexing.
func localePaths() []string {
	paths := make([]string, 0, 2*len(model.Locales))
	for _, l := range model.Locales {
		paths = append(paths, "/"+string(l)+"/search", "/"+string(l)+"/progress")
	}
	return paths
}

// GenerateRobots returns robots.txt content for the site. Development
// deployments block all crawlers.
func GenerateRobots(siteURL string, development bool) string {
	return RobotsConfig{
		SiteURL:       siteURL,
		DisallowAll:   development,
		DisallowPaths: append([]string{"/api/", "/consent"}, localePaths()...),
	}.Build()
}
