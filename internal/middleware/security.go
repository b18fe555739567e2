// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// Third-party origins the pages load from.
const (
	gaScriptOrigins  = "https://www.googletagmanager.com https://www.google-analytics.com"
	gaConnectOrigins = "https://www.google-analytics.com https://*.analytics.google.com"
	videoOrigins     = "https://www.youtube.com https://www.youtube-nocookie.com https://player.vimeo.com"
)

// SecurityHeadersConfig holds configuration for security headers.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS.
	IsDevelopment bool

	ContentSecurityPolicy string

	// HSTSMaxAge is the Strict-Transport-Security max-age in seconds; 0
	// disables HSTS.
	HSTSMaxAge            int
	HSTSIncludeSubDomains bool

	FrameOptions      string
	ReferrerPolicy    string
	PermissionsPolicy string

	// ExcludePaths are path prefixes that only get X-Content-Type-Options.
	ExcludePaths []string
}

// cspDirective is one Content-Security-Policy directive. An empty value
// renders the bare name.
type cspDirective struct {
	name, value string
}

// DefaultSecurityHeadersConfig returns the site policy: Google Analytics,
// embedded YouTube and Vimeo players, and media from the CMS. mediaOrigin is
// the CMS origin serving uploads and may be empty.
func DefaultSecurityHeadersConfig(isDev bool, mediaOrigin string) SecurityHeadersConfig {
	directives := []cspDirective{
		{"default-src", "'self'"},
		{"script-src", "'self' 'unsafe-inline' " + gaScriptOrigins},
		{"style-src", "'self' 'unsafe-inline'"},
		{"img-src", "'self' data: blob: https:"},
		{"font-src", "'self' data:"},
		{"media-src", strings.TrimSpace("'self' data: blob: https: " + mediaOrigin)},
		{"connect-src", "'self' " + gaConnectOrigins},
		{"frame-src", "'self' " + videoOrigins},
		{"object-src", "'none'"},
		{"base-uri", "'self'"},
		{"form-action", "'self'"},
		{"frame-ancestors", "'self'"},
	}
	if !isDev {
		directives = append(directives, cspDirective{name: "upgrade-insecure-requests"})
	}

	return SecurityHeadersConfig{
		IsDevelopment:         isDev,
		ContentSecurityPolicy: buildCSP(directives),
		HSTSMaxAge:            31536000, // 1 year
		HSTSIncludeSubDomains: !isDev,
		FrameOptions:          "SAMEORIGIN",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy: buildPermissionsPolicy(map[string]string{
			"accelerometer":   "()",
			"camera":          "()",
			"geolocation":     "()",
			"gyroscope":       "()",
			"microphone":      "()",
			"payment":         "()",
			"usb":             "()",
			"browsing-topics": "()",
			// Embedded players need fullscreen and autoplay.
			"fullscreen": "(self \"https://www.youtube-nocookie.com\" \"https://player.vimeo.com\")",
			"autoplay":   "(self \"https://www.youtube-nocookie.com\" \"https://player.vimeo.com\")",
		}),
		ExcludePaths: []string{"/api/"},
	}
}

func buildCSP(directives []cspDirective) string {
	parts := make([]string, 0, len(directives))
	for _, d := range directives {
		parts = append(parts, strings.TrimSpace(d.name+" "+d.value))
	}
	return strings.Join(parts, "; ")
}

// buildPermissionsPolicy renders policies sorted by feature name.
func buildPermissionsPolicy(policies map[string]string) string {
	parts := make([]string, 0, len(policies))
	for key, value := range policies {
		parts = append(parts, key+"="+value)
	}
	slices.Sort(parts)
	return strings.Join(parts, ", ")
}

func (cfg SecurityHeadersConfig) hsts() string {
	if cfg.IsDevelopment || cfg.HSTSMaxAge <= 0 {
		return ""
	}
	v := "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
	if cfg.HSTSIncludeSubDomains {
		v += "; includeSubDomains"
	}
	return v
}

// SecurityHeaders returns a middleware that adds security headers to
// responses. Excluded paths only get X-Content-Type-Options.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	documentHeaders := [][2]string{
		{"Content-Security-Policy", cfg.ContentSecurityPolicy},
		{"Strict-Transport-Security", cfg.hsts()},
		{"X-Frame-Options", cfg.FrameOptions},
		{"Referrer-Policy", cfg.ReferrerPolicy},
		{"Permissions-Policy", cfg.PermissionsPolicy},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")

			excluded := slices.ContainsFunc(cfg.ExcludePaths, func(p string) bool {
				return strings.HasPrefix(r.URL.Path, p)
			})
			if !excluded {
				for _, kv := range documentHeaders {
					if kv[1] != "" {
						h.Set(kv[0], kv[1])
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
