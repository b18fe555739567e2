// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// StaticCache adds Cache-Control headers for static files.
func StaticCache(maxAge int) func(http.Handler) http.Handler {
	return CacheControl("public, max-age=" + strconv.Itoa(maxAge))
}

// NoStore marks responses as uncacheable. Used on API and form endpoints.
func NoStore(next http.Handler) http.Handler {
	return CacheControl("no-store")(next)
}

// CacheControl sets the Cache-Control header to value unless the handler
// overrides it.
func CacheControl(value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
