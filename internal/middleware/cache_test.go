// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCacheHeaders(t *testing.T) {
	tests := []struct {
		name string
		mw   func(http.Handler) http.Handler
		want string
	}{
		{"static", StaticCache(86400), "public, max-age=86400"},
		{"no-store", NoStore, "no-store"},
		{"custom", CacheControl("private, max-age=60"), "private, max-age=60"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.mw(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
			if got := rec.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}
