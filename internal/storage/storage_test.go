// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestMemory(t *testing.T) {
	m := NewMemory()

	if _, ok := m.Get("k"); ok {
		t.Error("Get on empty store returned ok")
	}
	_ = m.Set("k", "v")
	if v, ok := m.Get("k"); !ok || v != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", v, ok)
	}
	if snap := m.Snapshot(); snap["k"] != "v" {
		t.Errorf("Snapshot = %v", snap)
	}
	_ = m.Remove("k")
	if _, ok := m.Get("k"); ok {
		t.Error("Get after Remove returned ok")
	}
}

func TestCookie_ReadsRequestCookies(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "fiftyfifty_progress", Value: url.QueryEscape("[1,2]")})
	w := httptest.NewRecorder()

	c := NewCookie(w, r, DefaultCookieOptions(false))
	v, ok := c.Get("fiftyfifty_progress")
	if !ok || v != "[1,2]" {
		t.Errorf("Get = (%q, %v), want ([1,2], true)", v, ok)
	}
}

func TestCookie_SetWritesHeaderAndIsVisible(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	c := NewCookie(w, r, DefaultCookieOptions(true))

	if err := c.Set("cookie-consent", "accepted"); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	if v, ok := c.Get("cookie-consent"); !ok || v != "accepted" {
		t.Errorf("Get after Set = (%q, %v)", v, ok)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != "cookie-consent" || ck.Value != "accepted" {
		t.Errorf("cookie = %s=%s", ck.Name, ck.Value)
	}
	if !ck.Secure || !ck.HttpOnly || ck.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie flags = secure:%v httponly:%v samesite:%v", ck.Secure, ck.HttpOnly, ck.SameSite)
	}
	if ck.MaxAge != 365*24*60*60 {
		t.Errorf("MaxAge = %d, want one year", ck.MaxAge)
	}
}

func TestCookie_RemoveHidesRequestValue(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "k", Value: "v"})
	w := httptest.NewRecorder()
	c := NewCookie(w, r, DefaultCookieOptions(false))

	_ = c.Remove("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Get after Remove returned ok")
	}
	if h := w.Header().Get("Set-Cookie"); !strings.Contains(h, "Max-Age=0") {
		t.Errorf("Set-Cookie = %q, want expiring cookie", h)
	}
}

func TestCookie_BadEscapeIsAbsent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "k", Value: "%zz"})
	c := NewCookie(httptest.NewRecorder(), r, DefaultCookieOptions(false))

	if _, ok := c.Get("k"); ok {
		t.Error("undecodable cookie should read as absent")
	}
}

func TestCookie_TooLarge(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	c := NewCookie(httptest.NewRecorder(), r, DefaultCookieOptions(false))

	if err := c.Set("k", strings.Repeat("x", maxCookieValue+1)); err == nil {
		t.Error("expected error for oversized value")
	}
}
