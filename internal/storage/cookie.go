// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// maxCookieValue keeps a single cookie under the common 4096 byte limit.
const maxCookieValue = 3800

// CookieOptions configures cookies written by a Cookie store.
type CookieOptions struct {
	Path   string
	MaxAge time.Duration
	Secure bool
}

// DefaultCookieOptions returns one-year, site-wide cookies.
func DefaultCookieOptions(secure bool) CookieOptions {
	return CookieOptions{Path: "/", MaxAge: 365 * 24 * time.Hour, Secure: secure}
}

// Cookie is a Store backed by the cookies of one request/response pair.
// Reads see writes made earlier in the same request.
type Cookie struct {
	r       *http.Request
	w       http.ResponseWriter
	opts    CookieOptions
	pending map[string]*string // nil value = removed
}

// NewCookie returns a Store over the request's cookies that writes
// Set-Cookie headers to w.
func NewCookie(w http.ResponseWriter, r *http.Request, opts CookieOptions) *Cookie {
	if opts.Path == "" {
		opts.Path = "/"
	}
	return &Cookie{r: r, w: w, opts: opts, pending: make(map[string]*string)}
}

// Get implements Store. Values that fail to unescape are reported as absent.
func (c *Cookie) Get(key string) (string, bool) {
	if v, ok := c.pending[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}

	ck, err := c.r.Cookie(key)
	if err != nil {
		return "", false
	}
	v, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return "", false
	}
	return v, true
}

// Set implements Store.
func (c *Cookie) Set(key, value string) error {
	escaped := url.QueryEscape(value)
	if len(escaped) > maxCookieValue {
		return fmt.Errorf("cookie %q: value too large (%d bytes)", key, len(escaped))
	}

	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    escaped,
		Path:     c.opts.Path,
		MaxAge:   int(c.opts.MaxAge.Seconds()),
		Expires:  time.Now().Add(c.opts.MaxAge),
		HttpOnly: true,
		Secure:   c.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.pending[key] = &value
	return nil
}

// Remove implements Store.
func (c *Cookie) Remove(key string) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     c.opts.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.pending[key] = nil
	return nil
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Cookie)(nil)
)
