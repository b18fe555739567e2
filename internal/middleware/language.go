// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/fiftyfifty-toolkit/internal/i18n"
	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// LocaleCookieName is the cookie name for the locale preference.
const LocaleCookieName = "toolkit_locale"

// Locale creates middleware for routes mounted under /{lang}. A supported
// {lang} parameter is stored in the request context and remembered in the
// locale cookie. Any other value gets notFound.
func Locale(notFound http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale, ok := model.ParseLocale(strings.ToLower(chi.URLParam(r, "lang")))
			if !ok {
				notFound.ServeHTTP(w, r)
				return
			}

			if c, err := r.Cookie(LocaleCookieName); err != nil || c.Value != string(locale) {
				SetLocaleCookie(w, locale)
			}

			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
		})
	}
}

// NegotiateLocale picks the locale for requests without a locale prefix.
// Priority order:
// 1. Locale cookie
// 2. Accept-Language header
// 3. Default locale
func NegotiateLocale(r *http.Request) model.Locale {
	if c, err := r.Cookie(LocaleCookieName); err == nil {
		if l, ok := model.ParseLocale(strings.ToLower(c.Value)); ok {
			return l
		}
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return i18n.MatchLanguage(accept)
	}
	return model.DefaultLocale
}

// RedirectToLocale sends requests for the site root to the negotiated
// locale home page.
func RedirectToLocale(w http.ResponseWriter, r *http.Request) {
	target := "/" + string(NegotiateLocale(r))
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	w.Header().Add("Vary", "Accept-Language, Cookie")
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

// WithLocale returns a copy of ctx carrying locale.
func WithLocale(ctx context.Context, locale model.Locale) context.Context {
	return context.WithValue(ctx, ContextKeyLocale, locale)
}

// LocaleFromContext returns the locale stored by the Locale middleware.
func LocaleFromContext(ctx context.Context) (model.Locale, bool) {
	l, ok := ctx.Value(ContextKeyLocale).(model.Locale)
	return l, ok
}

// GetLocale retrieves the current locale from the request context.
// Requests outside the locale routes get the default locale.
func GetLocale(r *http.Request) model.Locale {
	if l, ok := LocaleFromContext(r.Context()); ok {
		return l
	}
	return model.DefaultLocale
}

// SetLocaleCookie sets the locale preference cookie.
func SetLocaleCookie(w http.ResponseWriter, locale model.Locale) {
	http.SetCookie(w, &http.Cookie{
		Name:     LocaleCookieName,
		Value:    string(locale),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
