// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/mileusna/useragent"
)

// Visitor describes the client of a request as parsed from its User-Agent.
type Visitor struct {
	Browser    string
	OS         string
	DeviceType string // mobile, tablet, bot, desktop
	Bot        bool
}

// ParseVisitor extracts browser, OS and device type from a user agent string.
// An empty user agent is treated as a bot.
func ParseVisitor(uaString string) Visitor {
	if uaString == "" {
		return Visitor{Browser: "Unknown", OS: "Unknown", DeviceType: "bot", Bot: true}
	}

	ua := useragent.Parse(uaString)

	v := Visitor{
		Browser: ua.Name,
		OS:      ua.OS,
		Bot:     ua.Bot,
	}

	// Handle empty/unknown values
	if v.Browser == "" {
		v.Browser = "Unknown"
	}
	if v.OS == "" {
		v.OS = "Unknown"
	}

	switch {
	case ua.Bot:
		v.DeviceType = "bot"
	case ua.Mobile:
		v.DeviceType = "mobile"
	case ua.Tablet:
		v.DeviceType = "tablet"
	default:
		v.DeviceType = "desktop"
	}

	return v
}

// VisitorInfo stores the parsed Visitor in the request context.
func VisitorInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := ParseVisitor(r.UserAgent())
		ctx := context.WithValue(r.Context(), ContextKeyVisitor, v)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetVisitor retrieves the Visitor from the request context, parsing the
// User-Agent when the middleware did not run.
func GetVisitor(r *http.Request) Visitor {
	if v, ok := r.Context().Value(ContextKeyVisitor).(Visitor); ok {
		return v
	}
	return ParseVisitor(r.UserAgent())
}
