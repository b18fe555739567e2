// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uikit provides reusable template helpers and view model types for
// the site templates.
package uikit

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// MonthsAr contains the Arabic month names used in the Levant and Gulf.
var MonthsAr = []string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// TemplateFuncs returns the locale-independent template helpers. Callers
// merge site functions on top.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"lower": strings.ToLower,
		"add": func(a, b int) int {
			return a + b
		},
		"formatDate": FormatDate,
		// dict builds the argument map for partials: dict "Key" value ...
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			dict := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				dict[key] = values[i+1]
			}
			return dict
		},
	}
}

// FormatDate formats t for locale: "2 مارس 2026" in Arabic, "Mar 2, 2026"
// otherwise. The zero time formats as "".
func FormatDate(t time.Time, locale model.Locale) string {
	if t.IsZero() {
		return ""
	}
	if locale == model.LocaleArabic {
		return fmt.Sprintf("%d %s %d", t.Day(), MonthsAr[t.Month()-1], t.Year())
	}
	return t.Format("Jan 2, 2006")
}
