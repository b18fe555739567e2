// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

func TestTemplateFuncs_Add(t *testing.T) {
	add := TemplateFuncs()["add"].(func(int, int) int)
	if got := add(5, 3); got != 8 {
		t.Errorf("add(5, 3) = %d, want 8", got)
	}
}

func TestTemplateFuncs_Dict(t *testing.T) {
	dict := TemplateFuncs()["dict"].(func(...any) map[string]any)

	d := dict("Locale", "ar", "Count", 3, 7, "skipped")
	if d["Locale"] != "ar" || d["Count"] != 3 {
		t.Errorf("dict() = %v", d)
	}
	if len(d) != 2 {
		t.Errorf("len(dict()) = %d, want 2 (non-string keys dropped)", len(d))
	}
	if dict("odd") != nil {
		t.Error("dict with odd arguments should return nil")
	}
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		t      time.Time
		locale model.Locale
		want   string
	}{
		{"english", date, model.LocaleEnglish, "Mar 2, 2026"},
		{"arabic", date, model.LocaleArabic, "2 مارس 2026"},
		{"zero", time.Time{}, model.LocaleEnglish, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.t, tt.locale); got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplateFuncs_InTemplate(t *testing.T) {
	tmpl := template.Must(template.New("t").Funcs(TemplateFuncs()).Parse(
		`{{lower .Type}} {{add .Index 1}} {{formatDate .When .Locale}}{{with dict "N" 4}} {{.N}}{{end}}`))

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, map[string]any{
		"Type":   "PDF",
		"Index":  1,
		"When":   time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		"Locale": model.LocaleArabic,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got, want := buf.String(), "pdf 2 15 يناير 2026 4"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestTrail(t *testing.T) {
	crumbs := Trail("Home", "/en", "Phases", "/en/phases", "dangling")
	if len(crumbs) != 2 {
		t.Fatalf("len(Trail()) = %d, want 2", len(crumbs))
	}
	if crumbs[0].Active || !crumbs[1].Active {
		t.Errorf("only the last crumb should be active: %+v", crumbs)
	}
	if crumbs[1].URL != "/en/phases" {
		t.Errorf("crumbs[1].URL = %q, want /en/phases", crumbs[1].URL)
	}
	if len(Trail()) != 0 {
		t.Error("Trail() with no pairs should be empty")
	}
}
