// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestParseLocale(t *testing.T) {
	tests := []struct {
		code   string
		want   Locale
		wantOK bool
	}{
		{"en", LocaleEnglish, true},
		{"ar", LocaleArabic, true},
		{"fr", Locale("fr"), false},
		{"", Locale(""), false},
	}
	for _, tt := range tests {
		got, ok := ParseLocale(tt.code)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLocale(%q) = (%q, %v), want (%q, %v)", tt.code, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLocale_DirectionAndOpposite(t *testing.T) {
	if LocaleArabic.Direction() != DirectionRTL || !LocaleArabic.IsRTL() {
		t.Error("Arabic should be RTL")
	}
	if LocaleEnglish.Direction() != DirectionLTR || LocaleEnglish.IsRTL() {
		t.Error("English should be LTR")
	}
	if LocaleEnglish.Opposite() != LocaleArabic || LocaleArabic.Opposite() != LocaleEnglish {
		t.Error("Opposite() should toggle between en and ar")
	}
	if LocaleArabic.Name() != "العربية" {
		t.Errorf("Name() = %q", LocaleArabic.Name())
	}
}

func TestParseFileType(t *testing.T) {
	tests := map[string]FileType{
		"PDF":   FileTypePDF,
		"pdf":   FileTypePDF,
		"Excel": FileTypeExcel,
		"word":  FileTypeWord,
		"Other": FileTypeOther,
		"zip":   FileTypeOther,
		"":      FileTypeOther,
	}
	for in, want := range tests {
		if got := ParseFileType(in); got != want {
			t.Errorf("ParseFileType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSettings_Localized(t *testing.T) {
	s := Settings{
		SiteTitle:       "FiftyFifty ToolKit",
		SiteTitleAr:     "مجموعة أدوات",
		HeroHeadline:    "Build your campaign",
		HeroDescription: "Six phases",
		FooterText:      "Footer",
	}

	en := s.Localized(LocaleEnglish)
	if en.SiteTitle != "FiftyFifty ToolKit" {
		t.Errorf("en SiteTitle = %q", en.SiteTitle)
	}

	ar := s.Localized(LocaleArabic)
	if ar.SiteTitle != "مجموعة أدوات" {
		t.Errorf("ar SiteTitle = %q", ar.SiteTitle)
	}
	if ar.HeroHeadline != "Build your campaign" {
		t.Errorf("ar HeroHeadline = %q, want English fallback", ar.HeroHeadline)
	}
}

func TestPhase_ModuleBySlug(t *testing.T) {
	p := Phase{Modules: []Module{{ID: 1, Slug: "a"}, {ID: 2, Slug: "b"}}}
	if m := p.ModuleBySlug("b"); m == nil || m.ID != 2 {
		t.Errorf("ModuleBySlug(b) = %v", m)
	}
	if m := p.ModuleBySlug("zzz"); m != nil {
		t.Errorf("ModuleBySlug(zzz) = %v, want nil", m)
	}
	if n := CountModules([]Phase{p, {Modules: []Module{{}}}}); n != 3 {
		t.Errorf("CountModules = %d, want 3", n)
	}
}

func TestModule_SubtitleURL(t *testing.T) {
	m := Module{SubtitleURLEn: "en.vtt"}
	if got := m.SubtitleURL(LocaleArabic); got != "en.vtt" {
		t.Errorf("SubtitleURL(ar) = %q, want English fallback", got)
	}
	m.SubtitleURLAr = "ar.vtt"
	if got := m.SubtitleURL(LocaleArabic); got != "ar.vtt" {
		t.Errorf("SubtitleURL(ar) = %q", got)
	}
}
