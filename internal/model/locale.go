// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content types served by the site.
package model

// Text directions
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// Locale identifies one of the site languages.
type Locale string

// Supported locales.
const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"

	DefaultLocale = LocaleEnglish
)

// Locales lists the supported locales in switcher order.
var Locales = []Locale{LocaleEnglish, LocaleArabic}

var localeNames = map[Locale]string{
	LocaleEnglish: "English",
	LocaleArabic:  "العربية",
}

// ParseLocale returns the locale for code and whether it is supported.
func ParseLocale(code string) (Locale, bool) {
	l := Locale(code)
	_, ok := localeNames[l]
	return l, ok
}

// IsSupported reports whether l is one of the site locales.
func (l Locale) IsSupported() bool {
	_, ok := localeNames[l]
	return ok
}

// Name returns the native display name of the locale.
func (l Locale) Name() string {
	return localeNames[l]
}

// Direction returns "rtl" for Arabic and "ltr" otherwise.
func (l Locale) Direction() string {
	if l == LocaleArabic {
		return DirectionRTL
	}
	return DirectionLTR
}

// IsRTL returns true if the locale is written right-to-left.
func (l Locale) IsRTL() bool {
	return l.Direction() == DirectionRTL
}

// Opposite returns the other site locale, used by the language toggle.
func (l Locale) Opposite() Locale {
	if l == LocaleArabic {
		return LocaleEnglish
	}
	return LocaleArabic
}

func (l Locale) String() string {
	return string(l)
}
