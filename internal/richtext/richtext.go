// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package richtext turns CMS rich text into safe HTML and plain text.
package richtext

import (
	"bytes"
	"html"
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MetaDescriptionLength is the length of generated meta descriptions.
const MetaDescriptionLength = 160

var (
	ugcPolicy   = bluemonday.UGCPolicy()
	stripPolicy = bluemonday.StrictPolicy()
	markdown    = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))

	htmlTag    = regexp.MustCompile(`<[a-zA-Z][^>]*>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// IsHTML reports whether s already contains HTML markup.
func IsHTML(s string) bool {
	return htmlTag.MatchString(s)
}

// Render returns sanitized HTML for s. HTML input is sanitized as-is;
// anything else is treated as Markdown.
func Render(s string) template.HTML {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	if IsHTML(s) {
		return template.HTML(ugcPolicy.Sanitize(s)) //nolint:gosec // sanitized above
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s)) //nolint:gosec // escaped
	}
	return template.HTML(ugcPolicy.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized above
}

// StripHTML removes all markup and collapses whitespace.
func StripHTML(s string) string {
	text := stripPolicy.Sanitize(s)
	text = html.UnescapeString(text)
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// Truncate shortens s to at most n runes. The suffix is appended only when
// text was cut.
func Truncate(s string, n int, suffix string) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:n]), " ") + suffix
}

// Excerpt returns plain text of s cut to n runes with an ellipsis.
func Excerpt(s string, n int) string {
	return Truncate(StripHTML(s), n, "...")
}

// MetaDescription returns the plain-text meta description for rich text.
func MetaDescription(s string) string {
	return Truncate(StripHTML(s), MetaDescriptionLength, "")
}
