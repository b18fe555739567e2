// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package richtext

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		contains []string
		excludes []string
	}{
		{
			name:     "html is sanitized",
			in:       `<p>Hello <strong>world</strong></p><script>alert(1)</script>`,
			contains: []string{"<p>Hello <strong>world</strong></p>"},
			excludes: []string{"<script>", "alert(1)"},
		},
		{
			name:     "event handlers removed",
			in:       `<p onclick="steal()">Click</p>`,
			contains: []string{"<p>Click</p>"},
			excludes: []string{"onclick"},
		},
		{
			name:     "markdown list",
			in:       "- Map who is affected\n- List existing assets",
			contains: []string{"<ul>", "<li>Map who is affected</li>"},
		},
		{
			name: "empty",
			in:   "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Render(tt.in))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Render(%q) = %q, want it to contain %q", tt.in, got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Render(%q) = %q, must not contain %q", tt.in, got, bad)
				}
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<p>Plan &amp; act</p>", "Plan & act"},
		{"<p>One</p>\n\n<p>Two</p>", "One Two"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10, "..."); got != "short" {
		t.Errorf("Truncate short = %q, want %q", got, "short")
	}
	if got := Truncate("abcdef", 3, "..."); got != "abc..." {
		t.Errorf("Truncate = %q, want %q", got, "abc...")
	}
	// Multi-byte text is cut on rune boundaries.
	got := Truncate("مرحلة الاستكشاف", 5, "")
	if !utf8.ValidString(got) || utf8.RuneCountInString(got) != 5 {
		t.Errorf("Truncate Arabic = %q, want 5 valid runes", got)
	}
}

func TestMetaDescription(t *testing.T) {
	long := "<p>" + strings.Repeat("word ", 60) + "</p>"
	got := MetaDescription(long)
	if n := utf8.RuneCountInString(got); n > MetaDescriptionLength {
		t.Errorf("MetaDescription length = %d, want <= %d", n, MetaDescriptionLength)
	}
	if strings.Contains(got, "<") {
		t.Errorf("MetaDescription = %q, want no markup", got)
	}
}
