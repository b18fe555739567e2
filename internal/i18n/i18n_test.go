// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

func TestInit(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, l := range model.Locales {
		if TranslationCount(l) == 0 {
			t.Errorf("Expected %s translations to be loaded", l)
		}
	}
}

func TestT(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		lang     model.Locale
		key      string
		args     []any
		expected string
	}{
		{"en", "nav.home", nil, "Home"},
		{"ar", "nav.home", nil, "الرئيسية"},
		{"en", "progress.percentComplete", []any{50}, "50% complete"},
		{"en", "phase.label", []any{2}, "Phase 2"},
		{"ar", "phase.label", []any{2}, "المرحلة 2"},
		// Fallback to English for unknown language
		{"de", "nav.resources", nil, "Resources"},
		// Return key if not found
		{"en", "nonexistent.key", nil, "nonexistent.key"},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang)+"_"+tt.key, func(t *testing.T) {
			result := T(tt.lang, tt.key, tt.args...)
			if result != tt.expected {
				t.Errorf("T(%q, %q, %v) = %q, want %q", tt.lang, tt.key, tt.args, result, tt.expected)
			}
		})
	}
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected model.Locale
	}{
		{"en", "en"},
		{"ar", "ar"},
		{"en-US", "en"},
		{"ar-SA", "ar"},
		{"ar-EG,ar;q=0.9,en;q=0.8", "ar"},
		{"de", "en"},      // Falls back to default
		{"", "en"},        // Falls back to default
		{"invalid", "en"}, // Falls back to default
		{"en-US, ar;q=0.9, de;q=0.8", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := MatchLanguage(tt.input)
			if result != tt.expected {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func readMessages(t *testing.T, lang model.Locale) MessageFile {
	t.Helper()
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		t.Fatalf("Failed to parse %s: %v", path, err)
	}
	return msgFile
}

func TestTranslationFilesNoDuplicates(t *testing.T) {
	for _, lang := range model.Locales {
		t.Run(string(lang), func(t *testing.T) {
			seen := make(map[string]int)
			var duplicates []string
			for i, msg := range readMessages(t, lang).Messages {
				if firstIdx, exists := seen[msg.ID]; exists {
					duplicates = append(duplicates, fmt.Sprintf("%q (entries %d and %d)", msg.ID, firstIdx+1, i+1))
				} else {
					seen[msg.ID] = i
				}
			}
			if len(duplicates) > 0 {
				t.Errorf("Found %d duplicate translation IDs in %s:\n  %v", len(duplicates), lang, duplicates)
			}
		})
	}
}

func TestTranslationFilesSameKeys(t *testing.T) {
	keys := make(map[model.Locale]map[string]bool)
	for _, lang := range model.Locales {
		keys[lang] = make(map[string]bool)
		for _, msg := range readMessages(t, lang).Messages {
			keys[lang][msg.ID] = true
		}
	}

	ref := model.DefaultLocale
	for _, lang := range model.Locales {
		if lang == ref {
			continue
		}
		for key := range keys[ref] {
			if !keys[lang][key] {
				t.Errorf("key %q in %s but missing in %s", key, ref, lang)
			}
		}
		for key := range keys[lang] {
			if !keys[ref][key] {
				t.Errorf("key %q in %s but missing in %s", key, lang, ref)
			}
		}
	}
}

func TestTranslationVerbsMatch(t *testing.T) {
	ar := make(map[string]string)
	for _, msg := range readMessages(t, model.LocaleArabic).Messages {
		ar[msg.ID] = msg.Translation
	}
	for _, msg := range readMessages(t, model.LocaleEnglish).Messages {
		if got, want := strings.Count(ar[msg.ID], "%"), strings.Count(msg.Translation, "%"); got != want {
			t.Errorf("%s: ar has %d format verbs, en has %d", msg.ID, got, want)
		}
	}
}
