// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the UI string catalog and language negotiation for
// the site locales.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all translations for all supported languages.
type Catalog struct {
	mu           sync.RWMutex
	translations map[model.Locale]map[string]string // lang -> key -> translation
	logger       *slog.Logger
}

var (
	catalog   *Catalog
	supported = supportedTags()
	matcher   = language.NewMatcher(supported)
)

func supportedTags() []language.Tag {
	tags := make([]language.Tag, 0, len(model.Locales))
	for _, l := range model.Locales {
		tags = append(tags, language.MustParse(string(l)))
	}
	return tags
}

// Init loads the embedded catalogs for every site locale.
func Init(logger *slog.Logger) error {
	c := &Catalog{
		translations: make(map[model.Locale]map[string]string),
		logger:       logger,
	}

	for _, l := range model.Locales {
		if err := c.loadLanguage(l); err != nil {
			return fmt.Errorf("failed to load language %s: %w", l, err)
		}
	}
	catalog = c

	if logger != nil {
		logger.Info("i18n initialized", "languages", model.Locales)
	}

	return nil
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(lang model.Locale) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}

	if c.logger != nil {
		c.logger.Debug("loaded translations", "language", lang, "count", len(msgFile.Messages))
	}

	return nil
}

// T translates a message key to the specified language.
// Missing keys fall back to English, then to the key itself.
// Supports optional arguments for string formatting.
func T(lang model.Locale, key string, args ...any) string {
	if catalog == nil {
		return key
	}

	catalog.mu.RLock()
	translation, ok := catalog.translations[lang][key]
	if !ok && lang != model.DefaultLocale {
		translation, ok = catalog.translations[model.DefaultLocale][key]
		if ok && catalog.logger != nil {
			catalog.logger.Debug("missing translation, using default", "key", key, "lang", lang)
		}
	}
	catalog.mu.RUnlock()

	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// MatchLanguage finds the best matching site locale for an Accept-Language
// header or a single language code. Unmatched input yields the default locale.
func MatchLanguage(acceptLang string) model.Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return model.DefaultLocale
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(model.Locales) {
		return model.DefaultLocale
	}
	return model.Locales[idx]
}

// TranslationCount returns the number of translations loaded for a language.
func TranslationCount(lang model.Locale) int {
	if catalog == nil {
		return 0
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	return len(catalog.translations[lang])
}
