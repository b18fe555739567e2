// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

func TestOfflinePhases(t *testing.T) {
	o := NewOffline("")
	ctx := context.Background()

	phases, err := o.Phases(ctx, Query{Locale: model.LocaleEnglish})
	require.NoError(t, err)
	require.Len(t, phases, 4)

	for i, p := range phases {
		assert.Equal(t, i+1, p.ID, "phase id")
		assert.Equal(t, i+1, p.Order, "phase order")
		assert.Equal(t, i+1, p.PhaseNumber, "phase number")
		assert.Equal(t, model.LocaleEnglish, p.Locale)
		assert.False(t, p.CreatedAt.IsZero())
	}

	// Modules are numbered across the whole tree.
	assert.Equal(t, 1, phases[0].Modules[0].ID)
	assert.Equal(t, 3, phases[1].Modules[0].ID)
	assert.Equal(t, "discover", phases[0].Modules[1].Phase.Slug)
	assert.Equal(t, "listening-sessions", phases[0].Modules[1].Resources[0].Module.Slug)
}

func TestOfflineLocaleFallback(t *testing.T) {
	o := NewOffline("")
	ctx := context.Background()

	ar, err := o.Phases(ctx, Query{Locale: model.LocaleArabic})
	require.NoError(t, err)
	assert.Equal(t, "الاستكشاف", ar[0].Title)
	assert.Equal(t, model.LocaleArabic, ar[0].Locale)

	other, err := o.Phases(ctx, Query{Locale: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "Discover", other[0].Title)
}

func TestOfflineFilters(t *testing.T) {
	o := NewOffline("")
	ctx := context.Background()

	phases, err := o.Phases(ctx, Query{Filters: Eq("slug", "strategic-planning")})
	require.NoError(t, err)
	require.Len(t, phases, 1)
	assert.Equal(t, "Strategic Planning", phases[0].Title)

	modules, err := o.Modules(ctx, Query{Filters: Eq("phase.slug", "team-leadership")})
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "building-your-team", modules[0].Slug)

	resources, err := o.Resources(ctx, Query{Filters: Eq("module.slug", "action-plans")})
	require.NoError(t, err)
	assert.Len(t, resources, 2)

	_, err = o.Phases(ctx, Query{Filters: Filters{"title": map[string]any{"$containsi": "plan"}}})
	assert.True(t, errors.Is(err, ErrUnsupportedFilter), "err = %v", err)
}

func TestOfflineByID(t *testing.T) {
	o := NewOffline("")
	ctx := context.Background()

	m, err := o.ModuleByID(ctx, 5, Query{})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "crafting-your-story", m.Slug)

	missing, err := o.PhaseByID(ctx, 99, Query{})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOfflineTestimonials(t *testing.T) {
	o := NewOffline("")

	en, err := o.Testimonials(context.Background(), Query{Locale: model.LocaleEnglish})
	require.NoError(t, err)
	require.Len(t, en, 3)
	assert.Equal(t, "Layla Hassan", en[0].Name)
	assert.Equal(t, "Omar Khalil", en[1].Name)
	assert.Equal(t, "The messaging module changed how we talk about our project.", en[1].Quote)
	assert.Equal(t, "Participant", en[2].Name)
}

func TestOfflineSettings(t *testing.T) {
	o := NewOffline("")
	s, err := o.Settings(context.Background(), Query{Locale: model.LocaleArabic})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "FiftyFifty ToolKit", s.SiteTitle)
	assert.Equal(t, "بناء مجتمعات مستدامة", s.Localized(model.LocaleArabic).HeroHeadline)
	assert.NoError(t, o.Health(context.Background()))
}

func TestOfflineOverrideDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "en"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en", "phases.json"),
		[]byte(`{"phases": [{"title": "Hello World", "order": 5, "modules": [{"title": "Ünïcode Module"}]}]}`), 0o644))

	o := NewOffline(dir)
	ctx := context.Background()

	phases, err := o.Phases(ctx, Query{Locale: model.LocaleEnglish})
	require.NoError(t, err)
	require.Len(t, phases, 1)
	assert.Equal(t, "hello-world", phases[0].Slug)
	assert.Equal(t, 5, phases[0].Order)
	assert.Equal(t, "unicode-module", phases[0].Modules[0].Slug)

	// Files missing from the override come from the embedded set.
	testimonials, err := o.Testimonials(ctx, Query{Locale: model.LocaleEnglish})
	require.NoError(t, err)
	assert.NotEmpty(t, testimonials)

	// Overrides are read on every call.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en", "phases.json"),
		[]byte(`{"phases": [{"title": "A"}, {"title": "B"}]}`), 0o644))
	phases, err = o.Phases(ctx, Query{Locale: model.LocaleEnglish})
	require.NoError(t, err)
	assert.Len(t, phases, 2)
}

func TestOfflineMalformedOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{not json`), 0o644))

	_, err := NewOffline(dir).Settings(context.Background(), Query{})
	assert.Error(t, err)
}
