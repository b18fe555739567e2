// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/fiftyfifty-toolkit/internal/cache"
	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// countingSource counts list calls on top of the offline source.
type countingSource struct {
	*Offline
	phases    atomic.Int32
	settings  atomic.Int32
	lastQuery Query
}

func (s *countingSource) Phases(ctx context.Context, q Query) ([]model.Phase, error) {
	s.phases.Add(1)
	s.lastQuery = q
	return s.Offline.Phases(ctx, q)
}

func (s *countingSource) Settings(ctx context.Context, q Query) (*model.Settings, error) {
	s.settings.Add(1)
	return s.Offline.Settings(ctx, q)
}

func newTestRepository(t *testing.T) (*Repository, *countingSource) {
	t.Helper()
	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mc.Close() })

	src := &countingSource{Offline: NewOffline("")}
	return NewRepository(Options{Source: src, Cache: mc, Offline: true}), src
}

func TestRepositoryDefaults(t *testing.T) {
	repo, src := newTestRepository(t)

	_, err := repo.Phases(context.Background(), Query{Locale: model.LocaleEnglish})
	require.NoError(t, err)
	assert.Equal(t, []string{"order:asc"}, src.lastQuery.Sort)
	assert.Equal(t, []string{"modules", "modules.resources", "modules.resources.file"}, src.lastQuery.Populate)
}

func TestRepositoryCaching(t *testing.T) {
	repo, src := newTestRepository(t)
	ctx := context.Background()

	for range 3 {
		phases, err := repo.Phases(ctx, Query{Locale: model.LocaleEnglish})
		require.NoError(t, err)
		require.Len(t, phases, 4)
	}
	assert.Equal(t, int32(1), src.phases.Load())

	// A different locale is a different key.
	_, err := repo.Phases(ctx, Query{Locale: model.LocaleArabic})
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.phases.Load())

	// Invalidating another tag keeps phases cached.
	require.NoError(t, repo.InvalidateTag(ctx, TagSettings))
	_, _ = repo.Phases(ctx, Query{Locale: model.LocaleEnglish})
	assert.Equal(t, int32(2), src.phases.Load())

	require.NoError(t, repo.InvalidateTag(ctx, TagPhases))
	_, _ = repo.Phases(ctx, Query{Locale: model.LocaleEnglish})
	assert.Equal(t, int32(3), src.phases.Load())

	_, _ = repo.Settings(ctx, model.LocaleEnglish)
	require.NoError(t, repo.InvalidateAll(ctx))
	_, _ = repo.Settings(ctx, model.LocaleEnglish)
	assert.Equal(t, int32(2), src.settings.Load())
}

func TestRepositoryLookups(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	p, err := repo.PhaseBySlug(ctx, model.LocaleEnglish, "discover")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Discover", p.Title)

	missing, err := repo.PhaseBySlug(ctx, model.LocaleEnglish, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	m, err := repo.ModuleBySlug(ctx, model.LocaleEnglish, "discover", "community-mapping")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.ID)

	wrongPhase, err := repo.ModuleBySlug(ctx, model.LocaleEnglish, "strategic-planning", "community-mapping")
	require.NoError(t, err)
	assert.Nil(t, wrongPhase)

	modules, err := repo.ModulesByPhase(ctx, model.LocaleEnglish, "strategic-planning")
	require.NoError(t, err)
	assert.Len(t, modules, 2)

	resources, err := repo.ResourcesByModule(ctx, model.LocaleEnglish, "community-mapping")
	require.NoError(t, err)
	assert.Len(t, resources, 2)
}

func TestRepositoryWithoutCache(t *testing.T) {
	src := &countingSource{Offline: NewOffline("")}
	repo := NewRepository(Options{Source: src, Offline: true})

	_, _ = repo.Phases(context.Background(), Query{})
	_, _ = repo.Phases(context.Background(), Query{})
	assert.Equal(t, int32(2), src.phases.Load())
	assert.NoError(t, repo.InvalidateAll(context.Background()))
}

func TestRepositoryMediaURL(t *testing.T) {
	repo := NewRepository(Options{BaseURL: "https://cms.example.org/"})
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"https://cdn.example.org/a.pdf", "https://cdn.example.org/a.pdf"},
		{"//cdn.example.org/a.pdf", "//cdn.example.org/a.pdf"},
		{"/uploads/a.pdf", "https://cms.example.org/uploads/a.pdf"},
		{"uploads/a.pdf", "https://cms.example.org/uploads/a.pdf"},
	}
	for _, tt := range tests {
		if got := repo.MediaURL(tt.in); got != tt.want {
			t.Errorf("MediaURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRepositoryConfigured(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want bool
	}{
		{"offline", Options{Offline: true}, true},
		{"url and token", Options{BaseURL: "http://cms", Token: "t"}, true},
		{"url only", Options{BaseURL: "http://cms"}, false},
		{"nothing", Options{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewRepository(tt.opts).Configured(); got != tt.want {
				t.Errorf("Configured() = %v, want %v", got, tt.want)
			}
		})
	}
}
