// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service assembles CMS content into the views served by the site
// and handles revalidation.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/cache"
	"github.com/olegiv/fiftyfifty-toolkit/internal/cms"
	"github.com/olegiv/fiftyfifty-toolkit/internal/library"
	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
	"github.com/olegiv/fiftyfifty-toolkit/internal/search"
)

// ErrNotFound is returned when a phase or module does not exist.
var ErrNotFound = errors.New("content not found")

const pageKeyPrefix = "page:"

// ContentService serves content snapshots per locale. Derived views (the
// search index and resource library) are memoized per locale and stamped
// with a fingerprint of the phase list they were built from, so a refetched
// phase list rebuilds them.
type ContentService struct {
	repo    *cms.Repository
	pages   cache.Cache // nil disables page caching
	pageTTL time.Duration
	logger  *slog.Logger

	version atomic.Uint64
	search  *search.Memo

	libMu     sync.Mutex
	libraries map[model.Locale]libraryEntry
}

type libraryEntry struct {
	stamp   string
	entries []library.Entry
}

// NewContentService creates a content service. pages may be nil.
func NewContentService(repo *cms.Repository, pages cache.Cache, pageTTL time.Duration, logger *slog.Logger) *ContentService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ContentService{
		repo:      repo,
		pages:     pages,
		pageTTL:   pageTTL,
		logger:    logger,
		search:    search.NewMemo(),
		libraries: make(map[model.Locale]libraryEntry),
	}
	s.version.Store(1)
	return s
}

// Repository returns the underlying content accessor.
func (s *ContentService) Repository() *cms.Repository {
	return s.repo
}

// Version returns the current content version.
func (s *ContentService) Version() uint64 {
	return s.version.Load()
}

// BumpVersion advances the content version and drops memoized views.
func (s *ContentService) BumpVersion() uint64 {
	v := s.version.Add(1)
	s.search.Reset()
	s.libMu.Lock()
	clear(s.libraries)
	s.libMu.Unlock()
	return v
}

// Phases returns all phases for locale with modules and resources.
func (s *ContentService) Phases(ctx context.Context, locale model.Locale) ([]model.Phase, error) {
	phases, err := s.repo.Phases(ctx, cms.Query{Locale: locale})
	if err != nil {
		return nil, fmt.Errorf("loading phases: %w", err)
	}
	return phases, nil
}

// phaseSnapshot loads the locale's phases with the stamp identifying them.
func (s *ContentService) phaseSnapshot(ctx context.Context, locale model.Locale) ([]model.Phase, string, error) {
	phases, err := s.Phases(ctx, locale)
	if err != nil {
		return nil, "", err
	}
	stamp, err := fingerprint(phases)
	if err != nil {
		return nil, "", err
	}
	return phases, stamp, nil
}

// fingerprint hashes the JSON form of v.
func fingerprint(v any) (string, error) {
	h := fnv.New64a()
	if err := json.NewEncoder(h).Encode(v); err != nil {
		return "", fmt.Errorf("fingerprinting content: %w", err)
	}
	return strconv.FormatUint(h.Sum64(), 16), nil
}

// Search runs query against the locale's memoized index.
func (s *ContentService) Search(ctx context.Context, locale model.Locale, query string) ([]search.Result, error) {
	phases, stamp, err := s.phaseSnapshot(ctx, locale)
	if err != nil {
		return nil, err
	}
	idx := s.search.Get(string(locale), stamp, func() *search.Index {
		s.logger.Debug("building search index", "locale", locale, "stamp", stamp)
		return search.NewIndex(search.Flatten(phases), search.DefaultOptions())
	})
	return idx.Search(query), nil
}

// Library returns the resource library view for locale.
func (s *ContentService) Library(ctx context.Context, locale model.Locale, p library.Params) (*library.View, error) {
	phases, stamp, err := s.phaseSnapshot(ctx, locale)
	if err != nil {
		return nil, err
	}

	s.libMu.Lock()
	e, ok := s.libraries[locale]
	if !ok || e.stamp != stamp {
		e = libraryEntry{stamp: stamp, entries: library.Flatten(phases)}
		s.libraries[locale] = e
	}
	s.libMu.Unlock()

	return library.Build(e.entries, p), nil
}

// cachedPage loads a page view through the page cache under page:<path>.
func cachedPage[T any](ctx context.Context, s *ContentService, path string, load func(context.Context) (T, error)) (T, error) {
	if s.pages == nil {
		return load(ctx)
	}
	return cache.NewTyped[T](s.pages, s.pageTTL).GetOrLoad(ctx, pageKeyPrefix+path, load)
}

// InvalidatePath drops cached page views for path and everything below it.
func (s *ContentService) InvalidatePath(ctx context.Context, path string) error {
	if s.pages == nil {
		return nil
	}
	return s.pages.DeleteByPrefix(ctx, pageKeyPrefix+path)
}

// Reload drops all cached CMS responses and page views and bumps the
// content version.
func (s *ContentService) Reload(ctx context.Context) error {
	if err := s.repo.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("invalidating cms cache: %w", err)
	}
	if err := s.InvalidatePath(ctx, ""); err != nil {
		return fmt.Errorf("invalidating pages: %w", err)
	}
	s.BumpVersion()
	return nil
}

// Warm loads the content used by every page for each locale, filling the
// CMS cache. It returns the first error but keeps going.
func (s *ContentService) Warm(ctx context.Context) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, locale := range model.Locales {
		_, err := s.Phases(ctx, locale)
		keep(err)
		_, err = s.repo.Testimonials(ctx, cms.Query{Locale: locale})
		keep(err)
		_, err = s.repo.Settings(ctx, locale)
		keep(err)
	}
	return firstErr
}
