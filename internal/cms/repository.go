// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"strings"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/cache"
	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// Cache tags, one per content type. Revalidation invalidates by tag.
const (
	TagPhases       = "phases"
	TagModules      = "modules"
	TagResources    = "resources"
	TagTestimonials = "testimonials"
	TagSettings     = "settings"
)

// Tags lists every cache tag.
var Tags = []string{TagPhases, TagModules, TagResources, TagTestimonials, TagSettings}

const keyPrefix = "cms:"

// DefaultCacheTTL is used when Options.CacheTTL is zero.
const DefaultCacheTTL = time.Hour

var (
	defaultSort          = []string{"order:asc"}
	phasesPopulate       = []string{"modules", "modules.resources", "modules.resources.file"}
	modulesPopulate      = []string{"phase", "resources"}
	resourcesPopulate    = []string{"module", "file"}
	testimonialsPopulate = []string{"photo"}
)

// Options configures a Repository.
type Options struct {
	Source   Source
	Cache    cache.Cache // nil disables caching
	CacheTTL time.Duration
	Offline  bool
	BaseURL  string
	Token    string
}

// Repository is the content accessor used by the site. It applies default
// queries, caches responses per tag and resolves media URLs.
type Repository struct {
	source  Source
	cache   cache.Cache
	ttl     time.Duration
	offline bool
	baseURL string
	token   string
}

// NewRepository creates a content accessor.
func NewRepository(opts Options) *Repository {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	return &Repository{
		source:  opts.Source,
		cache:   opts.Cache,
		ttl:     opts.CacheTTL,
		offline: opts.Offline,
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		token:   opts.Token,
	}
}

// cached runs load through the typed cache under cms:<tag>:<name>?<query>.
func cached[T any](ctx context.Context, r *Repository, tag, name string, q Query, load func(context.Context) (T, error)) (T, error) {
	if r.cache == nil {
		return load(ctx)
	}
	key := keyPrefix + tag + ":" + name + "?" + q.Encode()
	return cache.NewTyped[T](r.cache, r.ttl).GetOrLoad(ctx, key, load)
}

// Phases returns phases sorted by order with modules and resources populated.
func (r *Repository) Phases(ctx context.Context, q Query) ([]model.Phase, error) {
	q = q.withDefaults(defaultSort, phasesPopulate)
	return cached(ctx, r, TagPhases, "list", q, func(ctx context.Context) ([]model.Phase, error) {
		return r.source.Phases(ctx, q)
	})
}

// PhaseByID returns the phase or nil when it does not exist.
func (r *Repository) PhaseByID(ctx context.Context, id int, q Query) (*model.Phase, error) {
	q = q.withDefaults(nil, phasesPopulate)
	return cached(ctx, r, TagPhases, "id", q.WithFilters(Eq("id", id)), func(ctx context.Context) (*model.Phase, error) {
		return r.source.PhaseByID(ctx, id, q)
	})
}

// PhaseBySlug returns the phase with slug in locale, or nil.
func (r *Repository) PhaseBySlug(ctx context.Context, locale model.Locale, slug string) (*model.Phase, error) {
	phases, err := r.Phases(ctx, Query{Locale: locale, Filters: Eq("slug", slug)})
	if err != nil || len(phases) == 0 {
		return nil, err
	}
	return &phases[0], nil
}

// Modules returns modules sorted by order with phase and resources populated.
func (r *Repository) Modules(ctx context.Context, q Query) ([]model.Module, error) {
	q = q.withDefaults(defaultSort, modulesPopulate)
	return cached(ctx, r, TagModules, "list", q, func(ctx context.Context) ([]model.Module, error) {
		return r.source.Modules(ctx, q)
	})
}

// ModuleByID returns the module or nil when it does not exist.
func (r *Repository) ModuleByID(ctx context.Context, id int, q Query) (*model.Module, error) {
	q = q.withDefaults(nil, modulesPopulate)
	return cached(ctx, r, TagModules, "id", q.WithFilters(Eq("id", id)), func(ctx context.Context) (*model.Module, error) {
		return r.source.ModuleByID(ctx, id, q)
	})
}

// ModuleBySlug returns the module with slug, or nil. A non-empty phaseSlug
// restricts the lookup to that phase.
func (r *Repository) ModuleBySlug(ctx context.Context, locale model.Locale, phaseSlug, slug string) (*model.Module, error) {
	q := Query{Locale: locale, Filters: Eq("slug", slug)}
	if phaseSlug != "" {
		q = q.WithFilters(Eq("phase.slug", phaseSlug))
	}
	modules, err := r.Modules(ctx, q)
	if err != nil || len(modules) == 0 {
		return nil, err
	}
	return &modules[0], nil
}

// ModulesByPhase returns the modules of the phase with phaseSlug.
func (r *Repository) ModulesByPhase(ctx context.Context, locale model.Locale, phaseSlug string) ([]model.Module, error) {
	return r.Modules(ctx, Query{Locale: locale, Filters: Eq("phase.slug", phaseSlug)})
}

// Resources returns resources sorted by order with module and file populated.
func (r *Repository) Resources(ctx context.Context, q Query) ([]model.Resource, error) {
	q = q.withDefaults(defaultSort, resourcesPopulate)
	return cached(ctx, r, TagResources, "list", q, func(ctx context.Context) ([]model.Resource, error) {
		return r.source.Resources(ctx, q)
	})
}

// ResourcesByModule returns the resources of the module with moduleSlug.
func (r *Repository) ResourcesByModule(ctx context.Context, locale model.Locale, moduleSlug string) ([]model.Resource, error) {
	return r.Resources(ctx, Query{Locale: locale, Filters: Eq("module.slug", moduleSlug)})
}

// Testimonials returns testimonials sorted by order.
func (r *Repository) Testimonials(ctx context.Context, q Query) ([]model.Testimonial, error) {
	q = q.withDefaults(defaultSort, testimonialsPopulate)
	return cached(ctx, r, TagTestimonials, "list", q, func(ctx context.Context) ([]model.Testimonial, error) {
		return r.source.Testimonials(ctx, q)
	})
}

// Settings returns the site settings, or nil when none are authored.
func (r *Repository) Settings(ctx context.Context, locale model.Locale) (*model.Settings, error) {
	q := Query{Locale: locale}
	return cached(ctx, r, TagSettings, "single", q, func(ctx context.Context) (*model.Settings, error) {
		return r.source.Settings(ctx, q)
	})
}

// InvalidateTag drops every cached response for tag.
func (r *Repository) InvalidateTag(ctx context.Context, tag string) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.DeleteByPrefix(ctx, keyPrefix+tag+":")
}

// InvalidateAll drops every cached CMS response.
func (r *Repository) InvalidateAll(ctx context.Context) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.DeleteByPrefix(ctx, keyPrefix)
}

// MediaURL resolves a media URL. Absolute URLs pass through, relative ones
// are prefixed with the CMS base URL.
func (r *Repository) MediaURL(u string) string {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "//") {
		return u
	}
	if r.baseURL == "" {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return r.baseURL + u
}

// Configured reports whether content can be served: offline mode, or a CMS
// base URL and token.
func (r *Repository) Configured() bool {
	return r.offline || (r.baseURL != "" && r.token != "")
}

// Offline reports whether content comes from bundled sample data.
func (r *Repository) Offline() bool {
	return r.offline
}

// Health checks the content source.
func (r *Repository) Health(ctx context.Context) error {
	return r.source.Health(ctx)
}
