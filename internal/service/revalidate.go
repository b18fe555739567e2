// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/olegiv/fiftyfifty-toolkit/internal/cms"
	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// Revalidation errors.
var (
	ErrRevalidationNotConfigured = errors.New("revalidation not configured")
	ErrInvalidSecret             = errors.New("invalid secret token")
	ErrNoRevalidationTarget      = errors.New("no revalidation target specified")
)

// Content models accepted by the webhook.
const (
	ModelPhase       = "phase"
	ModelModule      = "module"
	ModelResource    = "resource"
	ModelTestimonial = "testimonial"
	ModelSetting     = "setting"
)

// LocaleAll revalidates every site locale.
const LocaleAll = "all"

// modelTags maps a content model to the cache tags that embed it.
var modelTags = map[string][]string{
	ModelPhase:       {cms.TagPhases},
	ModelModule:      {cms.TagModules, cms.TagPhases},
	ModelResource:    {cms.TagResources, cms.TagModules, cms.TagPhases},
	ModelTestimonial: {cms.TagTestimonials},
	ModelSetting:     {cms.TagSettings},
}

// RevalidateRequest holds the webhook query parameters.
type RevalidateRequest struct {
	Secret string `validate:"-"`
	Path   string `validate:"omitempty,startswith=/,max=512"`
	Tag    string `validate:"omitempty,oneof=phases modules resources testimonials settings"`
	Model  string `validate:"omitempty,oneof=phase module resource testimonial setting"`
	Slug   string `validate:"omitempty,max=200"`
	Locale string `validate:"omitempty,oneof=en ar all"`
}

// ValidationError reports invalid webhook parameters.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid parameters: " + strings.Join(parts, ", ")
}

// RevalidateEvent records one successful revalidation.
type RevalidateEvent struct {
	ID          string    `json:"id"`
	Revalidated []string  `json:"revalidated"`
	Timestamp   time.Time `json:"timestamp"`
}

const maxEvents = 20

// Revalidator invalidates cached content on CMS webhooks.
type Revalidator struct {
	content  *ContentService
	secret   string
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	events []RevalidateEvent
}

// NewRevalidator creates a revalidator. An empty secret disables it.
func NewRevalidator(content *ContentService, secret string, logger *slog.Logger) *Revalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Revalidator{
		content:  content,
		secret:   secret,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		now:      time.Now,
	}
}

// Configured reports whether a secret is set.
func (r *Revalidator) Configured() bool {
	return r.secret != ""
}

// Events returns recent revalidations, newest first.
func (r *Revalidator) Events() []RevalidateEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.events)
	slices.Reverse(out)
	return out
}

// Revalidate checks the secret and invalidates the requested path, tag and
// model targets.
func (r *Revalidator) Revalidate(ctx context.Context, req RevalidateRequest) (*RevalidateEvent, error) {
	r.logger.Info("revalidation webhook received",
		"has_secret", req.Secret != "",
		"path", req.Path, "tag", req.Tag, "model", req.Model, "slug", req.Slug, "locale", req.Locale)

	if !r.Configured() {
		return nil, ErrRevalidationNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(r.secret)) != 1 {
		return nil, ErrInvalidSecret
	}
	if err := r.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[strings.ToLower(fe.Field())] = fe.Tag()
			}
			return nil, &ValidationError{Fields: fields}
		}
		return nil, err
	}
	if req.Locale == "" {
		req.Locale = LocaleAll
	}

	var revalidated []string

	if req.Path != "" {
		// Drop the CMS data behind the pages first so they rebuild from
		// fresh content.
		if err := r.invalidateTags(ctx, pathTags(req.Path)); err != nil {
			return nil, err
		}
		r.content.BumpVersion()
		if err := r.content.InvalidatePath(ctx, req.Path); err != nil {
			return nil, fmt.Errorf("invalidating path %s: %w", req.Path, err)
		}
		revalidated = append(revalidated, "path: "+req.Path)
	}

	if req.Tag != "" {
		if err := r.content.Repository().InvalidateTag(ctx, req.Tag); err != nil {
			return nil, fmt.Errorf("invalidating tag %s: %w", req.Tag, err)
		}
		r.content.BumpVersion()
		revalidated = append(revalidated, "tag: "+req.Tag)
	}

	if req.Model != "" {
		if err := r.invalidateTags(ctx, modelTags[req.Model]); err != nil {
			return nil, err
		}
		r.content.BumpVersion()

		for _, p := range r.pathsForModel(ctx, req.Model, req.Slug, req.Locale) {
			if err := r.content.InvalidatePath(ctx, p); err != nil {
				return nil, fmt.Errorf("invalidating path %s: %w", p, err)
			}
			revalidated = append(revalidated, "path: "+p)
		}
	}

	if len(revalidated) == 0 {
		return nil, ErrNoRevalidationTarget
	}

	ev := RevalidateEvent{ID: uuid.NewString(), Revalidated: revalidated, Timestamp: r.now().UTC()}
	r.mu.Lock()
	r.events = append(r.events, ev)
	if len(r.events) > maxEvents {
		r.events = slices.Delete(r.events, 0, len(r.events)-maxEvents)
	}
	r.mu.Unlock()

	r.logger.Info("revalidation complete", "event_id", ev.ID, "targets", len(revalidated))
	return &ev, nil
}

func (r *Revalidator) invalidateTags(ctx context.Context, tags []string) error {
	for _, tag := range tags {
		if err := r.content.Repository().InvalidateTag(ctx, tag); err != nil {
			return fmt.Errorf("invalidating tag %s: %w", tag, err)
		}
	}
	return nil
}

// pathTags lists the cache tags read by the pages at or below path. Every
// page shows the site settings; a locale home or the root covers every
// page of the site.
func pathTags(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[1] == "" {
		return cms.Tags
	}
	switch parts[1] {
	case "phase":
		return []string{cms.TagPhases, cms.TagModules, cms.TagResources, cms.TagSettings}
	case "phases", "resources", "search":
		return []string{cms.TagPhases, cms.TagSettings}
	}
	return []string{cms.TagSettings}
}

func localesFor(locale string) []model.Locale {
	if l, ok := model.ParseLocale(locale); ok {
		return []model.Locale{l}
	}
	return model.Locales
}

// pathsForModel lists the page paths that show a changed entity. Module and
// resource pages live under their phase, which is looked up by module slug;
// when that fails every phase page of the locale is invalidated.
func (r *Revalidator) pathsForModel(ctx context.Context, modelName, slug, locale string) []string {
	var paths []string
	for _, l := range localesFor(locale) {
		switch modelName {
		case ModelPhase:
			paths = append(paths, HomePath(l))
			if slug != "" {
				paths = append(paths, PhasePath(l, slug))
			}
		case ModelModule:
			paths = append(paths, HomePath(l))
			if slug != "" {
				paths = append(paths, r.modulePath(ctx, l, slug))
			}
		case ModelResource:
			if slug != "" {
				paths = append(paths, r.modulePath(ctx, l, slug))
			}
		case ModelTestimonial:
			paths = append(paths, HomePath(l))
		case ModelSetting:
			paths = append(paths, HomePath(l), PhasesPath(l), ResourcesPath(l))
		}
	}
	return paths
}

func (r *Revalidator) modulePath(ctx context.Context, locale model.Locale, moduleSlug string) string {
	m, err := r.content.Repository().ModuleBySlug(ctx, locale, "", moduleSlug)
	if err != nil || m == nil || m.Phase == nil {
		if err != nil {
			r.logger.Warn("module lookup failed during revalidation", "slug", moduleSlug, "error", err)
		}
		return "/" + string(locale) + "/phase"
	}
	return ModulePath(locale, m.Phase.Slug, m.Slug)
}
