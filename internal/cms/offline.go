// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"cmp"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
	"github.com/olegiv/fiftyfifty-toolkit/internal/util"
)

//go:embed sampledata
var sampleData embed.FS

// Offline serves bundled sample content instead of calling the CMS.
// Files in an optional override directory take precedence over the
// embedded ones and are re-read on every call.
type Offline struct {
	embedded    fs.FS
	overrideDir string
	now         func() time.Time
}

// NewOffline returns an offline source. overrideDir may be empty.
func NewOffline(overrideDir string) *Offline {
	sub, err := fs.Sub(sampleData, "sampledata")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return &Offline{embedded: sub, overrideDir: overrideDir, now: time.Now}
}

type samplePhases struct {
	Phases []samplePhase `json:"phases"`
}

type samplePhase struct {
	Title          string         `json:"title"`
	Slug           string         `json:"slug"`
	Description    string         `json:"description"`
	Order          *int           `json:"order"`
	PhaseNumber    *int           `json:"phase_number"`
	HeaderVideoURL string         `json:"header_video_url"`
	Modules        []sampleModule `json:"modules"`
}

type sampleModule struct {
	Title         string           `json:"title"`
	Slug          string           `json:"slug"`
	Summary       string           `json:"summary"`
	VideoURL      string           `json:"video_url"`
	SubtitleURLEn string           `json:"video_subtitle_url_en"`
	SubtitleURLAr string           `json:"video_subtitle_url_ar"`
	KeyTakeaways  string           `json:"key_takeaways"`
	Order         *int             `json:"order"`
	Resources     []sampleResource `json:"resources"`
}

type sampleResource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FileURL     string `json:"file_url"`
	FileType    string `json:"file_type"`
	FileSize    string `json:"file_size"`
	Order       *int   `json:"order"`
}

type sampleTestimonial struct {
	Name   string `json:"name"`
	Author string `json:"author"`
	Quote  string `json:"quote"`
	Text   string `json:"text"`
	Role   string `json:"role"`
	Photo  string `json:"photo"`
	Order  *int   `json:"order"`
}

// readSample reads name for locale: override/<locale>/name,
// override/name, embedded/<locale>/name, embedded/en/name, embedded/name.
func (o *Offline) readSample(locale model.Locale, name string) ([]byte, error) {
	if locale == "" {
		locale = model.DefaultLocale
	}

	if o.overrideDir != "" {
		for _, parts := range [][]string{{string(locale), name}, {name}} {
			p, err := util.SafeJoin(o.overrideDir, parts...)
			if err != nil {
				return nil, err
			}
			data, err := os.ReadFile(p)
			if err == nil {
				return data, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading sample override %s: %w", p, err)
			}
		}
	}

	for _, p := range []string{
		path.Join(string(locale), name),
		path.Join(string(model.DefaultLocale), name),
		name,
	} {
		data, err := fs.ReadFile(o.embedded, p)
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("sample data %s for locale %s: %w", name, locale, fs.ErrNotExist)
}

func orDefault(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

func slugOr(slug, title string) string {
	if slug != "" {
		return slug
	}
	return util.Slugify(title)
}

// loadPhases synthesizes the phase tree for locale, numbering phases,
// modules and resources sequentially from 1.
func (o *Offline) loadPhases(locale model.Locale) ([]model.Phase, error) {
	data, err := o.readSample(locale, "phases.json")
	if err != nil {
		return nil, err
	}
	var src samplePhases
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("decoding sample phases: %w", err)
	}
	if locale == "" {
		locale = model.DefaultLocale
	}

	now := o.now().UTC()
	moduleID, resourceID := 0, 0
	phases := make([]model.Phase, 0, len(src.Phases))

	for i, sp := range src.Phases {
		p := model.Phase{
			ID:             i + 1,
			Title:          sp.Title,
			Slug:           slugOr(sp.Slug, sp.Title),
			Description:    sp.Description,
			Order:          orDefault(sp.Order, i+1),
			PhaseNumber:    orDefault(sp.PhaseNumber, i+1),
			HeaderVideoURL: sp.HeaderVideoURL,
			Locale:         locale,
			CreatedAt:      now,
			UpdatedAt:      now,
			PublishedAt:    now,
			Modules:        make([]model.Module, 0, len(sp.Modules)),
		}
		ref := p.Ref()

		for j, sm := range sp.Modules {
			moduleID++
			m := model.Module{
				ID:            moduleID,
				Title:         sm.Title,
				Slug:          slugOr(sm.Slug, sm.Title),
				Summary:       sm.Summary,
				VideoURL:      sm.VideoURL,
				SubtitleURLEn: sm.SubtitleURLEn,
				SubtitleURLAr: sm.SubtitleURLAr,
				KeyTakeaways:  sm.KeyTakeaways,
				Order:         orDefault(sm.Order, j+1),
				Locale:        locale,
				CreatedAt:     now,
				UpdatedAt:     now,
				PublishedAt:   now,
				Phase:         ref,
				Resources:     make([]model.Resource, 0, len(sm.Resources)),
			}
			mref := &model.ModuleRef{ID: m.ID, Title: m.Title, Slug: m.Slug}

			for k, sr := range sm.Resources {
				resourceID++
				m.Resources = append(m.Resources, model.Resource{
					ID:          resourceID,
					Title:       sr.Title,
					Description: sr.Description,
					FileURL:     sr.FileURL,
					FileType:    model.ParseFileType(sr.FileType),
					FileSize:    sr.FileSize,
					Order:       orDefault(sr.Order, k+1),
					Locale:      locale,
					CreatedAt:   now,
					UpdatedAt:   now,
					PublishedAt: now,
					Module:      mref,
				})
			}
			p.Modules = append(p.Modules, m)
		}
		phases = append(phases, p)
	}
	return phases, nil
}

// matches evaluates equality filters against a field lookup.
func matches(f Filters, field func(path string) (string, bool)) (bool, error) {
	for p, cond := range flattenFilters(f) {
		if cond.op != "$eq" && cond.op != "$eqi" {
			return false, fmt.Errorf("%w: %s %s", ErrUnsupportedFilter, p, cond.op)
		}
		v, ok := field(p)
		if !ok {
			return false, fmt.Errorf("%w: field %s", ErrUnsupportedFilter, p)
		}
		if cond.op == "$eqi" {
			if !strings.EqualFold(v, cond.value) {
				return false, nil
			}
		} else if v != cond.value {
			return false, nil
		}
	}
	return true, nil
}

// sortByOrder applies "field:asc|desc" sorts on integer fields. Unknown
// fields are skipped.
func sortByOrder[T any](items []T, sorts []string, field func(T, string) (int, bool)) {
	var zero T
	for i := len(sorts) - 1; i >= 0; i-- {
		name, dir, _ := strings.Cut(sorts[i], ":")
		if _, ok := field(zero, name); !ok {
			continue
		}
		desc := dir == "desc"
		slices.SortStableFunc(items, func(a, b T) int {
			av, _ := field(a, name)
			bv, _ := field(b, name)
			if desc {
				return cmp.Compare(bv, av)
			}
			return cmp.Compare(av, bv)
		})
	}
}

func phaseField(p model.Phase, name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(p.ID), true
	case "slug":
		return p.Slug, true
	case "title":
		return p.Title, true
	case "phase_number":
		return strconv.Itoa(p.PhaseNumber), true
	}
	return "", false
}

func phaseOrder(p model.Phase, name string) (int, bool) {
	switch name {
	case "order":
		return p.Order, true
	case "phase_number":
		return p.PhaseNumber, true
	case "id":
		return p.ID, true
	}
	return 0, false
}

// Phases implements Source.
func (o *Offline) Phases(_ context.Context, q Query) ([]model.Phase, error) {
	all, err := o.loadPhases(q.Locale)
	if err != nil {
		return nil, err
	}

	out := all[:0:0]
	for _, p := range all {
		ok, err := matches(q.Filters, func(path string) (string, bool) { return phaseField(p, path) })
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	sortByOrder(out, q.Sort, phaseOrder)
	return out, nil
}

// PhaseByID implements Source.
func (o *Offline) PhaseByID(ctx context.Context, id int, q Query) (*model.Phase, error) {
	phases, err := o.Phases(ctx, q.WithFilters(Eq("id", id)))
	if err != nil || len(phases) == 0 {
		return nil, err
	}
	return &phases[0], nil
}

func moduleField(m model.Module, name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(m.ID), true
	case "slug":
		return m.Slug, true
	case "title":
		return m.Title, true
	case "phase.slug":
		if m.Phase == nil {
			return "", true
		}
		return m.Phase.Slug, true
	case "phase.id":
		if m.Phase == nil {
			return "", true
		}
		return strconv.Itoa(m.Phase.ID), true
	}
	return "", false
}

// Modules implements Source. Modules are taken from the phase tree and
// keep its order (phase first, then module order); Sort is ignored.
func (o *Offline) Modules(_ context.Context, q Query) ([]model.Module, error) {
	phases, err := o.loadPhases(q.Locale)
	if err != nil {
		return nil, err
	}

	var out []model.Module
	for _, p := range phases {
		for _, m := range p.Modules {
			ok, err := matches(q.Filters, func(path string) (string, bool) { return moduleField(m, path) })
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// ModuleByID implements Source.
func (o *Offline) ModuleByID(ctx context.Context, id int, q Query) (*model.Module, error) {
	modules, err := o.Modules(ctx, q.WithFilters(Eq("id", id)))
	if err != nil || len(modules) == 0 {
		return nil, err
	}
	return &modules[0], nil
}

func resourceField(r model.Resource, name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(r.ID), true
	case "file_type":
		return string(r.FileType), true
	case "module.slug":
		if r.Module == nil {
			return "", true
		}
		return r.Module.Slug, true
	case "module.id":
		if r.Module == nil {
			return "", true
		}
		return strconv.Itoa(r.Module.ID), true
	}
	return "", false
}

// Resources implements Source.
func (o *Offline) Resources(_ context.Context, q Query) ([]model.Resource, error) {
	phases, err := o.loadPhases(q.Locale)
	if err != nil {
		return nil, err
	}

	var out []model.Resource
	for _, p := range phases {
		for _, m := range p.Modules {
			for _, r := range m.Resources {
				ok, err := matches(q.Filters, func(path string) (string, bool) { return resourceField(r, path) })
				if err != nil {
					return nil, err
				}
				if ok {
					out = append(out, r)
				}
			}
		}
	}
	return out, nil
}

// Testimonials implements Source.
func (o *Offline) Testimonials(_ context.Context, q Query) ([]model.Testimonial, error) {
	data, err := o.readSample(q.Locale, "testimonials.json")
	if err != nil {
		return nil, err
	}
	var src []sampleTestimonial
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("decoding sample testimonials: %w", err)
	}

	locale := cmp.Or(q.Locale, model.DefaultLocale)
	out := make([]model.Testimonial, 0, len(src))
	for i, st := range src {
		out = append(out, model.Testimonial{
			ID:       i + 1,
			Name:     cmp.Or(st.Name, st.Author, "Participant"),
			Quote:    cmp.Or(st.Quote, st.Text),
			Role:     st.Role,
			PhotoURL: st.Photo,
			Order:    orDefault(st.Order, i+1),
			Locale:   locale,
		})
	}
	slices.SortStableFunc(out, func(a, b model.Testimonial) int { return cmp.Compare(a.Order, b.Order) })
	return out, nil
}

// Settings implements Source. A single settings file carries both languages.
func (o *Offline) Settings(_ context.Context, q Query) (*model.Settings, error) {
	data, err := o.readSample(q.Locale, "settings.json")
	if err != nil {
		return nil, err
	}
	var s model.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding sample settings: %w", err)
	}
	s.Locale = cmp.Or(q.Locale, model.DefaultLocale)
	return &s, nil
}

// Health implements Source; offline content is always available.
func (o *Offline) Health(context.Context) error {
	return nil
}

var _ Source = (*Offline)(nil)
