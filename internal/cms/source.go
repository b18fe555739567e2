// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cms reads toolkit content from a Strapi CMS or from bundled
// sample data, and caches it for the site.
package cms

import (
	"context"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// Source fetches normalized content. The online Client and the Offline
// sample-data reader both implement it.
//
// By-ID lookups return (nil, nil) when the entity does not exist.
type Source interface {
	Phases(ctx context.Context, q Query) ([]model.Phase, error)
	PhaseByID(ctx context.Context, id int, q Query) (*model.Phase, error)
	Modules(ctx context.Context, q Query) ([]model.Module, error)
	ModuleByID(ctx context.Context, id int, q Query) (*model.Module, error)
	Resources(ctx context.Context, q Query) ([]model.Resource, error)
	Testimonials(ctx context.Context, q Query) ([]model.Testimonial, error)
	Settings(ctx context.Context, q Query) (*model.Settings, error)
	Health(ctx context.Context) error
}
