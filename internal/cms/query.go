// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
)

// Filters are Strapi filters as nested maps, e.g.
// {"phase": {"slug": {"$eq": "discover"}}}.
type Filters map[string]any

// Pagination selects a page of a collection. Zero fields are omitted.
type Pagination struct {
	Page     int
	PageSize int
	Start    int
	Limit    int
}

// Query holds the parameters of a collection request.
type Query struct {
	Locale     model.Locale
	Populate   []string
	Filters    Filters
	Sort       []string
	Pagination Pagination
}

// Eq builds an equality filter for a dotted field path such as "phase.slug".
func Eq(path string, value any) Filters {
	parts := strings.Split(path, ".")
	var node any = map[string]any{"$eq": value}
	for i := len(parts) - 1; i > 0; i-- {
		node = map[string]any{parts[i]: node}
	}
	return Filters{parts[0]: node}
}

// WithFilters returns a copy of q with f merged over its filters.
func (q Query) WithFilters(f Filters) Query {
	merged := make(Filters, len(q.Filters)+len(f))
	for k, v := range q.Filters {
		merged[k] = v
	}
	for k, v := range f {
		merged[k] = v
	}
	q.Filters = merged
	return q
}

// withDefaults fills sort and populate when the caller left them empty.
func (q Query) withDefaults(sort, populate []string) Query {
	if len(q.Sort) == 0 && len(sort) > 0 {
		q.Sort = sort
	}
	if len(q.Populate) == 0 && len(populate) > 0 {
		q.Populate = populate
	}
	return q
}

// Encode renders the query string without a leading "?". Output is
// deterministic, so it also serves as a cache key.
func (q Query) Encode() string {
	var pairs []string
	add := func(k, v string) {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(v))
	}

	if q.Locale != "" {
		add("locale", string(q.Locale))
	}
	for _, p := range q.Populate {
		add("populate", p)
	}
	encodeFilters(add, "filters", map[string]any(q.Filters))
	for _, s := range q.Sort {
		add("sort", s)
	}
	for _, p := range []struct {
		key string
		val int
	}{
		{"page", q.Pagination.Page},
		{"pageSize", q.Pagination.PageSize},
		{"start", q.Pagination.Start},
		{"limit", q.Pagination.Limit},
	} {
		if p.val != 0 {
			add("pagination["+p.key+"]", strconv.Itoa(p.val))
		}
	}

	return strings.Join(pairs, "&")
}

func encodeFilters(add func(k, v string), prefix string, node map[string]any) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		key := prefix + "[" + k + "]"
		switch v := node[k].(type) {
		case map[string]any:
			encodeFilters(add, key, v)
		case Filters:
			encodeFilters(add, key, map[string]any(v))
		case []string:
			for i, item := range v {
				add(fmt.Sprintf("%s[%d]", key, i), item)
			}
		default:
			add(key, fmt.Sprint(v))
		}
	}
}

// flattenFilters turns nested filters into dotted paths with their operator,
// e.g. {"phase.slug": {"$eq", "discover"}}.
func flattenFilters(f Filters) map[string]filterCond {
	out := make(map[string]filterCond)
	var walk func(path string, node map[string]any)
	walk = func(path string, node map[string]any) {
		for k, v := range node {
			if strings.HasPrefix(k, "$") {
				out[path] = filterCond{op: k, value: fmt.Sprint(v)}
				continue
			}
			next := k
			if path != "" {
				next = path + "." + k
			}
			switch child := v.(type) {
			case map[string]any:
				walk(next, child)
			case Filters:
				walk(next, map[string]any(child))
			default:
				out[next] = filterCond{op: "$eq", value: fmt.Sprint(child)}
			}
		}
	}
	walk("", map[string]any(f))
	return out
}

type filterCond struct {
	op    string
	value string
}
