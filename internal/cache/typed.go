// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// Typed stores values of T as JSON in an underlying Cache.
type Typed[T any] struct {
	cache Cache
	ttl   time.Duration
}

// NewTyped wraps c for values of type T.
func NewTyped[T any](c Cache, ttl time.Duration) *Typed[T] {
	return &Typed[T]{cache: c, ttl: ttl}
}

// Get returns the cached value and true, or the zero value and false on a
// miss or an undecodable entry.
func (t *Typed[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T
	data, err := t.cache.Get(ctx, key)
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		slog.Warn("dropping undecodable cache entry", "key", key, "error", err)
		_ = t.cache.Delete(ctx, key)
		return value, false
	}
	return value, true
}

// Set stores value under key with the default TTL.
func (t *Typed[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return t.cache.Set(ctx, key, data, t.ttl)
}

// GetOrLoad returns the cached value, or calls load and caches its result.
// Load errors are returned as-is and nothing is cached.
func (t *Typed[T]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if value, ok := t.Get(ctx, key); ok {
		return value, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := t.Set(ctx, key, value); err != nil && !errors.Is(err, ErrCacheClosed) {
		slog.Warn("failed to store cache entry", "key", key, "error", err)
	}
	return value, nil
}
