// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that tags records with the chi
// request ID and keeps running warning and error counts for the health endpoint.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5/middleware"
)

// Counts is a snapshot of the records seen at WARN level and above.
type Counts struct {
	Warnings int64 `json:"warnings"`
	Errors   int64 `json:"errors"`
}

type counters struct {
	warnings atomic.Int64
	errors   atomic.Int64
}

// RequestHandler is a slog.Handler that wraps another handler, adds a
// request_id attribute when the context carries one and counts WARN and
// ERROR records.
type RequestHandler struct {
	inner  slog.Handler
	counts *counters
}

// NewRequestHandler creates a RequestHandler that wraps the given handler.
func NewRequestHandler(inner slog.Handler) *RequestHandler {
	return &RequestHandler{
		inner:  inner,
		counts: &counters{},
	}
}

// Enabled implements slog.Handler.
func (h *RequestHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RequestHandler) Handle(ctx context.Context, r slog.Record) error {
	switch {
	case r.Level >= slog.LevelError:
		h.counts.errors.Add(1)
	case r.Level >= slog.LevelWarn:
		h.counts.warnings.Add(1)
	}

	if ctx != nil {
		if id := middleware.GetReqID(ctx); id != "" {
			r = r.Clone()
			r.AddAttrs(slog.String("request_id", id))
		}
	}

	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *RequestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RequestHandler{
		inner:  h.inner.WithAttrs(attrs),
		counts: h.counts,
	}
}

// WithGroup implements slog.Handler.
func (h *RequestHandler) WithGroup(name string) slog.Handler {
	return &RequestHandler{
		inner:  h.inner.WithGroup(name),
		counts: h.counts,
	}
}

// Counts returns the warning and error totals since start. Handlers derived
// through WithAttrs and WithGroup share the same totals.
func (h *RequestHandler) Counts() Counts {
	return Counts{
		Warnings: h.counts.warnings.Load(),
		Errors:   h.counts.errors.Load(),
	}
}

// ParseLevel maps a level name onto slog.Level. Unknown names yield INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the process logger: a text handler in development and a JSON
// handler otherwise, both wrapped in a RequestHandler.
func New(level string, development bool) (*slog.Logger, *RequestHandler) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var inner slog.Handler
	if development {
		inner = slog.NewTextHandler(os.Stdout, opts)
	} else {
		inner = slog.NewJSONHandler(os.Stdout, opts)
	}
	h := NewRequestHandler(inner)
	return slog.New(h), h
}
