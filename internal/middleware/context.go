// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the HTTP middleware of the toolkit site:
// locale negotiation, security headers, CSRF protection, rate limiting and
// visitor classification.
package middleware

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys set by this package.
const (
	ContextKeyLocale  ContextKey = "locale"
	ContextKeyVisitor ContextKey = "visitor"
)
