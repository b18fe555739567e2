// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/service"
)

// RevalidateHandler exposes the CMS revalidation webhook.
type RevalidateHandler struct {
	revalidator *service.Revalidator
	logger      *slog.Logger
	now         func() time.Time
}

// NewRevalidateHandler creates a new RevalidateHandler.
func NewRevalidateHandler(revalidator *service.Revalidator, logger *slog.Logger) *RevalidateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RevalidateHandler{revalidator: revalidator, logger: logger, now: time.Now}
}

// Revalidate handles POST /api/revalidate?secret=&path=&tag=&model=&slug=&locale=.
func (h *RevalidateHandler) Revalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	ev, err := h.revalidator.Revalidate(ctx, service.RevalidateRequest{
		Secret: q.Get("secret"),
		Path:   q.Get("path"),
		Tag:    q.Get("tag"),
		Model:  q.Get("model"),
		Slug:   q.Get("slug"),
		Locale: q.Get("locale"),
	})

	var verr *service.ValidationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{
			"success":     true,
			"revalidated": ev.Revalidated,
			"timestamp":   ev.Timestamp,
		})
	case errors.Is(err, service.ErrRevalidationNotConfigured):
		h.logger.ErrorContext(ctx, "revalidation rejected: REVALIDATE_SECRET not configured")
		writeJSONError(w, http.StatusInternalServerError, "Revalidation not configured",
			"REVALIDATE_SECRET environment variable is not set")
	case errors.Is(err, service.ErrInvalidSecret):
		h.logger.WarnContext(ctx, "revalidation rejected: invalid secret token")
		writeJSONError(w, http.StatusUnauthorized, "Invalid secret token", "")
	case errors.Is(err, service.ErrNoRevalidationTarget):
		writeJSONError(w, http.StatusBadRequest, "No revalidation target specified",
			"Please provide path, tag, or model parameter")
	case errors.As(err, &verr):
		writeJSONError(w, http.StatusBadRequest, "Invalid parameters", verr.Error())
	default:
		h.logger.ErrorContext(ctx, "revalidation failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Revalidation failed", err.Error())
	}
}

// Status handles GET /api/revalidate. It needs no secret.
func (h *RevalidateHandler) Status(w http.ResponseWriter, _ *http.Request) {
	configured := h.revalidator.Configured()
	message := "REVALIDATE_SECRET not configured"
	if configured {
		message = "Revalidation webhook is ready"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"configured": configured,
		"message":    message,
		"timestamp":  h.now().UTC(),
	})
}
