// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/olegiv/fiftyfifty-toolkit/internal/consent"
	"github.com/olegiv/fiftyfifty-toolkit/internal/middleware"
	"github.com/olegiv/fiftyfifty-toolkit/internal/progress"
	"github.com/olegiv/fiftyfifty-toolkit/internal/service"
)

// Progress actions accepted by POST /{lang}/progress.
const (
	ProgressActionComplete   = "complete"
	ProgressActionIncomplete = "incomplete"
	ProgressActionReset      = "reset"
)

// UpdateProgress handles POST /{lang}/progress and redirects back.
func (h *FrontendHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale := middleware.GetLocale(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	tracker := progress.New(h.store(w, r))
	action := r.PostFormValue("action")

	var err error
	switch action {
	case ProgressActionReset:
		err = tracker.Reset()
	case ProgressActionComplete, ProgressActionIncomplete:
		id, convErr := strconv.Atoi(r.PostFormValue("module_id"))
		if convErr != nil || id <= 0 {
			http.Error(w, "Invalid module_id", http.StatusBadRequest)
			return
		}
		if action == ProgressActionComplete {
			err = tracker.MarkComplete(id)
		} else {
			err = tracker.MarkIncomplete(id)
		}
	default:
		http.Error(w, "Invalid action", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save progress", "action", action, "error", err)
		http.Error(w, "Failed to save progress", http.StatusInternalServerError)
		return
	}

	h.logger.DebugContext(ctx, "progress updated", "action", action, "completed", tracker.CompletedCount())
	http.Redirect(w, r, localRedirect(r.PostFormValue("redirect"), service.HomePath(locale)), http.StatusSeeOther)
}

// UpdateConsent handles POST /consent and redirects back.
func (h *FrontendHandler) UpdateConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	status, err := consent.ParseStatus(r.PostFormValue("status"))
	if err != nil || status == consent.StatusPending {
		http.Error(w, "Invalid consent status", http.StatusBadRequest)
		return
	}

	if _, err := h.consentManager(w, r).Set(status); err != nil {
		h.logger.ErrorContext(ctx, "failed to save consent", "error", err)
		http.Error(w, "Failed to save consent", http.StatusInternalServerError)
		return
	}

	fallback := service.HomePath(middleware.NegotiateLocale(r))
	http.Redirect(w, r, localRedirect(r.PostFormValue("redirect"), fallback), http.StatusSeeOther)
}
