// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/fiftyfifty-toolkit/internal/middleware"
	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
	"github.com/olegiv/fiftyfifty-toolkit/internal/search"
	"github.com/olegiv/fiftyfifty-toolkit/internal/service"
)

// APIHandler serves the JSON search endpoint.
type APIHandler struct {
	content *service.ContentService
	logger  *slog.Logger
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(content *service.ContentService, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{content: content, logger: logger}
}

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query   string          `json:"query"`
	Locale  model.Locale    `json:"locale"`
	Count   int             `json:"count"`
	Results []search.Result `json:"results"`
}

// Search handles GET /api/search?q=&lang=. An unknown or missing lang falls
// back to the negotiated locale.
func (h *APIHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	locale, ok := model.ParseLocale(strings.ToLower(q.Get("lang")))
	if !ok {
		locale = middleware.NegotiateLocale(r)
	}
	query := strings.TrimSpace(q.Get("q"))
	if search.TooLong(query) {
		writeJSONError(w, http.StatusBadRequest, "Query too long", "")
		return
	}

	resp := SearchResponse{Query: query, Locale: locale, Results: []search.Result{}}
	if query != "" {
		results, err := h.content.Search(ctx, locale, query)
		if err != nil {
			h.logger.ErrorContext(ctx, "search failed", "locale", locale, "error", err)
			writeJSONError(w, http.StatusBadGateway, "Content unavailable", "")
			return
		}
		if results != nil {
			resp.Results = results
		}
	}
	resp.Count = len(resp.Results)

	writeJSON(w, http.StatusOK, resp)
}
