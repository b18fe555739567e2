// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode JSON response", "error", err)
	}
}

// writeJSONError writes a JSON error response. An empty message is omitted.
func writeJSONError(w http.ResponseWriter, statusCode int, errMsg, message string) {
	body := map[string]any{"error": errMsg}
	if message != "" {
		body["message"] = message
	}
	writeJSON(w, statusCode, body)
}
