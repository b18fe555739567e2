// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/cache"
	"github.com/olegiv/fiftyfifty-toolkit/internal/logging"
	"github.com/olegiv/fiftyfifty-toolkit/internal/version"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	cms         HealthChecker
	caches      map[string]cache.Cache
	logs        *logging.RequestHandler
	environment string
	startTime   time.Time
	now         func() time.Time
}

// NewHealthHandler creates a new health handler. cms, caches and logs may
// be nil.
func NewHealthHandler(environment string, cms HealthChecker, caches map[string]cache.Cache, logs *logging.RequestHandler) *HealthHandler {
	return &HealthHandler{
		cms:         cms,
		caches:      caches,
		logs:        logs,
		environment: environment,
		startTime:   time.Now(),
		now:         time.Now,
	}
}

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Version     string                 `json:"version"`
	Uptime      string                 `json:"uptime"`
	Checks      map[string]Check       `json:"checks,omitempty"`
	Caches      map[string]cache.Stats `json:"caches,omitempty"`
	Logs        *logging.Counts        `json:"logs,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /api/health. The site keeps serving cached and fallback
// content when the CMS is down, so a failing check degrades the status
// without changing the 200 response.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:      "ok",
		Timestamp:   h.now().UTC(),
		Environment: h.environment,
		Version:     version.Version,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
	}

	if h.cms != nil {
		check := h.checkCMS(r.Context())
		status.Checks = map[string]Check{"cms": check}
		if check.Status != "healthy" {
			status.Status = "degraded"
		}
	}

	for name, c := range h.caches {
		sp, ok := c.(cache.StatsProvider)
		if !ok {
			continue
		}
		if status.Caches == nil {
			status.Caches = make(map[string]cache.Stats)
		}
		status.Caches[name] = sp.Stats()
	}

	if h.logs != nil {
		counts := h.logs.Counts()
		status.Logs = &counts
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *HealthHandler) checkCMS(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := h.cms.Health(ctx); err != nil {
		return Check{Status: "unhealthy", Message: err.Error(), Latency: time.Since(start).String()}
	}
	return Check{Status: "healthy", Latency: time.Since(start).String()}
}
