// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import "context"

// WarmJobName is the name of the content warming job.
const WarmJobName = "content-warm"

// Warmer prefetches content into the caches.
type Warmer interface {
	Warm(ctx context.Context) error
}

// AddWarmer schedules w on schedule. An empty schedule disables warming.
func (s *Scheduler) AddWarmer(schedule string, w Warmer) error {
	if schedule == "" {
		s.logger.Info("content warmer disabled")
		return nil
	}
	return s.Add(WarmJobName, "Prefetch phases, settings and testimonials for every locale", schedule, w.Warm)
}
