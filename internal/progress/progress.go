// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package progress tracks which modules a visitor has completed.
package progress

import (
	"encoding/json"
	"log/slog"
	"math"
	"slices"

	"github.com/olegiv/fiftyfifty-toolkit/internal/storage"
)

// StorageKey is the store key holding the JSON array of completed module IDs.
const StorageKey = "fiftyfifty_progress"

// Tracker holds the set of completed module IDs in insertion order.
// A Tracker is used by one request at a time and is not safe for concurrent use.
type Tracker struct {
	store     storage.Store
	completed []int
	loaded    bool
}

// New returns a Tracker over store. State is read lazily on first use.
func New(store storage.Store) *Tracker {
	return &Tracker{store: store}
}

// Load reads the completed set from the store. It never writes: a missing,
// malformed or non-array value yields an empty set. Load runs at most once.
func (t *Tracker) Load() {
	if t.loaded {
		return
	}
	t.loaded = true
	t.completed = nil

	raw, ok := t.store.Get(StorageKey)
	if !ok || raw == "" {
		return
	}

	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		slog.Debug("ignoring malformed progress state", "error", err)
		return
	}
	for _, id := range ids {
		if !slices.Contains(t.completed, id) {
			t.completed = append(t.completed, id)
		}
	}
}

// MarkComplete adds id to the completed set. Adding a present id is a no-op.
func (t *Tracker) MarkComplete(id int) error {
	t.Load()
	if slices.Contains(t.completed, id) {
		return nil
	}
	t.completed = append(t.completed, id)
	return t.save()
}

// MarkIncomplete removes id from the completed set if present.
func (t *Tracker) MarkIncomplete(id int) error {
	t.Load()
	i := slices.Index(t.completed, id)
	if i < 0 {
		return nil
	}
	t.completed = slices.Delete(t.completed, i, i+1)
	return t.save()
}

// IsComplete reports whether id is in the completed set.
func (t *Tracker) IsComplete(id int) bool {
	t.Load()
	return slices.Contains(t.completed, id)
}

// CompletionPercentage returns round(100 * completed / total), or 0 when
// total is 0.
func (t *Tracker) CompletionPercentage(total int) int {
	if total <= 0 {
		return 0
	}
	t.Load()
	return int(math.Round(float64(len(t.completed)) / float64(total) * 100))
}

// CompletedCount returns the number of completed modules.
func (t *Tracker) CompletedCount() int {
	t.Load()
	return len(t.completed)
}

// Completed returns a copy of the completed IDs in the order they were added.
func (t *Tracker) Completed() []int {
	t.Load()
	return slices.Clone(t.completed)
}

// Reset clears all progress and removes the stored value.
func (t *Tracker) Reset() error {
	t.loaded = true
	t.completed = nil
	return t.store.Remove(StorageKey)
}

func (t *Tracker) save() error {
	ids := t.completed
	if ids == nil {
		ids = []int{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return t.store.Set(StorageKey, string(data))
}
