// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package search

import "sync"

type memoEntry struct {
	stamp string
	index *Index
}

// Memo keeps one index per slot (typically a locale), tagged with a stamp
// identifying the content it was built from. A different stamp replaces
// the slot's index.
type Memo struct {
	mu      sync.Mutex
	entries map[string]memoEntry
	builds  int
}

// NewMemo creates an empty memo.
func NewMemo() *Memo {
	return &Memo{entries: make(map[string]memoEntry)}
}

// Get returns the slot's index when it was built for stamp, otherwise it
// calls build and stores the result.
func (m *Memo) Get(slot, stamp string, build func() *Index) *Index {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[slot]; ok && e.stamp == stamp {
		return e.index
	}
	idx := build()
	m.entries[slot] = memoEntry{stamp: stamp, index: idx}
	m.builds++
	return idx
}

// Reset drops every index.
func (m *Memo) Reset() {
	m.mu.Lock()
	clear(m.entries)
	m.mu.Unlock()
}

// Len returns the number of slots holding an index.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Builds returns how many indexes have been built.
func (m *Memo) Builds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.builds
}
