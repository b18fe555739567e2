// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package progress

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/olegiv/fiftyfifty-toolkit/internal/storage"
)

// countingStore records writes so tests can assert Load never persists.
type countingStore struct {
	*storage.Memory
	sets    int
	removes int
}

func (s *countingStore) Set(key, value string) error {
	s.sets++
	return s.Memory.Set(key, value)
}

func (s *countingStore) Remove(key string) error {
	s.removes++
	return s.Memory.Remove(key)
}

func TestTracker_MarkCompleteAndIncomplete(t *testing.T) {
	tr := New(storage.NewMemory())

	if tr.IsComplete(7) {
		t.Fatal("IsComplete(7) = true before marking")
	}
	if err := tr.MarkComplete(7); err != nil {
		t.Fatalf("MarkComplete error = %v", err)
	}
	if !tr.IsComplete(7) {
		t.Error("IsComplete(7) = false after MarkComplete")
	}
	if err := tr.MarkIncomplete(7); err != nil {
		t.Fatalf("MarkIncomplete error = %v", err)
	}
	if tr.IsComplete(7) {
		t.Error("IsComplete(7) = true after MarkIncomplete")
	}
	// Removing an absent id is a no-op.
	if err := tr.MarkIncomplete(99); err != nil {
		t.Errorf("MarkIncomplete(absent) error = %v", err)
	}
}

func TestTracker_MarkCompleteIsIdempotent(t *testing.T) {
	store := &countingStore{Memory: storage.NewMemory()}
	tr := New(store)

	_ = tr.MarkComplete(3)
	_ = tr.MarkComplete(3)

	if got := tr.CompletedCount(); got != 1 {
		t.Errorf("CompletedCount = %d, want 1", got)
	}
	if store.sets != 1 {
		t.Errorf("store writes = %d, want 1", store.sets)
	}
}

func TestTracker_CompletionPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed []int
		total     int
		want      int
	}{
		{"zero total", []int{1, 2}, 0, 0},
		{"one of three rounds down", []int{1}, 3, 33},
		{"two of three rounds up", []int{1, 2}, 3, 67},
		{"half", []int{1}, 2, 50},
		{"none", nil, 5, 0},
		{"all", []int{1, 2, 3, 4}, 4, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(storage.NewMemory())
			for _, id := range tt.completed {
				_ = tr.MarkComplete(id)
			}
			if got := tr.CompletionPercentage(tt.total); got != tt.want {
				t.Errorf("CompletionPercentage(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestTracker_RoundTrip(t *testing.T) {
	store := storage.NewMemory()
	marked := []int{4, 8, 15}

	first := New(store)
	for _, id := range marked {
		_ = first.MarkComplete(id)
	}

	reloaded := New(store)
	if diff := cmp.Diff(marked, reloaded.Completed()); diff != "" {
		t.Errorf("Completed() mismatch (-want +got):\n%s", diff)
	}
	for id := 0; id < 20; id++ {
		want := id == 4 || id == 8 || id == 15
		if got := reloaded.IsComplete(id); got != want {
			t.Errorf("IsComplete(%d) = %v, want %v", id, got, want)
		}
	}
}

func TestTracker_MalformedStateIsEmpty(t *testing.T) {
	tests := map[string]string{
		"not json":   "{oops",
		"object":     `{"a":1}`,
		"string":     `"hello"`,
		"mixed list": `[1,"two",3]`,
		"empty":      "",
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			store := &countingStore{Memory: storage.NewMemory()}
			_ = store.Memory.Set(StorageKey, raw)

			tr := New(store)
			if got := tr.CompletedCount(); got != 0 {
				t.Errorf("CompletedCount = %d, want 0", got)
			}
			if store.sets != 0 {
				t.Error("Load must not write back to the store")
			}
		})
	}
}

func TestTracker_LoadDeduplicates(t *testing.T) {
	store := storage.NewMemory()
	_ = store.Set(StorageKey, "[2,2,5]")

	if got := New(store).Completed(); !cmp.Equal(got, []int{2, 5}) {
		t.Errorf("Completed() = %v, want [2 5]", got)
	}
}

func TestTracker_Reset(t *testing.T) {
	store := &countingStore{Memory: storage.NewMemory()}
	tr := New(store)
	_ = tr.MarkComplete(1)

	if err := tr.Reset(); err != nil {
		t.Fatalf("Reset error = %v", err)
	}
	if tr.CompletedCount() != 0 {
		t.Error("CompletedCount != 0 after Reset")
	}
	if _, ok := store.Get(StorageKey); ok {
		t.Error("stored value should be removed after Reset")
	}
	if store.removes != 1 {
		t.Errorf("removes = %d, want 1", store.removes)
	}
}
