// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package consent manages the visitor's analytics cookie consent.
package consent

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/storage"
)

// Store keys and lifetime of a consent decision.
const (
	StatusKey    = "cookie-consent"
	TimestampKey = "cookie-consent-timestamp"
	ExpiryDays   = 365
)

// Expiry is the lifetime of a consent decision.
const Expiry = ExpiryDays * 24 * time.Hour

// Status is the visitor's consent decision.
type Status string

// Consent statuses.
const (
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
	StatusPending  Status = "pending"
)

// ParseStatus validates a status submitted by the visitor.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusAccepted, StatusDeclined, StatusPending:
		return st, nil
	default:
		return "", fmt.Errorf("unknown consent status %q", s)
	}
}

// Record is a stored consent decision.
type Record struct {
	Status           Status    `json:"status"`
	Timestamp        time.Time `json:"timestamp"`
	AnalyticsEnabled bool      `json:"analytics_enabled"`
}

// Observer is notified after a consent decision is stored.
type Observer func(Record)

// Notifier holds the observers of consent changes. It is shared by all
// requests and safe for concurrent use.
type Notifier struct {
	mu        sync.RWMutex
	nextID    int
	observers []observerEntry
}

type observerEntry struct {
	id int
	fn Observer
}

// NewNotifier returns a Notifier without observers.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn and returns a function that removes it.
func (n *Notifier) Subscribe(fn Observer) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers = append(n.observers, observerEntry{id: id, fn: fn})

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.observers = slices.DeleteFunc(n.observers, func(e observerEntry) bool { return e.id == id })
	}
}

// Notify calls every observer with rec, in registration order.
// Observers run outside the lock and may unsubscribe themselves.
func (n *Notifier) Notify(rec Record) {
	n.mu.RLock()
	observers := slices.Clone(n.observers)
	n.mu.RUnlock()

	for _, e := range observers {
		e.fn(rec)
	}
}

// Manager reads and writes the consent record of one visitor.
type Manager struct {
	store    storage.Store
	notifier *Notifier
	now      func() time.Time
}

// NewManager returns a Manager over store. notifier may be nil.
func NewManager(store storage.Store, notifier *Notifier) *Manager {
	return &Manager{store: store, notifier: notifier, now: time.Now}
}

// Get returns the current consent record, or nil when none is stored.
// Expired or unparsable records are cleared and reported as nil.
func (m *Manager) Get() *Record {
	status, ok := m.store.Get(StatusKey)
	if !ok || status == "" {
		return nil
	}
	tsRaw, ok := m.store.Get(TimestampKey)
	if !ok || tsRaw == "" {
		return nil
	}

	millis, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil {
		slog.Debug("clearing unparsable consent timestamp", "value", tsRaw)
		m.Clear()
		return nil
	}
	ts := time.UnixMilli(millis)
	if !m.now().Before(ts.Add(Expiry)) {
		m.Clear()
		return nil
	}

	st, err := ParseStatus(status)
	if err != nil {
		m.Clear()
		return nil
	}

	return &Record{
		Status:           st,
		Timestamp:        ts,
		AnalyticsEnabled: st == StatusAccepted,
	}
}

// Set stores status with the current time and notifies observers.
func (m *Manager) Set(status Status) (Record, error) {
	now := m.now()
	rec := Record{
		Status:           status,
		Timestamp:        time.UnixMilli(now.UnixMilli()),
		AnalyticsEnabled: status == StatusAccepted,
	}

	if err := m.store.Set(StatusKey, string(status)); err != nil {
		return rec, fmt.Errorf("saving consent: %w", err)
	}
	if err := m.store.Set(TimestampKey, strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		return rec, fmt.Errorf("saving consent timestamp: %w", err)
	}

	if m.notifier != nil {
		m.notifier.Notify(rec)
	}
	return rec, nil
}

// Clear removes the stored consent.
func (m *Manager) Clear() {
	if err := m.store.Remove(StatusKey); err != nil {
		slog.Warn("failed to clear consent", "error", err)
	}
	if err := m.store.Remove(TimestampKey); err != nil {
		slog.Warn("failed to clear consent timestamp", "error", err)
	}
}

// AnalyticsEnabled reports whether the visitor accepted analytics cookies.
func (m *Manager) AnalyticsEnabled() bool {
	rec := m.Get()
	return rec != nil && rec.AnalyticsEnabled
}

// ShouldShowBanner reports whether no valid decision is stored.
func (m *Manager) ShouldShowBanner() bool {
	return m.Get() == nil
}
