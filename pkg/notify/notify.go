package notify

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Digest is the payload sent to notification destinations: the day's
// relationship summary plus the compatibility matrix rendered as text
// tables (split into parts for chat readability).
type Digest struct {
	Date    time.Time `json:"date"`
	Summary string    `json:"summary"`
	Tables  []string  `json:"tables"`
}

// Title returns the dated headline for the digest.
func (d *Digest) Title() string {
	return fmt.Sprintf("Vztah znamení k ostatním znamení ke dni: %s", d.Date.Format("02.01.2006"))
}

// Notifier delivers a digest to a specific destination.
type Notifier interface {
	Name() string
	Send(ctx context.Context, d *Digest) error
}

// Manager broadcasts digests to all registered notifiers.
type Manager struct {
	notifiers []Notifier
}

// NewManager creates a new notification manager.
func NewManager(notifiers []Notifier) *Manager {
	return &Manager{notifiers: notifiers}
}

// HasNotifiers returns true if at least one notifier is configured.
func (m *Manager) HasNotifiers() bool {
	return len(m.notifiers) > 0
}

// Broadcast sends a digest to all registered notifiers.
func (m *Manager) Broadcast(ctx context.Context, d *Digest) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Send(ctx, d); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// chunk splits s into pieces of at most size bytes, mirroring the chat
// platforms' message length limits. Cuts never land inside a UTF-8
// sequence.
func chunk(s string, size int) []string {
	var parts []string
	for len(s) > size {
		cut := size
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		parts = append(parts, s[:cut])
		s = s[cut:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
