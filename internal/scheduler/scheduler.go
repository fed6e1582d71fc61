package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"horobot/pkg/fetch"
	"horobot/pkg/notify"
	"horobot/pkg/render"
	"horobot/pkg/zodiac"
)

// Scheduler sends the daily digest at a fixed wall-clock time.
type Scheduler struct {
	fetcher  fetch.Fetcher
	registry zodiac.Registry
	mgr      *notify.Manager
	hour     int
	minute   int
	loc      *time.Location

	// onSend receives each successfully built digest, letting the
	// daemon publish it to the status server. May be nil.
	onSend func(*notify.Digest, *zodiac.Matrix)
}

// New creates a new scheduler firing daily at hour:minute in loc.
func New(
	fetcher fetch.Fetcher,
	registry zodiac.Registry,
	mgr *notify.Manager,
	hour, minute int,
	loc *time.Location,
	onSend func(*notify.Digest, *zodiac.Matrix),
) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		fetcher:  fetcher,
		registry: registry,
		mgr:      mgr,
		hour:     hour,
		minute:   minute,
		loc:      loc,
		onSend:   onSend,
	}
}

// Run starts the scheduler loop. Blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	fmt.Fprintf(os.Stderr, "scheduler: sending daily at %02d:%02d (%s)\n", s.hour, s.minute, s.loc)

	for {
		next := nextRun(time.Now().In(s.loc), s.hour, s.minute)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			fmt.Fprintln(os.Stderr, "scheduler: stopped")
			return ctx.Err()
		case <-timer.C:
			fmt.Fprintln(os.Stderr, "scheduler: sending digest...")
			if err := s.SendOnce(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "  send error: %v\n", err)
			}
		}
	}
}

// SendOnce fetches today's data, builds the digest and broadcasts it.
func (s *Scheduler) SendOnce(ctx context.Context) error {
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	matrix, err := zodiac.BuildMatrix(raw, s.registry)
	if err != nil {
		return fmt.Errorf("build matrix: %w", err)
	}

	digest := render.BuildDigest(matrix, s.registry, time.Now().In(s.loc))
	if s.onSend != nil {
		s.onSend(digest, matrix)
	}

	if !s.mgr.HasNotifiers() {
		fmt.Fprintln(os.Stderr, "  no notifiers configured, skipping delivery")
		return nil
	}
	return s.mgr.Broadcast(ctx, digest)
}

// nextRun returns the next occurrence of hour:minute strictly after now.
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
