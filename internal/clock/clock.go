// Package clock provides an injectable time source so schedule checks and
// lock staleness decisions are testable with arbitrary "now" values.
package clock

import (
	"context"
	"time"
)

// Clock abstracts time.Now and timed waits.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, whichever comes first.
	Sleep(ctx context.Context, d time.Duration)
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Fixed is a clock that always returns the same instant and records Sleep
// calls instead of blocking. Useful for tests.
type Fixed struct {
	Instant time.Time
	Slept   []time.Duration
}

// NewFixed returns a clock frozen at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{Instant: t.UTC()}
}

func (f *Fixed) Now() time.Time {
	return f.Instant
}

func (f *Fixed) Sleep(_ context.Context, d time.Duration) {
	f.Slept = append(f.Slept, d)
}
