// Package timer implements wall-clock-anchored rest timers and the pool that
// manages one timer per confirmed set.
package timer

import (
	"time"

	"github.com/google/uuid"

	"github.com/pineapplestrikesback/gymlog/internal/timeutil"
)

// RestTimer describes one rest countdown. It stores the absolute end time
// rather than a decrementing counter so that timers stay accurate across
// process suspension: remaining time is always derived from the wall clock.
//
// RestTimer is an immutable value. Every transform returns a new value with
// the same ID and SetID.
type RestTimer struct {
	ID       string
	SetID    string
	EndTime  time.Time
	Duration time.Duration
}

// NewRestTimer starts a timer for a set. A zero duration yields an
// immediately expired timer.
func NewRestTimer(setID string, duration time.Duration) RestTimer {
	return RestTimer{
		ID:       uuid.NewString(),
		SetID:    setID,
		EndTime:  time.Now().Add(duration),
		Duration: duration,
	}
}

// Remaining returns the time left until the timer ends, never negative.
func (t RestTimer) Remaining(now time.Time) time.Duration {
	r := t.EndTime.Sub(now)
	if r < 0 {
		return 0
	}

	return r
}

// RemainingSeconds returns the remaining time in whole seconds for display.
func (t RestTimer) RemainingSeconds(now time.Time) int {
	return timeutil.Round(t.Remaining(now).Seconds())
}

// Expired reports whether the timer has reached zero.
func (t RestTimer) Expired(now time.Time) bool {
	return t.Remaining(now) == 0
}

// Progress returns the fraction of the rest period still remaining, clamped
// to [0, 1].
func (t RestTimer) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 0
	}

	p := t.Remaining(now).Seconds() / t.Duration.Seconds()
	if p < 0 {
		return 0
	}

	if p > 1 {
		return 1
	}

	return p
}

// Extend moves the end time by the given delta and grows the original
// duration by the same amount, keeping Progress meaningful.
func (t RestTimer) Extend(by time.Duration) RestTimer {
	t.EndTime = t.EndTime.Add(by)
	t.Duration += by

	return t
}

// ResetTo restarts the timer with a new remaining time, measured from now.
// Negative input is clamped to zero.
func (t RestTimer) ResetTo(remaining time.Duration, now time.Time) RestTimer {
	if remaining < 0 {
		remaining = 0
	}

	t.EndTime = now.Add(remaining)
	t.Duration = remaining

	return t
}

// Shift nudges the end time without touching the original duration, so the
// percentage remaining does not reset. Used for coarse +/- adjustments.
func (t RestTimer) Shift(by time.Duration) RestTimer {
	t.EndTime = t.EndTime.Add(by)

	return t
}
