package timer

import (
	"time"

	"github.com/pineapplestrikesback/gymlog/notify"
)

// Pool owns every live rest timer and keeps the notification gateway in sync
// with the header timer: the timer with the latest end time among all
// non-expired timers. At most one notification is pending at any moment, and
// it always targets the header timer.
type Pool struct {
	gateway notify.Gateway
	timers  []RestTimer
	now     func() time.Time

	// scheduledID is the identifier of the timer the pending notification
	// targets, or empty when nothing is scheduled.
	scheduledID string

	permissionAsked   bool
	permissionGranted bool
}

// NewPool returns a pool that schedules notifications through the given
// gateway.
func NewPool(gateway notify.Gateway) *Pool {
	return &Pool{
		gateway: gateway,
		now:     time.Now,
	}
}

// Timers returns a snapshot of the live timers in insertion order.
func (p *Pool) Timers() []RestTimer {
	out := make([]RestTimer, len(p.timers))
	copy(out, p.timers)

	return out
}

// Get returns the current value of the timer with the given identifier.
// Callers hold identifiers, not snapshots, and re-resolve on each read so a
// timer extended elsewhere is never observed stale.
func (p *Pool) Get(id string) (RestTimer, bool) {
	for _, t := range p.timers {
		if t.ID == id {
			return t, true
		}
	}

	return RestTimer{}, false
}

// ForSet returns the live, unexpired timer attached to the given set.
func (p *Pool) ForSet(setID string) (RestTimer, bool) {
	now := p.now()

	for _, t := range p.timers {
		if t.SetID == setID && !t.Expired(now) {
			return t, true
		}
	}

	return RestTimer{}, false
}

// Header returns the header timer: the unexpired timer with the latest end
// time. A tie on end times resolves to the lexically lowest identifier.
func (p *Pool) Header() (RestTimer, bool) {
	now := p.now()

	var (
		header RestTimer
		found  bool
	)

	for _, t := range p.timers {
		if t.Expired(now) {
			continue
		}

		if !found || t.EndTime.After(header.EndTime) ||
			(t.EndTime.Equal(header.EndTime) && t.ID < header.ID) {
			header = t
			found = true
		}
	}

	return header, found
}

// Start creates a timer for the given set and appends it to the pool. If the
// new timer becomes the header timer, the pending notification is moved to
// it. Notification permission is requested lazily on the first start and the
// outcome is remembered for the rest of the process.
func (p *Pool) Start(setID string, duration time.Duration) RestTimer {
	t := NewRestTimer(setID, duration)
	p.timers = append(p.timers, t)

	if header, ok := p.Header(); ok && header.ID == t.ID {
		p.ensurePermission()
		p.rescheduleHeader()
	}

	return t
}

// RemoveExpired purges every expired timer. It deliberately leaves
// notifications alone: expired timers never hold the pending notification
// slot past their own firing, and call sites that need a clean header
// reconcile afterwards.
func (p *Pool) RemoveExpired() {
	now := p.now()
	kept := p.timers[:0]

	for _, t := range p.timers {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}

	p.timers = kept
}

// Skip removes one timer by identity. If it held the pending notification or
// was the header, the notification moves to the new header (or nothing is
// scheduled if the pool is empty).
func (p *Pool) Skip(id string) {
	header, hasHeader := p.Header()
	wasHeader := hasHeader && header.ID == id

	removed := false
	kept := p.timers[:0]

	for _, t := range p.timers {
		if t.ID == id {
			removed = true
			continue
		}

		kept = append(kept, t)
	}

	p.timers = kept

	if removed && (wasHeader || p.scheduledID == id) {
		p.rescheduleHeader()
	}
}

// RemoveForSet removes the timer attached to a set, if any. Calling it for a
// set with no timer is a no-op, which makes unconfirming a set idempotent.
func (p *Pool) RemoveForSet(setID string) {
	for _, t := range p.timers {
		if t.SetID == setID {
			p.Skip(t.ID)
			return
		}
	}
}

// Extend adds time to a timer, growing its duration so progress stays
// meaningful. Reports whether the timer was found.
func (p *Pool) Extend(id string, by time.Duration) bool {
	return p.replace(id, func(t RestTimer) RestTimer {
		return t.Extend(by)
	})
}

// Adjust nudges a timer's end time by a delta without touching its original
// duration. Reports whether the timer was found.
func (p *Pool) Adjust(id string, delta time.Duration) bool {
	return p.replace(id, func(t RestTimer) RestTimer {
		return t.Shift(delta)
	})
}

// Update sets a timer's remaining time to an absolute value. A non-positive
// target degrades to Skip and returns false so callers can drive dismissal.
func (p *Pool) Update(id string, remaining time.Duration) bool {
	if remaining <= 0 {
		p.Skip(id)
		return false
	}

	return p.replace(id, func(t RestTimer) RestTimer {
		return t.ResetTo(remaining, p.now())
	})
}

// CancelAll clears the pool and every pending notification.
func (p *Pool) CancelAll() {
	p.timers = nil
	p.scheduledID = ""
	p.gateway.CancelAll()
}

// replace swaps the stored value of one timer and reconciles the
// notification if the header was affected.
func (p *Pool) replace(id string, transform func(RestTimer) RestTimer) bool {
	header, hasHeader := p.Header()
	wasHeader := hasHeader && header.ID == id

	for i, t := range p.timers {
		if t.ID != id {
			continue
		}

		p.timers[i] = transform(t)

		newHeader, ok := p.Header()
		if wasHeader || (ok && newHeader.ID == id) {
			p.rescheduleHeader()
		}

		return true
	}

	return false
}

func (p *Pool) ensurePermission() {
	if p.permissionAsked {
		return
	}

	p.permissionAsked = true
	p.permissionGranted = p.gateway.RequestPermission()
}

// rescheduleHeader cancels the pending notification and schedules a fresh
// one for the current header timer. Permission denial suppresses scheduling
// only; the countdown itself keeps working.
func (p *Pool) rescheduleHeader() {
	if p.scheduledID != "" {
		p.gateway.Cancel(p.scheduledID)
		p.scheduledID = ""
	}

	if !p.permissionGranted {
		return
	}

	header, ok := p.Header()
	if !ok {
		return
	}

	remaining := header.Remaining(p.now())
	if remaining <= 0 {
		return
	}

	p.gateway.Schedule(header.ID, remaining)
	p.scheduledID = header.ID
}
