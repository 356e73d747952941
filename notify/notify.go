// Package notify delivers rest-timer alerts through the desktop notification
// facility. Delivery is best-effort: failures are swallowed so that timer
// state transitions never depend on the notification system.
package notify

import (
	"sync"
	"time"

	"github.com/gen2brain/beeep"
)

const (
	notifyTitle = "Rest complete"
	notifyBody  = "Time to start your next set!"
)

// Gateway is the contract the rest-timer pool schedules alerts through.
// Schedule does not replace an alert previously registered under another
// identifier; callers cancel the old identifier before rescheduling.
type Gateway interface {
	// RequestPermission reports whether alerts may be delivered. It is
	// idempotent and called at most once per process by the pool.
	RequestPermission() bool
	// Schedule registers a one-shot alert that fires after the given delay.
	Schedule(id string, after time.Duration)
	// Cancel discards a pending alert. Unknown identifiers are ignored.
	Cancel(id string)
	// CancelAll discards every pending alert.
	CancelAll()
}

// Desktop delivers alerts with a system notification once their delay
// elapses.
type Desktop struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewDesktop returns a desktop-notification gateway.
func NewDesktop() *Desktop {
	return &Desktop{
		pending: make(map[string]*time.Timer),
	}
}

// RequestPermission always grants: desktop notifications need no runtime
// authorisation, unlike mobile notification centres.
func (d *Desktop) RequestPermission() bool {
	return true
}

func (d *Desktop) Schedule(id string, after time.Duration) {
	if after <= 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.pending[id]; ok {
		t.Stop()
	}

	d.pending[id] = time.AfterFunc(after, func() {
		d.mu.Lock()
		delete(d.pending, id)
		d.mu.Unlock()

		_ = beeep.Notify(notifyTitle, notifyBody, "")
	})
}

func (d *Desktop) Cancel(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.pending[id]; ok {
		t.Stop()
		delete(d.pending, id)
	}
}

func (d *Desktop) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for id, t := range d.pending {
		t.Stop()
		delete(d.pending, id)
	}
}

// Silent is a gateway that never delivers anything. It is used when
// notifications are disabled in the configuration: the on-screen countdown
// still works without it.
type Silent struct{}

func (Silent) RequestPermission() bool            { return false }
func (Silent) Schedule(_ string, _ time.Duration) {}
func (Silent) Cancel(_ string)                    {}
func (Silent) CancelAll()                         {}
