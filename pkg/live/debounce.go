package live

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period after the last notification before a
// refresh fires.
const DefaultDelay = 300 * time.Millisecond

// timer is the subset of *time.Timer the debouncer needs.
type timer interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) timer

func realAfterFunc(d time.Duration, f func()) timer { return time.AfterFunc(d, f) }

// Debouncer coalesces a burst of triggers into one call of fn. Every trigger
// restarts the delay, and at most one call is pending at a time.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	after afterFunc
	timer timer
	gen   uint64
}

// NewDebouncer returns a debouncer calling fn delay after the last Trigger.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, fn: fn, after: realAfterFunc}
}

// Trigger (re)starts the delay.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.after(d.delay, func() { d.fire(gen) })
}

// fire runs fn unless a later Trigger or Stop superseded this timer. The
// generation check covers a timer that already fired while being stopped.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()
	d.fn()
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
