package watcher

import (
	"sync"
	"time"
)

// debouncer coalesces events into one delivered after a quiet period.
//
// fire is never called concurrently with itself.
type debouncer struct {
	mu      sync.Mutex
	fireMu  sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending *Event
	seq     uint64 // detects stale timer callbacks
	fire    func(Event)
}

func newDebouncer(delay time.Duration, fire func(Event)) *debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &debouncer{delay: delay, fire: fire}
}

// add merges ev into the pending event and restarts the quiet period.
func (d *debouncer) add(ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		d.pending = &ev
	} else {
		d.pending.Op |= ev.Op
		d.pending.Time = ev.Time
	}

	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.deliver(seq)
	})
}

// deliver fires the pending event if seq is still the latest schedule.
// A zero seq fires unconditionally.
func (d *debouncer) deliver(seq uint64) {
	d.mu.Lock()
	if d.pending == nil || (seq != 0 && seq != d.seq) {
		d.mu.Unlock()
		return
	}
	ev := *d.pending
	d.pending = nil
	d.mu.Unlock()

	d.fireMu.Lock()
	defer d.fireMu.Unlock()
	d.fire(ev)
}

// flush fires the pending event now.
func (d *debouncer) flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.mu.Unlock()

	d.deliver(0)
}

// stop drops the pending event.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = nil
}

// isPending reports whether an event is waiting for its quiet period.
func (d *debouncer) isPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
