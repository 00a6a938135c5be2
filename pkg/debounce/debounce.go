// Package debounce coalesces rapid events into a single callback invocation.
package debounce

import (
	"sync"
	"time"
)

// SearchDuration is the quiet window for free-text search input.
const SearchDuration = 400 * time.Millisecond

// ClassifyDuration is the quiet window for description edits before a
// classification request is issued.
const ClassifyDuration = 700 * time.Millisecond

// Debouncer defers a callback until its duration elapses with no further
// trigger. When Trigger is called multiple times within the window, only
// the last callback runs.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	seq      uint64
}

// New creates a Debouncer with the given quiet window.
func New(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Trigger schedules the callback to run after the quiet window. Any
// previously scheduled callback is cancelled, not merely ignored.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		shouldRun := func() bool {
			d.mu.Lock()
			defer d.mu.Unlock()

			// Only run the most recently scheduled callback. This avoids races
			// where Stop() returns false because the timer has already fired
			// and the old callback starts running concurrently.
			if seq != d.seq {
				return false
			}
			d.timer = nil
			return true
		}()
		if !shouldRun {
			return
		}

		callback()
	})
}

// Cancel discards any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Invalidate any callback that might already be executing due to timer
	// races.
	d.seq++

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Duration returns the quiet window.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
