package feed

import "time"

// Debouncer delays committing a value until an idle window has passed.
// It owns a single outstanding arm token: re-arming invalidates the
// previous token, so only the last value within the window commits.
//
// The event loop schedules the delay itself (a timer message carrying
// the token) and calls Fire when it elapses, which keeps this type free
// of goroutines and directly testable.
type Debouncer struct {
	delay   time.Duration
	gen     int
	pending string
	armed   bool
}

// NewDebouncer creates a Debouncer with the given idle window.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Delay returns the idle window to schedule after Arm.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Arm stores value as the pending commit and returns a token for the
// scheduled timer. Any previously returned token becomes stale.
func (d *Debouncer) Arm(value string) int {
	d.gen++
	d.pending = value
	d.armed = true
	return d.gen
}

// Fire attempts to commit the arm identified by token. It returns the
// pending value and true only for the most recent, still-armed token.
func (d *Debouncer) Fire(token int) (string, bool) {
	if !d.armed || token != d.gen {
		return "", false
	}
	d.armed = false
	return d.pending, true
}

// Cancel invalidates any outstanding arm. Used on view teardown.
func (d *Debouncer) Cancel() {
	d.armed = false
	d.gen++
}
