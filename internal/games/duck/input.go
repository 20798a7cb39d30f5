package duck

import "time"

// Debouncer collapses presses that arrive within a short window.
type Debouncer struct {
	window time.Duration
	last   time.Time
	seen   bool
}

// NewDebouncer creates a debouncer with the given window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Allow reports whether a press at the given time should be acted on.
// Only accepted presses move the window.
func (d *Debouncer) Allow(at time.Time) bool {
	if d.seen && at.Sub(d.last) < d.window {
		return false
	}
	d.last = at
	d.seen = true
	return true
}

// Reset forgets the last accepted press.
func (d *Debouncer) Reset() {
	d.seen = false
	d.last = time.Time{}
}
