package logging

import (
	"time"
)

// Heartbeat rate-limits progress reporting. It holds the last-emit
// timestamp and a minimum interval; Ready reports whether enough time
// has passed since the last emission and, if so, records a new one.
//
// Heartbeats are observational only: whether a heartbeat fires has no
// effect on processing.
type Heartbeat struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewHeartbeat creates a Heartbeat with the given minimum interval
// between emissions. The first call to Ready after the interval has
// elapsed from construction returns true.
func NewHeartbeat(interval time.Duration) *Heartbeat {
	return newHeartbeat(interval, time.Now)
}

// newHeartbeat allows tests to inject a clock.
func newHeartbeat(interval time.Duration, now func() time.Time) *Heartbeat {
	return &Heartbeat{
		interval: interval,
		last:     now(),
		now:      now,
	}
}

// Ready reports whether the interval has elapsed since the last
// emission, and marks an emission when it has.
func (h *Heartbeat) Ready() bool {
	if h == nil {
		return false
	}
	t := h.now()
	if t.Sub(h.last) < h.interval {
		return false
	}
	h.last = t
	return true
}
