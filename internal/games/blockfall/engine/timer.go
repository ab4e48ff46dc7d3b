package engine

import "time"

// Timer is a host-driven interval clock. The host reports elapsed time
// through Advance and the timer answers how many times it fired.
type Timer struct {
	interval time.Duration
	elapsed  time.Duration
	running  bool
}

// NewTimer creates a stopped timer.
func NewTimer(interval time.Duration) *Timer {
	return &Timer{interval: interval}
}

// Start resumes counting. Accumulated time is kept.
func (t *Timer) Start() { t.running = true }

// Stop halts counting without discarding accumulated time.
func (t *Timer) Stop() { t.running = false }

// Running reports whether the timer is counting.
func (t *Timer) Running() bool { return t.running }

// Interval returns the firing interval.
func (t *Timer) Interval() time.Duration { return t.interval }

// SetInterval changes the firing interval. Time already accumulated
// counts toward the next firing.
func (t *Timer) SetInterval(d time.Duration) { t.interval = d }

// Reset discards accumulated time.
func (t *Timer) Reset() { t.elapsed = 0 }

// Advance adds dt and returns the number of times the timer fired.
func (t *Timer) Advance(dt time.Duration) int {
	if !t.running || t.interval <= 0 || dt <= 0 {
		return 0
	}
	t.elapsed += dt
	fires := int(t.elapsed / t.interval)
	t.elapsed -= time.Duration(fires) * t.interval
	return fires
}
