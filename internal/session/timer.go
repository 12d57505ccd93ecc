package session

import "time"

// TickPeriod is the display refresh period of a running timer.
const TickPeriod = time.Second

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Scheduler arranges the periodic tick. Schedule asks for Tick(id) to be
// delivered once after period; Cancel withdraws a pending request. The
// controller ignores ticks whose id is no longer active, so Cancel may be
// best effort.
type Scheduler interface {
	Schedule(id uint64, period time.Duration)
	Cancel(id uint64)
}

// timer tracks active (non-paused) practice time.
type timer struct {
	origin  time.Time
	elapsed int
	running bool
	started bool
}

func (t *timer) start(origin time.Time) {
	t.origin = origin
	t.elapsed = 0
	t.running = true
	t.started = true
}

// stop freezes elapsed at its last ticked value.
func (t *timer) stop() {
	t.running = false
}

// resume moves the origin back so elapsed continues from the frozen value.
func (t *timer) resume(now time.Time) {
	t.origin = now.Add(-time.Duration(t.elapsed) * time.Second)
	t.running = true
}

// update recomputes elapsed as whole seconds since origin. It never moves
// backwards.
func (t *timer) update(now time.Time) {
	if !t.running {
		return
	}
	secs := int(now.Sub(t.origin) / time.Second)
	if secs > t.elapsed {
		t.elapsed = secs
	}
}

func (t *timer) active(now time.Time) time.Duration {
	if !t.started {
		return 0
	}
	if !t.running {
		return time.Duration(t.elapsed) * time.Second
	}
	d := now.Sub(t.origin)
	if d < 0 {
		return 0
	}
	return d
}
