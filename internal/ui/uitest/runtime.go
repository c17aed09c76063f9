// Package uitest provides a deterministic ui.Runtime for tests: posted and
// spawned work runs inline, and timers only fire when the clock is advanced.
package uitest

import (
	"time"

	"github.com/mmeshcher/linkedin-collector/internal/ui"
)

type Runtime struct {
	now    time.Duration
	seq    int
	timers []*timer
}

func NewRuntime() *Runtime {
	return &Runtime{}
}

func (r *Runtime) Post(fn func()) { fn() }

func (r *Runtime) Spawn(fn func()) { fn() }

func (r *Runtime) AfterFunc(d time.Duration, fn func()) ui.Timer {
	return r.add(d, 0, fn)
}

func (r *Runtime) Every(d time.Duration, fn func()) ui.Timer {
	return r.add(d, d, fn)
}

// Now is the time elapsed on the manual clock.
func (r *Runtime) Now() time.Duration { return r.now }

// Pending counts timers that can still fire.
func (r *Runtime) Pending() int {
	n := 0
	for _, t := range r.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in due order.
// Timers scheduled by a callback fire in the same call if they fall due.
func (r *Runtime) Advance(d time.Duration) {
	target := r.now + d
	for {
		next := r.next(target)
		if next == nil {
			break
		}
		r.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			next.stopped = true
		}
		next.fn()
	}
	r.now = target
	r.compact()
}

func (r *Runtime) add(d, period time.Duration, fn func()) *timer {
	r.seq++
	t := &timer{due: r.now + d, period: period, fn: fn, seq: r.seq}
	r.timers = append(r.timers, t)
	return t
}

func (r *Runtime) next(target time.Duration) *timer {
	var best *timer
	for _, t := range r.timers {
		if t.stopped || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (r *Runtime) compact() {
	kept := r.timers[:0]
	for _, t := range r.timers {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	r.timers = kept
}

type timer struct {
	due    time.Duration
	period time.Duration
	fn     func()
	seq    int

	stopped bool
}

func (t *timer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}
