// Package eventloop runs the page behaviors' asynchronous work on a single
// cooperative task queue with a virtual clock. Hosts drain the queue
// explicitly, so tests control exactly when clipboard settlements and label
// reverts happen.
package eventloop

import "time"

// Loop is a FIFO task queue plus a set of pending timers. The zero clock
// starts at zero and only moves when Advance is called. A Loop is not safe
// for concurrent use; everything scheduled on it runs on the caller's
// goroutine.
type Loop struct {
	queue  []func()
	timers []timer
	now    time.Duration
	seq    int
}

type timer struct {
	due time.Duration
	seq int
	fn  func()
}

// New returns an empty loop with the clock at zero.
func New() *Loop {
	return &Loop{}
}

// Now returns the current virtual time.
func (l *Loop) Now() time.Duration {
	return l.now
}

// Post enqueues fn to run on the next drain, after everything already
// queued.
func (l *Loop) Post(fn func()) {
	l.queue = append(l.queue, fn)
}

// After schedules fn to run once the clock has advanced d past the current
// time. Timers cannot be canceled. A non-positive d fires on the next
// Advance.
func (l *Loop) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	t := timer{due: l.now + d, seq: l.seq, fn: fn}
	l.seq++
	i := len(l.timers)
	for i > 0 && later(l.timers[i-1], t) {
		i--
	}
	l.timers = append(l.timers, timer{})
	copy(l.timers[i+1:], l.timers[i:])
	l.timers[i] = t
}

// later reports whether a fires after b, breaking due-time ties by
// scheduling order.
func later(a, b timer) bool {
	if a.due != b.due {
		return a.due > b.due
	}
	return a.seq > b.seq
}

// Run drains the task queue, including tasks posted while draining. Timers
// do not fire; they need Advance.
func (l *Loop) Run() {
	for len(l.queue) > 0 {
		fn := l.queue[0]
		l.queue = l.queue[1:]
		fn()
	}
}

// Advance drains the queue, then moves the clock forward by d, firing every
// timer that comes due along the way in due order. Tasks a timer posts run
// before the next timer fires.
func (l *Loop) Advance(d time.Duration) {
	l.Run()
	target := l.now + d
	for len(l.timers) > 0 && l.timers[0].due <= target {
		t := l.timers[0]
		l.timers = l.timers[1:]
		l.now = t.due
		t.fn()
		l.Run()
	}
	l.now = target
}

// Idle reports whether nothing is queued and no timer is pending.
func (l *Loop) Idle() bool {
	return len(l.queue) == 0 && len(l.timers) == 0
}
