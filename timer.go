package orrery

// TimerHandle identifies a pending one-shot timer. The zero value refers to no
// timer.
type TimerHandle struct {
	id uint32
}

// Valid reports whether the handle was returned by After.
func (h TimerHandle) Valid() bool {
	return h.id != 0
}

type pendingTimer struct {
	id       uint32
	deadline float64
	fn       func()
}

// Timers runs cancellable one-shot callbacks against a frame-driven clock.
// Deferred work ("remember a deadline, check it on a later tick") goes
// through here instead of goroutines.
type Timers struct {
	now     float64
	pending []pendingTimer
	firing  []pendingTimer
	nextID  uint32
}

// NewTimers creates an empty timer service.
func NewTimers() *Timers {
	return &Timers{}
}

// After schedules fn to run once delay seconds from now. A non-positive delay
// fires on the next Update.
func (t *Timers) After(delay float64, fn func()) TimerHandle {
	t.nextID++
	t.pending = append(t.pending, pendingTimer{id: t.nextID, deadline: t.now + delay, fn: fn})
	return TimerHandle{id: t.nextID}
}

// Rearm cancels the timer in *h (if pending) and schedules a new one, storing
// its handle back into *h.
func (t *Timers) Rearm(h *TimerHandle, delay float64, fn func()) {
	t.Cancel(*h)
	*h = t.After(delay, fn)
}

// Cancel removes a pending timer. Returns false if it already fired or was
// never scheduled.
func (t *Timers) Cancel(h TimerHandle) bool {
	if h.id == 0 {
		return false
	}
	for i := range t.pending {
		if t.pending[i].id == h.id {
			t.pending = append(t.pending[:i:i], t.pending[i+1:]...)
			return true
		}
	}
	// Due in the batch currently firing but not yet run.
	for i := range t.firing {
		if t.firing[i].id == h.id {
			t.firing[i].id = 0
			return true
		}
	}
	return false
}

// Pending reports whether the timer is still scheduled.
func (t *Timers) Pending(h TimerHandle) bool {
	for i := range t.pending {
		if t.pending[i].id == h.id {
			return true
		}
	}
	return false
}

// Len returns the number of pending timers.
func (t *Timers) Len() int {
	return len(t.pending)
}

// Now returns the timer clock in seconds.
func (t *Timers) Now() float64 {
	return t.now
}

// Update advances the clock by dt and fires every expired timer in scheduling
// order. Timers scheduled by a firing callback are not run
// until the next Update.
func (t *Timers) Update(dt float64) {
	t.now += dt
	due := t.pending[:0:0]
	keep := t.pending[:0:0]
	for _, p := range t.pending {
		if p.deadline <= t.now {
			due = append(due, p)
		} else {
			keep = append(keep, p)
		}
	}
	if len(due) == 0 {
		return
	}
	t.pending = keep
	t.firing = due
	for i := range t.firing {
		p := t.firing[i]
		if p.id == 0 || p.fn == nil {
			continue
		}
		t.firing[i].id = 0
		p.fn()
	}
	t.firing = nil
}
