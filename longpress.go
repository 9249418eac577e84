package orrery

// longPressState is the per-object sub-state for long-press gestures. elapsed
// returns to zero on cancel and on completion.
type longPressState struct {
	elapsed float64
	active  bool
}

// StartLongPress arms the long-press timer.
func (it *Interactable) StartLongPress() {
	if !it.CanInteract() {
		return
	}
	it.press = longPressState{active: true}
}

// UpdateLongPress advances the timer by dt and reports whether the press
// completed on this call. Completion disarms the timer.
func (it *Interactable) UpdateLongPress(dt float64) bool {
	if !it.press.active {
		return false
	}
	it.press.elapsed += dt
	if it.press.elapsed < it.cfg.LongPressDuration {
		return false
	}
	it.press = longPressState{}
	return true
}

// CancelLongPress disarms the timer without completing.
func (it *Interactable) CancelLongPress() {
	it.press = longPressState{}
}

// LongPressActive reports whether the timer is armed.
func (it *Interactable) LongPressActive() bool { return it.press.active }

// LongPressElapsed returns the seconds held so far.
func (it *Interactable) LongPressElapsed() float64 { return it.press.elapsed }

// LongPressProgress returns elapsed/duration in [0, 1].
func (it *Interactable) LongPressProgress() float64 {
	if it.cfg.LongPressDuration <= 0 {
		return 0
	}
	return clamp(it.press.elapsed/it.cfg.LongPressDuration, 0, 1)
}
