package orrery

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// highlightState fades the owner's HighlightLevel in and out.
type highlightState struct {
	tween *gween.Tween
}

// BeginFocus applies the highlight marker. Calling it while already focused
// is a no-op.
func (it *Interactable) BeginFocus() {
	if it.focused {
		return
	}
	it.focused = true
	if it.cfg.EnableHighlight {
		it.applyHighlight(true)
	}
	it.onFocusChanged.emit(true)
}

// EndFocus removes the highlight marker. Calling it while not focused is a
// no-op.
func (it *Interactable) EndFocus() {
	if !it.focused {
		return
	}
	it.focused = false
	if it.cfg.EnableHighlight {
		it.applyHighlight(false)
	}
	it.onFocusChanged.emit(false)
}

func (it *Interactable) applyHighlight(on bool) {
	o := it.owner
	if o == nil {
		return
	}
	o.Highlighted = on
	o.HighlightColor = it.cfg.HighlightColor
	to := 0.0
	if on {
		to = it.cfg.HighlightIntensity
	}
	if it.cfg.HighlightFade <= 0 {
		o.HighlightLevel = to
		it.glow.tween = nil
		return
	}
	it.glow.tween = gween.New(float32(o.HighlightLevel), float32(to), float32(it.cfg.HighlightFade), ease.OutQuad)
}

func (h *highlightState) update(it *Interactable, dt float64) {
	if h.tween == nil || it.owner == nil {
		return
	}
	v, done := h.tween.Update(float32(dt))
	it.owner.HighlightLevel = float64(v)
	if done {
		h.tween = nil
	}
}
