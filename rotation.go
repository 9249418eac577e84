package orrery

import "github.com/go-gl/mathgl/mgl64"

// rotationState is the per-object sub-state for rotate gestures.
type rotationState struct {
	angle    float64
	initial  mgl64.Quat
	rotating bool
	reached  bool
}

// BeginRotation marks the start of a rotate gesture.
func (it *Interactable) BeginRotation() {
	if !it.CanInteract() {
		return
	}
	it.rot.rotating = true
	logFor("interactable").Debug("rotation began", "object", it.owner.String(), "angle", it.rot.angle)
}

// UpdateRotation adds delta degrees to the accumulated angle. Unclamped
// angles wrap into [0, 360); clamped angles stay inside [min, max].
func (it *Interactable) UpdateRotation(delta float64) {
	if !it.CanInteract() {
		return
	}
	it.setAngle(it.rot.angle + delta)
}

// EndRotation marks the end of a rotate gesture.
func (it *Interactable) EndRotation() {
	if !it.rot.rotating {
		return
	}
	it.rot.rotating = false
	logFor("interactable").Debug("rotation ended", "object", it.owner.String(), "angle", it.rot.angle)
}

// Rotating reports whether a rotate gesture is in progress.
func (it *Interactable) Rotating() bool { return it.rot.rotating }

// CurrentRotationAngle returns the accumulated rotation in degrees.
func (it *Interactable) CurrentRotationAngle() float64 { return it.rot.angle }

// SetRotationAngle sets the accumulated rotation directly, applying the same
// wrap or clamp rules as UpdateRotation.
func (it *Interactable) SetRotationAngle(deg float64) {
	it.setAngle(deg)
}

// ResetRotation restores the initial orientation and re-arms the target
// angle notification.
func (it *Interactable) ResetRotation() {
	it.rot.reached = false
	it.setAngle(0)
}

// OnRotationChanged registers a callback fired with the new angle after every
// rotation update.
func (it *Interactable) OnRotationChanged(fn func(angle float64)) CallbackHandle {
	return it.onRotation.add(fn)
}

// OnTargetRotationReached registers a one-shot notification fired the first
// time the angle comes within AngleTolerance of TargetRotationAngle.
func (it *Interactable) OnTargetRotationReached(fn func(angle float64)) CallbackHandle {
	return it.onTargetReached.add(fn)
}

func (it *Interactable) setAngle(a float64) {
	if it.cfg.ClampRotation {
		a = clamp(a, it.cfg.MinRotationAngle, it.cfg.MaxRotationAngle)
	} else {
		a = NormalizeAngle(a)
	}
	it.rot.angle = a
	it.applyOrientation()
	it.onRotation.emit(a)

	target := it.cfg.TargetRotationAngle
	if target >= 0 && !it.rot.reached && AngleDifference(a, target) <= it.cfg.AngleTolerance {
		it.rot.reached = true
		logFor("interactable").Info("target rotation reached", "object", it.owner.String(), "angle", a)
		it.onTargetReached.emit(a)
	}
}

// applyOrientation composes the accumulated rotation about the configured
// axis over the initial orientation.
func (it *Interactable) applyOrientation() {
	if it.owner == nil {
		return
	}
	axis := it.cfg.RotationAxis.Normalize()
	q := mgl64.QuatRotate(mgl64.DegToRad(it.rot.angle), axis)
	it.owner.Orientation = it.rot.initial.Mul(q).Normalize()
}
