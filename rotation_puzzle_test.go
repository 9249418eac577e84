package orrery

import (
	"math"
	"testing"
)

func newDial(target float64) *RotationPuzzle {
	return NewRotationPuzzle(
		PuzzleConfig{Name: "dial", AutoActivate: true},
		RotationPuzzleConfig{TargetAngle: target, Tolerance: 5, HoldTime: 0.5},
	)
}

func TestRotationPuzzleHold(t *testing.T) {
	rp := newDial(90)
	reached := 0
	rp.OnCorrectAngleReached(func(float64) { reached++ })

	rp.SetRotation(80)
	rp.Update(0.25)
	if rp.AtCorrectAngle() || rp.HoldTimer() != 0 {
		t.Fatalf("at=%v hold=%v", rp.AtCorrectAngle(), rp.HoldTimer())
	}

	rp.SetRotation(88)
	rp.Update(0.25)
	if !rp.AtCorrectAngle() || rp.HoldTimer() != 0.25 {
		t.Errorf("at=%v hold=%v", rp.AtCorrectAngle(), rp.HoldTimer())
	}
	if got := rp.Progress(); math.Abs(got-0.95) > epsilon {
		t.Errorf("progress = %v, want 0.95", got)
	}

	rp.SetRotation(100)
	rp.Update(0.25)
	if rp.HoldTimer() != 0 || rp.IsCompleted() {
		t.Errorf("leaving tolerance should reset hold: hold=%v", rp.HoldTimer())
	}

	rp.SetRotation(92)
	rp.Update(0.25)
	rp.Update(0.25)
	if !rp.IsCompleted() {
		t.Errorf("state = %v after holding 0.5s", rp.State())
	}
	if reached != 2 {
		t.Errorf("correct angle reached %d times, want 2", reached)
	}
	if rp.Progress() != 1 {
		t.Errorf("progress = %v", rp.Progress())
	}
}

func TestRotationPuzzleWrap(t *testing.T) {
	rp := newDial(0)
	rp.SetRotation(-2)
	if rp.Rotation() != 358 {
		t.Errorf("rotation = %v", rp.Rotation())
	}
	rp.Update(0.1)
	if !rp.AtCorrectAngle() {
		t.Errorf("358 should be within 5 of 0, diff %v", rp.AngleDifference())
	}
	rp.AddRotation(4)
	if rp.Rotation() != 2 {
		t.Errorf("rotation = %v", rp.Rotation())
	}
}

func TestRotationPuzzleInactiveIgnored(t *testing.T) {
	rp := NewRotationPuzzle(PuzzleConfig{Name: "idle"}, RotationPuzzleConfig{TargetAngle: 0, Tolerance: 5, HoldTime: 0.1})
	rp.Update(1)
	if rp.IsCompleted() || rp.Progress() != 0 {
		t.Errorf("state=%v progress=%v", rp.State(), rp.Progress())
	}
	_ = rp.Activate()
	if got := rp.Progress(); got != 1 {
		t.Errorf("progress at target before update = %v", got)
	}
	rp.SetRotation(90)
	if got := rp.Progress(); got != 0.5 {
		t.Errorf("progress at 90 off = %v", got)
	}
}

func TestRotationPuzzleResetKeepsAngle(t *testing.T) {
	rp := NewRotationPuzzle(PuzzleConfig{Name: "r", AutoActivate: true, AllowReset: true},
		RotationPuzzleConfig{TargetAngle: 10, Tolerance: 5, HoldTime: 1})
	rp.SetRotation(10)
	rp.Update(0.5)
	if err := rp.Reset(); err != nil {
		t.Fatal(err)
	}
	if rp.HoldTimer() != 0 || rp.AtCorrectAngle() || rp.Rotation() != 10 {
		t.Errorf("hold=%v at=%v rotation=%v", rp.HoldTimer(), rp.AtCorrectAngle(), rp.Rotation())
	}
}

func TestRotationPuzzleLink(t *testing.T) {
	cfg := DefaultInteractableConfig()
	cfg.Mode = ModeRotate
	cfg.Type = TypeCustom
	_, it := newTarget(t, cfg)

	rp := newDial(45)
	var changes []RotationChange
	rp.OnRotationChanged(func(c RotationChange) { changes = append(changes, c) })

	rp.Link(it)
	it.UpdateRotation(45)
	if rp.Rotation() != 45 {
		t.Errorf("rotation = %v", rp.Rotation())
	}
	if last := changes[len(changes)-1]; last.Current != 45 || last.Target != 45 {
		t.Errorf("change = %+v", last)
	}

	rp.SetRotation(100)
	if it.CurrentRotationAngle() != 100 || rp.Rotation() != 100 {
		t.Errorf("interactable=%v puzzle=%v", it.CurrentRotationAngle(), rp.Rotation())
	}

	rp.Link(nil)
	it.UpdateRotation(10)
	if rp.Rotation() != 100 {
		t.Errorf("unlinked puzzle followed rotation: %v", rp.Rotation())
	}
}
